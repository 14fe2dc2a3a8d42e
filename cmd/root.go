package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HannesFeil/multiway-powersort-experiments/config"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/logger"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/logging"
)

func init() {
	flags := rootCmd.PersistentFlags()

	c := config.PowersortConfig{}
	_type := reflect.TypeOf(c)
	for i := 0; i < _type.NumField(); i++ {
		field := _type.Field(i)
		yamlTag := field.Tag.Get("mapstructure")
		descriptionTag := field.Tag.Get("description")
		defaultTag := field.Tag.Get("default")

		switch field.Type.Kind() {
		case reflect.String:
			flags.String(yamlTag, defaultTag, descriptionTag)
		case reflect.Int:
			val, _ := strconv.Atoi(defaultTag)
			flags.Int(yamlTag, val, descriptionTag)
		case reflect.Uint64:
			val, _ := strconv.ParseUint(defaultTag, 10, 64)
			flags.Uint64(yamlTag, val, descriptionTag)
		case reflect.Bool:
			val, _ := strconv.ParseBool(defaultTag)
			flags.Bool(yamlTag, val, descriptionTag)
		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String {
				var defVal []string
				for _, seg := range strings.Split(defaultTag, ",") {
					if trim := strings.TrimSpace(seg); trim != "" {
						defVal = append(defVal, trim)
					}
				}
				flags.StringSlice(yamlTag, defVal, descriptionTag)
			}
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "powersort-experiments",
	Short: "powersort-experiments - reproducible benchmark sweeps for merge-policy sorting algorithms",
	Run: func(cmd *cobra.Command, args []string) {
		config.Load(cmd.Flags())
		slog.SetDefault(logger.New())
		logging.EnableMany(config.Config.LogTags)
		if err := runSweep(cmd.Context()); err != nil {
			slog.Error("sweep aborted", slog.Any("error", err))
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
