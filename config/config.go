package config

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	// Ensure Config is non-nil with default values for tests and
	// callers that never go through the CLI.
	if Config == nil {
		Config = initDefaultConfig()
	}
}

var Config *PowersortConfig

// PowersortConfig is the flat configuration of one experiment family.
// Flags, the optional powersort.yaml file and defaults are all driven
// by the struct tags below.
type PowersortConfig struct {
	SortBin   string `mapstructure:"sort-bin" default:"./sortbench" description:"path of the measured sorting binary"`
	OutputDir string `mapstructure:"output-dir" default:"results" description:"directory for result logs"`

	Algorithms []string `mapstructure:"algorithms" description:"algorithms to sweep; empty means every known algorithm"`
	Dists      []string `mapstructure:"dists" default:"random-runs-sqrt-u32" description:"distribution mode tokens to sweep"`
	Sizes      []string `mapstructure:"sizes" default:"1000000" description:"input sizes to sweep"`

	Reps      int    `mapstructure:"reps" default:"1000" description:"measured repetitions per matrix cell"`
	Seed      uint64 `mapstructure:"seed" default:"12159463818710188685" description:"experiment family seed; every algorithm in the sweep sees inputs derived from it"`
	Warmup    bool   `mapstructure:"warmup" default:"true" description:"run one discarded warmup repetition per cell"`
	KeyDomain uint64 `mapstructure:"key-domain" default:"0" description:"restrict the generator key domain; 0 means the element type's native domain"`

	LogLevel string `mapstructure:"log-level" default:"info" description:"the log level"`
	LogTags  string `mapstructure:"log-tags" default:"" description:"comma separated verbose diagnostic tags (sweep, invoke, datagen)"`
}

// Load reads an optional powersort.yaml from the working directory,
// overlays any flags the user changed, and unmarshals the result into
// the package-level Config.
func Load(flags *pflag.FlagSet) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("powersort")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "help" {
			return
		}

		// Slice flags must set the underlying []string, not the
		// formatted string.
		if flag.Value.Type() == "stringSlice" || flag.Value.Type() == "stringArray" {
			if flag.Changed || !viper.IsSet(flag.Name) {
				var ss []string
				var err error
				if flag.Value.Type() == "stringSlice" {
					ss, err = flags.GetStringSlice(flag.Name)
				} else {
					ss, err = flags.GetStringArray(flag.Name)
				}
				if err == nil {
					viper.Set(flag.Name, ss)
				} else {
					viper.Set(flag.Name, flag.Value.String())
				}
			}
			return
		}
		// Primitive flags: only override parsed config if the user
		// set the flag or the file lacks the key.
		if flag.Changed || !viper.IsSet(flag.Name) {
			viper.Set(flag.Name, flag.Value.String())
		}
	})

	if err := viper.Unmarshal(&Config); err != nil {
		panic(err)
	}
}

func initDefaultConfig() *PowersortConfig {
	defaultConfig := &PowersortConfig{}
	configType := reflect.TypeOf(*defaultConfig)
	configValue := reflect.ValueOf(defaultConfig).Elem()

	for i := 0; i < configType.NumField(); i++ {
		field := configType.Field(i)
		value := configValue.Field(i)

		tag := field.Tag.Get("default")
		if tag == "" {
			continue
		}
		switch value.Kind() {
		case reflect.String:
			value.SetString(tag)
		case reflect.Int:
			intVal := 0
			if _, err := fmt.Sscanf(tag, "%d", &intVal); err == nil {
				value.SetInt(int64(intVal))
			}
		case reflect.Uint64:
			if u, err := strconv.ParseUint(tag, 10, 64); err == nil {
				value.SetUint(u)
			}
		case reflect.Bool:
			boolVal := false
			if _, err := fmt.Sscanf(tag, "%t", &boolVal); err == nil {
				value.SetBool(boolVal)
			}
		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String {
				value.Set(reflect.ValueOf([]string{tag}))
			}
		}
	}

	return defaultConfig
}

// ForceInit replaces the loaded config, filling zero-valued fields
// from the defaults. Intended for tests.
func ForceInit(config *PowersortConfig) {
	defaultConfig := initDefaultConfig()

	configType := reflect.TypeOf(*config)
	configValue := reflect.ValueOf(config).Elem()
	defaultConfigValue := reflect.ValueOf(defaultConfig).Elem()

	for i := 0; i < configType.NumField(); i++ {
		value := configValue.Field(i)
		// IsZero avoids comparing uncomparable kinds such as slices.
		if value.IsZero() {
			value.Set(defaultConfigValue.Field(i))
		}
	}

	Config = config
}
