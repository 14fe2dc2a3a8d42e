package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HannesFeil/multiway-powersort-experiments/internal/catalog"
)

var variantsCmd = &cobra.Command{
	Use:   "variants [algorithm]",
	Short: "List the algorithms and variant indices the measured binary understands",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		names := catalog.Names()
		if len(args) == 1 {
			if _, ok := catalog.Variants(args[0]); !ok {
				fmt.Fprintf(os.Stderr, "unknown algorithm %q\n", args[0])
				os.Exit(1)
			}
			names = args[:1]
		}
		for _, name := range names {
			fmt.Println(name)
			vs, _ := catalog.Variants(name)
			for i, v := range vs {
				stability := "stable"
				if !v.Stable {
					stability = "unstable"
				}
				fmt.Printf("  %d: %s (%s)\n", i, v.Desc, stability)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
