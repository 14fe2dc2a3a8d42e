package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HannesFeil/multiway-powersort-experiments/config"
	"github.com/HannesFeil/multiway-powersort-experiments/internal/runplan"
)

// planCmd prints the planned run structure for one distribution so a
// sweep's inputs can be inspected without running anything.
var planCmd = &cobra.Command{
	Use:   "plan <dist-token> <size>",
	Short: "Print the planned run structure for a distribution mode",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config.Load(cmd.Flags())

		mode, err := runplan.ParseMode(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		var n int
		if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil || n < 0 {
			fmt.Fprintf(os.Stderr, "bad size %q\n", args[1])
			os.Exit(1)
		}

		spec, err := runplan.Plan(mode, n, config.Config.Seed)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("dist=%s n=%d seed=%d runs=%d\n", mode.Token(), n, config.Config.Seed, len(spec))
		const preview = 20
		for i, run := range spec {
			if i == preview {
				fmt.Printf("  ... %d more runs\n", len(spec)-preview)
				break
			}
			fmt.Printf("  run %d: length=%d %s\n", i, run.Length, run.Orientation)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
