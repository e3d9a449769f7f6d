package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/bucketkit/bucket"
	"github.com/joshuapare/bucketkit/internal/opscript"
	"github.com/spf13/cobra"
)

var (
	statsCapacity int
	statsEncoding string
	statsPerBlock bool
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsCapacity, "capacity", bucket.DefaultBlockCapacity, "Block capacity of the container")
	cmd.Flags().StringVar(&statsEncoding, "encoding", opscript.EncodingUTF8, "Script encoding (UTF-8 or Windows-1252)")
	cmd.Flags().BoolVar(&statsPerBlock, "per-block", false, "Include a per-block breakdown")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <script>",
		Short: "Show detailed statistics after running a script",
		Long: `The stats command executes an operation script and reports detailed
statistics about the resulting container: element and block counts, slot
state distribution, occupancy, and the sequence id watermark.

Example:
  bucketctl stats churn.ops
  bucketctl stats churn.ops --capacity 8 --per-block
  bucketctl stats churn.ops --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	scriptPath := args[0]

	printVerbose("Loading script: %s\n", scriptPath)

	ops, s, err := loadScript(scriptPath, statsCapacity, statsEncoding)
	if err != nil {
		return err
	}

	results, err := opscript.Run(s, ops, nil)
	if err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	stats := s.Stats()
	blocks := s.BlockStats()

	// Output as JSON if requested
	if jsonOut {
		out := map[string]interface{}{
			"script":     scriptPath,
			"operations": len(results),
			"stats":      stats,
		}
		if statsPerBlock {
			out["blocks"] = blocks
		}
		return printJSON(out)
	}

	// Text output
	printInfo("\nContainer Statistics: %s\n", scriptPath)
	printInfo("%s\n\n", strings.Repeat("═", 40))

	printInfo("Contents:\n")
	printInfo("  Elements: %s\n", formatNumber(int64(stats.Size)))
	printInfo("  Blocks: %s (capacity %d each)\n", formatNumber(int64(stats.Blocks)), stats.BlockCapacity)
	printInfo("  Total Capacity: %s\n", formatNumber(int64(stats.Capacity)))
	printInfo("  Occupancy: %.1f%%\n\n", stats.Occupancy)

	printInfo("Blocks:\n")
	printInfo("  Full: %d\n", stats.FullBlocks)
	printInfo("  Incomplete: %d\n\n", stats.IncompleteBlocks)

	printInfo("Slots:\n")
	printInfo("  Active: %s\n", formatNumber(int64(stats.Size)))
	printInfo("  Reservoir: %s\n", formatNumber(int64(stats.ReservoirSlots)))
	printInfo("  Never Used: %s\n\n", formatNumber(int64(stats.NeverUsedSlots)))

	printInfo("Sequence:\n")
	printInfo("  Next ID: %d\n", stats.NextID)

	if statsPerBlock && len(blocks) > 0 {
		printInfo("\nPer-Block Breakdown:\n")
		for i, b := range blocks {
			state := "incomplete"
			if b.Full {
				state = "full"
			}
			printInfo("  block %d (id %d, %s): %d active, %d reservoir, %d never-used\n",
				i, b.ID, state, b.Size, b.Reservoir, b.NeverUsed)
		}
	}

	return nil
}

func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Add commas
	var result strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}
