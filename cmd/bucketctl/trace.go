package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/bucketkit/bucket"
	"github.com/joshuapare/bucketkit/internal/opscript"
	"github.com/spf13/cobra"
)

var (
	traceCapacity int
	traceEncoding string
)

func init() {
	cmd := newTraceCmd()
	cmd.Flags().IntVar(&traceCapacity, "capacity", bucket.DefaultBlockCapacity, "Block capacity of the container")
	cmd.Flags().StringVar(&traceEncoding, "encoding", opscript.EncodingUTF8, "Script encoding (UTF-8 or Windows-1252)")
	rootCmd.AddCommand(cmd)
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <script>",
		Short: "Run a script and dump the resulting structure",
		Long: `The trace command executes an operation script against a fresh
container and prints the resulting block structure: every block with its
active chain, reservoir, and never-used slots. With --verbose each
operation is reported as it executes.

Example:
  bucketctl trace churn.ops
  bucketctl trace churn.ops --capacity 8 --verbose
  bucketctl trace churn.ops --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(args)
		},
	}
	return cmd
}

func runTrace(args []string) error {
	scriptPath := args[0]

	printVerbose("Loading script: %s\n", scriptPath)

	ops, s, err := loadScript(scriptPath, traceCapacity, traceEncoding)
	if err != nil {
		return err
	}

	results, err := opscript.Run(s, ops, nil)
	if err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	for _, res := range results {
		switch res.Op.Kind {
		case opscript.KindInsert:
			printVerbose("line %3d: insert %q -> size %d, blocks %d\n", res.Op.Line, res.Op.Value, res.Size, res.Blocks)
		case opscript.KindErase:
			printVerbose("line %3d: erase %d -> size %d, blocks %d\n", res.Op.Line, res.Op.Pos, res.Size, res.Blocks)
		default:
			printVerbose("line %3d: %s -> size %d, blocks %d\n", res.Op.Line, res.Op.Kind, res.Size, res.Blocks)
		}
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(map[string]interface{}{
			"script":     scriptPath,
			"operations": len(results),
			"stats":      s.Stats(),
			"blocks":     s.BlockStats(),
		})
	}

	// Text output
	printInfo("\nExecuted %d operation(s) from %s\n\n", len(results), scriptPath)

	var dump strings.Builder
	if err := s.DumpStructure(&dump); err != nil {
		return err
	}
	printInfo("%s", dump.String())
	return nil
}
