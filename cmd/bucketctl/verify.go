package main

import (
	"errors"

	"github.com/joshuapare/bucketkit/bucket"
	"github.com/joshuapare/bucketkit/internal/opscript"
	"github.com/spf13/cobra"
)

var (
	verifyCapacity int
	verifyEncoding string
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func init() {
	cmd := newVerifyCmd()
	cmd.Flags().IntVar(&verifyCapacity, "capacity", bucket.DefaultBlockCapacity, "Block capacity of the container")
	cmd.Flags().StringVar(&verifyEncoding, "encoding", opscript.EncodingUTF8, "Script encoding (UTF-8 or Windows-1252)")
	rootCmd.AddCommand(cmd)
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <script>",
		Short: "Run a script with full validation after every operation",
		Long: `The verify command executes an operation script and checks every
structural invariant after each step: block list integrity, slot chain
integrity, incomplete list membership, and counter consistency. It stops
at the first violation and reports it.

Example:
  bucketctl verify churn.ops
  bucketctl verify churn.ops --capacity 4 --verbose
  bucketctl verify churn.ops --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

func runVerify(args []string) error {
	scriptPath := args[0]

	printVerbose("Loading script: %s\n", scriptPath)

	ops, s, err := loadScript(scriptPath, verifyCapacity, verifyEncoding)
	if err != nil {
		return err
	}

	results, runErr := opscript.Run(s, ops, &opscript.RunOptions{Validate: true})

	for _, res := range results {
		printVerbose("line %3d: %s %s\n", res.Op.Line, res.Op.Kind, colorize("✓", ansiGreen))
	}

	// Prepare result
	result := map[string]interface{}{
		"script":     scriptPath,
		"operations": len(ops),
		"verified":   len(results),
		"valid":      runErr == nil,
	}

	var verr *bucket.ValidationError
	if errors.As(runErr, &verr) {
		result["violation"] = verr.Type
		result["detail"] = verr.Error()
	} else if runErr != nil {
		result["detail"] = runErr.Error()
	}

	// Output as JSON if requested
	if jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
		return runErr
	}

	// Text output
	printInfo("\nVerifying %s...\n\n", scriptPath)

	if runErr != nil {
		printInfo("  %s %d of %d operation(s) verified\n", colorize("✗", ansiRed), len(results), len(ops))
		printInfo("  %s %v\n", colorize("✗", ansiRed), runErr)
		printInfo("\nResult: %s\n", colorize("✗ INVALID", ansiRed))
		return runErr
	}

	printInfo("  %s %d operation(s) verified\n", colorize("✓", ansiGreen), len(results))
	printInfo("  %s Final size %d in %d block(s)\n", colorize("✓", ansiGreen), s.Size(), s.Blocks())
	printInfo("\nResult: %s\n", colorize("✓ VALID", ansiGreen))

	return nil
}

// colorize wraps s in the given ANSI color unless --no-color is set.
func colorize(s, color string) string {
	if noColor {
		return s
	}
	return color + s + ansiReset
}
