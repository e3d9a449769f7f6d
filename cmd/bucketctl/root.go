package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joshuapare/bucketkit/bucket"
	"github.com/joshuapare/bucketkit/internal/opscript"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "bucketctl",
	Short: "Run and inspect bucket storage operation scripts",
	Long: `bucketctl drives a bucket storage container from line-oriented
operation scripts and reports on the result. It supports tracing a script
into a structure dump, statistics reporting, per-step invariant
verification, and seeded random stress runs.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// loadScript parses a script file and prepares an empty container with
// the requested block capacity.
func loadScript(path string, capacity int, encoding string) ([]opscript.Op, *bucket.Storage[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	ops, err := opscript.Parse(f, &opscript.Options{Encoding: encoding})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse script: %w", err)
	}

	s, err := bucket.NewWithBlockCapacity[string](capacity)
	if err != nil {
		return nil, nil, err
	}
	return ops, s, nil
}
