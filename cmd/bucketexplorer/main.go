package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/bucketkit/cmd/bucketexplorer/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false
	capacity := 8

	// Extract --debug/-d and --capacity flags
	filteredArgs := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--debug", "-d":
			debugMode = true
		case "--capacity", "-c":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: %s needs a value\n", arg)
				os.Exit(1)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "Error: invalid capacity: %s\n", args[i])
				os.Exit(1)
			}
			capacity = n
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("bucketexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	scriptPath := filteredArgs[0]
	logger.Info("starting bucketexplorer", "path", scriptPath, "capacity", capacity, "debug", debugMode)

	// Check if file exists
	if _, err := os.Stat(scriptPath); err != nil {
		logger.Error("script not found", "path", scriptPath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: script not found: %s\n", scriptPath)
		os.Exit(1)
	}

	// Create the TUI model
	m := NewModel(scriptPath, capacity)

	// Create the Bubbletea program
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	// Run the program
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	logger.Info("bucketexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: bucketexplorer [options] <script-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'bucketexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("bucketexplorer - Interactive TUI for Bucket Storage Operation Scripts")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  bucketexplorer [options] <script-file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Steps through an operation script one operation at a time and renders")
	fmt.Println("  the container after each step: every block as a slot grid showing")
	fmt.Println("  active, reservoir, and never-used slots, plus live statistics.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    →/l, Space  Apply next operation")
	fmt.Println("    ←/h         Undo last operation")
	fmt.Println("    g / G       Jump to start / end of script")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -c, --capacity N  Block capacity of the container (default 8)")
	fmt.Println("  -d, --debug       Enable debug logging to ~/.bucketexplorer/logs/")
	fmt.Println("  -h, --help        Show this help message")
	fmt.Println("  -v, --version     Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  bucketexplorer churn.ops")
	fmt.Println("  bucketexplorer churn.ops --capacity 4")
	fmt.Println()
	fmt.Println("For non-interactive runs, use the 'bucketctl' command instead.")
}
