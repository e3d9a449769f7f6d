package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Implementation labels used by the comparative benchmarks.
const (
	implBucket = "bucket"
	implSlice  = "slice"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Workload    string
	Impl        string // "bucket" or "slice"
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult represents a comparison between the container and
// the slice baseline.
type ComparisonResult struct {
	Operation    string
	Workload     string
	BucketNs     float64
	SliceNs      float64
	Speedup      float64
	BucketMem    int64
	SliceMem     int64
	BucketAllocs int64
	SliceAllocs  int64
	BucketOnly   bool
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	// Read benchmark output
	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	// Parse benchmarks
	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	// Generate comparisons
	comparisons := generateComparisons(results)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	// Generate markdown report
	report := generateMarkdownReport(comparisons)

	// Write output
	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	// Close input file if opened
	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	// Regex to parse benchmark output lines
	// BenchmarkInsert/bucket/n1024-8    10000    12450 ns/op    4096 B/op    8 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
	)

	for scanner.Scan() {
		line := scanner.Text()

		// Try to parse as JSON (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		// Parse benchmark line
		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp int64
		var allocsPerOp int64

		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		operation, impl, workload := parseName(name)

		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			Workload:    workload,
			Impl:        impl,
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

// parseName splits a benchmark name into operation, implementation,
// and workload.
//
// Comparative benchmarks follow the form
// Benchmark<Operation>/<impl>/<workload>-<procs>. Anything else is a
// container-only benchmark: its sub-benchmark path (or the suffix
// after the first underscore) becomes the workload.
func parseName(name string) (operation, impl, workload string) {
	parts := strings.Split(name, "/")

	// Strip the -procs suffix from the last segment
	last := parts[len(parts)-1]
	if idx := strings.LastIndex(last, "-"); idx > 0 {
		parts[len(parts)-1] = last[:idx]
	}

	operation = strings.TrimPrefix(parts[0], "Benchmark")

	if len(parts) >= 2 && (parts[1] == implBucket || parts[1] == implSlice) {
		impl = parts[1]
		workload = strings.Join(parts[2:], "/")
		return operation, impl, workload
	}

	impl = implBucket
	if len(parts) > 1 {
		workload = strings.Join(parts[1:], "/")
	} else if idx := strings.Index(operation, "_"); idx > 0 {
		operation, workload = operation[:idx], operation[idx+1:]
	}
	return operation, impl, workload
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	// Group results by operation and workload
	type key struct {
		operation string
		workload  string
	}

	grouped := make(map[key]map[string]BenchmarkResult)

	for _, result := range results {
		k := key{result.Operation, result.Workload}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][result.Impl] = result
	}

	// Generate comparisons
	var comparisons []ComparisonResult

	for k, impls := range grouped {
		bucket, hasBucket := impls[implBucket]
		slice, hasSlice := impls[implSlice]

		if hasBucket && hasSlice {
			// Both implementations exist - compare them
			speedup := slice.NsPerOp / bucket.NsPerOp

			comparisons = append(comparisons, ComparisonResult{
				Operation:    k.operation,
				Workload:     k.workload,
				BucketNs:     bucket.NsPerOp,
				SliceNs:      slice.NsPerOp,
				Speedup:      speedup,
				BucketMem:    bucket.BytesPerOp,
				SliceMem:     slice.BytesPerOp,
				BucketAllocs: bucket.AllocsPerOp,
				SliceAllocs:  slice.AllocsPerOp,
				BucketOnly:   false,
			})
		} else if hasBucket {
			// No slice baseline for this operation
			comparisons = append(comparisons, ComparisonResult{
				Operation:    k.operation,
				Workload:     k.workload,
				BucketNs:     bucket.NsPerOp,
				BucketMem:    bucket.BytesPerOp,
				BucketAllocs: bucket.AllocsPerOp,
				BucketOnly:   true,
			})
		}
	}

	// Sort by operation then workload
	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return comparisons[i].Workload < comparisons[j].Workload
	})

	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	// Summary statistics
	bucketFaster := 0
	sliceFaster := 0
	bucketOnly := 0
	totalSpeedup := 0.0

	for _, comp := range comparisons {
		if comp.BucketOnly {
			bucketOnly++
		} else {
			if comp.Speedup > 1.0 {
				bucketFaster++
			} else if comp.Speedup < 1.0 {
				sliceFaster++
			}
			totalSpeedup += comp.Speedup
		}
	}

	comparableCount := len(comparisons) - bucketOnly
	avgSpeedup := 0.0
	if comparableCount > 0 {
		avgSpeedup = totalSpeedup / float64(comparableCount)
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(comparisons)))
	sb.WriteString(fmt.Sprintf("- **Comparable** (container and slice): %d\n", comparableCount))
	if comparableCount > 0 {
		sb.WriteString(
			fmt.Sprintf(
				"  - container faster: %d (%.1f%%)\n",
				bucketFaster,
				float64(bucketFaster)/float64(comparableCount)*100,
			),
		)
		sb.WriteString(
			fmt.Sprintf(
				"  - slice faster: %d (%.1f%%)\n",
				sliceFaster,
				float64(sliceFaster)/float64(comparableCount)*100,
			),
		)
		sb.WriteString(fmt.Sprintf("  - Average speedup: **%.2fx**\n", avgSpeedup))
	}
	sb.WriteString(fmt.Sprintf("- **Container-only benchmarks**: %d\n", bucketOnly))
	sb.WriteString("\n")

	// Detailed results table
	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString(
		"| Operation | Workload | bucket (ns/op) | slice (ns/op) | Speedup | Memory (B/op) | Allocs |\n",
	)
	sb.WriteString(
		"|-----------|----------|----------------|---------------|---------|---------------|--------|\n",
	)

	for _, comp := range comparisons {
		if comp.BucketOnly {
			// Container-only benchmark
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | *N/A* | *container only* | %s | %s |\n",
				comp.Operation,
				comp.Workload,
				formatNumber(comp.BucketNs),
				formatBytes(comp.BucketMem),
				formatNumber(float64(comp.BucketAllocs)),
			))
		} else {
			// Comparison benchmark
			indicator := "✓"
			speedupStyle := "**"
			if comp.Speedup < 1.0 {
				indicator = "✗"
				speedupStyle = ""
			}

			memIndicator := ""
			if comp.BucketMem < comp.SliceMem {
				memIndicator = " ✓"
			} else if comp.BucketMem > comp.SliceMem {
				memIndicator = " ✗"
			}

			allocIndicator := ""
			if comp.BucketAllocs < comp.SliceAllocs {
				allocIndicator = " ✓"
			} else if comp.BucketAllocs > comp.SliceAllocs {
				allocIndicator = " ✗"
			}

			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s%.2fx%s %s | %s vs %s%s | %s vs %s%s |\n",
				comp.Operation,
				comp.Workload,
				formatNumber(comp.BucketNs),
				formatNumber(comp.SliceNs),
				speedupStyle,
				comp.Speedup,
				speedupStyle,
				indicator,
				formatBytes(comp.BucketMem),
				formatBytes(comp.SliceMem),
				memIndicator,
				formatNumber(float64(comp.BucketAllocs)),
				formatNumber(float64(comp.SliceAllocs)),
				allocIndicator,
			))
		}
	}

	sb.WriteString("\n")

	// Category summaries
	sb.WriteString("## Performance by Category\n\n")

	categories := categorizeOperations(comparisons)
	for _, category := range categoryOrder {
		comps := categories[category]
		if len(comps) == 0 {
			continue
		}

		avgSpeed := 0.0
		count := 0
		for _, comp := range comps {
			if !comp.BucketOnly {
				avgSpeed += comp.Speedup
				count++
			}
		}

		if count > 0 {
			avgSpeed /= float64(count)
			status := "✓"
			if avgSpeed < 1.0 {
				status = "✗"
			}
			sb.WriteString(fmt.Sprintf("- %s **%s**: %.2fx average speedup %s\n",
				status, category, avgSpeed, status))
		} else {
			sb.WriteString(fmt.Sprintf("- **%s**: container-only benchmarks\n", category))
		}
	}

	sb.WriteString("\n")

	// Notes
	sb.WriteString("## Notes\n\n")
	sb.WriteString("- **Speedup > 1.0**: the container is faster ✓\n")
	sb.WriteString("- **Speedup < 1.0**: the slice baseline is faster ✗\n")
	sb.WriteString("- **Memory comparison**: Lower is better\n")
	sb.WriteString("- **Allocations**: Fewer is better\n")
	sb.WriteString("- **Container-only**: No meaningful slice equivalent\n")

	return sb.String()
}

var categoryOrder = []string{"Insertion", "Erasure", "Traversal", "Container Features", "Other"}

func categorizeOperations(comparisons []ComparisonResult) map[string][]ComparisonResult {
	categories := make(map[string][]ComparisonResult)

	for _, comp := range comparisons {
		op := strings.ToLower(comp.Operation)

		var category string
		switch {
		case comp.BucketOnly:
			category = "Container Features"
		case strings.Contains(op, "insert") || strings.Contains(op, "churn"):
			category = "Insertion"
		case strings.Contains(op, "erase") || strings.Contains(op, "clear") ||
			strings.Contains(op, "shrink"):
			category = "Erasure"
		case strings.Contains(op, "iterate") || strings.Contains(op, "range") ||
			strings.Contains(op, "advance"):
			category = "Traversal"
		default:
			category = "Other"
		}
		categories[category] = append(categories[category], comp)
	}

	return categories
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
