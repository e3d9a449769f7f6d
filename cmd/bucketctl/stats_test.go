package main

import (
	"testing"
)

func TestStatsCommand(t *testing.T) {
	script := "insert a\ninsert b\ninsert c\nerase 1\n"

	tests := []struct {
		name        string
		perBlock    bool
		wantJSON    bool
		wantContain []string
	}{
		{
			name: "stats text report",
			wantContain: []string{
				"Elements: 2",
				"Blocks: 2 (capacity 2 each)",
				"Total Capacity: 4",
				"Occupancy: 50.0%",
				"Full: 0",
				"Incomplete: 2",
				"Reservoir: 1",
				"Never Used: 1",
				"Next ID: 5",
			},
		},
		{
			name:     "stats per-block breakdown",
			perBlock: true,
			wantContain: []string{
				"Per-Block Breakdown:",
				"block 0 (id 0, incomplete): 1 active, 1 reservoir, 0 never-used",
				"block 1 (id 3, incomplete): 1 active, 0 reservoir, 1 never-used",
			},
		},
		{
			name:     "stats as JSON",
			wantJSON: true,
			wantContain: []string{
				`"Size": 2`,
				`"Capacity": 4`,
				`"NextID": 5`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			noColor = false
			statsCapacity = 2
			statsEncoding = "UTF-8"
			statsPerBlock = tt.perBlock

			args := []string{writeScript(t, script)}

			output, err := captureOutput(t, func() error {
				return runStats(args)
			})
			if err != nil {
				t.Fatalf("runStats() error = %v", err)
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestStatsCommandMissingScript(t *testing.T) {
	quiet = true
	jsonOut = false
	statsCapacity = 2
	statsEncoding = "UTF-8"
	statsPerBlock = false

	_, err := captureOutput(t, func() error {
		return runStats([]string{"does-not-exist.ops"})
	})
	if err == nil {
		t.Fatal("expected error for missing script file")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
