package main

import (
	"strings"
	"testing"
)

func TestVerifyCommand(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		wantJSON    bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:   "verify clean script",
			script: "insert a\ninsert b\ninsert c\nerase 0\nshrink\nclear\n",
			wantContain: []string{
				"6 operation(s) verified",
				"✓ VALID",
			},
		},
		{
			name:    "verify failing script",
			script:  "insert a\nerase 3\n",
			wantErr: true,
			wantContain: []string{
				"1 of 2 operation(s) verified",
				"✗ INVALID",
			},
		},
		{
			name:        "verify clean script as JSON",
			script:      "insert a\nerase 0\n",
			wantJSON:    true,
			wantContain: []string{`"valid": true`, `"verified": 2`},
		},
		{
			name:        "verify failing script as JSON",
			script:      "erase 0\n",
			wantJSON:    true,
			wantErr:     true,
			wantContain: []string{`"valid": false`, `"verified": 0`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			noColor = true
			verifyCapacity = 2
			verifyEncoding = "UTF-8"

			args := []string{writeScript(t, tt.script)}

			output, err := captureOutput(t, func() error {
				return runVerify(args)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runVerify() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestVerifyCommandVerbose(t *testing.T) {
	quiet = false
	verbose = true
	jsonOut = false
	noColor = true
	verifyCapacity = 2
	verifyEncoding = "UTF-8"

	args := []string{writeScript(t, "insert a\ninsert b\n")}

	output, err := captureOutput(t, func() error {
		return runVerify(args)
	})
	if err != nil {
		t.Fatalf("runVerify() error = %v", err)
	}

	for _, want := range []string{"line   1: insert ✓", "line   2: insert ✓"} {
		if !strings.Contains(output, want) {
			t.Errorf("verbose output missing %q\nGot: %s", want, output)
		}
	}
}
