package main

import (
	"testing"
)

func TestStressCommand(t *testing.T) {
	// Reset flags
	quiet = false
	verbose = false
	jsonOut = false
	noColor = true
	stressOps = 500
	stressSeed = 42
	stressCapacity = 4

	output, err := captureOutput(t, func() error {
		return runStress()
	})
	if err != nil {
		t.Fatalf("runStress() error = %v", err)
	}

	assertContains(t, output, []string{
		"Stress run complete (seed 42)",
		"Inserts:",
		"Erases:",
		"Shrinks:",
		"✓ VALID",
	})
}

func TestStressCommandJSON(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = true
	noColor = true
	stressOps = 200
	stressSeed = 7
	stressCapacity = 4

	output, err := captureOutput(t, func() error {
		return runStress()
	})
	if err != nil {
		t.Fatalf("runStress() error = %v", err)
	}

	assertJSON(t, output)
	assertContains(t, output, []string{`"seed": 7`, `"ops": 200`})
}

func TestStressCommandDeterministic(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = true
	noColor = true
	stressOps = 300
	stressSeed = 99
	stressCapacity = 4

	first, err := captureOutput(t, func() error {
		return runStress()
	})
	if err != nil {
		t.Fatalf("runStress() error = %v", err)
	}

	second, err := captureOutput(t, func() error {
		return runStress()
	})
	if err != nil {
		t.Fatalf("runStress() error = %v", err)
	}

	if first != second {
		t.Error("same seed produced different reports")
	}
}
