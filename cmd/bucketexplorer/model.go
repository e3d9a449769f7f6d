package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/bucketkit/bucket"
	"github.com/joshuapare/bucketkit/internal/opscript"
)

// Model is the main application model
type Model struct {
	scriptPath string
	capacity   int
	ops        []opscript.Op
	keys       KeyMap

	s    *bucket.Storage[string]
	step int // operations applied so far

	width  int
	height int

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	// Rendering of the most recently applied operation
	lastOp string

	err error
}

// NewModel creates a new TUI model with the script loaded and an empty
// container ready for stepping.
func NewModel(scriptPath string, capacity int) Model {
	m := Model{
		scriptPath: scriptPath,
		capacity:   capacity,
		keys:       DefaultKeyMap(),
	}

	f, err := os.Open(scriptPath)
	if err != nil {
		m.err = err
		return m
	}
	defer f.Close()

	ops, err := opscript.Parse(f, nil)
	if err != nil {
		m.err = err
		return m
	}
	m.ops = ops

	s, err := bucket.NewWithBlockCapacity[string](capacity)
	if err != nil {
		m.err = err
		return m
	}
	m.s = s

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// stepForward applies the next operation to the live container.
func (m *Model) stepForward() error {
	op := m.ops[m.step]
	if _, err := opscript.Run(m.s, []opscript.Op{op}, &opscript.RunOptions{Validate: true}); err != nil {
		return err
	}
	m.step++
	m.lastOp = describeOp(op)
	return nil
}

// rebuild replays the first n operations into a fresh container. Used
// for backward stepping, since operations are not individually
// reversible.
func (m *Model) rebuild(n int) error {
	s, err := bucket.NewWithBlockCapacity[string](m.capacity)
	if err != nil {
		return err
	}
	if _, err := opscript.Run(s, m.ops[:n], nil); err != nil {
		return err
	}
	m.s = s
	m.step = n
	if n > 0 {
		m.lastOp = describeOp(m.ops[n-1])
	} else {
		m.lastOp = ""
	}
	return nil
}

// describeOp renders one operation for the header and sidebar.
func describeOp(op opscript.Op) string {
	switch op.Kind {
	case opscript.KindInsert:
		return fmt.Sprintf("line %d: insert %q", op.Line, op.Value)
	case opscript.KindErase:
		return fmt.Sprintf("line %d: erase %d", op.Line, op.Pos)
	default:
		return fmt.Sprintf("line %d: %s", op.Line, op.Kind)
	}
}

// Messages

type clearStatusMsg struct{}

// clearStatusAfter clears the status message after the given delay.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
