package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/bucketkit/cmd/bucketexplorer/logger"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// If help is showing, handle help keys
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
				return m, nil
			}
			// Ignore other keys when help is showing
			return m, nil
		}

		// Global keys
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Help) {
			m.showHelp = true
			return m, nil
		}

		// A load error leaves only quit and help usable
		if m.err != nil {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Forward):
			return m.handleForward()

		case key.Matches(msg, m.keys.Back):
			return m.handleBack()

		case key.Matches(msg, m.keys.Home):
			if m.step == 0 {
				return m.notice("Already at start of script")
			}
			if err := m.rebuild(0); err != nil {
				return m.notice(fmt.Sprintf("Script error: %v", err))
			}
			return m, nil

		case key.Matches(msg, m.keys.End):
			if m.step >= len(m.ops) {
				return m.notice("Already at end of script")
			}
			for m.step < len(m.ops) {
				if err := m.stepForward(); err != nil {
					return m.notice(fmt.Sprintf("Script error: %v", err))
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logger.Debug("window resized", "width", m.width, "height", m.height)
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleForward() (tea.Model, tea.Cmd) {
	if m.step >= len(m.ops) {
		return m.notice("Already at end of script")
	}
	if err := m.stepForward(); err != nil {
		logger.Warn("operation failed", "step", m.step, "error", err)
		return m.notice(fmt.Sprintf("Script error: %v", err))
	}
	return m, nil
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	if m.step == 0 {
		return m.notice("Already at start of script")
	}
	if err := m.rebuild(m.step - 1); err != nil {
		return m.notice(fmt.Sprintf("Script error: %v", err))
	}
	return m, nil
}

// notice sets a transient status message.
func (m Model) notice(text string) (tea.Model, tea.Cmd) {
	m.statusMessage = text
	return m, clearStatusAfter(2 * time.Second)
}
