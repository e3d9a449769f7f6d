package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshuapare/bucketkit/bucket"
)

// Layout constants
const (
	SidebarWidth = 28 // Width reserved for the stats sidebar
	SlotsPerRow  = 16 // Slot cells per grid row
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	// If help overlay is showing, render it
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.renderHeader()
	content := m.renderContent()
	status := m.renderStatus()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		status,
	)
}

// renderHeader renders the header with the script name and last operation
func (m Model) renderHeader() string {
	title := "Bucket Storage Explorer"
	script := fmt.Sprintf("Script: %s", m.scriptPath)

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render(title),
		lipgloss.NewStyle().Render("  "),
		pathStyle.Render(script),
	)

	if m.lastOp != "" {
		header = lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			pathStyle.Render("Last: "+m.lastOp),
		)
	}

	return header
}

// renderContent renders the block grid pane and the stats sidebar
func (m Model) renderContent() string {
	blocksWidth := max(m.width-SidebarWidth-6, 24)
	paneHeight := max(m.height-8, 5)

	blocksBox := paneStyle.
		Width(blocksWidth).
		Height(paneHeight).
		Render(m.renderBlocks(blocksWidth))

	sidebarBox := paneStyle.
		Width(SidebarWidth).
		Height(paneHeight).
		Render(m.renderSidebar())

	return lipgloss.JoinHorizontal(lipgloss.Top, blocksBox, sidebarBox)
}

// renderBlocks renders every block as a slot grid: active slots show
// their position in the block's chain, reservoir slots show ~, and
// never-used slots show a dot.
func (m Model) renderBlocks(width int) string {
	snaps := m.s.Snapshot()
	if len(snaps) == 0 {
		return emptyStyle.Render("(empty container)")
	}

	// Iteration visits blocks in creation order, the same order
	// Snapshot reports them, so the value stream splits into
	// per-block runs by block size.
	vals := make([]string, 0, m.s.Size())
	m.s.Range(func(p *string) bool {
		vals = append(vals, *p)
		return true
	})

	sections := make([]string, 0, len(snaps))
	off := 0

	for pos, snap := range snaps {
		state := "incomplete"
		if snap.Size == m.capacity {
			state = "full"
		}
		title := blockTitleStyle.Render(fmt.Sprintf("block %d", pos)) +
			fmt.Sprintf(" (id %d, %s) %d/%d", snap.ID, state, snap.Size, m.capacity)

		// Position of each active slot along the chain
		ord := make(map[int]int, len(snap.Active))
		for i, slot := range snap.Active {
			ord[slot] = i + 1
		}

		var grid strings.Builder
		for slot, st := range snap.Slots {
			if slot > 0 && slot%SlotsPerRow == 0 {
				grid.WriteString("\n")
			}
			switch st {
			case bucket.SlotActive:
				grid.WriteString(activeSlotStyle.Render(fmt.Sprintf(" %2d ", ord[slot])))
			case bucket.SlotReservoir:
				grid.WriteString(reservoirSlotStyle.Render("  ~ "))
			default:
				grid.WriteString(neverUsedSlotStyle.Render("  · "))
			}
		}

		blockVals := vals[off : off+snap.Size]
		off += snap.Size

		values := emptyStyle.Render("(no elements)")
		if len(blockVals) > 0 {
			values = valuesStyle.Render(truncate(strings.Join(blockVals, " "), max(width-4, 4)))
		}

		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, title, grid.String(), values))
	}

	return strings.Join(sections, "\n\n")
}

// renderSidebar renders live statistics, the upcoming operation, and a legend
func (m Model) renderSidebar() string {
	st := m.s.Stats()

	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(sidebarLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString(sidebarTitleStyle.Render("Statistics"))
	b.WriteString("\n\n")
	line("Elements", fmt.Sprintf("%d", st.Size))
	line("Blocks", fmt.Sprintf("%d", st.Blocks))
	line("Capacity", fmt.Sprintf("%d", st.Capacity))
	line("Occupancy", fmt.Sprintf("%.1f%%", st.Occupancy))
	line("Full", fmt.Sprintf("%d", st.FullBlocks))
	line("Incomplete", fmt.Sprintf("%d", st.IncompleteBlocks))
	line("Reservoir", fmt.Sprintf("%d", st.ReservoirSlots))
	line("Never used", fmt.Sprintf("%d", st.NeverUsedSlots))
	line("Next id", fmt.Sprintf("%d", st.NextID))

	b.WriteString("\n")
	b.WriteString(sidebarTitleStyle.Render("Next Op"))
	b.WriteString("\n\n")
	if m.step < len(m.ops) {
		b.WriteString(valuesStyle.Render(truncate(describeOp(m.ops[m.step]), SidebarWidth-2)))
	} else {
		b.WriteString(emptyStyle.Render("(end of script)"))
	}
	b.WriteString("\n\n")

	b.WriteString(sidebarTitleStyle.Render("Legend"))
	b.WriteString("\n\n")
	b.WriteString(activeSlotStyle.Render("  n "))
	b.WriteString(" active slot\n")
	b.WriteString(reservoirSlotStyle.Render("  ~ "))
	b.WriteString(" reservoir slot\n")
	b.WriteString(neverUsedSlotStyle.Render("  · "))
	b.WriteString(" never used\n")

	return b.String()
}

// renderStatus renders the status bar
func (m Model) renderStatus() string {
	// Show status message if set (takes priority over normal help)
	if m.statusMessage != "" {
		return statusStyle.Width(m.width).Render(
			messageStyle.Render(m.statusMessage),
		)
	}

	var help strings.Builder
	help.WriteString(statusCountStyle.Render(fmt.Sprintf("Step %d/%d", m.step, len(m.ops))))
	help.WriteString(" │ ")
	help.WriteString(helpStyle.Render("→/l/space: Step"))
	help.WriteString(" │ ")
	help.WriteString(helpStyle.Render("←/h: Back"))
	help.WriteString(" │ ")
	help.WriteString(helpStyle.Render("g/G: Start/End"))
	help.WriteString(" │ ")
	help.WriteString(helpStyle.Render("?: Help"))
	help.WriteString(" │ ")
	help.WriteString(helpStyle.Render("q: Quit"))

	return statusStyle.Width(m.width).Render(help.String())
}

// renderHelpOverlay renders the full-screen help
func (m Model) renderHelpOverlay() string {
	var helpContent strings.Builder

	title := helpTitleStyle.Render("Keyboard Shortcuts")
	helpContent.WriteString(title)
	helpContent.WriteString("\n\n")

	// Key column width for alignment
	const keyWidth = 14

	// Stepping section
	helpContent.WriteString(modalTitleStyle.Render("Stepping"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("→/l/Space"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Apply the next operation"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("←/h"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Undo the last operation"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("Home or g"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Rewind to the empty container"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("End or G"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Run the rest of the script"))
	helpContent.WriteString("\n\n")

	// Display section
	helpContent.WriteString(modalTitleStyle.Render("Display"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("active"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Numbered cells follow the insertion chain"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("~"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Erased slot waiting for reuse"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("·"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Slot never occupied"))
	helpContent.WriteString("\n\n")

	// Other section
	helpContent.WriteString(modalTitleStyle.Render("Other"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("?"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Show this help"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render("q or Ctrl+C"))
	helpContent.WriteString("  ")
	helpContent.WriteString(helpDescStyle.Render("Quit"))
	helpContent.WriteString("\n\n")

	helpContent.WriteString(helpStyle.Render("Press Esc, ?, or q to close this help"))

	// Create bordered help box
	helpBox := modalStyle.
		Width(60).
		Render(helpContent.String())

	// Calculate centering
	helpHeight := lipgloss.Height(helpBox)
	helpWidth := lipgloss.Width(helpBox)

	verticalPadding := (m.height - helpHeight) / 2
	horizontalPadding := (m.width - helpWidth) / 2

	if verticalPadding < 0 {
		verticalPadding = 0
	}
	if horizontalPadding < 0 {
		horizontalPadding = 0
	}

	// Position the help box
	positioned := lipgloss.NewStyle().
		MarginTop(verticalPadding).
		MarginLeft(horizontalPadding).
		Render(helpBox)

	return positioned
}
