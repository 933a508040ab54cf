package tui

import "strings"

// Lines the chrome around the tree pane always occupies: control panel
// title and rows, two separators, and the command line.
const chromeLines = 1 + controlRows + 2 + 1

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderControlPanel())
	b.WriteString(RenderSeparator(m.width))
	b.WriteString("\n")

	treeLines := m.height - chromeLines
	if m.height == 0 {
		// No size report yet; render something sensible.
		treeLines = 20
	}
	b.WriteString(m.renderTree(treeLines))

	b.WriteString(RenderSeparator(m.width))
	b.WriteString("\n")
	b.WriteString(RenderCommandLine(m.commandInput, m.focus == FocusCommand, m.message))

	return b.String()
}
