package tui

import (
	"strings"

	"github.com/bonilindsley/rcpilot/internal/fstree"
)

// renderTree renders the directory tree pane, windowed so the cursor
// stays on screen.
func (m Model) renderTree(maxLines int) string {
	visible := m.tree.Visible()
	cursor := m.tree.Cursor()

	if maxLines < 1 {
		maxLines = 1
	}
	start := 0
	if cursor >= maxLines {
		start = cursor - maxLines + 1
	}
	end := start + maxLines
	if end > len(visible) {
		end = len(visible)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		node := visible[i]
		line := strings.Repeat("  ", nodeDepth(node)) + nodeGlyph(node) + node.Label

		if m.focus == FocusTree && i == cursor {
			b.WriteString(Cursor())
			b.WriteString(SelectedStyle.Render(line))
		} else {
			b.WriteString(NoCursor())
			if node.IsDir {
				b.WriteString(ItemStyle.Render(line))
			} else {
				b.WriteString(DimmedStyle.Render(line))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func nodeDepth(node *fstree.Node) int {
	depth := 0
	for p := node.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

func nodeGlyph(node *fstree.Node) string {
	if !node.IsDir {
		return "  "
	}
	if node.Expanded {
		return "▾ "
	}
	return "▸ "
}
