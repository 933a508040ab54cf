package tui

import (
	"strings"

	"github.com/bonilindsley/rcpilot/internal/rclone"
)

// renderControlPanel renders the rc server control panel.
func (m Model) renderControlPanel() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("rclone rc"))
	b.WriteString("\n")

	rows := []string{
		m.serverRow(),
		m.clientRow(),
		m.binaryRow(),
	}
	for i, row := range rows {
		if m.focus == FocusControl && m.controlCur == i {
			b.WriteString(Cursor())
			b.WriteString(SelectedStyle.Render(row))
		} else {
			b.WriteString(NoCursor())
			b.WriteString(ItemStyle.Render(row))
		}
		b.WriteString(m.rowSuffix(i))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) serverRow() string {
	return "Server: " + m.serverState.String()
}

func (m Model) clientRow() string {
	if m.clientNote != "" {
		return "Client: " + m.clientNote
	}
	return "Client: ..."
}

func (m Model) binaryRow() string {
	switch {
	case m.locating:
		return "rclone path: locating..."
	case m.binaryErr != nil:
		return "rclone path: not found"
	default:
		row := "rclone path: " + truncatePath(m.binary.Path, m.width-20)
		if m.binary.Version != nil {
			row += " (v" + m.binary.Version.String() + ")"
		}
		return row
	}
}

// rowSuffix appends dimmed diagnostics after a row's main text.
func (m Model) rowSuffix(row int) string {
	switch row {
	case rowServer:
		var parts []string
		if m.serverState == rclone.StateStarting || m.serverState == rclone.StateStopping {
			parts = append(parts, m.spinner.View())
		}
		if m.serverNote != "" {
			parts = append(parts, WarningStyle.Render(m.serverNote))
		}
		if len(parts) == 0 {
			return ""
		}
		return " " + strings.Join(parts, " ")

	case rowBinary:
		if !m.locating && m.binaryErr == nil && !m.binary.Supported() {
			return " " + WarningStyle.Render("older than v"+rclone.MinVersion.String())
		}
	}
	return ""
}
