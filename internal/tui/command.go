package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bonilindsley/rcpilot/internal/keymap"
)

// handleCommandKey processes keys while the command line is focused.
func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Shutdown()
		return m, tea.Quit

	case "esc":
		m.focus = m.prevFocus
		m.commandInput.Blur()
		return m, nil

	case "enter":
		text := m.commandInput.Value()
		m.focus = m.prevFocus
		m.commandInput.Blur()
		next, cmd := m.executeCommand(text)
		return next, cmd
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

// executeCommand runs one ex-style command entered on the command line.
func (m Model) executeCommand(text string) (Model, tea.Cmd) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return m, nil
	}

	switch fields[0] {
	case "q":
		m.Shutdown()
		return m, tea.Quit

	case "serve":
		return m.toggleServer()

	case "cd":
		if len(fields) != 2 {
			m.message = "usage: cd <path>"
			return m, nil
		}
		return m.changeRoot(fields[1])

	case "map":
		if len(fields) != 3 {
			m.message = "usage: map <keys> <keys>"
			return m, nil
		}
		m.message = bindRemap(m.keys, fields[1], fields[2])
		return m, nil

	case "unmap":
		if len(fields) != 2 {
			m.message = "usage: unmap <keys>"
			return m, nil
		}
		source, err := keymap.ParseSequence(fields[1])
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		if err := m.keys.Unbind(source); err != nil {
			m.message = err.Error()
		}
		return m, nil
	}

	m.message = "unknown command: " + fields[0]
	return m, nil
}

// bindRemap parses and installs one remap, returning a message for the
// command line ("" on success).
func bindRemap(keys *keymap.Map, rawSource, rawTarget string) string {
	source, err := keymap.ParseSequence(rawSource)
	if err != nil {
		return err.Error()
	}
	target, err := keymap.ParseSequence(rawTarget)
	if err != nil {
		return err.Error()
	}
	if err := keys.Bind(source, target); err != nil {
		return err.Error()
	}
	return ""
}

// changeRoot re-roots the directory tree, dropping watches on the old
// tree first.
func (m Model) changeRoot(path string) (Model, tea.Cmd) {
	if m.watcher != nil {
		for _, dir := range m.tree.ExpandedDirs() {
			m.watcher.Unwatch(dir)
		}
	}
	if err := m.tree.Reroot(path); err != nil {
		m.message = err.Error()
	}
	return m, nil
}

// RenderCommandLine renders the bottom line: the command input while
// focused, otherwise the last message or the help line.
func RenderCommandLine(input textinput.Model, focused bool, message string) string {
	if focused {
		return input.View()
	}
	if message != "" {
		return ErrorStyle.Render(message)
	}
	return HelpStyle.Render("j/k: Move  enter: Activate  tab: Pane  :: Command  q: Quit")
}
