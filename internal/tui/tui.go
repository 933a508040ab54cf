package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"

	"github.com/bonilindsley/rcpilot/internal/config"
	"github.com/bonilindsley/rcpilot/internal/fstree"
	"github.com/bonilindsley/rcpilot/internal/keymap"
	"github.com/bonilindsley/rcpilot/internal/log"
	"github.com/bonilindsley/rcpilot/internal/rclone"
)

// Focus identifies the pane receiving key input
type Focus int

const (
	FocusControl Focus = iota
	FocusTree
	FocusCommand
)

// Control panel rows
const (
	rowServer = iota
	rowClient
	rowBinary
	controlRows
)

// Model is the main Bubbletea model
type Model struct {
	cfg     *config.Config
	runner  rclone.Runner
	server  *rclone.Server
	client  *rclone.Client
	tree    *fstree.Tree
	watcher *fstree.Watcher
	keys    *keymap.Map

	binary    rclone.Binary
	binaryErr error
	locating  bool

	focus      Focus
	prevFocus  Focus
	controlCur int

	serverState rclone.State
	serverNote  string
	clientNote  string

	commandInput textinput.Model
	spinner      spinner.Model
	message      string
	width        int
	height       int
}

// Messages for async operations
type binaryLocatedMsg struct {
	binary rclone.Binary
	err    error
}
type serverEventMsg rclone.Event
type serverStartFailedMsg struct{ err error }
type clientResultMsg struct {
	desc string
	err  error
}
type dirChangedMsg string
type watchClosedMsg struct{}

// New creates a Model rooted at the configured directory.
func New(cfg *config.Config) (Model, error) {
	tree, err := fstree.New(cfg.RootDir)
	if err != nil {
		return Model{}, err
	}

	keys := keymap.New()
	// ZZ quits, vim-style.
	if err := keys.Bind(keymap.Sequence{"Z", "Z"}, keymap.Sequence{"q"}); err != nil {
		return Model{}, err
	}
	for source, target := range cfg.Remaps {
		from, err := keymap.ParseSequence(source)
		if err != nil {
			return Model{}, eris.Wrapf(err, "bad remap source %q", source)
		}
		to, err := keymap.ParseSequence(target)
		if err != nil {
			return Model{}, eris.Wrapf(err, "bad remap target %q", target)
		}
		if err := keys.Bind(from, to); err != nil {
			return Model{}, err
		}
	}

	watcher, err := fstree.NewWatcher()
	if err != nil {
		// Degrade to manual refreshes.
		logger := log.WithComponent("tui")
		logger.Warn().Err(err).Msg("filesystem watching disabled")
		watcher = nil
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	ti := textinput.New()
	ti.Prompt = ":"
	ti.CharLimit = 200

	return Model{
		cfg:          cfg,
		runner:       rclone.NewRunner(),
		tree:         tree,
		watcher:      watcher,
		keys:         keys,
		locating:     true,
		focus:        FocusControl,
		spinner:      s,
		commandInput: ti,
	}, nil
}

// Shutdown releases resources owned by the model. The caller runs it
// after the program exits.
func (m Model) Shutdown() {
	if m.server != nil {
		m.server.Stop()
	}
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.locateBinary(), m.waitDirChange())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.serverState != rclone.StateStarting && m.serverState != rclone.StateStopping {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case binaryLocatedMsg:
		return m.handleBinaryLocated(msg)

	case serverEventMsg:
		return m.handleServerEvent(rclone.Event(msg))

	case serverStartFailedMsg:
		m.serverNote = msg.err.Error()
		return m, nil

	case clientResultMsg:
		if msg.err != nil {
			m.clientNote = msg.err.Error()
		} else {
			m.clientNote = msg.desc
		}
		return m, nil

	case dirChangedMsg:
		if err := m.tree.Reload(string(msg)); err != nil {
			logger := log.WithComponent("tui")
			logger.Warn().Err(err).Msg("reload failed")
		}
		return m, m.waitDirChange()

	case watchClosedMsg:
		return m, nil
	}

	if m.focus == FocusCommand {
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleBinaryLocated(msg binaryLocatedMsg) (tea.Model, tea.Cmd) {
	m.locating = false
	m.binary = msg.binary
	m.binaryErr = msg.err
	if msg.err != nil {
		return m, nil
	}
	if m.server != nil {
		// Re-locating must not replace a server that may still own
		// a subprocess.
		return m, nil
	}

	m.server = rclone.NewServer(m.runner, m.binary.Path, m.cfg.RCAddr)
	m.client = rclone.NewClient(m.cfg.RCAddr)
	return m, m.waitServerEvent()
}

func (m Model) handleServerEvent(event rclone.Event) (tea.Model, tea.Cmd) {
	m.serverState = event.State
	m.serverNote = ""
	switch {
	case event.Err != nil:
		m.serverNote = event.Err.Error()
	case event.Warning != "":
		m.serverNote = event.Warning
	}
	if event.State != rclone.StateRunning {
		m.clientNote = ""
	}

	cmds := []tea.Cmd{m.waitServerEvent()}
	if event.State == rclone.StateStarting {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes keyboard input: command mode gets raw keys, other
// panes resolve remaps first.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == FocusCommand {
		return m.handleCommandKey(msg)
	}

	key := msg.String()
	mapped, handled := m.keys.Press(key)
	if mapped != nil {
		return m.replay(mapped)
	}
	if handled {
		// Partial sequence pending.
		return m, nil
	}
	next, cmd := m.dispatchKey(key)
	return next, cmd
}

// replay feeds a remapped sequence through normal dispatch. Replayed
// keys deliberately bypass the key map, so maps cannot recurse.
func (m Model) replay(mapped keymap.Sequence) (tea.Model, tea.Cmd) {
	current := m
	var cmds []tea.Cmd
	for _, key := range mapped {
		next, cmd := current.dispatchKey(key)
		current = next
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return current, tea.Batch(cmds...)
}

func (m Model) dispatchKey(key string) (Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.Shutdown()
		return m, tea.Quit

	case ":":
		m.prevFocus = m.focus
		m.focus = FocusCommand
		m.message = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, textinput.Blink

	case "tab":
		if m.focus == FocusControl {
			m.focus = FocusTree
		} else {
			m.focus = FocusControl
		}
		return m, nil

	case "up", "k":
		if m.focus == FocusControl {
			if m.controlCur > 0 {
				m.controlCur--
			}
		} else {
			m.tree.MoveUp()
		}
		return m, nil

	case "down", "j":
		if m.focus == FocusControl {
			if m.controlCur < controlRows-1 {
				m.controlCur++
			}
		} else {
			m.tree.MoveDown()
		}
		return m, nil

	case "enter", " ":
		return m.activate()
	}
	return m, nil
}

// activate acts on the item under the cursor of the focused pane.
func (m Model) activate() (Model, tea.Cmd) {
	if m.focus == FocusTree {
		return m.activateTreeNode()
	}

	switch m.controlCur {
	case rowServer:
		return m.toggleServer()

	case rowClient:
		if m.server == nil || m.serverState != rclone.StateRunning {
			m.message = "rc server is not running"
			return m, nil
		}
		m.clientNote = "calling..."
		return m, m.pingClient()

	case rowBinary:
		if m.locating {
			return m, nil
		}
		m.locating = true
		return m, m.locateBinary()
	}
	return m, nil
}

func (m Model) activateTreeNode() (Model, tea.Cmd) {
	node := m.tree.CursorNode()
	if err := m.tree.Activate(); err != nil {
		m.message = err.Error()
		return m, nil
	}
	if m.watcher != nil && node.IsDir {
		if node.Expanded {
			if err := m.watcher.Watch(node.Path); err != nil {
				logger := log.WithComponent("tui")
				logger.Warn().Err(err).Msg("watch failed")
			}
		} else {
			m.watcher.Unwatch(node.Path)
		}
	}
	return m, nil
}

// toggleServer starts a stopped server and stops a starting or running
// one, mirroring repeated activation of the server row.
func (m Model) toggleServer() (Model, tea.Cmd) {
	if m.server == nil {
		if m.locating {
			m.message = "still locating rclone binary"
			return m, nil
		}
		// A missing binary is re-probed on every activation.
		m.message = "cannot find rclone binary"
		m.locating = true
		return m, m.locateBinary()
	}

	switch m.serverState {
	case rclone.StateStopped:
		return m, m.startServer()
	case rclone.StateStarting, rclone.StateRunning:
		m.server.Stop()
	}
	return m, nil
}

// Async commands

func (m Model) locateBinary() tea.Cmd {
	runner := m.runner
	explicit := m.cfg.RcloneBinary
	return func() tea.Msg {
		binary, err := rclone.Locate(context.Background(), runner, explicit)
		return binaryLocatedMsg{binary: binary, err: err}
	}
}

func (m Model) startServer() tea.Cmd {
	server := m.server
	return func() tea.Msg {
		if err := server.Start(context.Background()); err != nil {
			return serverStartFailedMsg{err: err}
		}
		return nil
	}
}

func (m Model) pingClient() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		desc, err := client.Describe(context.Background())
		return clientResultMsg{desc: desc, err: err}
	}
}

func (m Model) waitServerEvent() tea.Cmd {
	server := m.server
	return func() tea.Msg {
		event, ok := <-server.Events()
		if !ok {
			return nil
		}
		return serverEventMsg(event)
	}
}

func (m Model) waitDirChange() tea.Cmd {
	watcher := m.watcher
	if watcher == nil {
		return nil
	}
	return func() tea.Msg {
		dir, ok := <-watcher.Changes()
		if !ok {
			return watchClosedMsg{}
		}
		return dirChangedMsg(dir)
	}
}
