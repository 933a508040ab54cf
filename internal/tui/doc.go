// Package tui implements the terminal user interface using Bubble Tea.
//
// # Architecture
//
// The TUI operates as a deterministic state machine. The Model struct
// holds all application state, and the Update method handles all state
// transitions in response to messages.
//
// # Panes
//
// Three panes stack vertically:
//   - Control panel: server, client and binary rows for the managed
//     rc daemon
//   - Directory tree: lazily loaded filesystem view
//   - Command line: ex-style commands (:q, :serve, :cd, :map, :unmap)
//
// Tab cycles focus between the control panel and the tree; ":" jumps
// to the command line. Outside command mode every key first passes
// through the keymap, so sequences like ZZ can be remapped to other
// keys. Replayed keys skip the keymap to keep remaps from recursing.
//
// # Async Command Pattern
//
// No blocking I/O in the UI. Operations return tea.Cmd that execute
// async:
//
//	locateBinary()    → binaryLocatedMsg
//	startServer()     → serverStartFailedMsg (events carry success)
//	pingClient()      → clientResultMsg
//	waitServerEvent() → serverEventMsg
//	waitDirChange()   → dirChangedMsg
//
// The two wait commands re-arm themselves each time a message arrives,
// draining the server's event channel and the filesystem watcher.
//
// # Key Files
//
//   - tui.go: Model definition, Update, key dispatch, async commands
//   - command.go: command line handling and execution
//   - control.go: control panel rendering
//   - tree.go: directory tree rendering
//   - view.go: pane composition
//   - styles.go: Lipgloss styling
package tui
