// Package rclone manages a local rclone installation: finding the
// binary, checking its version, running the remote-control daemon, and
// calling its HTTP API.
//
// # Key Types
//
//   - Binary: a resolved executable plus its parsed version
//   - Server: lifecycle of a managed `rclone rcd` subprocess
//   - Client: JSON-over-HTTP calls against a running rc server
//
// # Server Lifecycle
//
// Start launches `rclone rcd` and watches its stderr. The daemon
// announces readiness with a NOTICE line:
//
//	2026/01/02 03:04:05 NOTICE: Serving remote control on http://localhost:5572/
//
// A first stderr line without that banner still counts as running, but
// the transition carries a warning since the binary may predate the rc
// protocol this tool expects. Transitions flow through the Events
// channel in order: Starting, Running, Stopping, Stopped.
//
// # Testing
//
// All process execution goes through the Runner interface so tests can
// script a fake rclone without touching the real binary.
package rclone
