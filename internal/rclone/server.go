package rclone

import (
	"bufio"
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/bonilindsley/rcpilot/internal/log"
)

// State of the managed rc server process.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

// String returns a display label for the state.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "stopped"
	}
}

// readyBanner is printed to stderr by rclone rcd once it is serving.
const readyBanner = "NOTICE: Serving remote control on"

// Event is a state transition of the managed server.
type Event struct {
	State State
	// Warning is set when the server reached Running but its output
	// did not look like a compatible rcd.
	Warning string
	// Err is set when the transition was caused by a failure.
	Err error
}

// Server owns an `rclone rcd` subprocess. Start launches it and
// watches stderr for the serving banner; Stop kills it. Transitions
// are delivered on Events in order.
type Server struct {
	runner Runner
	binary string
	addr   string

	mu       sync.Mutex
	state    State
	proc     Process
	stopping bool

	events chan Event
}

// NewServer returns a stopped server manager for the given binary and
// rc address.
func NewServer(runner Runner, binary, addr string) *Server {
	return &Server{
		runner: runner,
		binary: binary,
		addr:   addr,
		events: make(chan Event, 16),
	}
}

// Events delivers state transitions. The TUI drains this channel.
func (s *Server) Events() <-chan Event {
	return s.events
}

// State returns the current server state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Addr returns the configured rc listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Start launches the rcd subprocess. It errors if the server is not
// currently stopped.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStopped {
		return eris.Errorf("server is %s, not stopped", s.state)
	}

	proc, err := s.runner.Start(ctx, s.binary, "rcd",
		"--rc-addr", s.addr, "--rc-no-auth")
	if err != nil {
		return eris.Wrap(err, "failed to start rclone rcd")
	}
	s.proc = proc
	s.state = StateStarting
	s.stopping = false
	s.emit(Event{State: StateStarting})

	go s.watch(proc)
	return nil
}

// Stop kills a starting or running server. Stopping a stopped server
// is a no-op.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStarting && s.state != StateRunning {
		return
	}
	s.state = StateStopping
	s.stopping = true
	s.emit(Event{State: StateStopping})
	if err := s.proc.Kill(); err != nil {
		logger := log.WithComponent("rclone.server")
		logger.Warn().Err(err).Msg("kill failed")
	}
}

// watch reads the subprocess's stderr until exit and reaps it.
func (s *Server) watch(proc Process) {
	logger := log.WithComponent("rclone.server")
	scanner := bufio.NewScanner(proc.Stderr())

	if scanner.Scan() {
		line := scanner.Text()
		logger.Info().Str("line", line).Msg("rcd output")

		s.mu.Lock()
		if s.state == StateStarting {
			s.state = StateRunning
			event := Event{State: StateRunning}
			if !strings.Contains(line, readyBanner) {
				event.Warning = "started but may be incompatible"
			}
			s.emit(event)
		}
		s.mu.Unlock()
	}

	// Keep draining so the subprocess never blocks on a full pipe.
	for scanner.Scan() {
		logger.Debug().Str("line", scanner.Text()).Msg("rcd output")
	}

	err := proc.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	wasStopping := s.stopping
	s.state = StateStopped
	s.stopping = false
	s.proc = nil

	event := Event{State: StateStopped}
	if err != nil && !wasStopping {
		event.Err = eris.Wrap(err, "rclone rcd exited")
	}
	s.emit(event)
}

// emit must be called with s.mu held so events stay ordered.
func (s *Server) emit(event Event) {
	s.events <- event
}
