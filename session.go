// Package keystream delivers terminal input to listeners one keypress at a
// time. It switches the controlling terminal into raw mode, reads bytes from
// it on a background goroutine, assembles them into valid UTF-8 chunks and
// fans every chunk out to all registered listeners.
package keystream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	. "github.com/JaMo42/keystream/common"
	"github.com/JaMo42/keystream/termmode"
)

// Terminator is the byte that permanently stops a sessions read loop
// (end of transmission, Ctrl-D in a raw terminal).
const Terminator byte = 0x04

// ErrNotStarted is returned by End, Shutdown and Wait if raw mode was never
// entered. Calling Observe at least once is a precondition for all of them.
var ErrNotStarted = errors.New("keystream: raw mode was never entered")

// Listener receives one decoded chunk of input. Listeners are called from
// the sessions read goroutine, in registration order, one chunk at a time.
type Listener func(string)

// ModeGuard controls the raw mode of the terminal a session reads from.
type ModeGuard interface {
	// EnterRaw switches the terminal into raw mode, capturing the
	// configuration that was active before.
	EnterRaw() error
	// Restore switches the terminal back to the captured configuration.
	// Calling it before EnterRaw is an error.
	Restore() error
}

// terminalGuard is the ModeGuard for a real terminal file descriptor.
type terminalGuard struct {
	fd    int
	saved Optional[termmode.State]
}

// TerminalGuard creates a ModeGuard managing the terminal open on the given
// file descriptor.
func TerminalGuard(fd int) ModeGuard {
	return &terminalGuard{fd: fd}
}

func (self *terminalGuard) EnterRaw() error {
	if !term.IsTerminal(self.fd) {
		return fmt.Errorf("keystream: file descriptor %d is not a terminal", self.fd)
	}
	state, err := termmode.MakeRaw(self.fd)
	if err != nil {
		return err
	}
	self.saved = Some(state)
	return nil
}

func (self *terminalGuard) Restore() error {
	if !self.saved.IsSome() {
		return ErrNotStarted
	}
	return termmode.Restore(self.fd, self.saved.Unwrap())
}

// Session reads raw input from one terminal. A process normally has exactly
// one, accessed through the package level Observe and End, but sessions can
// also be created directly and passed around explicitly.
type Session struct {
	guard   ModeGuard
	input   io.Reader
	onStall func(pending []byte)

	mu        sync.Mutex
	started   bool
	listeners []Listener

	reads cancelreader.CancelReader
	group *errgroup.Group
}

// NewSession creates a session that reads from input and manages raw mode
// through guard. Raw mode is not entered until the first Observe call.
func NewSession(guard ModeGuard, input io.Reader) *Session {
	return &Session{
		guard: guard,
		input: input,
	}
}

// OnStall registers a diagnostic hook that is called once when the decode
// buffer turns into a byte sequence that can never become valid UTF-8. No
// chunks are delivered for such a sequence; this is the only way to notice.
// Must be called before the first Observe.
func (self *Session) OnStall(hook func(pending []byte)) {
	self.onStall = hook
}

// Observe registers listener. On the first call the session enters raw mode
// and starts its read goroutine; every registered listener then receives
// every chunk decoded from that point on. If entering raw mode fails the
// error is returned and nothing is registered.
func (self *Session) Observe(listener Listener) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if !self.started {
		if err := self.start(); err != nil {
			return err
		}
	}
	self.listeners = append(self.listeners, listener)
	return nil
}

// start enters raw mode and launches the read goroutine. Called with the
// mutex held, at most once per session.
func (self *Session) start() error {
	if err := self.guard.EnterRaw(); err != nil {
		return err
	}
	reads, err := cancelreader.NewReader(self.input)
	if err != nil {
		// Entering raw mode without reading would leave a silent dead
		// terminal, undo it.
		self.guard.Restore()
		return fmt.Errorf("keystream: %w", err)
	}
	self.reads = reads
	self.group = new(errgroup.Group)
	self.group.Go(self.readLoop)
	self.started = true
	return nil
}

// End restores the terminal to its pre raw mode configuration. It does not
// stop the read goroutine; the terminal mode and the read loop are
// independent resources. Returns ErrNotStarted if raw mode was never
// entered.
func (self *Session) End() error {
	if !self.running() {
		return ErrNotStarted
	}
	return self.guard.Restore()
}

// Wait blocks until the read goroutine has stopped, which happens when the
// input reports end of stream, the Terminator byte arrives, or the session
// is shut down.
func (self *Session) Wait() error {
	if !self.running() {
		return ErrNotStarted
	}
	return self.group.Wait()
}

// Shutdown cancels the blocking read, joins the read goroutine and restores
// the terminal mode. Cancellation requires the input to support it (real
// terminals and files do); for inputs that do not, Shutdown still joins a
// loop that has already stopped.
func (self *Session) Shutdown() error {
	if !self.running() {
		return ErrNotStarted
	}
	self.reads.Cancel()
	err := self.group.Wait()
	if restoreErr := self.guard.Restore(); err == nil {
		err = restoreErr
	}
	return err
}

func (self *Session) running() bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.started
}

// snapshot returns the current listener list for one fanout. Listeners
// registered while a chunk is being delivered receive only later chunks.
func (self *Session) snapshot() []Listener {
	self.mu.Lock()
	defer self.mu.Unlock()
	return slices.Clone(self.listeners)
}

var (
	defaultSession     *Session
	defaultSessionOnce sync.Once
)

// Observe registers listener with the process wide session, creating the
// session, entering raw mode and starting the read goroutine the first time
// it is called. May be called any number of times from any goroutine; raw
// mode is entered exactly once per process.
func Observe(listener Listener) error {
	defaultSessionOnce.Do(func() {
		defaultSession = NewSession(TerminalGuard(int(os.Stdin.Fd())), os.Stdin)
	})
	return defaultSession.Observe(listener)
}

// End restores the terminal mode of the process wide session. It must be
// called before process exit if Observe was ever called, otherwise the
// terminal stays in raw mode for the user after the program exits.
func End() error {
	if defaultSession == nil {
		return ErrNotStarted
	}
	return defaultSession.End()
}

// Wait blocks until the process wide sessions read goroutine has stopped.
func Wait() error {
	if defaultSession == nil {
		return ErrNotStarted
	}
	return defaultSession.Wait()
}
