//go:build unix

// Package termmode switches a terminal in and out of raw mode.
package termmode

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// State is a snapshot of a terminal's configuration. It stores every field
// the kernel reports so that restoring it reproduces the configuration at
// capture time exactly. The zero value is a valid empty snapshot, applying
// it is the callers responsibility to avoid.
type State struct {
	termios unix.Termios
}

// Current captures the configuration of the given terminal without
// modifying it.
func Current(fd int) (State, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return State{}, fmt.Errorf("get terminal attributes: %w", err)
	}
	return State{termios: *termios}, nil
}

// MakeRaw puts the terminal into raw mode: no echoing of input and no line
// buffering, bytes are delivered as they are typed. The returned State holds
// the configuration that was active before the change and must be given to
// Restore before the process exits, otherwise the terminal is left in raw
// mode for whoever uses it next.
func MakeRaw(fd int) (State, error) {
	state, err := Current(fd)
	if err != nil {
		return State{}, err
	}
	raw := state.termios
	raw.Lflag &^= unix.ECHO | unix.ICANON
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return State{}, fmt.Errorf("set terminal attributes: %w", err)
	}
	return state, nil
}

// Restore applies a previously captured State back to the terminal.
func Restore(fd int, state State) error {
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &state.termios); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}
	return nil
}
