//go:build unix

package termmode

import (
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// openTty opens a pseudo-terminal pair and returns the file descriptor of
// its terminal end.
func openTty(t *testing.T) int {
	ptm, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pseudo-terminal available: %s", err)
	}
	t.Cleanup(func() {
		ptm.Close()
		tty.Close()
	})
	return int(tty.Fd())
}

func TestMakeRawClearsEchoAndCanonical(t *testing.T) {
	fd := openTty(t)
	original, err := MakeRaw(fd)
	if err != nil {
		t.Fatalf("MakeRaw: %s", err)
	}
	now, err := Current(fd)
	if err != nil {
		t.Fatalf("Current: %s", err)
	}
	if now.termios.Lflag&unix.ECHO != 0 {
		t.Error("echo is still enabled")
	}
	if now.termios.Lflag&unix.ICANON != 0 {
		t.Error("canonical mode is still enabled")
	}
	// Nothing besides those two flags may change.
	want := original.termios
	want.Lflag &^= unix.ECHO | unix.ICANON
	if now.termios != want {
		t.Errorf("unrelated fields changed:\n got %+v\nwant %+v", now.termios, want)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	fd := openTty(t)
	original, err := Current(fd)
	if err != nil {
		t.Fatalf("Current: %s", err)
	}
	if _, err := MakeRaw(fd); err != nil {
		t.Fatalf("MakeRaw: %s", err)
	}
	if err := Restore(fd, original); err != nil {
		t.Fatalf("Restore: %s", err)
	}
	restored, err := Current(fd)
	if err != nil {
		t.Fatalf("Current: %s", err)
	}
	if restored.termios != original.termios {
		t.Errorf(
			"restored configuration differs from capture:\n got %+v\nwant %+v",
			restored.termios, original.termios,
		)
	}
}
