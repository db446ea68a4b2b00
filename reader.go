package keystream

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/muesli/cancelreader"
)

// readLoop runs on the sessions goroutine. It reads one byte at a time,
// accumulates bytes until they form valid UTF-8 and fans each complete chunk
// out to the listeners. A single ASCII byte is already valid on its own, so
// plain typing is delivered per keypress; multi byte sequences are held back
// until their last byte arrives. The loop stops permanently on the
// Terminator byte, on end of stream, or when the read is cancelled.
func (self *Session) readLoop() error {
	buffer := []byte{}
	one := make([]byte, 1)
	stalled := false
	for {
		if _, err := io.ReadFull(self.reads, one); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, cancelreader.ErrCanceled) {
				return nil
			}
			return err
		}
		if one[0] == Terminator {
			return nil
		}
		buffer = append(buffer, one[0])
		if !utf8.Valid(buffer) {
			// An incomplete sequence just needs more bytes. A complete
			// but invalid one will never decode no matter what follows;
			// no chunk is emitted for it, only the hook fires.
			if utf8.FullRune(buffer) && !stalled {
				stalled = true
				if self.onStall != nil {
					self.onStall(append([]byte{}, buffer...))
				}
			}
			continue
		}
		chunk := string(buffer)
		buffer = buffer[:0]
		stalled = false
		for _, listener := range self.snapshot() {
			listener(chunk)
		}
	}
}
