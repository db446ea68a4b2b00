package keystream

import (
	"github.com/rivo/uniseg"
)

// GraphemeJoiner regroups the chunk stream of a session into grapheme
// clusters. The session delivers a combining character as its own chunk
// since it is a complete codepoint; a joiner holds it back and delivers
// "e" followed by a combining acute accent as one cluster instead.
//
// A cluster is only known to be complete once the input that follows it
// arrives, so the most recent cluster stays pending until then. Call Flush
// after the session has stopped to deliver it. Feed is called from the
// sessions read goroutine; Flush must not run concurrently with it.
type GraphemeJoiner struct {
	deliver Listener
	pending string
}

// NewGraphemeJoiner creates a joiner delivering clusters to the given
// listener. Register its Feed method with the session.
func NewGraphemeJoiner(deliver Listener) *GraphemeJoiner {
	return &GraphemeJoiner{deliver: deliver}
}

// Feed accepts one decoded chunk and delivers all clusters whose boundary
// is confirmed by it.
func (self *GraphemeJoiner) Feed(chunk string) {
	self.pending += chunk
	state := -1
	rest := self.pending
	for {
		cluster, tail, _, nextState := uniseg.StepString(rest, state)
		if len(tail) == 0 {
			// The last cluster could still grow with the next chunk.
			self.pending = rest
			return
		}
		self.deliver(cluster)
		state = nextState
		rest = tail
	}
}

// Flush delivers the pending cluster, if any.
func (self *GraphemeJoiner) Flush() {
	if len(self.pending) != 0 {
		self.deliver(self.pending)
		self.pending = ""
	}
}
