package keystream

import (
	"testing"
)

func feedRunes(joiner *GraphemeJoiner, text string) {
	// The session delivers every complete codepoint as its own chunk.
	for _, r := range text {
		joiner.Feed(string(r))
	}
}

func TestGraphemeJoinerCombiningMark(t *testing.T) {
	delivered := []string{}
	joiner := NewGraphemeJoiner(func(cluster string) {
		delivered = append(delivered, cluster)
	})
	// "e" plus combining acute accent, then a plain letter that confirms
	// the cluster boundary.
	feedRunes(joiner, "éx")
	expectChunks(t, delivered, []string{"é"})
	joiner.Flush()
	expectChunks(t, delivered, []string{"é", "x"})
}

func TestGraphemeJoinerPlainText(t *testing.T) {
	delivered := []string{}
	joiner := NewGraphemeJoiner(func(cluster string) {
		delivered = append(delivered, cluster)
	})
	feedRunes(joiner, "Hi")
	expectChunks(t, delivered, []string{"H"})
	joiner.Flush()
	expectChunks(t, delivered, []string{"H", "i"})
}

func TestGraphemeJoinerFlushEmpty(t *testing.T) {
	calls := 0
	joiner := NewGraphemeJoiner(func(string) {
		calls += 1
	})
	joiner.Flush()
	if calls != 0 {
		t.Errorf("Flush on empty joiner delivered %d clusters", calls)
	}
}
