package keystream

// Typed views of a single input byte. These are a convenience layer for
// callers that work with raw bytes directly; the session itself always
// delivers decoded text and never uses them.

// Scalar returns the byte as a numeric scalar value.
func Scalar(b byte) uint32 {
	return uint32(b)
}

// Character returns the byte as a character.
func Character(b byte) rune {
	return rune(b)
}

// Raw returns the byte unchanged.
func Raw(b byte) byte {
	return b
}
