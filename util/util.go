// Package util contains common utility functions. This is not part of the common
// package as that is imported without namespacing.
package util

import (
	"github.com/mattn/go-runewidth"
)

// Contains returns trues if arr contains value.
func Contains[T comparable](arr []T, value T) bool {
	for _, elem := range arr {
		if elem == value {
			return true
		}
	}
	return false
}

// Filter retains all values of arr for which pred returns true.
func Filter[T any](arr []T, pred func(T) bool) []T {
	last := len(arr) - 1
	for i := last; i >= 0; i -= 1 {
		if !pred(arr[i]) {
			arr[i] = arr[last]
			last -= 1
		}
	}
	return arr[:last+1]
}

// FixPrintfPadding returns the correct padding amount to pad the given word
// by the wanted number of cells, handling codepoints with multiple bytes and
// fullwidth characters.
func FixPrintfPadding(str string, padding int) int {
	byteCount := len(str)
	width := runewidth.StringWidth(str)
	return padding - byteCount + width
}
