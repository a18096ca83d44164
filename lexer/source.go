package lexer

import (
	"io"
	"iter"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const readChunkSize = 4 * 1024

// Chunks adapts in-memory strings to the chunk sequence the lexer
// consumes.
func Chunks(chunks ...string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, chunk := range chunks {
			if !yield(chunk) {
				return
			}
		}
	}
}

// ReaderChunks reads a byte stream incrementally and yields it as text
// chunks. Input is decoded as UTF-8; a UTF-8, UTF-16LE, or UTF-16BE byte
// order mark overrides that. Chunks always end on a rune boundary so the
// lexer never sees a split character. A read error terminates the
// sequence after the bytes read so far.
func ReaderChunks(r io.Reader) iter.Seq[string] {
	return func(yield func(string) bool) {
		decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
		buf := make([]byte, readChunkSize)

		var carry []byte

		for {
			n, err := decoded.Read(buf)
			if n > 0 {
				data := append(carry, buf[:n]...)
				cut := runeBoundary(data)

				if cut > 0 && !yield(string(data[:cut])) {
					return
				}

				carry = append(carry[:0], data[cut:]...)
			}

			if err != nil {
				if len(carry) > 0 {
					yield(string(carry))
				}

				return
			}
		}
	}
}

// runeBoundary returns the length of the longest prefix of data that
// ends on a complete rune, so a trailing partial encoding can be carried
// into the next chunk.
func runeBoundary(data []byte) int {
	end := len(data)

	for i := end - 1; i >= 0 && end-i <= utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if r, size := utf8.DecodeRune(data[i:]); r == utf8.RuneError && size == 1 && !utf8.FullRune(data[i:]) {
				return i
			}

			break
		}
	}

	return end
}
