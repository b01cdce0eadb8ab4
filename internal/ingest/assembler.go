package ingest

import (
	"bytes"
	"strings"
)

// MaxLineBytes bounds how long a pending partial line may grow before it is
// emitted as a line of its own.
const MaxLineBytes = 64 * 1024

// Assembler turns arbitrary read chunks into complete lines. Bytes after the
// last newline are held until the next chunk arrives.
type Assembler struct {
	partial []byte
}

// Feed appends chunk to any pending bytes and returns every completed line,
// without its terminator. A single trailing carriage return is dropped so CRLF
// devices read cleanly.
func (a *Assembler) Feed(chunk []byte) []string {
	var lines []string
	for len(chunk) > 0 {
		i := bytes.IndexByte(chunk, '\n')
		if i < 0 {
			a.partial = append(a.partial, chunk...)
			break
		}
		a.partial = append(a.partial, chunk[:i]...)
		lines = append(lines, a.take())
		chunk = chunk[i+1:]
	}
	if len(a.partial) >= MaxLineBytes {
		lines = append(lines, a.take())
	}
	return lines
}

// Flush returns the pending partial line, if any, and clears it.
func (a *Assembler) Flush() (string, bool) {
	if len(a.partial) == 0 {
		return "", false
	}
	return a.take(), true
}

// Pending returns the number of bytes waiting for a line terminator.
func (a *Assembler) Pending() int {
	return len(a.partial)
}

func (a *Assembler) take() string {
	text := toText(a.partial)
	a.partial = a.partial[:0]
	return text
}

// toText decodes device bytes best-effort: invalid UTF-8 becomes U+FFFD.
func toText(raw []byte) string {
	raw = bytes.TrimSuffix(raw, []byte{'\r'})
	return strings.ToValidUTF8(string(raw), "�")
}
