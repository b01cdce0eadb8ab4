// Package classify tags raw device lines as normal, warning or error.
package classify

import "strings"

// Kind is the severity assigned to a line.
type Kind int

const (
	Normal Kind = iota
	Warning
	Error
)

// Keyword sets, matched case-insensitively as substrings. Error keywords are
// checked first so a line carrying both classifies as Error.
var (
	errorKeywords   = []string{"err", "error"}
	warningKeywords = []string{"wrn", "warn"}
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "normal"
	}
}

// Diagnostic reports whether lines of this kind belong in the diagnostic pane.
func (k Kind) Diagnostic() bool {
	return k != Normal
}

// Line is a single classified line of device output.
type Line struct {
	Text string
	Kind Kind
}

// New classifies text and returns the resulting Line.
func New(text string) Line {
	return Line{Text: text, Kind: Classify(text)}
}

// Classify returns the kind of a line. Empty input is Normal.
func Classify(text string) Kind {
	if text == "" {
		return Normal
	}
	lower := strings.ToLower(text)
	if containsAny(lower, errorKeywords) {
		return Error
	}
	if containsAny(lower, warningKeywords) {
		return Warning
	}
	return Normal
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
