package scroll

import "github.com/five82/sermon/internal/classify"

// Panes pairs the main pane with the diagnostic pane fed from the same stream.
type Panes struct {
	Main *Buffer
	Diag *Buffer
}

// NewPanes creates both panes with the same line cap.
func NewPanes(limit int) *Panes {
	return &Panes{Main: New(limit), Diag: New(limit)}
}

// Route is the single fan-out point: every line goes to Main, and warning or
// error lines also go to Diag, preserving arrival order in both.
func (p *Panes) Route(line classify.Line) {
	p.Main.Append(line)
	if line.Kind.Diagnostic() {
		p.Diag.Append(line)
	}
}

// RouteAll routes a batch of lines in order.
func (p *Panes) RouteAll(lines []classify.Line) {
	for _, line := range lines {
		p.Route(line)
	}
}
