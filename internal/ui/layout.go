package ui

import "time"

// Layout constants.
const (
	// statusBarHeight is the single row below the panes.
	statusBarHeight = 1

	// borderRows is the top and bottom border of each pane box.
	borderRows = 2

	// borderCols is the left and right border of each pane box.
	borderCols = 2

	// lineNumberWidth is the gutter width when line numbers are on.
	lineNumberWidth = 9

	// minPaneRows keeps a box drawable on tiny terminals.
	minPaneRows = 3
)

// Timing constants.
const (
	// statusInterval is how often the stream status is re-read.
	statusInterval = time.Second

	// maxLineBatch bounds how many queued lines one message carries.
	maxLineBatch = 512
)
