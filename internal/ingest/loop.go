// Package ingest reads the raw device stream, reassembles lines and hands
// classified lines to the UI over a channel.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/five82/sermon/internal/classify"
)

// ErrSourceClosed reports that the byte source reached end of stream.
var ErrSourceClosed = errors.New("source closed")

const defaultReadSize = 1024

// Recorder receives ingestion counters. state.Store implements it.
type Recorder interface {
	RecordRead(bytes, lines int)
}

// Loop moves bytes from Source to Out as classified lines.
type Loop struct {
	Source  io.Reader
	Out     chan<- classify.Line
	Stats   Recorder // optional
	BufSize int      // read size; zero uses 1 KiB

	asm Assembler
}

// Run reads until the context is cancelled or the source fails. A read that
// returns no bytes and no error means "no data yet" and is not a failure.
//
// Run returns nil on cancellation, ErrSourceClosed at end of stream and the
// wrapped read error otherwise. It never retries; reconnect policy belongs to
// the caller.
func (l *Loop) Run(ctx context.Context) error {
	size := l.BufSize
	if size <= 0 {
		size = defaultReadSize
	}
	buf := make([]byte, size)

	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := l.Source.Read(buf)
		if n > 0 {
			lines := l.asm.Feed(buf[:n])
			l.record(n, len(lines))
			if !l.deliver(ctx, lines) {
				return nil
			}
		}
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			// Source closed underneath us on shutdown.
			return nil
		}
		if errors.Is(err, io.EOF) {
			if rest, ok := l.asm.Flush(); ok {
				l.record(0, 1)
				l.deliver(ctx, []string{rest})
			}
			return ErrSourceClosed
		}
		return fmt.Errorf("read source: %w", err)
	}
}

func (l *Loop) deliver(ctx context.Context, lines []string) bool {
	for _, text := range lines {
		select {
		case l.Out <- classify.New(text):
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func (l *Loop) record(bytes, lines int) {
	if l.Stats != nil {
		l.Stats.RecordRead(bytes, lines)
	}
}
