package app

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/five82/sermon/internal/classify"
	"github.com/five82/sermon/internal/ingest"
	"github.com/five82/sermon/internal/state"
)

const (
	defaultReconnectBackoff = time.Second
	maxBackoff              = 30 * time.Second
)

// Ingester runs the ingestion loop for one source and applies the reconnect
// policy when a read fails.
type Ingester struct {
	Name     string
	BaudRate int
	Open     func() (io.ReadCloser, error) // reopens the source after a failure
	Store    *state.Store
	Out      chan<- classify.Line
	Attempts int           // reopen attempts after a read failure; 0 disables
	Backoff  time.Duration // base delay between attempts; zero uses 1s
}

// StartIngest launches a goroutine that reads from src until the context is
// cancelled or the source is gone for good. Out is closed when it returns.
func StartIngest(ctx context.Context, in Ingester, src io.ReadCloser) {
	go func() {
		defer close(in.Out)

		err := in.run(ctx, src)
		in.Store.MarkEnded(err)
		if err != nil {
			log.Printf("ingestion from %s ended: %v", in.Name, err)
		}
	}()
}

func (in Ingester) run(ctx context.Context, src io.ReadCloser) error {
	for {
		err := in.drain(ctx, src)
		if err == nil || errors.Is(err, ingest.ErrSourceClosed) {
			return err
		}
		in.Store.RecordError(err)
		log.Printf("read from %s failed: %v", in.Name, err)

		src, err = in.reconnect(ctx, err)
		if src == nil {
			return err
		}
	}
}

// drain runs one ingestion loop. The source is closed when the context ends so
// a blocked read returns immediately.
func (in Ingester) drain(ctx context.Context, src io.ReadCloser) error {
	stop := context.AfterFunc(ctx, func() { _ = src.Close() })
	defer func() {
		if stop() {
			_ = src.Close()
		}
	}()

	loop := &ingest.Loop{Source: src, Out: in.Out, Stats: in.Store}
	return loop.Run(ctx)
}

// reconnect retries Open with exponential backoff. It returns a nil source
// and nil error if the context ends while waiting.
func (in Ingester) reconnect(ctx context.Context, cause error) (io.ReadCloser, error) {
	if in.Open == nil {
		return nil, cause
	}
	base := in.Backoff
	if base <= 0 {
		base = defaultReconnectBackoff
	}

	lastErr := cause
	for attempt := 0; attempt < in.Attempts; attempt++ {
		timer := time.NewTimer(calculateBackoff(attempt, base))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil
		case <-timer.C:
		}

		in.Store.RecordReconnect()
		src, err := in.Open()
		if err == nil {
			in.Store.SetConnected(in.Name, in.BaudRate)
			log.Printf("reconnected to %s after %d attempt(s)", in.Name, attempt+1)
			return src, nil
		}
		lastErr = err
		log.Printf("reconnect %d/%d to %s failed: %v", attempt+1, in.Attempts, in.Name, err)
	}
	return nil, lastErr
}

// calculateBackoff doubles the base interval per failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
