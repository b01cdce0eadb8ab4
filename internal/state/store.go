// Package state shares ingestion status between the reader goroutine and the UI.
package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest stream status available to the UI.
type Snapshot struct {
	Port       string
	BaudRate   int
	Connected  bool
	BytesRead  uint64
	LinesRead  uint64
	LastData   time.Time
	LastError  error
	Reconnects int
	Ended      bool // ingestion has stopped for good
}

// Idle reports how long it has been since the last byte arrived.
func (s Snapshot) Idle(now time.Time) time.Duration {
	if s.LastData.IsZero() {
		return 0
	}
	return now.Sub(s.LastData)
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetConnected records a successful open of port.
func (s *Store) SetConnected(port string, baud int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Port = port
	s.snapshot.BaudRate = baud
	s.snapshot.Connected = true
	s.snapshot.LastError = nil
}

// RecordRead adds to the byte and line counters. It satisfies ingest.Recorder.
func (s *Store) RecordRead(bytes, lines int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.BytesRead += uint64(bytes)
	s.snapshot.LinesRead += uint64(lines)
	if bytes > 0 {
		s.snapshot.LastData = time.Now()
	}
}

// RecordError marks the source disconnected. Counters and the port are kept.
func (s *Store) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Connected = false
	s.snapshot.LastError = err
}

// RecordReconnect counts a reopen attempt.
func (s *Store) RecordReconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Reconnects++
}

// MarkEnded records that ingestion has stopped. A nil err keeps any earlier
// error.
func (s *Store) MarkEnded(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Ended = true
	s.snapshot.Connected = false
	if err != nil {
		s.snapshot.LastError = err
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
