package io

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/geniass/pricebot/pkg/scraper"
)

// Writer persists a snapshot in one representation.
type Writer interface {
	WriteSnapshot(s Snapshot) error
}

// Emitter stamps the accumulated records and hands them to its writers.
type Emitter struct {
	// Now defaults to time.Now.
	Now     func() time.Time
	Writers []Writer
}

func NewEmitter(writers ...Writer) *Emitter {
	return &Emitter{Now: time.Now, Writers: writers}
}

// Emit builds the snapshot and passes it unmodified to each writer in order,
// stopping at the first error.
func (e *Emitter) Emit(records []scraper.Record) (Snapshot, error) {
	now := e.Now
	if now == nil {
		now = time.Now
	}
	s := Snapshot{
		GeneratedAt: now().UTC().Truncate(time.Second),
		Products:    records,
	}
	for _, w := range e.Writers {
		if err := w.WriteSnapshot(s); err != nil {
			return s, eris.Wrap(err, "emit snapshot")
		}
	}
	return s, nil
}
