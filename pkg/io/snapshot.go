package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"

	"github.com/geniass/pricebot/pkg/scraper"
)

// TimeFormat is the generated_at layout: UTC, second precision.
const TimeFormat = "2006-01-02T15:04:05Z"

// Snapshot is the output of one run.
type Snapshot struct {
	GeneratedAt time.Time
	Products    []scraper.Record
}

type snapshotJSON struct {
	GeneratedAt string           `json:"generated_at"`
	Products    []scraper.Record `json:"products"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	products := s.Products
	if products == nil {
		products = []scraper.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(snapshotJSON{
		GeneratedAt: s.GeneratedAt.UTC().Format(TimeFormat),
		Products:    products,
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var sj snapshotJSON
	if err := json.Unmarshal(b, &sj); err != nil {
		return err
	}
	t, err := time.Parse(TimeFormat, sj.GeneratedAt)
	if err != nil {
		return eris.Wrap(err, "parse generated_at")
	}
	*s = Snapshot{GeneratedAt: t, Products: sj.Products}
	return nil
}

// LoadSnapshot reads a snapshot previously written by JSONWriter.
func LoadSnapshot(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, eris.Wrapf(err, "open snapshot %s", path)
	}
	defer f.Close()

	var s Snapshot
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Snapshot{}, eris.Wrapf(err, "decode snapshot %s", path)
	}
	return s, nil
}

// createFile truncates or creates path, making parent directories as needed.
func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModeDir|0755); err != nil {
		return nil, eris.Wrapf(err, "mkdir %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "create %s", path)
	}
	return f, nil
}
