package io

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// JSONWriter writes the structured snapshot, replacing any previous file.
type JSONWriter struct {
	Path string
}

func (w JSONWriter) WriteSnapshot(s Snapshot) error {
	f, err := createFile(w.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return eris.Wrapf(err, "encode %s", w.Path)
	}
	return f.Close()
}
