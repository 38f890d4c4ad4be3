package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"leetcode-export/internal/domain/model"
	"leetcode-export/internal/domain/ports"
)

// Writer persists problem records as an indented JSON array on disk.
type Writer struct {
	path string
}

var _ ports.RecordSink = (*Writer)(nil)

// NewWriter creates a Writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Location returns the output path.
func (w *Writer) Location() string {
	return w.path
}

// Write replaces the file with the full collection in a single write.
func (w *Writer) Write(ctx context.Context, records []model.ProblemRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(records)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	return nil
}

// Encode renders records as UTF-8 JSON with two-space indentation. HTML
// characters in descriptions are left unescaped.
func Encode(records []model.ProblemRecord) ([]byte, error) {
	if records == nil {
		records = []model.ProblemRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode problems: %w", err)
	}
	return buf.Bytes(), nil
}
