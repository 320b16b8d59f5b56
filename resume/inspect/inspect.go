// Package inspect reads rendered PDFs back for verification.
package inspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"resume-builder/internal/shared/storage/object"
)

// ErrNotPDF is returned when the payload does not start with a PDF header.
var ErrNotPDF = errors.New("payload is not a pdf")

// Info summarizes a rendered document.
type Info struct {
	Pages int
	Text  string
}

// Inspect counts pages and extracts plain text from an in-memory PDF.
func Inspect(data []byte) (Info, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return Info{}, ErrNotPDF
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return Info{}, fmt.Errorf("extract text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Info{}, fmt.Errorf("extract text: %w", err)
	}
	return Info{Pages: r.NumPage(), Text: buf.String()}, nil
}

// InspectStored opens a stored artifact and inspects it.
func InspectStored(ctx context.Context, store object.ObjectStore, storageKey string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return Info{}, fmt.Errorf("inspect key=%s: %w", storageKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return Info{}, fmt.Errorf("inspect key=%s: read: %w", storageKey, err)
	}
	info, err := Inspect(raw)
	if err != nil {
		return Info{}, fmt.Errorf("inspect key=%s: %w", storageKey, err)
	}
	return info, nil
}
