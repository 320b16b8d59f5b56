package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

// ErrInvalidDocument marks input that is not a well-formed ResumeDocument.
var ErrInvalidDocument = errors.New("invalid resume document")

// InvalidDocumentError lists every schema violation found in the input.
type InvalidDocumentError struct {
	Violations []string
}

func (e *InvalidDocumentError) Error() string {
	if len(e.Violations) == 0 {
		return ErrInvalidDocument.Error()
	}
	return ErrInvalidDocument.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *InvalidDocumentError) Is(target error) bool {
	return target == ErrInvalidDocument
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Decode validates raw JSON against the resume schema and decodes it.
// List fields must be arrays when present; absent lists decode as empty.
func Decode(raw []byte) (ResumeDocument, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return ResumeDocument{}, &InvalidDocumentError{Violations: []string{"document is empty"}}
	}
	s, err := compiledSchema()
	if err != nil {
		return ResumeDocument{}, fmt.Errorf("load resume schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return ResumeDocument{}, &InvalidDocumentError{Violations: []string{err.Error()}}
	}
	if !res.Valid() {
		violations := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			violations = append(violations, e.String())
		}
		return ResumeDocument{}, &InvalidDocumentError{Violations: violations}
	}

	var doc ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ResumeDocument{}, &InvalidDocumentError{Violations: []string{err.Error()}}
	}
	return doc.Normalized(), nil
}
