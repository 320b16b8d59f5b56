package render

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

const (
	MimeTypePDF   = "application/pdf"
	DefaultMargin = 20
	PageA4        = "A4"
	PageLetter    = "Letter"
)

// ErrInvalidOptions is returned for unsupported page sizes or margins.
var ErrInvalidOptions = errors.New("invalid render options")

// documentDate is stamped as creation and modification date so that equal
// input produces byte-identical output.
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options controls page geometry and metadata.
type Options struct {
	PageSize  string
	Margin    float64
	Timestamp time.Time
}

// Option mutates Options.
type Option func(*Options)

func WithPageSize(size string) Option {
	return func(o *Options) { o.PageSize = size }
}

func WithMargin(margin float64) Option {
	return func(o *Options) { o.Margin = margin }
}

// WithTimestamp overrides the fixed document date.
func WithTimestamp(ts time.Time) Option {
	return func(o *Options) { o.Timestamp = ts }
}

func defaultOptions() Options {
	return Options{PageSize: PageA4, Margin: DefaultMargin, Timestamp: documentDate}
}

func (o Options) validate() error {
	switch strings.ToLower(o.PageSize) {
	case "a4", "letter":
	default:
		return fmt.Errorf("%w: page size %q", ErrInvalidOptions, o.PageSize)
	}
	if o.Margin <= 0 || o.Margin >= 60 {
		return fmt.Errorf("%w: margin %.1f", ErrInvalidOptions, o.Margin)
	}
	if o.Timestamp.IsZero() {
		return fmt.Errorf("%w: zero timestamp", ErrInvalidOptions)
	}
	return nil
}

// RenderResume composes the document with default A4 options.
func RenderResume(doc model.ResumeDocument) ([]byte, error) {
	return Compose(doc)
}

// Compose lays out the resume on a fresh PDF and returns its bytes.
// Each call builds its own document and cursor, so concurrent calls are safe.
func Compose(doc model.ResumeDocument, opts ...Option) ([]byte, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", o.PageSize, "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(o.Margin, o.Margin, o.Margin)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(o.Timestamp)
	pdf.SetModificationDate(o.Timestamp)
	pdf.SetCreator("resume-builder", false)
	pdf.SetTitle(contract.Or(doc.PersonalInfo.FullName, contract.FallbackName)+" Resume", true)

	l := newLayout(newPDFCanvas(pdf), o.Margin)
	l.compose(doc.Normalized())

	if pdf.Err() {
		return nil, fmt.Errorf("compose pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// SuggestedFileName derives "<Full_Name>_Resume.pdf" from the person's name.
func SuggestedFileName(fullName string) string {
	name := strings.TrimSpace(fullName)
	name = strings.NewReplacer("/", "", "\\", "", "\"", "").Replace(name)
	if name == "" {
		return "Resume.pdf"
	}
	return whitespaceRun.ReplaceAllString(name, "_") + "_Resume.pdf"
}
