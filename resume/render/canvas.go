package render

import "github.com/go-pdf/fpdf"

// canvas is the drawing surface the layout writes to. Coordinates are in
// millimetres from the top-left corner of the current page.
type canvas interface {
	SetStyle(style TextStyle)
	Measure(text string) float64
	Text(x, y float64, text string)
	Line(x1, y1, x2, y2, width float64)
	AddPage()
	PageSize() (width, height float64)
}

type pdfCanvas struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

func newPDFCanvas(pdf *fpdf.Fpdf) *pdfCanvas {
	// Core fonts are Windows-1252 encoded; the translator maps bullets and
	// dashes and replaces anything outside the code page.
	return &pdfCanvas{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (c *pdfCanvas) SetStyle(style TextStyle) {
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	c.pdf.SetFont(FontFamily, fontStyle, style.Size)
}

func (c *pdfCanvas) Measure(text string) float64 {
	return c.pdf.GetStringWidth(c.translate(text))
}

func (c *pdfCanvas) Text(x, y float64, text string) {
	c.pdf.Text(x, y, c.translate(text))
}

func (c *pdfCanvas) Line(x1, y1, x2, y2, width float64) {
	c.pdf.SetLineWidth(width)
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *pdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *pdfCanvas) PageSize() (float64, float64) {
	return c.pdf.GetPageSize()
}
