package render

// TextStyle captures the font settings for one kind of line.
type TextStyle struct {
	Bold bool
	Size float64
}

const (
	FontFamily = "Helvetica"
	NameSize   = 20
	TitleSize  = 12
	EntrySize  = 11
	BodySize   = 10
	LinkSize   = 9
	RuleWidth  = 0.5
)

// StyleMap centralizes the typography for each resume element.
var StyleMap = map[string]TextStyle{
	"name": {
		Bold: true,
		Size: NameSize,
	},
	"contact": {
		Size: BodySize,
	},
	"sectionHeading": {
		Bold: true,
		Size: TitleSize,
	},
	"entryTitle": {
		Bold: true,
		Size: EntrySize,
	},
	"company": {
		Bold: true,
		Size: BodySize,
	},
	"body": {
		Size: BodySize,
	},
	"links": {
		Size: LinkSize,
	},
}
