package rtf

import "strings"

// defaultFontSize is the character size in half-points used when no
// \fsN has been seen.
const defaultFontSize = 12

// Painter is the character-level formatting state in effect at a point
// in the document. It is a value type; equality decides run merging.
type Painter struct {
	ColorRef      ColorRef
	FontRef       FontRef
	FontSize      uint16
	Bold          bool
	Italic        bool
	Underline     bool
	Superscript   bool
	Subscript     bool
	Smallcaps     bool
	Strikethrough bool
}

func newPainter() Painter {
	return Painter{FontSize: defaultFontSize}
}

// StyleBlock is one maximal run of text sharing identical formatting.
// No two adjacent blocks in a document body carry an equal
// (Painter, Paragraph) pair.
type StyleBlock struct {
	Painter   Painter
	Paragraph Paragraph
	Text      string
}

// Document is a parsed RTF document: the header tables plus the body as
// uniformly-styled text runs. It is owned by the caller once Parse
// returns.
type Document struct {
	Header Header
	Body   []StyleBlock
}

// Text concatenates the body runs into the plain document text.
func (d *Document) Text() string {
	var b strings.Builder
	for i := range d.Body {
		b.WriteString(d.Body[i].Text)
	}
	return b.String()
}
