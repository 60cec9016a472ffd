package rtf

import (
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
)

const (
	sgrReset     = "\x1b[0m"
	sgrBold      = "\x1b[1m"
	sgrItalic    = "\x1b[3m"
	sgrUnderline = "\x1b[4m"
	sgrStrike    = "\x1b[9m"
)

var spaceString = strings.Repeat(" ", 256)

// RenderRequest describes one plain-text rendering of a parsed
// document.
type RenderRequest struct {
	Document *Document
	Writer   io.Writer
	Width    int
	Options  []RenderOption
}

// Render writes the document body as plain text, wrapped to the
// requested width and aligned per paragraph. Rendering consumes only
// the final Document value; it never reaches into parser state. A width
// of 0 disables wrapping and alignment.
func Render(req RenderRequest) error {
	cfg := renderConfig{}
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if req.Document == nil || req.Writer == nil {
		return nil
	}

	var paragraph strings.Builder
	align := AlignLeft
	for _, block := range req.Document.Body {
		prefix := stylePrefix(block.Painter, cfg.ansi)
		align = block.Paragraph.Alignment
		rest := block.Text
		for {
			line, tail, found := strings.Cut(rest, "\n")
			writeStyled(&paragraph, prefix, line)
			if !found {
				break
			}
			if err := flushParagraph(req.Writer, paragraph.String(), align, req.Width); err != nil {
				return err
			}
			paragraph.Reset()
			rest = tail
		}
	}
	if paragraph.Len() > 0 {
		return flushParagraph(req.Writer, paragraph.String(), align, req.Width)
	}
	return nil
}

func writeStyled(b *strings.Builder, prefix, text string) {
	if text == "" {
		return
	}
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteString(text)
		b.WriteString(sgrReset)
		return
	}
	b.WriteString(text)
}

// flushParagraph wraps one paragraph to the width and realizes its
// alignment with leading spaces. The wrapper is ANSI-aware, so styled
// runs do not count against the width.
func flushParagraph(w io.Writer, text string, align Alignment, width int) error {
	if width <= 0 {
		_, err := io.WriteString(w, text+"\n")
		return err
	}
	wrapped := wordwrap.String(text, width)
	for _, line := range strings.Split(wrapped, "\n") {
		pad := 0
		switch align {
		case AlignCenter:
			pad = (width - ansi.PrintableRuneWidth(line)) / 2
		case AlignRight:
			pad = width - ansi.PrintableRuneWidth(line)
		}
		if _, err := io.WriteString(w, spaces(pad)+line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	// spaceString is shared across concurrent renders and must stay
	// read-only; unusually wide paddings are built locally instead.
	if n <= len(spaceString) {
		return spaceString[:n]
	}
	return strings.Repeat(" ", n)
}

func stylePrefix(p Painter, enabled bool) string {
	if !enabled {
		return ""
	}
	var b strings.Builder
	if p.Bold {
		b.WriteString(sgrBold)
	}
	if p.Italic {
		b.WriteString(sgrItalic)
	}
	if p.Underline {
		b.WriteString(sgrUnderline)
	}
	if p.Strikethrough {
		b.WriteString(sgrStrike)
	}
	return b.String()
}
