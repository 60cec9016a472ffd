package rtf

import (
	"strings"
	"testing"
)

var repeatBody = strings.Repeat(`\pard Voici du texte en {\b gras}. `, 200)

func TestDocumentText(t *testing.T) {
	doc := scanParse(t, `{ \rtf1\ansi{\fonttbl\f0\fswiss Helvetica;}\f0\pard Voici du texte en {\b gras}.\par }`)
	if got := doc.Text(); got != "Voici du texte en gras." {
		t.Fatalf("expected %q, got %q", "Voici du texte en gras.", got)
	}
}

func TestDocumentTextEmpty(t *testing.T) {
	doc := &Document{}
	if got := doc.Text(); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

// No two adjacent body blocks may share an identical formatting pair;
// addText must extend the previous run instead.
func TestBodyMergeInvariant(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi one {\b two} three {\b four}{\b five}}`)
	for i := 1; i < len(doc.Body); i++ {
		prev, cur := doc.Body[i-1], doc.Body[i]
		if prev.Painter == cur.Painter && prev.Paragraph == cur.Paragraph {
			t.Fatalf("blocks %d and %d share formatting: %+v", i-1, i, cur)
		}
	}
	if got := doc.Text(); got != "one two three fourfive" {
		t.Fatalf("expected %q, got %q", "one two three fourfive", got)
	}
}

func BenchmarkParse(b *testing.B) {
	doc := `{\rtf1\ansi{\fonttbl\f0\fswiss Helvetica;}` +
		repeatBody + `}`
	tokens, err := Scan(doc)
	if err != nil {
		b.Fatalf("scan: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Parse consumes tokens in place, so each iteration needs a copy.
		b.StopTimer()
		fresh := make([]Token, len(tokens))
		copy(fresh, tokens)
		b.StartTimer()
		if _, err := NewParser(fresh).Parse(); err != nil {
			b.Fatalf("parse: %v", err)
		}
	}
}
