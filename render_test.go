package rtf

import (
	"bytes"
	"strings"
	"testing"
)

func renderToString(t *testing.T, doc *Document, width int, opts ...RenderOption) string {
	t.Helper()
	var buf bytes.Buffer
	err := Render(RenderRequest{
		Document: doc,
		Writer:   &buf,
		Width:    width,
		Options:  opts,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestRenderPlain(t *testing.T) {
	doc := &Document{Body: []StyleBlock{{Painter: newPainter(), Text: "hello world"}}}
	if got := renderToString(t, doc, 0); got != "hello world\n" {
		t.Fatalf("expected %q, got %q", "hello world\n", got)
	}
}

func TestRenderWrapsAtWidth(t *testing.T) {
	doc := &Document{Body: []StyleBlock{{Painter: newPainter(), Text: "aaa bbb ccc"}}}
	if got := renderToString(t, doc, 7); got != "aaa bbb\nccc\n" {
		t.Fatalf("expected wrapped output, got %q", got)
	}
}

func TestRenderParagraphBreaks(t *testing.T) {
	doc := &Document{Body: []StyleBlock{{Painter: newPainter(), Text: "first\nsecond"}}}
	if got := renderToString(t, doc, 0); got != "first\nsecond\n" {
		t.Fatalf("expected two paragraphs, got %q", got)
	}
}

func TestRenderANSIStyling(t *testing.T) {
	bold := newPainter()
	bold.Bold = true
	doc := &Document{Body: []StyleBlock{{Painter: bold, Text: "hi"}}}

	got := renderToString(t, doc, 0, WithANSI(true))
	if !strings.Contains(got, "\x1b[1m") || !strings.Contains(got, "\x1b[0m") {
		t.Fatalf("expected bold SGR sequences, got %q", got)
	}

	plain := renderToString(t, doc, 0, WithANSI(false))
	if strings.Contains(plain, "\x1b[") {
		t.Fatalf("expected no escape sequences, got %q", plain)
	}
}

func TestRenderCenterAlignment(t *testing.T) {
	doc := &Document{Body: []StyleBlock{{
		Painter:   newPainter(),
		Paragraph: Paragraph{Alignment: AlignCenter},
		Text:      "hi",
	}}}
	if got := renderToString(t, doc, 6); got != "  hi\n" {
		t.Fatalf("expected centered output, got %q", got)
	}
}

func TestRenderPaddingBeyondPrealloc(t *testing.T) {
	doc := &Document{Body: []StyleBlock{{
		Painter:   newPainter(),
		Paragraph: Paragraph{Alignment: AlignRight},
		Text:      "hi",
	}}}
	want := strings.Repeat(" ", 298) + "hi\n"
	if got := renderToString(t, doc, 300); got != want {
		t.Fatalf("expected right-aligned padding, got %q", got)
	}
	if len(spaceString) != 256 {
		t.Fatalf("shared space run must not grow, len %d", len(spaceString))
	}
}

func TestRenderNilDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(RenderRequest{Writer: &buf}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
