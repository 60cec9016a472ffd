package rtf

import (
	"errors"
	"testing"
)

func scanParse(t *testing.T, src string) *Document {
	t.Helper()
	tokens, err := Scan(src)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	doc, err := NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func assertBody(t *testing.T, doc *Document, want []StyleBlock) {
	t.Helper()
	if len(doc.Body) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %v", len(want), len(doc.Body), doc.Body)
	}
	for i := range want {
		if doc.Body[i] != want[i] {
			t.Fatalf("block %d: expected %+v, got %+v", i, want[i], doc.Body[i])
		}
	}
}

func TestParseSimpleDocument(t *testing.T) {
	doc := scanParse(t, `{ \rtf1\ansi{\fonttbl\f0\fswiss Helvetica;}\f0\pard Voici du texte en {\b gras}.\par }`)

	if doc.Header.CharacterSet != (CharacterSet{Kind: CharsetAnsi}) {
		t.Fatalf("expected ansi character set, got %+v", doc.Header.CharacterSet)
	}
	font, ok := doc.Header.FontTable[0]
	if !ok {
		t.Fatalf("expected font 0 in table, got %v", doc.Header.FontTable)
	}
	if font != (Font{Name: "Helvetica", Family: FamilySwiss}) {
		t.Fatalf("unexpected font: %+v", font)
	}

	bold := newPainter()
	bold.Bold = true
	assertBody(t, doc, []StyleBlock{
		{Painter: newPainter(), Text: "Voici du texte en "},
		{Painter: bold, Text: "gras"},
		{Painter: newPainter(), Text: "."},
	})
}

func TestParseFontTableNestedGroups(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi{\fonttbl{\f0\fswiss\fcharset0 Helvetica;}{\f1\fmodern Courier;}}body}`)

	if len(doc.Header.FontTable) != 2 {
		t.Fatalf("expected 2 fonts, got %v", doc.Header.FontTable)
	}
	if got := doc.Header.FontTable[0]; got != (Font{Name: "Helvetica", Family: FamilySwiss}) {
		t.Fatalf("font 0: unexpected %+v", got)
	}
	if got := doc.Header.FontTable[1]; got != (Font{Name: "Courier", Family: FamilyModern}) {
		t.Fatalf("font 1: unexpected %+v", got)
	}
	assertBody(t, doc, []StyleBlock{{Painter: newPainter(), Text: "body"}})
}

func TestParseColorTable(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi{\colortbl;\red255\green0\blue0;\red0\green255\blue0;}text}`)

	if len(doc.Header.ColorTable) != 2 {
		t.Fatalf("expected 2 colors, got %v", doc.Header.ColorTable)
	}
	if got := doc.Header.ColorTable[1]; got != (Color{Red: 255}) {
		t.Fatalf("color 1: unexpected %+v", got)
	}
	if got := doc.Header.ColorTable[2]; got != (Color{Green: 255}) {
		t.Fatalf("color 2: unexpected %+v", got)
	}
	if doc.Text() != "text" {
		t.Fatalf("expected body %q, got %q", "text", doc.Text())
	}
}

func TestParseLateColorTableHonored(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi hello{\colortbl;\red10\green20\blue30;}}`)

	if got := doc.Header.ColorTable[1]; got != (Color{Red: 10, Green: 20, Blue: 30}) {
		t.Fatalf("color 1: unexpected %+v", got)
	}
	if doc.Text() != "hello" {
		t.Fatalf("expected body %q, got %q", "hello", doc.Text())
	}
}

func TestParseInvalidFontIdentifier(t *testing.T) {
	tokens, err := Scan(`{\rtf1{\fonttbl\f Arial;}}`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := NewParser(tokens).Parse(); !errors.Is(err, ErrInvalidFontIdentifier) {
		t.Fatalf("expected ErrInvalidFontIdentifier, got %v", err)
	}
}

func TestParseIgnorableDestinationOnly(t *testing.T) {
	doc := scanParse(t, `{\*\expandedcolortbl;;}`)

	if len(doc.Body) != 0 {
		t.Fatalf("expected empty body, got %v", doc.Body)
	}
	if len(doc.Header.FontTable) != 0 || len(doc.Header.ColorTable) != 0 {
		t.Fatalf("expected empty header tables, got %+v", doc.Header)
	}
}

func TestParseIgnorableDestinationInBody(t *testing.T) {
	tokens, err := Scan(`{\rtf1 \*\nonsense}`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := NewParser(tokens).Parse(); !errors.Is(err, ErrUnexpectedIgnorableDestination) {
		t.Fatalf("expected ErrUnexpectedIgnorableDestination, got %v", err)
	}
}

func TestParseEscapedCharDefaultCodePage(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi caf\'e9}`)
	if doc.Text() != "café" {
		t.Fatalf("expected %q, got %q", "café", doc.Text())
	}
	if len(doc.Body) != 1 {
		t.Fatalf("expected a single merged block, got %v", doc.Body)
	}
}

func TestParseEscapedCharExplicitCodePage(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansicpg1251 \'c0}`)
	if doc.Header.CharacterSet != (CharacterSet{Kind: CharsetAnsicpg, CodePage: 1251}) {
		t.Fatalf("unexpected character set: %+v", doc.Header.CharacterSet)
	}
	if doc.Text() != "А" {
		t.Fatalf("expected %q, got %q", "А", doc.Text())
	}
}

func TestParseUnicode(t *testing.T) {
	doc := scanParse(t, "{\\rtf1\\ansi \\u"+"21834 }")
	if doc.Text() != "啊" {
		t.Fatalf("expected %q, got %q", "啊", doc.Text())
	}
}

func TestParseUnicodeFallbackSkipped(t *testing.T) {
	doc := scanParse(t, "{\\rtf1\\ansi\\uc2\\u"+"26789\\'97\\'73}")
	if want := string(rune(26789)); doc.Text() != want {
		t.Fatalf("expected %q, got %q", want, doc.Text())
	}
}

func TestParseUnicodeFallbackBudgetResets(t *testing.T) {
	doc := scanParse(t, "{\\rtf1\\ansi\\uc1\\u"+"21834\\'3f\\u"+"21834\\'3f}")
	if doc.Text() != "啊啊" {
		t.Fatalf("expected %q, got %q", "啊啊", doc.Text())
	}
}

func TestParseSurrogatePair(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi\uc0\u-10179\u-8704 }`)
	if doc.Text() != "😀" {
		t.Fatalf("expected %q, got %q", "😀", doc.Text())
	}
}

func TestParseUnpairedSurrogate(t *testing.T) {
	tokens, err := Scan(`{\rtf1\ansi\uc0\u-10179 }`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := NewParser(tokens).Parse(); !errors.Is(err, ErrUnicodeDecode) {
		t.Fatalf("expected ErrUnicodeDecode, got %v", err)
	}
}

func TestParseScopeInheritance(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi \b bold {\i bolditalic} bold2}`)

	bold := newPainter()
	bold.Bold = true
	boldItalic := bold
	boldItalic.Italic = true
	assertBody(t, doc, []StyleBlock{
		{Painter: bold, Text: "bold "},
		{Painter: boldItalic, Text: "bolditalic"},
		{Painter: bold, Text: " bold2"},
	})
}

func TestParseUnderlineToggle(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi \ul under \ulnone plain}`)

	underlined := newPainter()
	underlined.Underline = true
	assertBody(t, doc, []StyleBlock{
		{Painter: underlined, Text: "under "},
		{Painter: newPainter(), Text: "plain"},
	})
}

func TestParsePlainResetsPainter(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi\b\i rich \plain plain}`)

	rich := newPainter()
	rich.Bold = true
	rich.Italic = true
	assertBody(t, doc, []StyleBlock{
		{Painter: rich, Text: "rich "},
		{Painter: newPainter(), Text: "plain"},
	})
}

func TestParseCharacterProperties(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi\cf2\f1\fs48 big}`)

	want := newPainter()
	want.ColorRef = 2
	want.FontRef = 1
	want.FontSize = 48
	assertBody(t, doc, []StyleBlock{{Painter: want, Text: "big"}})
}

func TestMergeAdjacentRuns(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi a{\b }b}`)
	assertBody(t, doc, []StyleBlock{{Painter: newPainter(), Text: "ab"}})
}

func TestParseParagraphFormatting(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi\pard\qc\sb120\sa240\sl480\slmul1\fi360\li720\ri360\pardeftab720 centered}`)

	want := Paragraph{
		Alignment: AlignCenter,
		Spacing: Spacing{
			Before:         120,
			After:          240,
			BetweenLine:    LineSpacing{Kind: LineSpacingValue, Value: 480},
			LineMultiplier: 1,
		},
		Indent:   Indentation{Left: 720, Right: 360, FirstLine: 360},
		TabWidth: 720,
	}
	if len(doc.Body) != 1 {
		t.Fatalf("expected 1 block, got %v", doc.Body)
	}
	if doc.Body[0].Paragraph != want {
		t.Fatalf("expected paragraph %+v, got %+v", want, doc.Body[0].Paragraph)
	}
	if doc.Body[0].Text != "centered" {
		t.Fatalf("expected text %q, got %q", "centered", doc.Body[0].Text)
	}
}

func TestParseLineSpacingAuto(t *testing.T) {
	doc := scanParse(t, `{\rtf1\ansi\sl1000 x}`)
	if got := doc.Body[0].Paragraph.Spacing.BetweenLine; got != (LineSpacing{Kind: LineSpacingAuto}) {
		t.Fatalf("expected automatic line spacing, got %+v", got)
	}
}

func TestParseUnbalancedBraces(t *testing.T) {
	tokens, err := Scan(`{\rtf1{\b x}`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := NewParser(tokens).Parse(); !errors.Is(err, ErrMalformedScopeStack) {
		t.Fatalf("expected ErrMalformedScopeStack, got %v", err)
	}
}

func TestParseEmptyTokens(t *testing.T) {
	if _, err := NewParser(nil).Parse(); !errors.Is(err, ErrNoMoreToken) {
		t.Fatalf("expected ErrNoMoreToken, got %v", err)
	}
}

func TestParseInvalidFirstToken(t *testing.T) {
	tokens := []Token{plainText("hello"), {Kind: TokenClosingBracket}}
	if _, err := NewParser(tokens).Parse(); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
