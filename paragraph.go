package rtf

// Alignment is the paragraph alignment set by \ql, \qr, \qc and \qj.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	AlignJustify
)

func alignmentFrom(word ControlWord) Alignment {
	switch word {
	case WordRightAligned:
		return AlignRight
	case WordCenter:
		return AlignCenter
	case WordJustify:
		return AlignJustify
	default:
		return AlignLeft
	}
}

// LineSpacingKind discriminates \slN interpretations.
type LineSpacingKind uint8

const (
	// LineSpacingAuto lets the tallest character on the line decide.
	LineSpacingAuto LineSpacingKind = iota
	// LineSpacingValue is an explicit spacing in twips.
	LineSpacingValue
)

// LineSpacing is the space between lines. \sl1000 (or a missing \sl)
// means automatic spacing; a negative N means the absolute value is
// used even when shorter than the tallest character.
type LineSpacing struct {
	Kind  LineSpacingKind
	Value int32
}

func lineSpacingFrom(value int32) LineSpacing {
	switch {
	case value == 1000:
		return LineSpacing{Kind: LineSpacingAuto}
	case value < 0:
		return LineSpacing{Kind: LineSpacingValue, Value: -value}
	default:
		return LineSpacing{Kind: LineSpacingValue, Value: value}
	}
}

// Spacing is the vertical spacing around and inside a paragraph, in
// twips.
type Spacing struct {
	Before         int32
	After          int32
	BetweenLine    LineSpacing
	LineMultiplier int32
}

// Indentation is the paragraph indentation, in twips. Left and right
// can both be set at once, so this is a struct rather than an enum-like
// choice.
type Indentation struct {
	Left      int32
	Right     int32
	FirstLine int32
}

// Paragraph is the paragraph-level formatting state. It is a value
// type; equality decides run merging alongside Painter.
type Paragraph struct {
	Alignment Alignment
	Spacing   Spacing
	Indent    Indentation
	TabWidth  int32
}
