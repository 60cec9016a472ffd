package rtf

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind discriminates the Token variants produced by the lexer.
type TokenKind uint8

const (
	// TokenPlainText is a run of ordinary document text.
	TokenPlainText TokenKind = iota
	// TokenEscapedChar is a \'XX byte escape; the raw byte is preserved so
	// the parser can decode it through the header's code page.
	TokenEscapedChar
	// TokenOpeningBracket is a bare '{' opening a group.
	TokenOpeningBracket
	// TokenClosingBracket is a bare '}' closing a group.
	TokenClosingBracket
	// TokenCRLF is an escaped literal line break.
	TokenCRLF
	// TokenIgnorableDestination marks a \* destination the parser may drop.
	TokenIgnorableDestination
	// TokenControlSymbol is a control word with its property.
	TokenControlSymbol
	// TokenEmpty is the consumed-token sentinel left behind by the parser.
	TokenEmpty
)

// Token is one lexical element of an RTF document. Payload fields are
// populated according to Kind: Text for plain text and for the raw
// identifier of control symbols, Byte for byte escapes, Word and Prop
// for control symbols.
type Token struct {
	Kind TokenKind
	Text string
	Byte byte
	Word ControlWord
	Prop Property
}

func plainText(text string) Token {
	return Token{Kind: TokenPlainText, Text: text}
}

func escapedChar(b byte) Token {
	return Token{Kind: TokenEscapedChar, Byte: b}
}

func controlSymbol(word ControlWord, prop Property, ident string) Token {
	return Token{Kind: TokenControlSymbol, Word: word, Prop: prop, Text: ident}
}

// String renders the token for debugging and test failure output.
func (t Token) String() string {
	switch t.Kind {
	case TokenPlainText:
		return fmt.Sprintf("PlainText(%q)", t.Text)
	case TokenEscapedChar:
		return fmt.Sprintf("EscapedChar(0x%02x)", t.Byte)
	case TokenOpeningBracket:
		return "OpeningBracket"
	case TokenClosingBracket:
		return "ClosingBracket"
	case TokenCRLF:
		return "CRLF"
	case TokenIgnorableDestination:
		return "IgnorableDestination"
	case TokenControlSymbol:
		if t.Word == WordUnknown {
			return fmt.Sprintf("ControlSymbol(Unknown(%q), %s)", t.Text, t.Prop)
		}
		return fmt.Sprintf("ControlSymbol(%q, %s)", t.Text, t.Prop)
	case TokenEmpty:
		return "Empty"
	}
	return "InvalidToken"
}

// ControlWord enumerates the recognized RTF keywords. Anything outside
// this set resolves to WordUnknown with the identifier preserved on the
// token.
type ControlWord uint8

const (
	WordUnknown ControlWord = iota
	WordRtf
	WordAnsi

	WordUnicode
	WordUnicodeIgnoreCount

	WordFontTable
	WordFileTable
	WordColorTable
	WordStyleSheet

	WordFontCharset
	WordFontNumber
	WordFontSize
	WordColorNumber

	WordItalic
	WordBold
	WordUnderline
	WordUnderlineNone
	WordSuperscript
	WordSubscript
	WordSmallcaps
	WordStrikethrough

	WordPar
	WordPard
	WordSectd
	WordPlain
	WordParStyle
	WordParDefTab

	WordFirstLineIndent
	WordLeftIndent
	WordRightIndent

	WordLeftAligned
	WordRightAligned
	WordCenter
	WordJustify

	WordSpaceBefore
	WordSpaceAfter
	WordSpaceBetweenLine
	WordSpaceLineMul

	WordColorRed
	WordColorGreen
	WordColorBlue
)

// controlWords maps the textual keyword (with leading backslash, digits
// stripped) to its ControlWord. Pure static data, per RTF 1.5; 1.5 is
// compatible with 1.9 for this subset.
var controlWords = map[string]ControlWord{
	`\rtf`:  WordRtf,
	`\ansi`: WordAnsi,

	`\u`:  WordUnicode,
	`\uc`: WordUnicodeIgnoreCount,

	`\fonttbl`:    WordFontTable,
	`\filetbl`:    WordFileTable,
	`\colortbl`:   WordColorTable,
	`\stylesheet`: WordStyleSheet,

	`\fcharset`: WordFontCharset,
	`\f`:        WordFontNumber,
	`\fs`:       WordFontSize,
	`\cf`:       WordColorNumber,

	`\i`:      WordItalic,
	`\b`:      WordBold,
	`\ul`:     WordUnderline,
	`\ulnone`: WordUnderlineNone,
	`\super`:  WordSuperscript,
	`\sub`:    WordSubscript,
	`\scaps`:  WordSmallcaps,
	`\strike`: WordStrikethrough,

	`\par`:       WordPar,
	`\pard`:      WordPard,
	`\sectd`:     WordSectd,
	`\plain`:     WordPlain,
	`\s`:         WordParStyle,
	`\pardeftab`: WordParDefTab,

	`\fi`: WordFirstLineIndent,
	`\li`: WordLeftIndent,
	`\ri`: WordRightIndent,

	`\ql`: WordLeftAligned,
	`\qr`: WordRightAligned,
	`\qc`: WordCenter,
	`\qj`: WordJustify,

	`\sb`:    WordSpaceBefore,
	`\sa`:    WordSpaceAfter,
	`\sl`:    WordSpaceBetweenLine,
	`\slmul`: WordSpaceLineMul,

	`\red`:   WordColorRed,
	`\green`: WordColorGreen,
	`\blue`:  WordColorBlue,
}

// ControlWordFrom resolves a control-word identifier such as `\f0` or
// `\sb-432` into its keyword, numeric property, and keyword prefix. The
// prefix is the identifier with the numeric suffix removed; it is
// returned so unknown identifiers stay representable.
func ControlWordFrom(ident string) (ControlWord, Property, string, error) {
	// Scan backward while the characters form a signed integer suffix.
	split := len(ident)
	for split > 0 {
		c := ident[split-1]
		if (c < '0' || c > '9') && c != '-' {
			break
		}
		split--
	}

	prefix := ident[:split]
	suffix := ident[split:]

	prop := Property{}
	if suffix != "" {
		value, err := strconv.ParseInt(suffix, 10, 32)
		if err != nil {
			return WordUnknown, Property{}, prefix, fmt.Errorf("%w: cannot parse %q as integer", ErrInvalidControlWord, suffix)
		}
		prop = Property{Kind: PropertyValue, Val: int32(value)}
	}

	word, ok := controlWords[prefix]
	if !ok {
		word = WordUnknown
	}
	return word, prop, prefix, nil
}

// PropertyKind discriminates the argument forms a control word accepts.
type PropertyKind uint8

const (
	// PropertyNone means the control word carried no argument.
	PropertyNone PropertyKind = iota
	// PropertyOn is an explicit boolean on.
	PropertyOn
	// PropertyOff is an explicit boolean off.
	PropertyOff
	// PropertyValue is a signed 32-bit numeric argument.
	PropertyValue
)

// Property is the argument following a control word. The RTF 1.5 spec
// declares arguments as 16-bit but some writers (TextEdit unicode
// escapes) emit 32-bit values.
type Property struct {
	Kind PropertyKind
	Val  int32
}

// String renders the property for debugging and test failure output.
func (p Property) String() string {
	switch p.Kind {
	case PropertyOn:
		return "On"
	case PropertyOff:
		return "Off"
	case PropertyValue:
		return "Value(" + strconv.FormatInt(int64(p.Val), 10) + ")"
	}
	return "None"
}

// AsBool interprets the property as a formatting toggle. A bare control
// word turns the toggle on; an explicit 0 turns it off.
func (p Property) AsBool() bool {
	switch p.Kind {
	case PropertyOn, PropertyNone:
		return true
	case PropertyOff:
		return false
	default:
		return p.Val == 1
	}
}

// Value returns the numeric argument, or 0 when none was given.
func (p Property) Value() int32 {
	if p.Kind == PropertyValue {
		return p.Val
	}
	return 0
}

// Uint8 casts the numeric argument to an unsigned byte.
func (p Property) Uint8() (uint8, error) {
	v := p.Value()
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%w: %d does not fit in uint8", ErrValueOutOfRange, v)
	}
	return uint8(v), nil
}

// Uint16 casts the numeric argument to an unsigned 16-bit integer.
func (p Property) Uint16() (uint16, error) {
	v := p.Value()
	if v < 0 || v > 65535 {
		return 0, fmt.Errorf("%w: %d does not fit in uint16", ErrValueOutOfRange, v)
	}
	return uint16(v), nil
}

// UnicodeValue reconstructs the unsigned UTF-16 code unit of a \uN
// escape. Control words accept signed 16-bit arguments, so code points
// above 32767 are written as negative numbers and recovered by adding
// 65536.
func (p Property) UnicodeValue() (uint16, error) {
	if p.Kind != PropertyValue {
		return 0, fmt.Errorf("%w: missing value", ErrUnicodeDecode)
	}
	v := int64(p.Val)
	if v < 0 {
		v += 65536
	}
	if v < 0 || v > 65535 {
		return 0, fmt.Errorf("%w: %d is not a UTF-16 code unit", ErrUnicodeDecode, p.Val)
	}
	return uint16(v), nil
}

// stripTrailingSemicolon removes a table-terminator semicolon from a
// control-word identifier so the numeric suffix still parses.
func stripTrailingSemicolon(ident string) string {
	return strings.TrimSuffix(ident, ";")
}
