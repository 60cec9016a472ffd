package rtf

import (
	"golang.org/x/text/encoding/charmap"
)

// FontRef is a font-table key, referenced from the body by \fN.
type FontRef uint16

// ColorRef is a color-table key, referenced from the body by \cfN.
// Index 0 is reserved for "no color set".
type ColorRef uint16

// StyleRef is a stylesheet key, referenced from the body by \sN.
type StyleRef uint16

// FontTable maps declared font indexes to fonts.
type FontTable map[FontRef]Font

// ColorTable maps declared color indexes to colors.
type ColorTable map[ColorRef]Color

// StyleSheet maps declared style indexes to styles.
type StyleSheet map[StyleRef]Style

// Header carries the document-wide tables extracted from the token
// stream. Tables are populated once during header extraction and are
// read-only afterward.
type Header struct {
	CharacterSet CharacterSet
	FontTable    FontTable
	ColorTable   ColorTable
	StyleSheet   StyleSheet
}

func newHeader() Header {
	return Header{
		FontTable:  FontTable{},
		ColorTable: ColorTable{},
		StyleSheet: StyleSheet{},
	}
}

// Font is one font-table entry.
type Font struct {
	Name         string
	CharacterSet uint8
	Family       FontFamily
}

// Color is one color-table entry.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// Style is one stylesheet entry. Stylesheet groups are consumed but not
// populated; the type exists for storage.
type Style struct {
	Painter   Painter
	Paragraph Paragraph
}

// CharacterSetKind enumerates the document character set markers.
type CharacterSetKind uint8

const (
	// CharsetAnsi is \ansi, the default.
	CharsetAnsi CharacterSetKind = iota
	// CharsetMac is \mac.
	CharsetMac
	// CharsetPc is \pc.
	CharsetPc
	// CharsetPca is \pca.
	CharsetPca
	// CharsetAnsicpg is \ansicpgN with an explicit code page.
	CharsetAnsicpg
)

// CharacterSet is the document character set. It decides the code page
// used to decode \'XX byte escapes.
type CharacterSet struct {
	Kind     CharacterSetKind
	CodePage uint16
}

// characterSetFrom recognizes a character-set marker token. Only \ansi
// resolves to a closed control word; the others arrive as unknown
// identifiers.
func characterSetFrom(tok Token) (CharacterSet, bool) {
	if tok.Kind != TokenControlSymbol {
		return CharacterSet{}, false
	}
	if tok.Word == WordAnsi {
		return CharacterSet{Kind: CharsetAnsi}, true
	}
	switch tok.Text {
	case `\mac`:
		return CharacterSet{Kind: CharsetMac}, true
	case `\pc`:
		return CharacterSet{Kind: CharsetPc}, true
	case `\pca`:
		return CharacterSet{Kind: CharsetPca}, true
	case `\ansicpg`:
		if cp, err := tok.Prop.Uint16(); err == nil {
			return CharacterSet{Kind: CharsetAnsicpg, CodePage: cp}, true
		}
	}
	return CharacterSet{}, false
}

// codePages maps \ansicpg code pages to their decoders. Windows code
// pages not covered by x/text keep the Windows-1252 default.
var codePages = map[uint16]*charmap.Charmap{
	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	852:  charmap.CodePage852,
	855:  charmap.CodePage855,
	860:  charmap.CodePage860,
	862:  charmap.CodePage862,
	863:  charmap.CodePage863,
	865:  charmap.CodePage865,
	866:  charmap.CodePage866,
	874:  charmap.Windows874,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,
}

// Charmap returns the decoder for \'XX byte escapes under this
// character set.
func (cs CharacterSet) Charmap() *charmap.Charmap {
	switch cs.Kind {
	case CharsetMac:
		return charmap.Macintosh
	case CharsetPc:
		return charmap.CodePage437
	case CharsetPca:
		return charmap.CodePage850
	case CharsetAnsicpg:
		if cm, ok := codePages[cs.CodePage]; ok {
			return cm
		}
	}
	return charmap.Windows1252
}

// FontFamily groups fonts by their generic family, per the \fN family
// control words.
type FontFamily uint8

const (
	FamilyNil FontFamily = iota
	FamilyRoman
	FamilySwiss
	FamilyModern
	FamilyScript
	FamilyDecor
	FamilyTech
	FamilyBidi
)

var fontFamilies = map[string]FontFamily{
	`\fnil`:    FamilyNil,
	`\froman`:  FamilyRoman,
	`\fswiss`:  FamilySwiss,
	`\fmodern`: FamilyModern,
	`\fscript`: FamilyScript,
	`\fdecor`:  FamilyDecor,
	`\ftech`:   FamilyTech,
	`\fbidi`:   FamilyBidi,
}

func fontFamilyFrom(ident string) (FontFamily, bool) {
	family, ok := fontFamilies[ident]
	return family, ok
}
