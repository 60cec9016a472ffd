package rtf

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// scope is the formatting state bound to one level of brace nesting.
// Opening a group pushes a copy of the enclosing scope, so child groups
// inherit and closing a group restores the parent state with no
// back-references.
type scope struct {
	painter            Painter
	paragraph          Paragraph
	unicodeIgnoreCount int32
}

func defaultScope() scope {
	return scope{painter: newPainter(), unicodeIgnoreCount: 1}
}

// Parser turns a token sequence into a Document. It owns the token
// slice exclusively for the duration of Parse; consumed tokens are
// overwritten with a TokenEmpty sentinel so consumption stays O(1).
type Parser struct {
	tokens []Token
}

// NewParser returns a parser over a scanned token sequence.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse extracts the header tables and builds the body as merged,
// uniformly-styled text runs. The returned document is owned by the
// caller; the parser must not be reused afterward.
func (p *Parser) Parse() (*Document, error) {
	if err := p.checkDocumentValidity(); err != nil {
		return nil, err
	}
	doc := &Document{Header: newHeader()}
	if err := p.parseHeader(&doc.Header); err != nil {
		return nil, err
	}
	if err := p.parseBody(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// checkDocumentValidity verifies the document is wrapped in a single
// brace-delimited group.
func (p *Parser) checkDocumentValidity() error {
	if len(p.tokens) == 0 {
		return ErrNoMoreToken
	}
	if first := p.tokens[0]; first.Kind != TokenOpeningBracket {
		return fmt.Errorf("%w: first token is %s, not '{'", ErrInvalidToken, first)
	}
	if last := p.tokens[len(p.tokens)-1]; last.Kind != TokenClosingBracket {
		return fmt.Errorf("%w: last token is %s, not '}'", ErrInvalidToken, last)
	}
	return nil
}

// parseHeader makes a single forward pass over the entire token
// sequence, consuming font-table, color-table, stylesheet and ignorable
// destination groups and recording character-set markers. All other
// tokens are left untouched for the body pass; tables appearing late in
// a document are still honored.
func (p *Parser) parseHeader(header *Header) error {
	for i := 0; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		switch tok.Kind {
		case TokenEmpty, TokenCRLF:
			continue
		case TokenOpeningBracket:
			// Groups may be written with embedded line breaks, so the
			// group marker is the next non-CRLF token.
			next, ok := p.nextMeaningful(i + 1)
			if !ok {
				continue
			}
			switch {
			case next.Kind == TokenIgnorableDestination:
				if _, err := p.consumeGroup(i); err != nil {
					return err
				}
			case next.Kind == TokenControlSymbol && next.Word == WordFontTable:
				group, err := p.consumeGroup(i)
				if err != nil {
					return err
				}
				if err := parseFontTable(group, header.FontTable); err != nil {
					return err
				}
			case next.Kind == TokenControlSymbol && next.Word == WordColorTable:
				group, err := p.consumeGroup(i)
				if err != nil {
					return err
				}
				if err := parseColorTable(group, header.ColorTable); err != nil {
					return err
				}
			case next.Kind == TokenControlSymbol && next.Word == WordStyleSheet:
				group, err := p.consumeGroup(i)
				if err != nil {
					return err
				}
				if err := parseStyleSheet(group, header.StyleSheet); err != nil {
					return err
				}
			}
		default:
			if cs, ok := characterSetFrom(tok); ok {
				header.CharacterSet = cs
			}
		}
	}
	return nil
}

// nextMeaningful returns the first token at or after start that is
// neither a consumed sentinel nor a line break.
func (p *Parser) nextMeaningful(start int) (Token, bool) {
	for i := start; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case TokenEmpty, TokenCRLF:
			continue
		default:
			return p.tokens[i], true
		}
	}
	return Token{}, false
}

// consumeGroup removes the balanced-brace group starting at start from
// further consideration and returns its tokens, outer brackets
// included. Consumed positions are overwritten in place with the
// TokenEmpty sentinel.
func (p *Parser) consumeGroup(start int) ([]Token, error) {
	depth := 0
	group := make([]Token, 0, 16)
	for i := start; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		if tok.Kind == TokenEmpty {
			return nil, ErrEmptyToken
		}
		p.tokens[i] = Token{Kind: TokenEmpty}
		group = append(group, tok)
		switch tok.Kind {
		case TokenOpeningBracket:
			depth++
		case TokenClosingBracket:
			depth--
			if depth == 0 {
				return group, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: unterminated group", ErrMalformedScopeStack)
}

// parseFontTable fills the font table from a \fonttbl group. A font
// number opens a new entry, flushing the previous one under its key;
// any closing brace flushes the entry under construction.
func parseFontTable(group []Token, table FontTable) error {
	var font Font
	var ref FontRef
	haveRef := false
	for _, tok := range group {
		switch tok.Kind {
		case TokenControlSymbol:
			switch tok.Word {
			case WordFontNumber:
				if haveRef {
					table[ref] = font
				}
				if tok.Prop.Kind != PropertyValue {
					return fmt.Errorf("%w: %s", ErrInvalidFontIdentifier, tok)
				}
				value, err := tok.Prop.Uint16()
				if err != nil {
					return fmt.Errorf("%w: %s", ErrInvalidFontIdentifier, tok)
				}
				ref = FontRef(value)
				haveRef = true
				font = Font{}
			case WordFontCharset:
				value, err := tok.Prop.Uint8()
				if err != nil {
					return err
				}
				font.CharacterSet = value
			case WordUnknown:
				if family, ok := fontFamilyFrom(tok.Text); ok {
					font.Family = family
				}
			}
		case TokenPlainText:
			font.Name = strings.TrimSuffix(tok.Text, ";")
		case TokenClosingBracket:
			if haveRef {
				table[ref] = font
			}
		}
	}
	return nil
}

// parseColorTable fills the color table from a \colortbl group. Colors
// are keyed by encounter order starting at 1; index 0 is reserved for
// "no color set". \blue arrives last per RTF convention and flushes the
// entry.
func parseColorTable(group []Token, table ColorTable) error {
	ref := ColorRef(1)
	var color Color
	for _, tok := range group {
		if tok.Kind != TokenControlSymbol {
			continue
		}
		switch tok.Word {
		case WordColorRed, WordColorGreen, WordColorBlue:
			if tok.Prop.Kind != PropertyValue {
				return fmt.Errorf("%w: %s", ErrInvalidColorIdentifier, tok)
			}
			value, err := tok.Prop.Uint8()
			if err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidColorIdentifier, tok)
			}
			switch tok.Word {
			case WordColorRed:
				color.Red = value
			case WordColorGreen:
				color.Green = value
			case WordColorBlue:
				color.Blue = value
				table[ref] = color
				ref++
				color = Color{}
			}
		}
	}
	return nil
}

// parseStyleSheet consumes a \stylesheet group without populating the
// table. The schema is intentionally left unimplemented; the group is
// parsed-but-discarded so it cannot leak into the body.
func parseStyleSheet(group []Token, table StyleSheet) error {
	_ = group
	_ = table
	return nil
}

// parseBody runs the scope-stack state machine over the tokens left by
// header extraction and emits style-tagged text runs.
func (p *Parser) parseBody(doc *Document) error {
	stack := make([]scope, 1, 8)
	stack[0] = defaultScope()

	for i := 0; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		switch tok.Kind {
		case TokenEmpty:
			continue
		case TokenOpeningBracket:
			if len(stack) == 0 {
				return fmt.Errorf("%w: group opened outside any scope", ErrMalformedScopeStack)
			}
			stack = append(stack, stack[len(stack)-1])
		case TokenClosingBracket:
			if len(stack) == 0 {
				return fmt.Errorf("%w: closing brace with no open scope", ErrMalformedScopeStack)
			}
			stack = stack[:len(stack)-1]
		case TokenIgnorableDestination:
			return ErrUnexpectedIgnorableDestination
		case TokenPlainText:
			cur, err := currentScope(stack)
			if err != nil {
				return err
			}
			addText(doc, *cur, tok.Text)
		case TokenCRLF:
			cur, err := currentScope(stack)
			if err != nil {
				return err
			}
			addText(doc, *cur, "\n")
		case TokenEscapedChar:
			cur, err := currentScope(stack)
			if err != nil {
				return err
			}
			addText(doc, *cur, string(doc.Header.CharacterSet.Charmap().DecodeByte(tok.Byte)))
		case TokenControlSymbol:
			cur, err := currentScope(stack)
			if err != nil {
				return err
			}
			if err := p.applyControlWord(doc, cur, tok, i); err != nil {
				return err
			}
		}
	}
	if len(stack) != 1 {
		return fmt.Errorf("%w: %d unclosed groups", ErrMalformedScopeStack, len(stack)-1)
	}
	return nil
}

func currentScope(stack []scope) (*scope, error) {
	if len(stack) == 0 {
		return nil, fmt.Errorf("%w: no current scope", ErrMalformedScopeStack)
	}
	return &stack[len(stack)-1], nil
}

// applyControlWord mutates the current scope in place. Unrecognized
// control words are deliberate no-ops so unsupported documents still
// parse.
func (p *Parser) applyControlWord(doc *Document, cur *scope, tok Token, i int) error {
	var err error
	switch tok.Word {
	case WordColorNumber:
		var value uint16
		if value, err = tok.Prop.Uint16(); err == nil {
			cur.painter.ColorRef = ColorRef(value)
		}
	case WordFontNumber:
		var value uint16
		if value, err = tok.Prop.Uint16(); err == nil {
			cur.painter.FontRef = FontRef(value)
		}
	case WordFontSize:
		cur.painter.FontSize, err = tok.Prop.Uint16()
	case WordBold:
		cur.painter.Bold = tok.Prop.AsBool()
	case WordItalic:
		cur.painter.Italic = tok.Prop.AsBool()
	case WordUnderline:
		cur.painter.Underline = tok.Prop.AsBool()
	case WordUnderlineNone:
		cur.painter.Underline = false
	case WordSuperscript:
		cur.painter.Superscript = tok.Prop.AsBool()
	case WordSubscript:
		cur.painter.Subscript = tok.Prop.AsBool()
	case WordSmallcaps:
		cur.painter.Smallcaps = tok.Prop.AsBool()
	case WordStrikethrough:
		cur.painter.Strikethrough = tok.Prop.AsBool()
	case WordPard:
		cur.paragraph = Paragraph{}
	case WordPlain:
		cur.painter = newPainter()
	case WordParDefTab:
		cur.paragraph.TabWidth = tok.Prop.Value()
	case WordLeftAligned, WordRightAligned, WordCenter, WordJustify:
		cur.paragraph.Alignment = alignmentFrom(tok.Word)
	case WordFirstLineIndent:
		cur.paragraph.Indent.FirstLine = tok.Prop.Value()
	case WordLeftIndent:
		cur.paragraph.Indent.Left = tok.Prop.Value()
	case WordRightIndent:
		cur.paragraph.Indent.Right = tok.Prop.Value()
	case WordSpaceBefore:
		cur.paragraph.Spacing.Before = tok.Prop.Value()
	case WordSpaceAfter:
		cur.paragraph.Spacing.After = tok.Prop.Value()
	case WordSpaceBetweenLine:
		cur.paragraph.Spacing.BetweenLine = lineSpacingFrom(tok.Prop.Value())
	case WordSpaceLineMul:
		cur.paragraph.Spacing.LineMultiplier = tok.Prop.Value()
	case WordUnicodeIgnoreCount:
		cur.unicodeIgnoreCount = tok.Prop.Value()
	case WordUnicode:
		return p.appendUnicode(doc, cur, tok, i)
	}
	return err
}

// appendUnicode resolves one or more consecutive \uN escapes into text.
// Writers emit surrogate pairs and multi-codepoint compounds as runs of
// \uN tokens, each optionally paired with single-byte fallback
// characters for non-Unicode readers; the fallback run is dropped.
func (p *Parser) appendUnicode(doc *Document, cur *scope, tok Token, i int) error {
	first, err := tok.Prop.UnicodeValue()
	if err != nil {
		return err
	}
	units := make([]uint16, 1, 4)
	units[0] = first

	// Collect the code units of immediately following unicode escapes and
	// byte-escape fallbacks into the same buffer.
	for j := i + 1; j < len(p.tokens); j++ {
		next := p.tokens[j]
		if next.Kind == TokenEmpty {
			continue
		}
		if next.Kind == TokenControlSymbol && next.Word == WordUnicode {
			unit, err := next.Prop.UnicodeValue()
			if err != nil {
				return err
			}
			units = append(units, unit)
			p.tokens[j] = Token{Kind: TokenEmpty}
			continue
		}
		if next.Kind == TokenEscapedChar {
			units = append(units, uint16(next.Byte))
			p.tokens[j] = Token{Kind: TokenEmpty}
			continue
		}
		break
	}

	// Starting from the second unit, a run of up to unicodeIgnoreCount
	// values <= 255 is fallback noise. Keeping a unit resets the budget.
	kept := units[:1]
	budget := cur.unicodeIgnoreCount
	remaining := budget
	for _, unit := range units[1:] {
		if remaining > 0 && unit <= 255 {
			remaining--
			continue
		}
		kept = append(kept, unit)
		remaining = budget
	}

	text, err := decodeUTF16(kept)
	if err != nil {
		return err
	}
	addText(doc, *cur, text)
	return nil
}

// decodeUTF16 decodes code units into a string, rejecting unpaired
// surrogates instead of substituting replacement characters.
func decodeUTF16(units []uint16) (string, error) {
	var b strings.Builder
	for i := 0; i < len(units); i++ {
		unit := units[i]
		switch {
		case unit >= 0xD800 && unit < 0xDC00:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] >= 0xE000 {
				return "", fmt.Errorf("%w: unpaired high surrogate %#04x", ErrUnicodeDecode, unit)
			}
			b.WriteRune(utf16.DecodeRune(rune(unit), rune(units[i+1])))
			i++
		case unit >= 0xDC00 && unit < 0xE000:
			return "", fmt.Errorf("%w: unpaired low surrogate %#04x", ErrUnicodeDecode, unit)
		default:
			b.WriteRune(rune(unit))
		}
	}
	return b.String(), nil
}

// addText appends text to the document body, extending the last block
// when the formatting state is unchanged so the body stays the minimal
// sequence of maximal uniformly-formatted runs.
func addText(doc *Document, sc scope, text string) {
	if text == "" {
		return
	}
	if n := len(doc.Body); n > 0 {
		last := &doc.Body[n-1]
		if last.Painter == sc.painter && last.Paragraph == sc.paragraph {
			last.Text += text
			return
		}
	}
	doc.Body = append(doc.Body, StyleBlock{
		Painter:   sc.painter,
		Paragraph: sc.paragraph,
		Text:      text,
	})
}
