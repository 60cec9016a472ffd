package rtf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Scan tokenizes a complete RTF document in a single left-to-right
// pass. The scanner accumulates a pending slice of ordinary characters
// and cuts it whenever a structural character ('{', '}', '\' or a line
// break) is met, unless the character is escaped by a preceding
// backslash. Each cut slice is turned into zero or more tokens.
func Scan(src string) ([]Token, error) {
	src = strings.TrimSpace(src)
	tokens := make([]Token, 0, len(src)/8+4)

	sliceStart := 0
	prev := ' '
	for i, c := range src {
		switch c {
		case '{', '}', '\\', '\n':
			if prev == '\\' {
				// Escaped structural character, absorbed into the slice.
				break
			}
			if sliceStart < i {
				sliceTokens, err := tokenize(src[sliceStart:i])
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, sliceTokens...)
			}
			sliceStart = i
		}
		prev = c
	}

	// The last pending slice must be the closing brace of the document.
	if sliceStart < len(src) {
		if last := src[sliceStart:]; last != "}" {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidLastChar, last)
		}
		tokens = append(tokens, Token{Kind: TokenClosingBracket})
	}
	return tokens, nil
}

// tokenize converts one scanner slice into tokens, dispatching on the
// first one or two characters after trimming leading spaces. Several
// cases re-enter tokenize on the remainder of the slice.
func tokenize(slice string) ([]Token, error) {
	trimmed := strings.Trim(slice, " ")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptySlice, slice)
	}
	first, size := utf8.DecodeRuneInString(trimmed)
	hasSecond := len(trimmed) > size
	second, _ := utf8.DecodeRuneInString(trimmed[size:])

	switch {
	case first == '\\' && hasSecond:
		switch {
		case second == '{', second == '}', second == '\\':
			// Escaped char: drop the backslash, keep the rest verbatim.
			return []Token{plainText(slice[1:])}, nil
		case second == '\'':
			return tokenizeHexEscape(trimmed)
		case second == '\n':
			return appendVerbatimTail([]Token{{Kind: TokenCRLF}}, slice[2:]), nil
		case second >= 'a' && second <= 'z':
			return tokenizeControlWord(slice)
		case second == '*':
			return []Token{{Kind: TokenIgnorableDestination}}, nil
		default:
			return nil, nil
		}
	case first == '{' && !hasSecond:
		return []Token{{Kind: TokenOpeningBracket}}, nil
	case first == '}' && !hasSecond:
		return []Token{{Kind: TokenClosingBracket}}, nil
	case first == '{':
		return appendVerbatimTail([]Token{{Kind: TokenOpeningBracket}}, slice[1:]), nil
	case first == '}':
		return appendVerbatimTail([]Token{{Kind: TokenClosingBracket}}, slice[1:]), nil
	default:
		// Trailing spaces are significant document text ("en gras" after a
		// control word keeps its separating space); only leading whitespace
		// left over from a cut or a consumed delimiter, and a carriage
		// return left by a CRLF line ending, are dropped.
		text := strings.TrimRight(strings.TrimLeft(slice, " \t\r\n"), "\r")
		if text == "" {
			return nil, nil
		}
		return []Token{plainText(text)}, nil
	}
}

// tokenizeControlWord splits a control-word slice into the identifier
// and its tail. The first whitespace is the delimiter terminating the
// control word and is consumed; anything after it is document text.
func tokenizeControlWord(slice string) ([]Token, error) {
	ident, tail := splitFirstWhitespace(slice)
	// A table-terminator semicolon would corrupt numeric suffix parsing.
	ident = stripTrailingSemicolon(ident)
	word, prop, prefix, err := ControlWordFrom(ident)
	if err != nil {
		return nil, err
	}
	ret := []Token{controlSymbol(word, prop, prefix)}
	if tail != "" {
		ret, err = appendTail(ret, tail)
		if err != nil {
			return nil, err
		}
	}
	// A \uN escape may be followed by an intentional extra space that the
	// plain-text arm would trim away; keep the tail verbatim as well.
	if word == WordUnicode && tail != "" {
		ret = append(ret, plainText(tail))
	}
	return ret, nil
}

// tokenizeHexEscape handles \'XX byte escapes. The raw byte is kept on
// the token; decoding through the document code page happens in the
// parser once the character set is known.
func tokenizeHexEscape(slice string) ([]Token, error) {
	if len(slice) < 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEscape, slice)
	}
	value, err := strconv.ParseUint(slice[2:4], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEscape, slice[:4])
	}
	ret := []Token{escapedChar(byte(value))}
	if tail := slice[4:]; tail != "" {
		return appendTail(ret, tail)
	}
	return ret, nil
}

// appendVerbatimTail appends the tail of a bracket or escaped-newline
// slice as literal text. Such a tail can contain no structural
// characters (the scanner would have cut there), so it is kept
// verbatim: the space after a closing brace and the indentation after
// an escaped line break are document text. Only a trailing carriage
// return left by a CRLF line ending is dropped.
func appendVerbatimTail(tokens []Token, tail string) []Token {
	tail = strings.TrimRight(tail, "\r")
	if strings.TrimSpace(tail) == "" {
		return tokens
	}
	return append(tokens, plainText(tail))
}

// appendTail re-enters tokenize on the remainder of a slice and appends
// the resulting tokens. A tail that trims to nothing yields no tokens.
func appendTail(tokens []Token, tail string) ([]Token, error) {
	if strings.Trim(tail, " ") == "" {
		return tokens, nil
	}
	tailTokens, err := tokenize(tail)
	if err != nil {
		return nil, err
	}
	return append(tokens, tailTokens...), nil
}

// splitFirstWhitespace cuts a slice at its first whitespace character.
// The delimiter itself belongs to neither half.
func splitFirstWhitespace(s string) (string, string) {
	for i, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if i == 0 {
				return s, ""
			}
			return s[:i], s[i+utf8.RuneLen(c):]
		}
	}
	return s, ""
}
