package rtf

import "errors"

// Lexing errors. A lex failure means the raw text is not a well-formed
// RTF byte stream; none of these are retriable.
var (
	// ErrInvalidLastChar reports input that does not end on a lone '}'.
	ErrInvalidLastChar = errors.New("rtf: invalid last character, document must end with '}'")
	// ErrInvalidEscape reports a malformed \'XX byte escape.
	ErrInvalidEscape = errors.New("rtf: invalid hexadecimal escape")
	// ErrInvalidControlWord reports a control word whose numeric suffix
	// does not parse as a 32-bit integer.
	ErrInvalidControlWord = errors.New("rtf: invalid control word")
	// ErrEmptySlice reports a degenerate token boundary in the scanner.
	ErrEmptySlice = errors.New("rtf: empty token slice")
)

// Parsing errors. A parse failure means the token sequence does not
// form a valid document; there is no partial result on failure.
var (
	// ErrInvalidToken reports a document that is not wrapped in a single
	// brace-delimited group.
	ErrInvalidToken = errors.New("rtf: invalid document boundary token")
	// ErrNoMoreToken reports an empty token sequence.
	ErrNoMoreToken = errors.New("rtf: no more token")
	// ErrMalformedScopeStack reports unbalanced braces: a pop on an empty
	// scope stack or leftover pushes at end of document.
	ErrMalformedScopeStack = errors.New("rtf: malformed scope stack")
	// ErrInvalidFontIdentifier reports a font-table entry keyed by a
	// non-numeric font number.
	ErrInvalidFontIdentifier = errors.New("rtf: invalid font identifier")
	// ErrInvalidColorIdentifier reports a color-table component without a
	// numeric value.
	ErrInvalidColorIdentifier = errors.New("rtf: invalid color identifier")
	// ErrValueOutOfRange reports a property value that does not fit the
	// target numeric width.
	ErrValueOutOfRange = errors.New("rtf: property value out of range")
	// ErrUnicodeDecode reports an invalid \uN escape or surrogate
	// sequence.
	ErrUnicodeDecode = errors.New("rtf: unicode decode failure")
	// ErrUnexpectedIgnorableDestination reports a \* group that survived
	// header extraction into the body pass.
	ErrUnexpectedIgnorableDestination = errors.New("rtf: unexpected ignorable destination in body")
	// ErrEmptyToken reports a consumed-token sentinel in a position that
	// requires a concrete token.
	ErrEmptyToken = errors.New("rtf: unexpected empty token")
)
