// Package rtf parses Rich Text Format source into a structured
// document: a header (character set, font table, color table,
// stylesheet) and a body of contiguous, uniformly-styled text runs.
//
// Parsing is a two-stage, single-pass pipeline: Scan tokenizes the
// brace-delimited, backslash-escaped grammar into typed tokens, and
// Parser resolves header groups wherever they occur, tracks the nested
// inheriting formatting scopes across groups, and decodes RTF's unicode
// escape/fallback scheme into correct text.
//
// Core properties:
//   - Single pass lexing and parsing over an in-memory buffer
//   - Unknown control words are preserved, never a parse failure
//   - Byte escapes decoded through the document's code page
//   - O(1) token consumption via in-place sentinels
//
// Example:
//
//	tokens, err := rtf.Scan(`{\rtf1\ansi Hello {\b World}}`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := rtf.NewParser(tokens).Parse()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Text())
//
// File loading, serialization and display are left to callers; they
// consume only the Document value.
package rtf
