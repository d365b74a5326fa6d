package lexer

import (
	"lyread/internal/token"
)

// scanStringPart scans one token inside a string literal: a text run, a
// single backslash escape, or the closing quote.
func (lx *Lexer) scanStringPart() token.Token {
	start := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case '"':
		lx.cursor.Bump()
		lx.pop()
		lx.complete()
		return lx.make(token.StringEnd, start)
	case token.EscapePrefix:
		lx.cursor.Bump()
		// escape covers exactly one following rune; at EOF it is just the prefix
		lx.bumpRune()
		return lx.make(token.StringEscape, start)
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' || b == token.EscapePrefix {
			break
		}
		lx.bumpRune()
	}
	return lx.make(token.StringText, start)
}

// scanBlockCommentPart scans the text of a block comment or its closing %}.
func (lx *Lexer) scanBlockCommentPart() token.Token {
	start := lx.cursor.Mark()
	if lx.try2('%', '}') {
		lx.pop()
		return lx.make(token.BlockCommentEnd, start)
	}
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '%' && b1 == '}' {
			break
		}
		lx.bumpRune()
	}
	return lx.make(token.BlockCommentText, start)
}
