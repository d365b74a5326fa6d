package lexer

import (
	"strconv"

	"lyread/internal/diag"
	"lyread/internal/token"
)

// scanScheme scans one token of an embedded Scheme expression. Atoms, closed
// lists, strings and embedded music complete a pending one-expression frame;
// quote prefixes and comments do not.
func (lx *Lexer) scanScheme() token.Token {
	start := lx.cursor.Mark()
	switch b := lx.cursor.Peek(); b {
	case '(':
		lx.cursor.Bump()
		tok := lx.make(token.SchemeOpenParen, start)
		lx.push(modeSchemeList, tok.Span)
		return tok

	case ')':
		lx.cursor.Bump()
		tok := lx.make(token.SchemeCloseParen, start)
		if lx.top() != modeSchemeList {
			lx.errLex(diag.LexUnbalancedClose, tok.Span, "unbalanced )")
		} else {
			lx.pop()
		}
		lx.complete()
		return tok

	case '"':
		lx.cursor.Bump()
		tok := lx.make(token.StringStart, start)
		lx.push(modeString, tok.Span)
		return tok

	case ';':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.make(token.SchemeComment, start)

	case '\'', '`':
		lx.cursor.Bump()
		return lx.make(token.SchemeQuote, start)

	case ',':
		lx.cursor.Bump()
		lx.cursor.Eat('@')
		return lx.make(token.SchemeQuote, start)

	case '#':
		return lx.scanSchemeHash()
	}

	lx.bumpWhile(func(r rune) bool { return !isSchemeDelimiter(r) })
	tok := lx.make(token.SchemeWord, start)
	if isSchemeNumber(tok.Text) {
		tok.Kind = token.SchemeNumber
	}
	lx.complete()
	return tok
}

// scanSchemeHash handles the '#' forms: #{ music, #( vectors, booleans,
// characters and keywords.
func (lx *Lexer) scanSchemeHash() token.Token {
	start := lx.cursor.Mark()
	if lx.try2('#', '{') {
		tok := lx.make(token.SchemeLilyStart, start)
		lx.push(modeSchemeMusic, tok.Span)
		return tok
	}
	if lx.try2('#', '(') {
		tok := lx.make(token.SchemeOpenParen, start)
		lx.push(modeSchemeList, tok.Span)
		return tok
	}
	lx.cursor.Bump() // '#'
	if lx.cursor.Eat('\\') {
		// character literal: the first rune is taken even if it is a delimiter
		lx.bumpRune()
	}
	lx.bumpWhile(func(r rune) bool { return !isSchemeDelimiter(r) })
	tok := lx.make(token.SchemeWord, start)
	switch tok.Text {
	case "#t", "#f", "#true", "#false":
		tok.Kind = token.SchemeBool
	}
	lx.complete()
	return tok
}

func isSchemeNumber(s string) bool {
	if s == "" || s == "+" || s == "-" || s == "." {
		return false
	}
	if c := s[0]; !isDec(c) && c != '+' && c != '-' && c != '.' {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	// rationals such as 3/4
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			_, errNum := strconv.Atoi(s[:i])
			_, errDen := strconv.Atoi(s[i+1:])
			return errNum == nil && errDen == nil
		}
	}
	return false
}
