package lexer

import (
	"unicode"
	"unicode/utf8"

	"lyread/internal/diag"
	"lyread/internal/token"
)

// scanMusic scans one token in a music context.
func (lx *Lexer) scanMusic() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	switch {
	case b == '%':
		lx.cursor.Bump()
		if lx.cursor.Eat('{') {
			tok := lx.make(token.BlockCommentStart, start)
			lx.push(modeBlockComment, tok.Span)
			return tok
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.make(token.LineComment, start)

	case b == '"':
		lx.cursor.Bump()
		tok := lx.make(token.StringStart, start)
		lx.push(modeString, tok.Span)
		return tok

	case b == '#' || b == '$':
		if lx.top() == modeSchemeMusic && lx.try2('#', '}') {
			lx.pop()
			lx.complete()
			return lx.make(token.SchemeLilyEnd, start)
		}
		lx.cursor.Bump()
		tok := lx.make(token.SchemeStart, start)
		lx.push(modeSchemeArg, tok.Span)
		return tok

	case b == '{':
		lx.cursor.Bump()
		tok := lx.make(token.SequentialStart, start)
		lx.push(modeSequential, tok.Span)
		return tok

	case b == '}':
		lx.cursor.Bump()
		return lx.close(modeSequential, token.SequentialEnd, start)

	case b == '<':
		if lx.try2('<', '<') {
			tok := lx.make(token.SimultaneousStart, start)
			lx.push(modeSimultaneous, tok.Span)
			return tok
		}
		lx.cursor.Bump()
		tok := lx.make(token.ChordStart, start)
		lx.push(modeChord, tok.Span)
		return tok

	case b == '>':
		// внутри аккорда '>' всегда закрывает аккорд, даже если за ним ещё '>'
		if lx.top() == modeChord {
			lx.cursor.Bump()
			lx.pop()
			return lx.make(token.ChordEnd, start)
		}
		if lx.try2('>', '>') {
			return lx.close(modeSimultaneous, token.SimultaneousEnd, start)
		}
		lx.cursor.Bump()
		return lx.make(token.Symbol, start)

	case b == '\\':
		return lx.scanCommand()

	case isDec(b):
		return lx.scanLength()

	case b == '*':
		lx.cursor.Bump()
		if isDec(lx.cursor.Peek()) {
			lx.scanDigits()
			if lx.cursor.Peek() == '/' {
				if _, b1, ok := lx.cursor.Peek2(); ok && isDec(b1) {
					lx.cursor.Bump()
					lx.scanDigits()
				}
			}
			return lx.make(token.DurationScaling, start)
		}
		return lx.make(token.Symbol, start)
	}

	r, sz := lx.peekRune()
	switch {
	case isWordRune(r):
		return lx.scanWord()
	case r == utf8.RuneError && sz == 1, unicode.IsControl(r):
		lx.bumpRune()
		tok := lx.make(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character")
		return tok
	default:
		lx.bumpRune()
		return lx.make(token.Symbol, start)
	}
}

// close pops a frame of the expected mode, or reports an unbalanced closer
// and leaves the stack untouched.
func (lx *Lexer) close(want mode, kind token.Kind, start Mark) token.Token {
	tok := lx.make(kind, start)
	if lx.top() != want {
		lx.errLex(diag.LexUnbalancedClose, tok.Span, "unbalanced "+tok.Text)
		return tok
	}
	lx.pop()
	return tok
}

// scanWord scans note names, rests, skips and other words.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	lx.bumpWhile(isWordRune)
	sp := lx.cursor.SpanFrom(start)
	word := string(lx.file.Content[sp.Start:sp.End])

	switch {
	case word == "r":
		return lx.make(token.RestToken, start)
	case word == "R":
		return lx.make(token.MultiMeasureRest, start)
	case word == "s":
		return lx.make(token.Skip, start)
	case isPitchName(word):
		// octave marks and accidental forcing belong to the note
		for lx.cursor.Peek() == '\'' || lx.cursor.Peek() == ',' {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == '!' || lx.cursor.Peek() == '?' {
			lx.cursor.Bump()
		}
		return lx.make(token.Note, start)
	default:
		return lx.make(token.Name, start)
	}
}

// scanCommand scans \word, \\ and one-character commands such as \< or \!.
func (lx *Lexer) scanCommand() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.Eat('\\') {
		return lx.make(token.VoiceSeparator, start)
	}
	if isAsciiLetter(lx.cursor.Peek()) {
		for isAsciiLetter(lx.cursor.Peek()) || (lx.cursor.Peek() == '-' && lx.nextIsLetter()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		switch string(lx.file.Content[sp.Start:sp.End]) {
		case `\breve`, `\longa`, `\maxima`:
			lx.scanDots()
			return lx.make(token.Length, start)
		}
		return lx.make(token.Command, start)
	}
	r, sz := lx.peekRune()
	if sz == 0 || isWhitespace(r) {
		tok := lx.make(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "lone backslash")
		return tok
	}
	lx.bumpRune()
	return lx.make(token.Command, start)
}

func (lx *Lexer) nextIsLetter() bool {
	_, b1, ok := lx.cursor.Peek2()
	return ok && isAsciiLetter(b1)
}

// scanLength scans 4, 8.., 16 or a fraction like 3/4.
func (lx *Lexer) scanLength() token.Token {
	start := lx.cursor.Mark()
	lx.scanDigits()
	if lx.cursor.Peek() == '/' {
		if _, b1, ok := lx.cursor.Peek2(); ok && isDec(b1) {
			lx.cursor.Bump()
			lx.scanDigits()
			return lx.make(token.Fraction, start)
		}
	}
	lx.scanDots()
	return lx.make(token.Length, start)
}

func (lx *Lexer) scanDigits() {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanDots() {
	for lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
