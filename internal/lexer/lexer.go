package lexer

import (
	"iter"

	"lyread/internal/source"
	"lyread/internal/token"
)

// Lexer turns LilyPond source into tokens and tracks the nesting depth of
// the regions it has entered. Depth changes exactly when the token that opens
// or closes a region is returned by Next.
type Lexer struct {
	file        *source.File
	cursor      Cursor
	opts        Options
	stack       []frame
	hold        []token.Trivia // накопленные leading trivia
	eofReported bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		stack:  []frame{{mode: modeMusic}},
	}
}

// Depth returns the current nesting depth; 1 at top level.
func (lx *Lexer) Depth() int {
	return len(lx.stack)
}

// Next returns the next significant token with its Leading trivia.
// After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	switch lx.top() {
	case modeString:
		if lx.cursor.EOF() {
			return lx.eof()
		}
		return lx.scanStringPart()
	case modeBlockComment:
		if lx.cursor.EOF() {
			return lx.eof()
		}
		return lx.scanBlockCommentPart()
	}

	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		// Leading из hold не приклеиваем к EOF
		lx.hold = nil
		return lx.eof()
	}

	var tok token.Token
	if lx.top().isScheme() {
		tok = lx.scanScheme()
	} else {
		tok = lx.scanMusic()
	}
	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// All yields every token up to, but not including, EOF.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if tok.Kind.IsEOF() || !yield(tok) {
				return
			}
		}
	}
}

func (lx *Lexer) eof() token.Token {
	lx.reportUnclosed()
	return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
