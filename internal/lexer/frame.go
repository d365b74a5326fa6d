package lexer

import (
	"lyread/internal/diag"
	"lyread/internal/source"
)

// mode is the lexical context a frame puts the lexer in.
type mode uint8

const (
	modeMusic        mode = iota // top level
	modeSequential               // { ... }
	modeSimultaneous             // << ... >>
	modeChord                    // < ... >
	modeString                   // " ... "
	modeBlockComment             // %{ ... %}
	modeSchemeArg                // one expression after # or $
	modeSchemeList               // ( ... )
	modeSchemeMusic              // #{ ... #}
)

func (m mode) isMusic() bool {
	switch m {
	case modeMusic, modeSequential, modeSimultaneous, modeChord, modeSchemeMusic:
		return true
	default:
		return false
	}
}

func (m mode) isScheme() bool {
	return m == modeSchemeArg || m == modeSchemeList
}

// unclosed returns the diagnostic reported when a frame is still open at EOF.
func (m mode) unclosed() (diag.Code, string) {
	switch m {
	case modeString:
		return diag.LexUnterminatedString, "unterminated string literal"
	case modeBlockComment:
		return diag.LexUnterminatedBlockComment, "unterminated block comment"
	case modeSchemeArg, modeSchemeList:
		return diag.LexUnterminatedScheme, "unterminated Scheme expression"
	default:
		return diag.LexUnterminatedMusic, "unterminated music block"
	}
}

// frame is one entry of the mode stack; its size is the lexer depth.
type frame struct {
	mode mode
	open source.Span
}

func (lx *Lexer) top() mode {
	return lx.stack[len(lx.stack)-1].mode
}

func (lx *Lexer) push(m mode, open source.Span) {
	lx.stack = append(lx.stack, frame{mode: m, open: open})
}

// pop never removes the root frame.
func (lx *Lexer) pop() {
	if len(lx.stack) > 1 {
		lx.stack = lx.stack[:len(lx.stack)-1]
	}
}

// complete finishes a one-expression Scheme frame once its expression is done.
func (lx *Lexer) complete() {
	if lx.top() == modeSchemeArg {
		lx.pop()
	}
}

// reportUnclosed reports every frame left open at EOF, innermost first.
func (lx *Lexer) reportUnclosed() {
	if lx.eofReported {
		return
	}
	lx.eofReported = true
	for i := len(lx.stack) - 1; i > 0; i-- {
		f := lx.stack[i]
		code, msg := f.mode.unclosed()
		lx.errLex(code, f.open, msg)
	}
}
