package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// peekRune читает текущую руну, не сдвигая курсор
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.limit()])
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// bumpWhile consumes runes while pred holds and reports how many were consumed.
func (lx *Lexer) bumpWhile(pred func(rune) bool) int {
	n := 0
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !pred(r) {
			return n
		}
		lx.bumpRune()
		n++
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\f' }

func isWhitespace(r rune) bool { return r == '\n' || (r < utf8.RuneSelf && isSpace(byte(r))) }

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isDecRune(r rune) bool { return r >= '0' && r <= '9' }

func isAsciiLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isWordRune(r rune) bool { return unicode.IsLetter(r) }

// isSchemeDelimiter reports runes that end a Scheme atom.
func isSchemeDelimiter(r rune) bool {
	switch r {
	case '(', ')', '"', ';', '\'', '`':
		return true
	}
	return isWhitespace(r)
}

// pitch name suffixes (Dutch note names plus quarter tones)
var pitchSuffixes = map[string]bool{
	"": true, "is": true, "isis": true, "es": true, "eses": true,
	"s": true, "ses": true, "ih": true, "eh": true, "isih": true, "eseh": true,
}

func isPitchName(word string) bool {
	if word == "" || word[0] < 'a' || word[0] > 'g' {
		return false
	}
	return pitchSuffixes[word[1:]]
}
