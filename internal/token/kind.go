package token

// Kind represents the lexical class of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. It is also the root of the class hierarchy.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Abstract classes. The lexer never emits them directly.

	// Comment is the class of every comment token.
	Comment
	// String is the class of every token belonging to a string literal.
	String
	// Character is the class of single escaped characters.
	Character
	// Duration is the class of duration tokens.
	Duration
	// Scheme is the class of tokens belonging to an embedded Scheme expression.
	Scheme
	// Delimiter is the class of structural music delimiters.
	Delimiter
	// Rest is the class of rest tokens.
	Rest

	// LineComment is a '%' comment running to the end of the line.
	LineComment // % ...
	// BlockCommentStart opens a block comment.
	BlockCommentStart // %{
	// BlockCommentText is the interior of a block comment.
	BlockCommentText
	// BlockCommentEnd closes a block comment.
	BlockCommentEnd // %}

	// StringStart opens a double-quoted string.
	StringStart // "
	// StringText is a run of literal string characters.
	StringText
	// StringEscape is a backslash escape inside a string, e.g. \n or \".
	StringEscape
	// StringEnd closes a double-quoted string.
	StringEnd // "

	// SchemeStart introduces an embedded Scheme expression.
	SchemeStart // # or $
	// SchemeOpenParen opens a Scheme list.
	SchemeOpenParen // (
	// SchemeCloseParen closes a Scheme list.
	SchemeCloseParen // )
	// SchemeQuote is a quote prefix.
	SchemeQuote // ' ` ,
	// SchemeBool is a boolean literal.
	SchemeBool // #t #f
	// SchemeNumber is a numeric literal.
	SchemeNumber
	// SchemeWord is a symbol, keyword or character literal.
	SchemeWord
	// SchemeComment is a ';' comment inside Scheme.
	SchemeComment // ; ...
	// SchemeLilyStart opens embedded music inside Scheme.
	SchemeLilyStart // #{
	// SchemeLilyEnd closes embedded music inside Scheme.
	SchemeLilyEnd // #}

	// SequentialStart opens sequential music.
	SequentialStart // {
	// SequentialEnd closes sequential music.
	SequentialEnd // }
	// SimultaneousStart opens simultaneous music.
	SimultaneousStart // <<
	// SimultaneousEnd closes simultaneous music.
	SimultaneousEnd // >>
	// ChordStart opens a chord.
	ChordStart // <
	// ChordEnd closes a chord.
	ChordEnd // >

	// Note is a pitch name with optional octave marks.
	Note // c' fis,, bes!
	// RestToken is the 'r' rest.
	RestToken // r
	// MultiMeasureRest is the 'R' rest.
	MultiMeasureRest // R
	// Skip is the 's' skip.
	Skip // s
	// Length is a note length with optional dots.
	Length // 4 8. \breve
	// DurationScaling multiplies the preceding length.
	DurationScaling // *3/2
	// Fraction is a plain n/m fraction (time signatures and the like).
	Fraction // 3/4

	// Command is a backslash command.
	Command // \relative \< \!
	// VoiceSeparator separates voices in simultaneous music.
	VoiceSeparator // \\
	// Name is any other word.
	Name
	// Symbol is any other punctuation character.
	Symbol // = | ~ ( ) [ ] - ^ _ . ...

	kindCount
)

// parents holds the immediate superclass of every kind; Invalid means "root".
var parents = [kindCount]Kind{
	LineComment:       Comment,
	BlockCommentStart: Comment,
	BlockCommentText:  Comment,
	BlockCommentEnd:   Comment,
	StringStart:       String,
	StringText:        String,
	StringEscape:      Character,
	Character:         String,
	StringEnd:         String,
	SchemeStart:       Scheme,
	SchemeOpenParen:   Scheme,
	SchemeCloseParen:  Scheme,
	SchemeQuote:       Scheme,
	SchemeBool:        Scheme,
	SchemeNumber:      Scheme,
	SchemeWord:        Scheme,
	SchemeComment:     Comment,
	SchemeLilyStart:   Scheme,
	SchemeLilyEnd:     Scheme,
	SequentialStart:   Delimiter,
	SequentialEnd:     Delimiter,
	SimultaneousStart: Delimiter,
	SimultaneousEnd:   Delimiter,
	ChordStart:        Delimiter,
	ChordEnd:          Delimiter,
	RestToken:         Rest,
	MultiMeasureRest:  Rest,
	Length:            Duration,
	DurationScaling:   Duration,
}

// Parent returns the immediate superclass of k, or Invalid for root classes.
func (k Kind) Parent() Kind {
	if k >= kindCount {
		return Invalid
	}
	return parents[k]
}

// Is reports whether k equals class or descends from it.
func (k Kind) Is(class Kind) bool {
	if class == Invalid {
		return k == Invalid
	}
	for c := k; ; c = c.Parent() {
		if c == class {
			return true
		}
		if c == Invalid {
			return false
		}
	}
}

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsAbstract reports whether k is a class that the lexer never emits.
func (k Kind) IsAbstract() bool {
	switch k {
	case Comment, String, Character, Duration, Scheme, Delimiter, Rest:
		return true
	default:
		return false
	}
}

var kindNames = [kindCount]string{
	Invalid:           "Invalid",
	EOF:               "EOF",
	Comment:           "Comment",
	String:            "String",
	Character:         "Character",
	Duration:          "Duration",
	Scheme:            "Scheme",
	Delimiter:         "Delimiter",
	Rest:              "Rest",
	LineComment:       "LineComment",
	BlockCommentStart: "BlockCommentStart",
	BlockCommentText:  "BlockCommentText",
	BlockCommentEnd:   "BlockCommentEnd",
	StringStart:       "StringStart",
	StringText:        "StringText",
	StringEscape:      "StringEscape",
	StringEnd:         "StringEnd",
	SchemeStart:       "SchemeStart",
	SchemeOpenParen:   "SchemeOpenParen",
	SchemeCloseParen:  "SchemeCloseParen",
	SchemeQuote:       "SchemeQuote",
	SchemeBool:        "SchemeBool",
	SchemeNumber:      "SchemeNumber",
	SchemeWord:        "SchemeWord",
	SchemeComment:     "SchemeComment",
	SchemeLilyStart:   "SchemeLilyStart",
	SchemeLilyEnd:     "SchemeLilyEnd",
	SequentialStart:   "SequentialStart",
	SequentialEnd:     "SequentialEnd",
	SimultaneousStart: "SimultaneousStart",
	SimultaneousEnd:   "SimultaneousEnd",
	ChordStart:        "ChordStart",
	ChordEnd:          "ChordEnd",
	Note:              "Note",
	RestToken:         "RestToken",
	MultiMeasureRest:  "MultiMeasureRest",
	Skip:              "Skip",
	Length:            "Length",
	DurationScaling:   "DurationScaling",
	Fraction:          "Fraction",
	Command:           "Command",
	VoiceSeparator:    "VoiceSeparator",
	Name:              "Name",
	Symbol:            "Symbol",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
