package item

// Token is any token that is not otherwise recognized.
type Token struct{ Base }

func (*Token) Kind() Kind { return KindToken }

// Duration is a note length, kept as its raw token.
type Duration struct{ Base }

func (*Duration) Kind() Kind { return KindDuration }

// Chord is a set of simultaneous notes sharing one duration.
type Chord struct {
	Base
	durable
	container
}

func (*Chord) Kind() Kind { return KindChord }

// Note is a single pitched event.
type Note struct {
	Base
	durable
	// Pitch is filled in by a pitch-aware layer; the reader leaves it nil.
	Pitch any
}

func (*Note) Kind() Kind { return KindNote }

// Skip advances time without sound.
type Skip struct {
	Base
	durable
}

func (*Skip) Kind() Kind { return KindSkip }

// Rest is a silent event.
type Rest struct {
	Base
	durable
}

func (*Rest) Kind() Kind { return KindRest }

// Music is a { } or << >> expression.
type Music struct {
	Base
	container
	Simultaneous bool
}

func (*Music) Kind() Kind { return KindMusic }

// SchemeValue holds the full list of tokens after a # or $.
type SchemeValue struct{ Base }

func (*SchemeValue) Kind() Kind { return KindScheme }

// StringValue is a double-quoted string.
type StringValue struct {
	Base
	// Value is the string content with one level of escaping removed.
	Value string
}

func (*StringValue) Kind() Kind { return KindString }

// Comment is a line or block comment.
type Comment struct{ Base }

func (*Comment) Kind() Kind { return KindComment }

var (
	_ Durable   = (*Chord)(nil)
	_ Container = (*Chord)(nil)
	_ Durable   = (*Note)(nil)
	_ Durable   = (*Skip)(nil)
	_ Durable   = (*Rest)(nil)
	_ Container = (*Music)(nil)
	_ Item      = (*Token)(nil)
	_ Item      = (*Duration)(nil)
	_ Item      = (*SchemeValue)(nil)
	_ Item      = (*StringValue)(nil)
	_ Item      = (*Comment)(nil)
)
