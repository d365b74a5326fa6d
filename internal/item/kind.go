package item

// Kind is the variant tag of an Item.
type Kind uint8

const (
	KindToken Kind = iota
	KindDuration
	KindChord
	KindNote
	KindSkip
	KindRest
	KindMusic
	KindScheme
	KindString
	KindComment
)

var kindNames = [...]string{
	KindToken:    "Token",
	KindDuration: "Duration",
	KindChord:    "Chord",
	KindNote:     "Note",
	KindSkip:     "Skip",
	KindRest:     "Rest",
	KindMusic:    "Music",
	KindScheme:   "SchemeValue",
	KindString:   "StringValue",
	KindComment:  "Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
