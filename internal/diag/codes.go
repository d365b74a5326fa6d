package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedScheme       Code = 1004
	LexUnbalancedClose          Code = 1005
	LexUnterminatedMusic        Code = 1006

	// Документ
	DocInfo           Code = 2000
	DocUnmatchedClose Code = 2001
	DocUnclosed       Code = 2002
	DocDetachedLength Code = 2003

	// Ввод-вывод
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedScheme:       "Unterminated Scheme expression",
	LexUnbalancedClose:          "Unbalanced closing delimiter",
	LexUnterminatedMusic:        "Unterminated music block",
	DocInfo:                     "Document information",
	DocUnmatchedClose:           "Closing delimiter without matching container",
	DocUnclosed:                 "Container is never closed",
	DocDetachedLength:           "Duration is not attached to a note, rest, skip or chord",
	IOLoadFileError:             "I/O load file error",
	IOCacheError:                "Cache error",
}

// ID returns the stable textual identifier, e.g. LEX1002.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
