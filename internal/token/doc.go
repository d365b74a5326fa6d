// Package token defines the lexical token taxonomy of the LilyPond reader.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Kinds form a single-parent class hierarchy; Kind.Is tests membership,
//     equality tests the exact class.
//   - Whitespace is Trivia attached to the following token; comments are
//     tokens and never trivia.
package token
