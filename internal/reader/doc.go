// Package reader turns a token source into a lazy sequence of syntax items.
//
// Whitespace is left out, but comments are retained. The reader never looks
// ahead: it classifies each token as it is pulled and, for tokens that open a
// nested region (Scheme expressions, block comments, strings), drains the
// region with Consume, relying solely on the depth reported by the source.
package reader
