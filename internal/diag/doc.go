// Package diag defines the diagnostic model shared by the tokenizer and the
// document layer.
//
// The reader core never reports diagnostics: malformed input degrades into
// short token sequences there. Problems are surfaced by the lexer (unterminated
// regions, unbalanced delimiters) and by the document builder (containers that
// do not nest, durations without a durable item).
//
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// supports a limit, sorting and deduplication. Rendering lives in internal/dump.
package diag
