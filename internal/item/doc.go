// Package item defines the syntax items produced by the reader.
//
// Every item embeds Base, which carries the owning document handle and the
// tokens the item was read from. Capabilities are composed: Durable items
// carry an optional Duration, Containers hold child items. Chord is both.
//
// Items are only ever compared by identity. The reader populates an item
// completely before yielding it; afterwards only the document layer touches
// it, to stamp the document handle, attach children and attach durations.
package item
