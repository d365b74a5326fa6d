package driver

import (
	"fmt"

	"lyread/internal/cache"
	"lyread/internal/document"
	"lyread/internal/reader"
)

// Options controls reading.
type Options struct {
	DropUnknown  bool
	NormalizeNFC bool
	// Flat skips the document layer; items are returned as the reader yields them.
	Flat           bool
	MaxDiagnostics int
	// Cache, when set, is consulted before reading and filled afterwards.
	Cache *cache.DiskCache
	// Registry owns the built documents; a private one is used when nil.
	Registry *document.Registry

	// Batch options.
	Jobs       int
	Extensions []string
	Progress   ProgressSink
}

// DefaultExtensions are the LilyPond source suffixes read by ReadDir.
var DefaultExtensions = []string{".ly", ".ily", ".lyi"}

func (o Options) readerOptions() []reader.Option {
	var opts []reader.Option
	if o.DropUnknown {
		opts = append(opts, reader.WithDropUnknown())
	}
	return opts
}

// cacheOptions lists every option that changes the output for equal content.
func (o Options) cacheOptions() []string {
	return []string{
		fmt.Sprintf("drop_unknown=%t", o.DropUnknown),
		fmt.Sprintf("nfc=%t", o.NormalizeNFC),
		fmt.Sprintf("flat=%t", o.Flat),
		fmt.Sprintf("max_diagnostics=%d", o.MaxDiagnostics),
	}
}
