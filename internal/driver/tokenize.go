package driver

import (
	"context"
	"fmt"

	"lyread/internal/diag"
	"lyread/internal/lexer"
	"lyread/internal/logging"
	"lyread/internal/source"
	"lyread/internal/token"
	"lyread/internal/trace"
)

// TokenizeResult holds the tokens of one file and the depth of the token
// source after each of them.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Depths  []int
	Bag     *diag.Bag
}

// Tokenize lexes path up to, but not including, EOF.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.BeginContext(ctx, trace.ScopePass, "tokenize")
	defer span.End("")

	fs := source.NewFileSet()
	id, err := fs.LoadWith(path, source.LoadOptions{NFC: opts.NormalizeNFC})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	toks, depths := lex(file, bag)
	bag.Sort()

	span.WithExtra("tokens", fmt.Sprint(len(toks)))
	logging.FromContext(ctx).Debug("tokenized", "path", path, "tokens", len(toks), "diagnostics", bag.Len())
	return &TokenizeResult{FileSet: fs, File: file, Tokens: toks, Depths: depths, Bag: bag}, nil
}

func lex(file *source.File, bag *diag.Bag) ([]token.Token, []int) {
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var (
		toks   []token.Token
		depths []int
	)
	for tok := range lx.All() {
		toks = append(toks, tok)
		depths = append(depths, lx.Depth())
	}
	return toks, depths
}
