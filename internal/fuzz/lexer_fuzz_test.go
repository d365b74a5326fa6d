package fuzztests

import (
	"slices"
	"testing"

	"lyread/internal/diag"
	"lyread/internal/document"
	"lyread/internal/item"
	"lyread/internal/lexer"
	"lyread/internal/reader"
	"lyread/internal/source"
	"lyread/internal/testkit"
	"lyread/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func lexInput(input []byte) (*source.File, []token.Token, []int) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.ly", clampInput(input)))
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: diag.NewBag(64)}})
	var (
		toks   []token.Token
		depths []int
	)
	for tok := range lx.All() {
		toks = append(toks, tok)
		depths = append(depths, lx.Depth())
	}
	return file, toks, depths
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file, toks, depths := lexInput(input)
		if err := testkit.CheckTokens(file, toks, depths); err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckCoverage(file, toks); err != nil {
			t.Fatal(err)
		}
	})
}

func FuzzReaderItems(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		_, toks, depths := lexInput(input)

		items := slices.Collect(reader.Read(reader.NewSliceSource(toks, depths, 1)))
		if err := testkit.CheckItemOrder(items); err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckItemsCover(items, toks); err != nil {
			t.Fatal(err)
		}

		dropped := slices.Collect(reader.Read(reader.NewSliceSource(toks, depths, 1), reader.WithDropUnknown()))
		if len(dropped) > len(items) {
			t.Fatalf("dropping unknown tokens grew the stream: %d > %d", len(dropped), len(items))
		}
		if err := testkit.CheckItemOrder(dropped); err != nil {
			t.Fatal(err)
		}
	})
}

func FuzzDocumentBuild(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file, toks, depths := lexInput(input)

		doc := document.NewRegistry().New(file.Path, file)
		bag := diag.NewBag(64)
		document.Build(doc, reader.Read(reader.NewSliceSource(toks, depths, 1)), diag.BagReporter{Bag: bag})
		if err := testkit.CheckDocument(doc); err != nil {
			t.Fatal(err)
		}

		// the tree keeps every token; walk order is source order
		var walked []item.Item
		for it := range doc.Walk() {
			walked = append(walked, it)
		}
		if err := testkit.CheckItemOrder(walked); err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckItemsCover(walked, toks); err != nil {
			t.Fatal(err)
		}
	})
}
