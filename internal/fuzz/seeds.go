package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// inline seeds cover the mode transitions the testdata files may miss
var inlineSeeds = []string{
	"",
	"c4 d e f",
	`{ c4 <e g>8. r2 s1*3/4 R1 }`,
	`<< { c } \\ { e } >>`,
	`"a \"b\" \\c`,
	"%{ never closed",
	"#(define (f x) (* x 2)) $f ##t #\\a #'sym",
	"#(list #{ c4 #} #{ <d f>2 #})",
	"} > >> ) #}",
	"\\breve. \\longa \\< \\! \\",
	"c'4 ces,,8 dis'! e? \xff\x00",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.ly / *.ily файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".ly", ".ily":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
