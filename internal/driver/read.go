package driver

import (
	"context"
	"fmt"
	"slices"
	"time"

	"lyread/internal/cache"
	"lyread/internal/diag"
	"lyread/internal/document"
	"lyread/internal/dump"
	"lyread/internal/item"
	"lyread/internal/logging"
	"lyread/internal/observ"
	"lyread/internal/reader"
	"lyread/internal/source"
	"lyread/internal/trace"
)

// ReadResult is the outcome of reading one file.
type ReadResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	// Document is nil for flat reads and cache hits.
	Document *document.Document
	// Items holds the reader's output for flat reads.
	Items  []item.Item
	Output dump.File
	Bag    *diag.Bag
	Cached bool
	Timer  *observ.Timer
}

// ReadFile loads, tokenizes, reads and, unless opts.Flat, builds a document
// for path.
func ReadFile(ctx context.Context, path string, opts Options) (*ReadResult, error) {
	ctx, span := trace.BeginContext(ctx, trace.ScopeFile, "file:"+path)
	res, err := readFile(ctx, path, opts)
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	span.WithExtra("items", fmt.Sprint(res.Output.Stats.Items)).
		WithExtra("cached", fmt.Sprint(res.Cached)).
		End("")
	return res, nil
}

func readFile(ctx context.Context, path string, opts Options) (*ReadResult, error) {
	log := logging.FromContext(ctx)
	timer := observ.NewTimer()
	res := &ReadResult{Path: path, Timer: timer, Bag: diag.NewBag(opts.MaxDiagnostics)}

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	err := phase(ctx, timer, observ.PhaseLoad, func() error {
		fs := source.NewFileSet()
		id, err := fs.LoadWith(path, source.LoadOptions{NFC: opts.NormalizeNFC})
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		res.FileSet = fs
		res.File = fs.Get(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cache.KeyFor(res.File.Hash, opts.cacheOptions()...)
	if opts.Cache != nil {
		var (
			hit    dump.File
			ok     bool
			getErr error
		)
		_ = phase(ctx, timer, observ.PhaseCache, func() error {
			hit, ok, getErr = opts.Cache.Get(key)
			return nil
		})
		if getErr != nil {
			log.Warn("cache read failed", "path", path, "err", getErr)
		}
		if ok {
			log.Debug("cache hit", "path", path, "key", key.String())
			hit.Path = res.File.Path
			res.Output = hit
			res.Cached = true
			return res, nil
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageLex, Status: StatusWorking})
	src := reader.NewSliceSource(nil, nil, 1)
	_ = phase(ctx, timer, observ.PhaseLex, func() error {
		toks, depths := lex(res.File, res.Bag)
		src = reader.NewSliceSource(toks, depths, 1)
		return nil
	})

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	ropts := append(opts.readerOptions(), reader.WithLogger(log))
	_ = phase(ctx, timer, observ.PhaseRead, func() error {
		tr := trace.FromContext(ctx)
		parent := trace.CurrentSpan(ctx).SpanID
		for it := range reader.Read(src, ropts...) {
			res.Items = append(res.Items, it)
			trace.Point(tr, trace.ScopeItem, it.Kind().String(), "", parent)
		}
		return nil
	})

	conv := dump.NewConverter(res.FileSet)
	emit(opts.Progress, Event{File: path, Stage: StageBuild, Status: StatusWorking})
	_ = phase(ctx, timer, observ.PhaseBuild, func() error {
		if opts.Flat {
			res.Bag.Sort()
			res.Output = conv.Flat(res.File.Path, res.Items, res.Bag)
			return nil
		}
		reg := opts.Registry
		if reg == nil {
			reg = document.NewRegistry()
		}
		doc := reg.New(res.File.Path, res.File)
		document.Build(doc, slices.Values(res.Items), diag.BagReporter{Bag: res.Bag})
		res.Bag.Sort()
		res.Document = doc
		res.Items = nil
		res.Output = conv.Document(doc, res.Bag)
		return nil
	})

	if opts.Cache != nil {
		emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusWorking})
		_ = phase(ctx, timer, observ.PhaseCache, func() error {
			if err := opts.Cache.Put(key, res.Output); err != nil {
				log.Warn("cache write failed", "path", path, "err", err)
				diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: res.File.ID}, "cache write failed: "+err.Error()).Emit()
			}
			return nil
		})
	}

	log.Debug("read file", "path", path, "items", res.Output.Stats.Items, "diagnostics", res.Bag.Len())
	return res, nil
}

// phase runs fn as a timed, traced pass.
func phase(ctx context.Context, timer *observ.Timer, name string, fn func() error) error {
	_, span := trace.BeginContext(ctx, trace.ScopePass, name)
	idx := timer.Begin(name)
	start := time.Now()
	err := fn()
	timer.End(idx, "")
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	span.WithExtra("ms", fmt.Sprintf("%.3f", float64(time.Since(start).Microseconds())/1000)).End(detail)
	return err
}

// HasErrors reports error diagnostics, including those restored from cache.
func (r *ReadResult) HasErrors() bool {
	if r.Bag != nil && r.Bag.HasErrors() {
		return true
	}
	for _, d := range r.Output.Diagnostics {
		if d.Severity == diag.SevError.String() {
			return true
		}
	}
	return false
}
