package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lyread/internal/diag"
	"lyread/internal/dump"
	"lyread/internal/logging"
	"lyread/internal/observ"
	"lyread/internal/source"
	"lyread/internal/trace"
)

// DirResult holds the per-file results of ReadDir in path order.
type DirResult struct {
	Dir   string
	Files []*ReadResult
	Timer *observ.Timer
	Stats dump.Stats
}

// HasErrors reports whether any file has error diagnostics.
func (r *DirResult) HasErrors() bool {
	return slices.ContainsFunc(r.Files, (*ReadResult).HasErrors)
}

// ListFiles returns the sorted paths under dir whose extension is in exts.
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git и т.п.) пропускаем
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// ReadDir reads every matching file under dir in parallel. A file that fails
// to load becomes a result with an IO diagnostic; only cancellation aborts
// the batch.
func ReadDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	ctx, span := trace.BeginContext(ctx, trace.ScopeDriver, "read-dir")
	defer span.End("")

	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, err
	}
	return ReadFiles(ctx, dir, files, opts)
}

// ReadFiles is ReadDir over an explicit file list.
func ReadFiles(ctx context.Context, dir string, files []string, opts Options) (*DirResult, error) {
	log := logging.FromContext(ctx)
	out := &DirResult{Dir: dir, Files: make([]*ReadResult, len(files)), Timer: observ.NewTimer()}
	for _, f := range files {
		emit(opts.Progress, Event{File: f, Status: StatusQueued})
	}
	if len(files) == 0 {
		return out, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := ReadFile(gctx, path, opts)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn("read failed", "path", path, "err", err)
				res = failed(path, err, opts.MaxDiagnostics)
				emit(opts.Progress, Event{File: path, Status: StatusError, Err: err, Elapsed: time.Since(start)})
			} else {
				emit(opts.Progress, Event{File: path, Status: StatusDone, Elapsed: time.Since(start)})
			}
			// документы в пакетном режиме не нужны после сериализации
			if res.Document != nil && opts.Registry != nil {
				opts.Registry.Release(res.Document.ID)
				res.Document = nil
			}
			out.Files[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range out.Files {
		out.Timer.Merge(res.Timer)
		out.Stats.Merge(res.Output.Stats)
	}
	log.Info("read directory", "dir", dir, "files", len(files), "items", out.Stats.Items)
	return out, nil
}

func failed(path string, err error, maxDiagnostics int) *ReadResult {
	bag := diag.NewBag(maxDiagnostics)
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{}, err.Error()).Emit()
	diags := dump.NewConverter(nil).Diagnostics(bag)
	for i := range diags {
		diags[i].Path = path
	}
	return &ReadResult{
		Path:   path,
		Bag:    bag,
		Timer:  observ.NewTimer(),
		Output: dump.File{Path: path, Diagnostics: diags},
	}
}
