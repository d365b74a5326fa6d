package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lyread/internal/document"
	"lyread/internal/driver"
	"lyread/internal/dump"
	"lyread/internal/observ"
)

func newReadDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read-dir [flags] dir",
		Short: "Read every LilyPond file under a directory",
		Long: `Read-dir reads all files with a configured extension (.ly, .ily, .lyi by
default) under a directory in parallel and prints per-file summaries`,
		Args: cobra.ExactArgs(1),
		RunE: runReadDir,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	cmd.Flags().Int("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("drop-unknown", false, "drop tokens that start no item")
	cmd.Flags().Bool("nfc", false, "normalize sources to Unicode NFC before lexing")
	cmd.Flags().Bool("cache", false, "reuse and store results in the on-disk cache")
	return cmd
}

// dirReport is the machine-readable form of a read-dir run.
type dirReport struct {
	Dir     string         `json:"dir" yaml:"dir" msgpack:"dir"`
	Files   []dump.File    `json:"files" yaml:"files" msgpack:"files"`
	Stats   dump.Stats     `json:"stats" yaml:"stats" msgpack:"stats"`
	Timings *observ.Report `json:"timings,omitempty" yaml:"timings,omitempty" msgpack:"timings,omitempty"`
}

func runReadDir(cmd *cobra.Command, args []string) error {
	s, cleanup, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	dir := args[0]
	format, err := s.format()
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	opts.Registry = document.NewRegistry()

	files, err := driver.ListFiles(dir, opts.Extensions)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	s.log.Debug("listed files", "dir", dir, "files", len(files))

	var res *driver.DirResult
	if !s.quiet && shouldUseTUI(mode) {
		res, err = readDirWithUI(cmd.Context(), "read-dir "+dir, dir, files, opts)
	} else {
		res, err = driver.ReadFiles(cmd.Context(), dir, files, opts)
	}
	if err != nil {
		return fmt.Errorf("read-dir failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == dump.FormatPretty {
		err = printDirPretty(out, res, s)
	} else {
		report := dirReport{Dir: dir, Files: make([]dump.File, 0, len(res.Files)), Stats: res.Stats}
		for _, f := range res.Files {
			report.Files = append(report.Files, f.Output)
		}
		if s.timings {
			timings := res.Timer.Report()
			report.Timings = &timings
		}
		err = dump.Encode(out, format, report)
	}
	if err != nil {
		return err
	}
	if s.timings && format == dump.FormatPretty {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if res.HasErrors() {
		return errReported
	}
	return nil
}

// printDirPretty prints one line per file followed by its diagnostics, then
// the totals.
func printDirPretty(out io.Writer, res *driver.DirResult, s *session) error {
	popts := s.pretty()
	for _, f := range res.Files {
		if !s.quiet {
			suffix := ""
			if f.Cached {
				suffix = " (cached)"
			}
			if _, err := fmt.Fprintf(out, "%s: %s%s\n", f.Path, f.Output.Stats.String(), suffix); err != nil {
				return err
			}
		}
		if len(f.Output.Diagnostics) > 0 {
			if err := dump.Diagnostics(out, f.Output.Diagnostics, popts); err != nil {
				return err
			}
		}
	}
	if s.quiet {
		return nil
	}
	_, err := fmt.Fprintf(out, "%d files, %s\n", len(res.Files), res.Stats.String())
	return err
}
