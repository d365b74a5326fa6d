package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"lyread/internal/config"
	"lyread/internal/dump"
	"lyread/internal/version"
)

var testdata = filepath.Join("..", "..", "testdata")

// run executes the CLI with an explicit config so a lyread.toml above the
// repository cannot leak into the test.
func run(t *testing.T, configBody string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(cfgPath, []byte(configBody), 0o600); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--color", "off"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestReadJSON(t *testing.T) {
	stdout, stderr, err := run(t, "", "read", filepath.Join(testdata, "minuet.ly"), "--format", "json")
	if err != nil {
		t.Fatalf("read: %v\n%s", err, stderr)
	}
	var f dump.File
	if err := json.Unmarshal([]byte(stdout), &f); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if !strings.HasSuffix(f.Path, "minuet.ly") || f.Document == "" {
		t.Errorf("path = %q document = %q", f.Path, f.Document)
	}
	if f.Stats.Items == 0 || f.Stats.ByKind["Music"] == 0 || f.Stats.ByKind["Chord"] != 1 {
		t.Errorf("stats = %+v", f.Stats)
	}
	for _, d := range f.Diagnostics {
		if d.Severity == "ERROR" {
			t.Errorf("unexpected error: %+v", d)
		}
	}
}

func TestReadBrokenFails(t *testing.T) {
	stdout, _, err := run(t, "", "read", filepath.Join(testdata, "broken.ly"))
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	for _, code := range []string{"LEX1002", "LEX1005", "LEX1006", "DOC2001"} {
		if !strings.Contains(stdout, code) {
			t.Errorf("output lacks %s:\n%s", code, stdout)
		}
	}
}

func TestReadFormatFromConfig(t *testing.T) {
	stdout, _, err := run(t, "[output]\nformat = \"yaml\"\n", "read", filepath.Join(testdata, "strings.ly"), "--flat")
	if err != nil {
		t.Fatal(err)
	}
	var f dump.File
	if err := yaml.Unmarshal([]byte(stdout), &f); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if f.Document != "" {
		t.Error("flat output carries a document handle")
	}
	var values []string
	for _, n := range f.Items {
		if n.Value != nil {
			values = append(values, *n.Value)
		}
	}
	want := []string{"plain", "tabthere", `back\slash`, `quote "x"`, "Düsseldorf"}
	if !slices.Equal(values, want) {
		t.Errorf("values = %q, want %q", values, want)
	}
}

func TestTokenizePretty(t *testing.T) {
	stdout, _, err := run(t, "", "tokenize", filepath.Join(testdata, "scheme.ly"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"SchemeStart", "SchemeLilyStart", "BlockCommentStart", "depth 2"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("tokens lack %q:\n%s", want, stdout)
		}
	}
}

func TestReadDirJSON(t *testing.T) {
	stdout, _, err := run(t, "", "read-dir", testdata, "--format", "json", "--ui", "off", "--jobs", "2", "--timings")
	// broken.ly carries errors
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	var report dirReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(report.Files) != 4 {
		t.Fatalf("files = %d, want 4", len(report.Files))
	}
	if !strings.HasSuffix(report.Files[0].Path, "broken.ly") || !strings.HasSuffix(report.Files[3].Path, "strings.ly") {
		t.Errorf("files not sorted: %s .. %s", report.Files[0].Path, report.Files[3].Path)
	}
	if report.Timings == nil || len(report.Timings.Phases) == 0 {
		t.Error("missing timings")
	}
	sum := 0
	for _, f := range report.Files {
		sum += f.Stats.Items
	}
	if sum != report.Stats.Items {
		t.Errorf("total items %d, per-file sum %d", report.Stats.Items, sum)
	}
}

func TestReadCacheAndClean(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := filepath.Join(testdata, "minuet.ly")
	first, _, err := run(t, "", "read", path, "--format", "json", "--cache")
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := run(t, "", "read", path, "--format", "json", "--cache")
	if err != nil {
		t.Fatal(err)
	}
	var a, b dump.File
	if err := json.Unmarshal([]byte(first), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(second), &b); err != nil {
		t.Fatal(err)
	}
	if b.Document != "" || a.Stats.Items != b.Stats.Items {
		t.Errorf("cached read: document %q, items %d vs %d", b.Document, b.Stats.Items, a.Stats.Items)
	}

	stdout, _, err := run(t, "", "clean")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "removed ") {
		t.Errorf("clean output = %q", stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := run(t, "", "version", "--format", "json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	var info version.Info
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != version.Get().Version {
		t.Errorf("version = %q", info.Version)
	}
	if version.GitCommit == "" && info.GitCommit != "unknown" {
		t.Errorf("commit = %q", info.GitCommit)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	_, _, err := run(t, "[output]\nformat = \"xml\"\n", "read", filepath.Join(testdata, "minuet.ly"))
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("err = %v", err)
	}
}

func TestMergeFlags(t *testing.T) {
	root := newRootCmd()
	sub, _, err := root.Find([]string{"read-dir"})
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.ParseFlags([]string{"--jobs", "1", "--log-level", "debug", "--cache"}); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Batch.Jobs = 3
	cfg.Output.Format = "yaml"
	if err := mergeFlags(sub, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Batch.Jobs != 1 || !cfg.Batch.Cache || cfg.Log.Level != "debug" {
		t.Errorf("merged = %+v", cfg)
	}
	// flags left at their defaults keep the file's values
	if cfg.Output.Format != "yaml" || cfg.Output.Color != "auto" {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error")
	}
}
