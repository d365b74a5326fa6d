package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Find(deep)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[read]
drop_unknown = true

[output]
format = "yaml"

[batch]
jobs = 3
extensions = [".ly"]

[log]
level = "debug"
file = "lyread.log"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Read.DropUnknown || cfg.Read.NormalizeNFC {
		t.Errorf("read = %+v", cfg.Read)
	}
	if cfg.Output.Format != "yaml" || cfg.Output.Color != "auto" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Batch.Jobs != 3 || !slices.Equal(cfg.Batch.Extensions, []string{".ly"}) {
		t.Errorf("batch = %+v", cfg.Batch)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "lyread.log" || cfg.Path != path {
		t.Errorf("log = %+v path = %q", cfg.Log, cfg.Path)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key": "[read]\nfast = true\n",
		"bad format":  "[output]\nformat = \"xml\"\n",
		"bad color":   "[output]\ncolor = \"maybe\"\n",
		"bad jobs":    "[batch]\njobs = -1\n",
		"bad ext":     "[batch]\nextensions = [\"ly\"]\n",
		"bad level":   "[log]\nlevel = \"loud\"\n",
		"bad toml":    "[read\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)
			if _, err := Load(path); err == nil || !strings.Contains(err.Error(), path) {
				t.Errorf("Load error = %v", err)
			}
		})
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(dir); !errors.Is(err, ErrNotFound) {
		t.Skipf("a %s above the temp dir: %v", FileName, err)
	}
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Output.Format != "pretty" || len(cfg.Batch.Extensions) != 3 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestEmptyExtensionsMeanDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, t.TempDir(), "[batch]\nextensions = []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Batch.Extensions) != 3 {
		t.Errorf("extensions = %v", cfg.Batch.Extensions)
	}
}
