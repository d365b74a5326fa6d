package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lyread/internal/cache"
	"lyread/internal/config"
	"lyread/internal/driver"
	"lyread/internal/dump"
	"lyread/internal/logging"
)

// errReported signals that diagnostics with errors were already printed.
var errReported = errors.New("errors reported")

// session is the state shared by every command: merged configuration,
// resolved output settings and the logger.
type session struct {
	cfg            config.Config
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	log            *slog.Logger
}

// startSession loads the configuration, applies explicit flags on top of it
// and installs the logger and tracer into the command context.
func startSession(cmd *cobra.Command) (*session, func(), error) {
	flags := cmd.Root().PersistentFlags()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := mergeFlags(cmd, &cfg); err != nil {
		return nil, nil, err
	}

	s := &session{cfg: cfg}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	s.color = useColor(cfg.Output.Color, os.Stdout)

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if s.quiet && level < slog.LevelError {
		level = slog.LevelError
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	logger, err := logging.New(logging.Options{Stderr: cmd.ErrOrStderr(), File: cfg.Log.File, Level: levelVar})
	if err != nil {
		return nil, nil, err
	}
	s.log = logger.Logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger.Logger))
	if cfg.Path != "" {
		s.log.Debug("loaded config", "path", cfg.Path)
	}

	stopTracing, err := setupTracing(cmd)
	if err != nil {
		_ = logger.Close()
		return nil, nil, err
	}
	cleanup := func() {
		stopTracing()
		if err := logger.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log: close error: %v\n", err)
		}
	}
	return s, cleanup, nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

// mergeFlags overrides config values with flags the user set explicitly.
func mergeFlags(cmd *cobra.Command, cfg *config.Config) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"color", &cfg.Output.Color},
		{"log-level", &cfg.Log.Level},
		{"log-file", &cfg.Log.File},
		{"format", &cfg.Output.Format},
	}
	for _, f := range strs {
		if flag := cmd.Flags().Lookup(f.name); flag != nil && flag.Changed {
			*f.dst = flag.Value.String()
		}
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{"drop-unknown", &cfg.Read.DropUnknown},
		{"nfc", &cfg.Read.NormalizeNFC},
		{"cache", &cfg.Batch.Cache},
	}
	for _, f := range bools {
		if flag := cmd.Flags().Lookup(f.name); flag != nil && flag.Changed {
			v, err := cmd.Flags().GetBool(f.name)
			if err != nil {
				return fmt.Errorf("failed to get %s flag: %w", f.name, err)
			}
			*f.dst = v
		}
	}
	if flag := cmd.Flags().Lookup("jobs"); flag != nil && flag.Changed {
		v, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		cfg.Batch.Jobs = v
	}
	return cfg.Validate()
}

func useColor(mode string, out *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}

// driverOptions translates the session into reader options; the cache is
// opened only when enabled.
func (s *session) driverOptions() (driver.Options, error) {
	opts := driver.Options{
		DropUnknown:    s.cfg.Read.DropUnknown,
		NormalizeNFC:   s.cfg.Read.NormalizeNFC,
		MaxDiagnostics: s.maxDiagnostics,
		Jobs:           s.cfg.Batch.Jobs,
		Extensions:     s.cfg.Batch.Extensions,
	}
	if s.cfg.Batch.Cache {
		c, err := cache.OpenDefault("lyread")
		if err != nil {
			return opts, fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = c
	}
	return opts, nil
}

func (s *session) format() (dump.Format, error) {
	return dump.ParseFormat(s.cfg.Output.Format)
}

func (s *session) pretty() dump.PrettyOpts {
	return dump.PrettyOpts{Color: s.color, Width: 48}
}
