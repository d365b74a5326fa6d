package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyread/internal/driver"
	"lyread/internal/dump"
)

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [flags] file.ly",
		Short: "Read a LilyPond file into items",
		Long: `Read tokenizes a LilyPond file, reads it into notes, rests, chords, music
blocks, strings, comments and Scheme values, and prints the resulting tree`,
		Args: cobra.ExactArgs(1),
		RunE: runRead,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	cmd.Flags().Bool("flat", false, "print the reader output without building a document tree")
	cmd.Flags().Bool("drop-unknown", false, "drop tokens that start no item")
	cmd.Flags().Bool("nfc", false, "normalize the source to Unicode NFC before lexing")
	cmd.Flags().Bool("cache", false, "reuse and store results in the on-disk cache")
	return cmd
}

func runRead(cmd *cobra.Command, args []string) error {
	s, cleanup, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	format, err := s.format()
	if err != nil {
		return err
	}
	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	if opts.Flat, err = cmd.Flags().GetBool("flat"); err != nil {
		return fmt.Errorf("failed to get flat flag: %w", err)
	}

	res, err := driver.ReadFile(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("read failed: %w", err)
	}
	if res.Cached {
		s.log.Info("served from cache", "path", res.Path)
	}

	out := cmd.OutOrStdout()
	if format == dump.FormatPretty {
		err = dump.Pretty(out, res.Output, s.pretty())
	} else {
		err = dump.Encode(out, format, res.Output)
	}
	if err != nil {
		return err
	}
	if s.timings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if res.HasErrors() {
		return errReported
	}
	return nil
}
