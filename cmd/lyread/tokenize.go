package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyread/internal/driver"
	"lyread/internal/dump"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.ly",
		Short: "Tokenize a LilyPond source file",
		Long:  `Tokenize breaks a LilyPond source file into tokens and prints each with its nesting depth`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	cmd.Flags().Bool("nfc", false, "normalize the source to Unicode NFC before lexing")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	result, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	conv := dump.NewConverter(result.FileSet)
	toks := conv.Tokens(result.Tokens, result.Depths)
	out := cmd.OutOrStdout()

	if format != dump.FormatPretty {
		payload := struct {
			Path        string           `json:"path" yaml:"path" msgpack:"path"`
			Tokens      []dump.TokenNode `json:"tokens" yaml:"tokens" msgpack:"tokens"`
			Diagnostics []dump.DiagNode  `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
		}{result.File.Path, toks, conv.Diagnostics(result.Bag)}
		if err := dump.Encode(out, format, payload); err != nil {
			return err
		}
	} else {
		// Выводим диагностику в stderr, если есть
		if result.Bag.Len() > 0 {
			if err := dump.Diagnostics(cmd.ErrOrStderr(), conv.Diagnostics(result.Bag), s.pretty()); err != nil {
				return err
			}
		}
		if err := dump.TokensPretty(out, toks, s.pretty()); err != nil {
			return err
		}
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
