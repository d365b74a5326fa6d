package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lyread/internal/dump"
	"lyread/internal/version"
)

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
	color    bool
}

const versionTagline = "reads the score, leaves the engraving to others"

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show lyread build information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("hash", false, "include git commit hash")
	cmd.Flags().Bool("date", false, "include build timestamp")
	cmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	showHash, _ := cmd.Flags().GetBool("hash")
	showDate, _ := cmd.Flags().GetBool("date")
	full, _ := cmd.Flags().GetBool("full")
	colorMode, _ := cmd.Root().PersistentFlags().GetString("color")

	opts := versionOptions{
		format:   strings.ToLower(format),
		showHash: showHash || full,
		showDate: showDate || full,
	}
	switch opts.format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", format)
	}
	if opts.format == "pretty" {
		opts.color = useColor(colorMode, os.Stdout)
	}

	info := version.Get()
	if opts.format != "pretty" {
		f, err := dump.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		return dump.Encode(cmd.OutOrStdout(), f, versionPayload(info, opts))
	}
	renderVersionPretty(cmd.OutOrStdout(), info, opts)
	return nil
}

func versionPayload(info version.Info, opts versionOptions) version.Info {
	out := version.Info{Version: info.Version}
	if opts.showHash {
		out.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		out.BuildDate = valueOrUnknown(info.BuildDate)
	}
	return out
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions) {
	fmt.Fprintf(out, "lyread %s, %s\n", version.Colored(info.Version, opts.color), versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
