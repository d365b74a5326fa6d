package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyread/internal/cache"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove cached read results",
		Long:  "Remove every entry of the on-disk cache used by read --cache and read-dir --cache.",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	s, cleanup, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	c, err := cache.OpenDefault("lyread")
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if err := c.DropAll(); err != nil {
		return fmt.Errorf("failed to clean %q: %w", c.Dir(), err)
	}
	s.log.Debug("cache cleaned", "dir", c.Dir())
	if !s.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", c.Dir())
	}
	return nil
}
