package main

import (
	"github.com/spf13/cobra"

	"seriesapp/internal/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the data directory",
	}

	cacheCmd.AddCommand(newCacheStatusCommand(ctx))

	return cacheCmd
}

func newCacheStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show cache files with their line counts and ages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			repo, err := cache.Open(cfg.Paths.DataDir, logger)
			if err != nil {
				return err
			}
			files, err := repo.Status()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), files)
			}
			printCacheStatus(cmd.OutOrStdout(), repo.Dir(), files)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output file status as JSON")
	return cmd
}
