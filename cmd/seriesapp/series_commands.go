package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List series, favourites first when no query is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}
			defer release()

			if err := s.start(cmd.Context()); err != nil {
				return err
			}
			rows, err := s.orch.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rowViews(rows))
			}
			printRows(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output rows as JSON")
	return cmd
}

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var query string
	var redownload bool
	var labels bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "episodes <row>",
		Short: "Show the episodes of the series on a list row",
		Long: "Show the episodes of the series on a row of 'seriesapp list [query]'.\n" +
			"Episodes come from the cache when present and are downloaded otherwise.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRow(args[0])
			if err != nil {
				return err
			}
			s, release, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}
			defer release()

			c := cmd.Context()
			if err := s.start(c); err != nil {
				return err
			}
			if err := s.openRow(c, query, row); err != nil {
				return err
			}
			if redownload {
				if err := s.orch.RedownloadEpisodes(c); err != nil {
					return err
				}
				if err := s.orch.Wait(c); err != nil {
					return err
				}
			}

			session := s.orch.Session()
			if owner, ok := s.store.EpisodeOwner(); !ok || owner != session.Current.Key() {
				return fmt.Errorf("no episodes available for %s", session.Current.Name)
			}
			eps := s.store.Episodes()
			now := time.Now()
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeJSON(cmd.OutOrStdout(), episodesView{
					Series:    session.Current,
					Favourite: session.CurrentIsFavourite,
					Age:       session.ListAge,
					Episodes:  episodeViews(session.Current, eps, now),
				})
			case labels:
				printLabels(out, session.Current, eps)
			default:
				printEpisodes(out, session.Current, eps, now)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query the row number refers to")
	cmd.Flags().BoolVar(&redownload, "redownload", false, "Download the episode list even when cached")
	cmd.Flags().BoolVar(&labels, "labels", false, "Print one \"<series> <number> - <title>\" label per episode")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output episodes as JSON")
	return cmd
}

func newFavouriteCommand(ctx *commandContext) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:     "favourite <row>",
		Aliases: []string{"fav"},
		Short:   "Add or remove the series on a list row from the favourites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRow(args[0])
			if err != nil {
				return err
			}
			s, release, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}
			defer release()

			c := cmd.Context()
			if err := s.start(c); err != nil {
				return err
			}
			rows, err := s.orch.Search(c, query)
			if err != nil {
				return err
			}
			if row > len(rows) {
				return fmt.Errorf("row %d out of range (only %d rows listed)", row, len(rows))
			}
			name := rows[row-1].Series.Name
			now, err := s.orch.ToggleFavourite(c, row-1)
			if err != nil {
				return err
			}
			if now {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favourites\n", name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favourites\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query the row number refers to")
	return cmd
}

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Download the full series list again",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}
			defer release()

			c := cmd.Context()
			if err := s.orch.Start(c); err != nil {
				return err
			}
			if !s.orch.Busy() {
				if err := s.orch.RedownloadCatalog(c); err != nil {
					return err
				}
			}
			if err := s.orch.Wait(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Series list: %d series\n", s.store.Len())
			return nil
		},
	}
}

func parseRow(arg string) (int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid row %q: %w", arg, err)
	}
	if row < 1 {
		return 0, fmt.Errorf("invalid row %d: rows start at 1", row)
	}
	return row, nil
}
