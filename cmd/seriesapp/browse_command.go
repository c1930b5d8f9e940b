package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seriesapp/internal/catalog"
	"seriesapp/internal/logging"
	"seriesapp/internal/orchestrator"
	"seriesapp/internal/record"
)

const browseHelp = `Commands:
  <text>          search series names (empty line lists everything)
  <n>             open row n
  b               back to the full list
  f [n]           toggle favourite of row n, or of the open series
  r               re-download the list on screen
  l               print episode labels of the open series
  p system|none   use the environment proxy, or none
  p <host> <port> use a manual proxy
  ?               show this help
  q               quit`

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive session driven by commands on stdin",
		Long:  "Interactive session driven by commands on stdin.\n\n" + browseHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := ctx.openSession(cmd, orchestrator.WithAutoSelect(true))
			if err != nil {
				return err
			}
			defer release()

			out := cmd.OutOrStdout()
			s.listener.onRows = func(rows []catalog.Row) { printRows(out, rows) }
			s.listener.onEpisodes = func(series record.Series, eps []record.Episode) {
				printEpisodes(out, series, eps, time.Now())
			}

			b := &browser{s: s, out: out, errOut: cmd.ErrOrStderr()}
			return b.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type browser struct {
	s      *session
	out    io.Writer
	errOut io.Writer
}

// run owns the orchestrator: stdin commands and fetch completions are both
// handled on this goroutine.
func (b *browser) run(ctx context.Context, in io.Reader) error {
	b.report(func() error { return b.s.orch.Start(ctx) })
	// The first list is needed before any command makes sense.
	b.report(func() error { return b.s.orch.Wait(ctx) })

	lines := scanLines(ctx, in)
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-b.s.orch.Completions():
			b.report(func() error { return b.s.orch.Apply(ctx, c) })
		case line, ok := <-lines:
			if !ok {
				b.report(func() error { return b.s.orch.Wait(ctx) })
				return nil
			}
			if quit := b.handle(ctx, strings.TrimSpace(line)); quit {
				b.report(func() error { return b.s.orch.Wait(ctx) })
				return nil
			}
		}
	}
}

func (b *browser) handle(ctx context.Context, line string) bool {
	orch := b.s.orch
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch {
	case line == "q" || line == "quit":
		return true
	case line == "?" || line == "help":
		fmt.Fprintln(b.out, browseHelp)
	case line == "b" || line == "back":
		b.report(func() error { _, err := orch.Back(ctx); return err })
	case line == "r":
		b.report(func() error { return orch.Refresh(ctx) })
	case line == "l":
		b.printLabels()
	case cmd == "f":
		b.report(func() error { return b.toggleFavourite(ctx, rest) })
	case cmd == "p" && rest != "":
		b.report(func() error { return b.setProxy(rest) })
	default:
		if row, err := strconv.Atoi(line); err == nil {
			b.report(func() error { return orch.SelectRow(ctx, row-1) })
			return false
		}
		b.report(func() error { _, err := orch.Search(ctx, line); return err })
	}
	return false
}

func (b *browser) toggleFavourite(ctx context.Context, arg string) error {
	orch := b.s.orch
	if arg == "" {
		if orch.Session().View != orchestrator.ViewEpisodes {
			return errors.New("give a row number to favourite from the list")
		}
		now, err := orch.ToggleCurrentFavourite(ctx)
		if err == nil {
			fmt.Fprintf(b.out, "%s favourite: %s\n", orch.Session().Current.Name, yesNo(now))
		}
		return err
	}
	row, err := parseRow(arg)
	if err != nil {
		return err
	}
	_, err = orch.ToggleFavourite(ctx, row-1)
	return err
}

func (b *browser) setProxy(arg string) error {
	fields := strings.Fields(arg)
	switch {
	case len(fields) == 1 && fields[0] == "system":
		return b.s.orch.SetProxyConfig(true, "", 0)
	case len(fields) == 1 && fields[0] == "none":
		return b.s.orch.SetProxyConfig(false, "", 0)
	case len(fields) == 2:
		port, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid proxy port %q", fields[1])
		}
		return b.s.orch.SetProxyConfig(false, fields[0], port)
	default:
		return errors.New("usage: p system | p none | p <host> <port>")
	}
}

func (b *browser) printLabels() {
	session := b.s.orch.Session()
	owner, ok := b.s.store.EpisodeOwner()
	if !session.HasCurrent || !ok || owner != session.Current.Key() {
		fmt.Fprintln(b.errOut, "error: no episode list open")
		return
	}
	printLabels(b.out, session.Current, b.s.store.Episodes())
}

// report prints an operation error unless the orchestrator already told the
// user about it.
func (b *browser) report(op func() error) {
	before := len(b.s.listener.failures)
	err := op()
	if err == nil {
		return
	}
	b.s.logger.Debug("browse command failed", logging.Error(err))
	if len(b.s.listener.failures) == before {
		fmt.Fprintf(b.errOut, "error: %v\n", err)
	}
}

func scanLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
