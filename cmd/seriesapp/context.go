package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"seriesapp/internal/cache"
	"seriesapp/internal/catalog"
	"seriesapp/internal/config"
	"seriesapp/internal/fetch"
	"seriesapp/internal/logging"
	"seriesapp/internal/orchestrator"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: w,
		File:   cfg.Logging.File,
	})
}

// session bundles everything one command needs to talk to the catalog.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	repo     *cache.Repository
	store    *catalog.Store
	client   *fetch.Client
	listener *cliListener
	orch     *orchestrator.Orchestrator
}

// openSession locks the data directory and wires an orchestrator whose
// messages go to the command's stderr. Auto-select is off unless opts turn it
// back on. The returned func releases the lock.
func (c *commandContext) openSession(cmd *cobra.Command, opts ...orchestrator.Option) (*session, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	repo, err := cache.Open(cfg.Paths.DataDir, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.Lock(); err != nil {
		return nil, nil, err
	}

	client := fetch.New(
		fetch.WithTimeout(cfg.Timeout()),
		fetch.WithUserAgent(cfg.Source.UserAgent),
		fetch.WithMaxBodyBytes(cfg.MaxBodyBytes()),
		fetch.WithMinInterval(cfg.MinInterval()),
		fetch.WithLogger(logger),
	)
	listener := newCLIListener(cmd.ErrOrStderr())
	store := catalog.NewStore()

	base := []orchestrator.Option{
		orchestrator.WithEndpoints(fetch.Endpoints{BaseURL: cfg.Source.BaseURL}),
		orchestrator.WithLogger(logger),
		orchestrator.WithAutoSelect(false),
	}
	orch := orchestrator.New(store, repo, client, listener, append(base, opts...)...)

	s := &session{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		store:    store,
		client:   client,
		listener: listener,
		orch:     orch,
	}
	release := func() {
		if err := repo.Unlock(); err != nil {
			logger.Debug("unlock data directory", logging.Error(err))
		}
	}
	return s, release, nil
}

// start loads the cached state and, when the series list had to be
// downloaded, waits for that download.
func (s *session) start(ctx context.Context) error {
	if err := s.orch.Start(ctx); err != nil {
		return err
	}
	if err := s.orch.Wait(ctx); err != nil {
		return fmt.Errorf("load series list: %w", err)
	}
	return nil
}

// openRow searches for query and opens the 1-based row, waiting for any
// episode download it starts.
func (s *session) openRow(ctx context.Context, query string, row int) error {
	if _, err := s.orch.Search(ctx, query); err != nil {
		return err
	}
	if err := s.orch.SelectRow(ctx, row-1); err != nil {
		return err
	}
	return s.orch.Wait(ctx)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
