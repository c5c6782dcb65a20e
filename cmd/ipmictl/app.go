package main

import (
	"context"

	"codeberg.org/mutker/ipmictl/internal/config"
	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"codeberg.org/mutker/ipmictl/internal/journal"
	"codeberg.org/mutker/ipmictl/internal/logger"
	"github.com/spf13/cobra"
)

// app holds what a controller command needs, built from the layered config.
type app struct {
	cfg     *config.Config
	client  *ipmi.Client
	journal journal.Recorder
	log     logger.Logger
}

// loadConfig reads configuration using cmd's flags and initializes logging.
// The full validation only runs when the command talks to the controller.
func loadConfig(cmd *cobra.Command, validate bool) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(
		config.WithConfigFile(configPath),
		config.WithFlags(cmd.Flags()),
	)
	if err != nil {
		return nil, err
	}

	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Init(level, logger.IsService())
	logger.Debug().Interface("config", cfg.Redacted()).Msg("Config loaded")

	return cfg, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	errFactory := errors.New()

	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return nil, err
	}

	log := logger.Default()

	client, err := ipmi.New(cfg.Connection(),
		ipmi.WithBinary(cfg.Binary),
		ipmi.WithTimeout(cfg.Timeout),
		ipmi.WithLogger(log.With("ipmi")),
	)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitApp, err)
	}

	rec, err := journal.NewService(journal.Config{
		DBPath:  cfg.JournalDB,
		Enabled: cfg.Journal,
	}, log.With("journal"))
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitJournal, err)
	}

	return &app{
		cfg:     cfg,
		client:  client,
		journal: rec,
		log:     log,
	}, nil
}

// record journals a control operation. Journal failures are logged, never
// returned, so they cannot mask the operation's own outcome.
func (a *app) record(ctx context.Context, op journal.Operation, argument string, outcome error) {
	entry := journal.NewEntry(a.client.Host(), op, argument, outcome)
	if err := a.journal.Record(ctx, entry); err != nil {
		a.log.Warn().Err(err).Str("operation", string(op)).Msg("Failed to journal operation")
	}
}

func (a *app) close() {
	if err := a.journal.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to close journal")
	}
}
