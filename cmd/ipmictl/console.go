package main

import (
	"os"

	"codeberg.org/mutker/ipmictl/internal/console"
	"codeberg.org/mutker/ipmictl/internal/pid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive dashboard and command menu",
		Long: `Open the interactive console: a dashboard with power state, power draw,
inlet and CPU temperatures and fan speeds, followed by a numbered menu.

Sensors are only read while the chassis is powered on. Only one console
may run at a time.`,
		Args: cobra.NoArgs,
		RunE: runConsole,
	}
}

func runConsole(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	lock, err := pid.Acquire(pid.DefaultPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to remove PID file")
		}
	}()

	a.log.Info().Str("host", a.client.Host()).Msg("Console started")

	c := console.New(a.client, cmd.InOrStdin(), cmd.OutOrStdout(),
		console.WithRefresh(a.cfg.Refresh),
		console.WithClear(isTerminal(cmd.OutOrStdout())),
		console.WithJournal(a.journal),
		console.WithLogger(a.log.With("console")),
	)

	if err := c.Run(cmd.Context()); err != nil {
		return err
	}

	a.log.Info().Msg("Exiting...")

	return nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
