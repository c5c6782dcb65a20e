package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/journal"
	"codeberg.org/mutker/ipmictl/internal/logger"
	"github.com/spf13/cobra"
)

const defaultJournalLimit = 20

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent control operations",
		Long: `Show the most recent power and fan commands recorded in the journal,
newest first. Recording is enabled with --journal or journal = true.`,
		Args: cobra.NoArgs,
		RunE: runJournal,
	}

	cmd.Flags().IntP("limit", "n", defaultJournalLimit, "number of entries to show")

	return cmd
}

func runJournal(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return errors.New().WithData(errors.ErrInvalidArgument, "limit must be positive")
	}

	// Reading the journal does not need a reachable controller.
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	rec, err := journal.NewService(journal.Config{DBPath: cfg.JournalDB, Enabled: true}, logger.Default().With("journal"))
	if err != nil {
		return err
	}
	defer rec.Close()

	entries, err := rec.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No journal entries")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tHOST\tOPERATION\tARGUMENT\tRESULT")
	for _, e := range entries {
		result := "ok"
		if !e.Success {
			result = "failed: " + e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime), e.Host, e.Operation, e.Argument, result)
	}

	return tw.Flush()
}
