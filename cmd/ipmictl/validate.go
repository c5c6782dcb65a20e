package main

import (
	"fmt"
	"os/exec"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration without contacting the controller",
		Long: `Load configuration from file, environment and flags, validate it and
check that the ipmitool binary can be found. The password is never printed.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	binary, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return errors.New().Wrap(errors.ErrMissingConfig, err)
	}

	r := cfg.Redacted()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Config is valid!")
	fmt.Fprintf(out, "  Controller: %s\n", cfg.Connection())
	fmt.Fprintf(out, "  Password:   %s\n", passwordState(r.Password))
	fmt.Fprintf(out, "  Binary:     %s\n", binary)
	fmt.Fprintf(out, "  Timeout:    %s\n", r.Timeout)
	fmt.Fprintf(out, "  Refresh:    %s\n", r.Refresh)
	fmt.Fprintf(out, "  Log level:  %s\n", r.LogLevel)
	if r.Journal {
		fmt.Fprintf(out, "  Journal:    %s\n", r.JournalDB)
	} else {
		fmt.Fprintln(out, "  Journal:    disabled")
	}

	return nil
}

func passwordState(redacted string) string {
	if redacted == "" {
		return "(empty)"
	}
	return redacted
}
