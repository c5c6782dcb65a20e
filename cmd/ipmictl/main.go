// Package main is the entry point for the ipmictl CLI.
//
// Usage:
//
//	ipmictl                       # Interactive console (same as "ipmictl console")
//	ipmictl status                # Print chassis power status
//	ipmictl sensors -o json       # Print a sensor snapshot
//	ipmictl power soft            # Send a chassis power command
//	ipmictl fan manual 30         # Pin all fans at 30%
//	ipmictl fan auto              # Return fan control to the controller
//	ipmictl journal -n 20         # Show recent control operations
//	ipmictl validate              # Check configuration
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/ipmictl/internal/config"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"github.com/spf13/cobra"
)

// Version information, set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ipmictl",
		Short: "Operator console for a server's management controller",
		Long: `ipmictl drives one server's out-of-band management controller through
ipmitool: chassis power, thermal sensors and fan speed.

Run without a subcommand to open the interactive console.

Configuration is read from /etc/ipmictl.toml or ~/.config/ipmictl/ipmictl.toml,
IPMICTL_* environment variables and flags, in increasing precedence.`,
		SilenceUsage: true,
		RunE:         runConsole,
	}

	f := root.PersistentFlags()
	f.StringP("config", "c", "", "path to config file")
	f.StringP("host", "H", "", "controller address")
	f.StringP("username", "U", "", "controller user")
	f.StringP("password", "P", "", "controller password (prefer IPMICTL_PASSWORD)")
	f.StringP("interface", "I", ipmi.DefaultInterface, "ipmitool interface (lan or lanplus)")
	f.String("binary", ipmi.DefaultBinary, "ipmitool executable")
	f.Duration("timeout", ipmi.DefaultTimeout, "per-command timeout")
	f.Duration("refresh", config.DefaultRefresh, "console pause after a control command")
	f.String("log-level", string(config.DefaultLogLevel), "log level (debug, info, warning, error)")
	f.Bool("journal", false, "record control operations in the journal")
	f.String("journal-db", config.DefaultJournalDB, "journal database path")

	root.AddCommand(
		newConsoleCmd(),
		newStatusCmd(),
		newSensorsCmd(),
		newPowerCmd(),
		newFanCmd(),
		newJournalCmd(),
		newValidateCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ipmictl %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Cobra already printed the error
		stop()
		os.Exit(1)
	}
}
