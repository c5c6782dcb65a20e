package main

import (
	"fmt"
	"strconv"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"codeberg.org/mutker/ipmictl/internal/journal"
	"github.com/spf13/cobra"
)

func newPowerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "power <on|soft|reset>",
		Short: "Send a chassis power command",
		Long: `Send a chassis power command: on, soft (graceful power off) or reset
(hard reset). The command returns once the controller accepted it; it does
not wait for the machine to reach the new state.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(ipmi.PowerOn), string(ipmi.PowerSoft), string(ipmi.PowerReset)},
		RunE: func(cmd *cobra.Command, args []string) error {
			errFactory := errors.New()

			action, ok := ipmi.ParsePowerAction(args[0])
			if !ok {
				return errFactory.WithData(ipmi.ErrInvalidPowerAction, args[0])
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()

			var outcome error
			if !a.client.PowerControl(ctx, action) {
				outcome = errFactory.WithData(errors.ErrPowerControl, action.String())
			}
			a.record(ctx, journal.OpPowerControl, action.String(), outcome)

			if outcome != nil {
				return outcome
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent power %s\n", action)

			return nil
		},
	}
}

func newFanCmd() *cobra.Command {
	fan := &cobra.Command{
		Use:   "fan",
		Short: "Control fan speed",
	}

	fan.AddCommand(
		&cobra.Command{
			Use:   "manual <percent>",
			Short: "Disable automatic fan control and pin all fans at a percentage",
			Args:  cobra.ExactArgs(1),
			RunE:  runFanManual,
		},
		&cobra.Command{
			Use:   "auto",
			Short: "Return fan control to the controller",
			Args:  cobra.NoArgs,
			RunE:  runFanAuto,
		},
	)

	return fan
}

func runFanManual(cmd *cobra.Command, args []string) error {
	errFactory := errors.New()

	percent, err := strconv.Atoi(args[0])
	if err != nil {
		return errFactory.WithData(ipmi.ErrInvalidFanSpeed, args[0])
	}
	if percent < ipmi.MinFanSpeed || percent > ipmi.MaxFanSpeed {
		return errFactory.WithData(ipmi.ErrInvalidFanSpeed,
			fmt.Sprintf("%d is outside %d-%d", percent, ipmi.MinFanSpeed, ipmi.MaxFanSpeed))
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	outcome := a.client.SetFanManual(ctx, percent)
	a.record(ctx, journal.OpFanManual, strconv.Itoa(percent), outcome)

	if outcome != nil {
		return outcome
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %d%% fan speed\n", percent)

	return nil
}

func runFanAuto(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	var outcome error
	if !a.client.SetFanAuto(ctx) {
		outcome = errors.New().New(errors.ErrFanControl)
	}
	a.record(ctx, journal.OpFanAuto, "", outcome)

	if outcome != nil {
		return outcome
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Switched to automatic fan control")

	return nil
}
