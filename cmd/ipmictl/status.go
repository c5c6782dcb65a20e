package main

import (
	"encoding/json"
	"fmt"
	"io"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print chassis power status",
		Long: `Print the controller's chassis power status text, or "Unknown" when the
controller did not answer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			fmt.Fprintln(cmd.OutOrStdout(), a.client.PowerStatus(cmd.Context()))
			return nil
		},
	}
}

// sensorReport is the machine-readable form of a sensors run.
type sensorReport struct {
	Host    string               `json:"host" yaml:"host"`
	Power   string               `json:"power" yaml:"power"`
	Sensors *ipmi.SensorSnapshot `json:"sensors,omitempty" yaml:"sensors,omitempty"`
	Missing []string             `json:"missing,omitempty" yaml:"missing,omitempty"`
}

func newSensorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensors",
		Short: "Print a sensor snapshot",
		Long: `Print power draw, inlet temperature, CPU temperatures and fan speeds.

Sensors are only read while the chassis is powered on. Fields that could not
be read are shown as N/A.`,
		Args: cobra.NoArgs,
		RunE: runSensors,
	}

	cmd.Flags().StringP("output", "o", outputText, "output format (text, json, yaml)")

	return cmd
}

func runSensors(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case outputText, outputJSON, outputYAML:
	default:
		return errors.New().WithData(errors.ErrInvalidArgument, "output: "+format)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	status := a.client.PowerStatus(ctx)

	report := sensorReport{
		Host:  a.client.Host(),
		Power: status,
	}
	if ipmi.ClassifyPowerState(status) == ipmi.PowerStateOn {
		snap := a.client.Sensors(ctx)
		report.Sensors = &snap
		report.Missing = snap.Missing()
	}

	return writeReport(cmd.OutOrStdout(), format, report)
}

func writeReport(w io.Writer, format string, report sensorReport) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "Host:       %s\n", report.Host)
	fmt.Fprintf(w, "Power:      %s\n", report.Power)
	if report.Sensors == nil {
		return nil
	}

	s := report.Sensors
	fmt.Fprintf(w, "Power draw: %s\n", s.PowerWatts)
	fmt.Fprintf(w, "Inlet temp: %s\n", s.InletTemp)
	fmt.Fprintln(w, "CPU temps:")
	writeReadings(w, s.CPUTemps)
	fmt.Fprintln(w, "Fans:")
	writeReadings(w, s.Fans)

	return nil
}

func writeReadings(w io.Writer, readings []ipmi.Reading) {
	if len(readings) == 0 {
		fmt.Fprintln(w, "  (no readings)")
		return
	}
	for _, r := range readings {
		fmt.Fprintf(w, "  %s\n", r)
	}
}
