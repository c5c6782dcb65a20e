package ipmi

import (
	"context"
	"strings"
)

// Controller is what the presentation layer drives. Every method is one
// independent round trip to the management controller and none of them
// report transport failures as errors.
type Controller interface {
	Host() string

	// Power
	PowerStatus(ctx context.Context) string
	PowerState(ctx context.Context) PowerState
	PowerControl(ctx context.Context, action PowerAction) bool

	// Fan control
	SetFanManual(ctx context.Context, percent int) error
	SetFanAuto(ctx context.Context) bool

	// Sensors
	Sensors(ctx context.Context) SensorSnapshot
}

// Unavailable marks a sensor field that could not be read.
const Unavailable = "N/A"

// UnknownStatus is returned by PowerStatus when the controller did not answer.
const UnknownStatus = "Unknown"

// PowerState is the classified chassis power status.
type PowerState int

const (
	PowerStateUnknown PowerState = iota
	PowerStateOn
	PowerStateOff
)

func (s PowerState) String() string {
	switch s {
	case PowerStateOn:
		return "on"
	case PowerStateOff:
		return "off"
	default:
		return "unknown"
	}
}

// ClassifyPowerState maps free-text status output to a PowerState. Any text
// containing "on" (case-insensitive) is on; the unknown sentinel and empty
// text are unknown; everything else is off.
func ClassifyPowerState(status string) PowerState {
	if status == "" || status == UnknownStatus {
		return PowerStateUnknown
	}
	if strings.Contains(strings.ToLower(status), "on") {
		return PowerStateOn
	}

	return PowerStateOff
}

// PowerAction is a chassis power command word.
type PowerAction string

const (
	PowerOn    PowerAction = "on"
	PowerSoft  PowerAction = "soft"
	PowerReset PowerAction = "reset"
)

// IsValid returns whether the action is part of the supported vocabulary.
func (a PowerAction) IsValid() bool {
	switch a {
	case PowerOn, PowerSoft, PowerReset:
		return true
	default:
		return false
	}
}

func (a PowerAction) String() string {
	return string(a)
}

// ParsePowerAction accepts the command word or the console menu letter
// (a = on, b = soft off, c = hard reset).
func ParsePowerAction(s string) (PowerAction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "a":
		return PowerOn, true
	case "soft", "off", "b":
		return PowerSoft, true
	case "reset", "c":
		return PowerReset, true
	default:
		return "", false
	}
}

// Reading is one labelled row taken from the sensor table.
type Reading struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

func (r Reading) String() string {
	return r.Label + ": " + r.Value
}

// SensorSnapshot is a point-in-time view of the interesting sensors. Fields
// that could not be read hold Unavailable; sequences keep table order.
type SensorSnapshot struct {
	PowerWatts string    `json:"power_watts" yaml:"power_watts"`
	InletTemp  string    `json:"inlet_temp" yaml:"inlet_temp"`
	CPUTemps   []Reading `json:"cpu_temps" yaml:"cpu_temps"`
	Fans       []Reading `json:"fans" yaml:"fans"`
}

// NewSensorSnapshot returns a snapshot with every field unavailable.
func NewSensorSnapshot() SensorSnapshot {
	return SensorSnapshot{
		PowerWatts: Unavailable,
		InletTemp:  Unavailable,
		CPUTemps:   []Reading{},
		Fans:       []Reading{},
	}
}

// Missing lists the fields that hold no data.
func (s SensorSnapshot) Missing() []string {
	var missing []string
	if s.PowerWatts == Unavailable {
		missing = append(missing, "power_watts")
	}
	if s.InletTemp == Unavailable {
		missing = append(missing, "inlet_temp")
	}
	if len(s.CPUTemps) == 0 {
		missing = append(missing, "cpu_temps")
	}
	if len(s.Fans) == 0 {
		missing = append(missing, "fans")
	}

	return missing
}
