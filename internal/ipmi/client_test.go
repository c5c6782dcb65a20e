package ipmi_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, runner ipmi.Runner) *ipmi.Client {
	t.Helper()

	client, err := ipmi.New(testConn(), ipmi.WithRunner(runner))
	require.NoError(t, err)

	return client
}

func TestNewRejectsInvalidConnection(t *testing.T) {
	tests := []struct {
		name string
		conn ipmi.ConnectionConfig
		want string
	}{
		{"missing host", ipmi.ConnectionConfig{Username: "root"}, "host"},
		{"missing user", ipmi.ConnectionConfig{Host: "10.0.0.5"}, "username"},
		{"bad interface", ipmi.ConnectionConfig{Host: "10.0.0.5", Username: "root", Interface: "serial"}, "interface"},
		{"bad host", ipmi.ConnectionConfig{Host: "not a host!", Username: "root"}, "host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ipmi.New(tt.conn)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, ipmi.ErrInvalidConnection))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConnectionStringMasksPassword(t *testing.T) {
	s := testConn().String()
	assert.Equal(t, "root@192.168.0.150 (lanplus)", s)
	assert.NotContains(t, s, "calvin")
}

func TestPowerStatus(t *testing.T) {
	runner := newFakeRunner().on("chassis power status", "Chassis Power is on\n")
	client := newTestClient(t, runner)

	assert.Equal(t, "Chassis Power is on", client.PowerStatus(context.Background()))
	assert.Equal(t, ipmi.PowerStateOn, client.PowerState(context.Background()))
	assert.Equal(t, "192.168.0.150", client.Host())
}

func TestPowerStatusUnavailable(t *testing.T) {
	client := newTestClient(t, newFakeRunner())

	assert.Equal(t, ipmi.UnknownStatus, client.PowerStatus(context.Background()))
	assert.Equal(t, ipmi.PowerStateUnknown, client.PowerState(context.Background()))
}

func TestPowerStatusEmptyOutputIsUnknown(t *testing.T) {
	client := newTestClient(t, newFakeRunner().on("chassis power status", "   "))

	assert.Equal(t, ipmi.UnknownStatus, client.PowerStatus(context.Background()))
}

func TestClassifyPowerState(t *testing.T) {
	assert.Equal(t, ipmi.PowerStateOn, ipmi.ClassifyPowerState("Chassis Power is on"))
	assert.Equal(t, ipmi.PowerStateOn, ipmi.ClassifyPowerState("CHASSIS POWER IS ON"))
	assert.Equal(t, ipmi.PowerStateOff, ipmi.ClassifyPowerState("Chassis Power is off"))
	assert.Equal(t, ipmi.PowerStateUnknown, ipmi.ClassifyPowerState(ipmi.UnknownStatus))
	assert.Equal(t, ipmi.PowerStateUnknown, ipmi.ClassifyPowerState(""))
	assert.Equal(t, "on", ipmi.PowerStateOn.String())
	assert.Equal(t, "unknown", ipmi.PowerStateUnknown.String())
}

func TestPowerControl(t *testing.T) {
	tests := []struct {
		action  ipmi.PowerAction
		command string
	}{
		{ipmi.PowerOn, "chassis power on"},
		{ipmi.PowerSoft, "chassis power soft"},
		{ipmi.PowerReset, "chassis power reset"},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			runner := newFakeRunner().on(tt.command, "Chassis Power Control: Up/On")
			client := newTestClient(t, runner)

			assert.True(t, client.PowerControl(context.Background(), tt.action))
			assert.Equal(t, []string{tt.command}, runner.commands())
		})
	}
}

func TestPowerControlFailure(t *testing.T) {
	client := newTestClient(t, newFakeRunner())
	assert.False(t, client.PowerControl(context.Background(), ipmi.PowerOn))
}

func TestPowerControlRejectsUnknownAction(t *testing.T) {
	runner := newFakeRunner()
	client := newTestClient(t, runner)

	assert.False(t, client.PowerControl(context.Background(), ipmi.PowerAction("cycle")))
	assert.Empty(t, runner.commands())
}

func TestParsePowerAction(t *testing.T) {
	tests := map[string]ipmi.PowerAction{
		"on": ipmi.PowerOn, "a": ipmi.PowerOn, "A": ipmi.PowerOn,
		"soft": ipmi.PowerSoft, "b": ipmi.PowerSoft, "off": ipmi.PowerSoft,
		"reset": ipmi.PowerReset, " c ": ipmi.PowerReset,
	}

	for in, want := range tests {
		got, ok := ipmi.ParsePowerAction(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ipmi.ParsePowerAction("d")
	assert.False(t, ok)
}
