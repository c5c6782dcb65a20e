package ipmi_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	disableAuto = "raw 0x30 0x30 0x01 0x00"
	enableAuto  = "raw 0x30 0x30 0x01 0x01"
)

func TestSetFanManualSendsBothCommandsInOrder(t *testing.T) {
	runner := newFakeRunner().
		on(disableAuto, "").
		on("raw 0x30 0x30 0x02 0xff 0x32", "")
	client := newTestClient(t, runner)

	require.NoError(t, client.SetFanManual(context.Background(), 50))
	assert.Equal(t, []string{disableAuto, "raw 0x30 0x30 0x02 0xff 0x32"}, runner.commands())
}

func TestSetFanManualHexEncoding(t *testing.T) {
	tests := map[int]string{
		0:   "0x0",
		5:   "0x5",
		15:  "0xf",
		16:  "0x10",
		100: "0x64",
	}

	for percent, hex := range tests {
		runner := newFakeRunner()
		client := newTestClient(t, runner)

		_ = client.SetFanManual(context.Background(), percent)
		cmds := runner.commands()
		require.Len(t, cmds, 2)
		assert.Equal(t, "raw 0x30 0x30 0x02 0xff "+hex, cmds[1])
	}
}

func TestSetFanManualRejectsOutOfRange(t *testing.T) {
	for _, percent := range []int{-1, 101, 255} {
		runner := newFakeRunner()
		client := newTestClient(t, runner)

		err := client.SetFanManual(context.Background(), percent)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ipmi.ErrInvalidFanSpeed))
		assert.Empty(t, runner.commands(), "nothing may reach the controller")
	}
}

func TestSetFanManualReportsFailedStep(t *testing.T) {
	t.Run("disable fails", func(t *testing.T) {
		runner := newFakeRunner().on("raw 0x30 0x30 0x02 0xff 0x32", "")
		err := newTestClient(t, runner).SetFanManual(context.Background(), 50)

		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ipmi.ErrDisableAutoFan))
		assert.Len(t, runner.commands(), 2, "set speed is still attempted")
	})

	t.Run("set fails", func(t *testing.T) {
		runner := newFakeRunner().on(disableAuto, "")
		err := newTestClient(t, runner).SetFanManual(context.Background(), 50)

		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ipmi.ErrSetFanSpeedFailed))
	})

	t.Run("both fail", func(t *testing.T) {
		runner := newFakeRunner()
		err := newTestClient(t, runner).SetFanManual(context.Background(), 50)

		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ipmi.ErrFanControlFailed))
		assert.Contains(t, err.Error(), string(ipmi.ErrDisableAutoFan))
		assert.Contains(t, err.Error(), string(ipmi.ErrSetFanSpeedFailed))
	})
}

func TestSetFanAutoIsRepeatable(t *testing.T) {
	runner := newFakeRunner().on(enableAuto, "")
	client := newTestClient(t, runner)

	assert.True(t, client.SetFanAuto(context.Background()))
	assert.True(t, client.SetFanAuto(context.Background()))

	require.Len(t, runner.calls, 2)
	assert.Equal(t, runner.calls[0].argv, runner.calls[1].argv)
	assert.Equal(t, []string{enableAuto, enableAuto}, runner.commands())
}

func TestSetFanAutoFailure(t *testing.T) {
	assert.False(t, newTestClient(t, newFakeRunner()).SetFanAuto(context.Background()))
}
