package ipmi

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/mutker/ipmictl/internal/errors"
)

const (
	MinFanSpeed = 0
	MaxFanSpeed = 100
)

// Dell OEM raw commands for thermal control.
var (
	cmdFanDisableAuto = []string{"raw", "0x30", "0x30", "0x01", "0x00"}
	cmdFanEnableAuto  = []string{"raw", "0x30", "0x30", "0x01", "0x01"}
)

// fanSpeedCmd encodes percent as a hex byte applied to all fans (0xff).
func fanSpeedCmd(percent int) []string {
	return []string{"raw", "0x30", "0x30", "0x02", "0xff", fmt.Sprintf("%#x", percent)}
}

// SetFanManual disables automatic thermal control and pins every fan at
// percent. Both sub-commands are always sent; the returned error reports
// which of them failed.
func (c *Client) SetFanManual(ctx context.Context, percent int) error {
	errFactory := errors.New()

	if percent < MinFanSpeed || percent > MaxFanSpeed {
		return errFactory.WithData(ErrInvalidFanSpeed,
			fmt.Sprintf("%d%% is outside %d-%d", percent, MinFanSpeed, MaxFanSpeed))
	}

	c.ch.logger.Info().Int("percent", percent).Str("host", c.conn.Host).Msg("Setting manual fan speed")

	disabled := c.ch.Exec(ctx, cmdFanDisableAuto...)
	set := c.ch.Exec(ctx, fanSpeedCmd(percent)...)

	switch {
	case disabled && set:
		return nil
	case !disabled && !set:
		return errFactory.WithData(ErrFanControlFailed, strings.Join([]string{
			string(ErrDisableAutoFan), string(ErrSetFanSpeedFailed),
		}, ", "))
	case !disabled:
		return errFactory.New(ErrDisableAutoFan)
	default:
		return errFactory.New(ErrSetFanSpeedFailed)
	}
}

// SetFanAuto hands fan control back to the controller.
func (c *Client) SetFanAuto(ctx context.Context) bool {
	c.ch.logger.Info().Str("host", c.conn.Host).Msg("Enabling automatic fan control")
	return c.ch.Exec(ctx, cmdFanEnableAuto...)
}
