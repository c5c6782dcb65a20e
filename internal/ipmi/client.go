package ipmi

import (
	"context"

	"codeberg.org/mutker/ipmictl/internal/errors"
)

// Protocol vocabulary. These strings must match what the controller expects.
var (
	cmdPowerStatus  = []string{"chassis", "power", "status"}
	cmdPowerReading = []string{"dcmi", "power", "reading"}
	cmdSensorList   = []string{"sdr", "elist", "full"}
)

func powerControlCmd(action PowerAction) []string {
	return []string{"chassis", "power", string(action)}
}

// Client exposes semantic operations on one remote controller. It holds no
// mutable state; every call is a fresh round trip.
type Client struct {
	conn ConnectionConfig
	ch   *Channel
}

// New validates conn and returns a Client bound to it.
func New(conn ConnectionConfig, opts ...Option) (*Client, error) {
	if err := conn.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		conn: conn,
		ch:   NewChannel(conn, opts...),
	}, nil
}

// Host returns the controller address.
func (c *Client) Host() string {
	return c.conn.Host
}

// PowerStatus returns the controller's raw status text, or UnknownStatus if
// the query failed.
func (c *Client) PowerStatus(ctx context.Context) string {
	out, ok := c.ch.Output(ctx, cmdPowerStatus...)
	if !ok || out == "" {
		return UnknownStatus
	}

	return out
}

// PowerState classifies PowerStatus.
func (c *Client) PowerState(ctx context.Context) PowerState {
	return ClassifyPowerState(c.PowerStatus(ctx))
}

// PowerControl sends a chassis power command. It does not wait for the
// machine to reach the target state.
func (c *Client) PowerControl(ctx context.Context, action PowerAction) bool {
	if !action.IsValid() {
		c.ch.logger.ErrorWithCode(errors.New().WithData(ErrInvalidPowerAction, string(action))).
			Msg("Refusing power command")
		return false
	}

	c.ch.logger.Info().Str("action", action.String()).Str("host", c.conn.Host).Msg("Sending power command")

	return c.ch.Exec(ctx, powerControlCmd(action)...)
}

// Sensors reads the power draw and the full sensor table. It never fails;
// each field falls back to its unavailable default on its own.
func (c *Client) Sensors(ctx context.Context) SensorSnapshot {
	snap := NewSensorSnapshot()

	if out, ok := c.ch.Output(ctx, cmdPowerReading...); ok {
		snap.PowerWatts = ParsePowerReading(out)
	}

	if out, ok := c.ch.Output(ctx, cmdSensorList...); ok {
		ParseSensorTable(out, &snap)
	}

	if missing := snap.Missing(); len(missing) > 0 {
		c.ch.logger.Debug().Strs("missing", missing).Msg("Sensor snapshot incomplete")
	}

	return snap
}
