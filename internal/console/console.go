package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"codeberg.org/mutker/ipmictl/internal/journal"
	"codeberg.org/mutker/ipmictl/internal/logger"
)

// Console is the interactive dashboard and command menu for one controller.
type Console struct {
	ctrl    ipmi.Controller
	journal journal.Recorder
	logger  logger.Logger
	in      io.Reader
	out     io.Writer
	lines   <-chan string
	readErr error
	refresh time.Duration
	clear   bool
	now     func() time.Time
}

func New(ctrl ipmi.Controller, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		ctrl:    ctrl,
		journal: journal.Noop(),
		logger:  logger.Nop(),
		in:      in,
		out:     out,
		refresh: DefaultRefresh,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run draws the dashboard and serves menu choices until the operator quits,
// input ends, or ctx is canceled.
func (c *Console) Run(ctx context.Context) error {
	c.lines = c.readLines(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		c.Render(ctx)

		choice, ok := c.prompt(ctx, "\n> Command: ")
		if !ok {
			if ctx.Err() != nil {
				return nil
			}
			return c.inputErr()
		}

		switch strings.ToLower(choice) {
		case "1":
			c.fanManual(ctx)
		case "2":
			c.fanAuto(ctx)
		case "3":
			c.power(ctx)
		case "4", "":
			fmt.Fprintln(c.out, "   Refreshing...")
			continue
		case "0", "q":
			return nil
		default:
			fmt.Fprintln(c.out, "   ! Unknown command, refreshing...")
			c.pause(ctx, c.refresh/2)
			continue
		}

		c.pause(ctx, c.refresh)
	}
}

func (c *Console) fanManual(ctx context.Context) {
	answer, ok := c.prompt(ctx, fmt.Sprintf("   Enter %d-%d: ", ipmi.MinFanSpeed, ipmi.MaxFanSpeed))
	if !ok {
		return
	}

	percent, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintf(c.out, "   ! %q is not a number\n", answer)
		return
	}

	err = c.ctrl.SetFanManual(ctx, percent)
	if errors.HasCode(err, ipmi.ErrInvalidFanSpeed) {
		fmt.Fprintf(c.out, "   ! Fan speed must be between %d and %d\n", ipmi.MinFanSpeed, ipmi.MaxFanSpeed)
		return
	}

	c.record(ctx, journal.OpFanManual, strconv.Itoa(percent), err)

	if err != nil {
		fmt.Fprintf(c.out, "   ! Fan speed %d%% not fully applied: %v\n", percent, err)
		return
	}
	fmt.Fprintf(c.out, "   ✓ Sent %d%% fan speed\n", percent)
}

func (c *Console) fanAuto(ctx context.Context) {
	var err error
	if !c.ctrl.SetFanAuto(ctx) {
		err = errors.New().New(errors.ErrFanControl)
	}

	c.record(ctx, journal.OpFanAuto, "", err)

	if err != nil {
		fmt.Fprintln(c.out, "   ! Automatic fan control not confirmed")
		return
	}
	fmt.Fprintln(c.out, "   ✓ Switched to automatic fan control")
}

func (c *Console) power(ctx context.Context) {
	answer, ok := c.prompt(ctx, "   a. On / b. Soft off / c. Hard reset: ")
	if !ok {
		return
	}

	action, valid := ipmi.ParsePowerAction(answer)
	if !valid {
		fmt.Fprintln(c.out, "   ! No power action taken")
		return
	}

	var err error
	if !c.ctrl.PowerControl(ctx, action) {
		err = errors.New().WithData(errors.ErrPowerControl, action.String())
	}

	c.record(ctx, journal.OpPowerControl, action.String(), err)

	if err != nil {
		fmt.Fprintf(c.out, "   ! Power %s not confirmed\n", action)
		return
	}
	fmt.Fprintf(c.out, "   ✓ Sent power %s\n", action)
}

func (c *Console) record(ctx context.Context, op journal.Operation, argument string, outcome error) {
	entry := journal.NewEntry(c.ctrl.Host(), op, argument, outcome)
	if err := c.journal.Record(ctx, entry); err != nil {
		c.logger.Warn().Err(err).Str("operation", string(op)).Msg("Failed to journal operation")
	}
}

func (c *Console) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(c.out, label)

	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-c.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// readLines feeds input lines to the loop so a blocked read never holds up
// cancellation. The channel is closed at end of input.
func (c *Console) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		c.readErr = scanner.Err()
	}()

	return lines
}

// inputErr reports a read failure once the line channel has closed. EOF is
// a normal quit.
func (c *Console) inputErr() error {
	if c.readErr != nil {
		return errors.New().Wrap(errors.ErrConsoleLoop, c.readErr)
	}
	return nil
}

func (c *Console) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
