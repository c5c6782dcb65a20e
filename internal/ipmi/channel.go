package ipmi

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/logger"
)

const (
	// DefaultBinary is the management tool invoked for every command.
	DefaultBinary = "ipmitool"

	// DefaultTimeout bounds a single invocation.
	DefaultTimeout = 12 * time.Second

	maskedSecret = "********"

	// waitDelay caps how long Wait blocks on output pipes after a kill.
	waitDelay = time.Second
)

// Runner spawns one external process and returns its standard output. It is
// the only I/O boundary of the package, so tests can inject a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	errFactory := errors.New()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, errFactory.Wrap(ErrCommandTimeout, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, errFactory.Wrap(ErrCommandExited, err).WithData(struct {
			ExitCode int
			Stderr   string
		}{
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		})
	}

	return nil, errFactory.Wrap(ErrCommandLaunch, err)
}

// Option configures a Channel.
type Option func(*Channel)

// WithRunner replaces the process spawner.
func WithRunner(r Runner) Option {
	return func(c *Channel) {
		c.runner = r
	}
}

// WithTimeout sets the per-command timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBinary sets the management tool executable.
func WithBinary(name string) Option {
	return func(c *Channel) {
		if name != "" {
			c.binary = name
		}
	}
}

// WithLogger sets the logger used to record failure causes.
func WithLogger(log logger.Logger) Option {
	return func(c *Channel) {
		if log != nil {
			c.logger = log
		}
	}
}

// Channel executes single management commands against one controller. Each
// call is exactly one attempt; every kind of failure collapses to false.
type Channel struct {
	conn    ConnectionConfig
	runner  Runner
	binary  string
	timeout time.Duration
	logger  logger.Logger
}

// NewChannel returns a Channel for conn.
func NewChannel(conn ConnectionConfig, opts ...Option) *Channel {
	c := &Channel{
		conn:    conn,
		runner:  execRunner{},
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
		logger:  logger.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Timeout returns the per-command timeout.
func (c *Channel) Timeout() time.Duration {
	return c.timeout
}

// Output runs args and returns the trimmed standard output. The boolean is
// false on launch failure, non-zero exit or timeout.
func (c *Channel) Output(ctx context.Context, args ...string) (string, bool) {
	out, ok := c.run(ctx, args)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(string(out)), true
}

// Exec runs args and reports only whether the command succeeded.
func (c *Channel) Exec(ctx context.Context, args ...string) bool {
	_, ok := c.run(ctx, args)
	return ok
}

func (c *Channel) run(ctx context.Context, args []string) ([]byte, bool) {
	execCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	argv := append(c.conn.args(), args...)
	command := strings.Join(args, " ")

	start := time.Now()
	out, err := c.runner.Run(execCtx, c.binary, argv...)
	elapsed := time.Since(start)

	if err != nil {
		c.logFailure(execCtx, command, err, elapsed)
		return nil, false
	}

	c.logger.Debug().
		Str("command", command).
		Dur("elapsed", elapsed).
		Int("bytes", len(out)).
		Msg("Command completed")

	return out, true
}

// logFailure records why a command failed. Callers only ever see false.
func (c *Channel) logFailure(ctx context.Context, command string, err error, elapsed time.Duration) {
	cause := "launch"
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.HasCode(err, ErrCommandTimeout):
		cause = "timeout"
	case errors.HasCode(err, ErrCommandExited):
		cause = "exit"
	}

	c.logger.Warn().
		Err(err).
		Str("command", command).
		Str("cause", cause).
		Str("argv", c.maskedArgv(command)).
		Dur("elapsed", elapsed).
		Dur("timeout", c.timeout).
		Msg("Command failed")
}

func (c *Channel) maskedArgv(command string) string {
	argv := c.conn.args()
	for i := range argv {
		if i > 0 && argv[i-1] == "-P" {
			argv[i] = maskedSecret
		}
	}

	return c.binary + " " + strings.Join(argv, " ") + " " + command
}
