package ipmi_test

import (
	"context"
	"strings"
	"sync"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/ipmi"
)

// connPrefixLen is the number of connection arguments ahead of the command.
const connPrefixLen = 8

type response struct {
	out string
	err error
}

type call struct {
	name string
	argv []string
}

func (c call) command() string {
	return strings.Join(c.argv[connPrefixLen:], " ")
}

// fakeRunner answers commands from a script keyed by the command text
// without the connection prefix. Unscripted commands fail.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []call
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: make(map[string]response)}
}

func (f *fakeRunner) on(command, out string) *fakeRunner {
	f.responses[command] = response{out: out}
	return f
}

func (f *fakeRunner) fail(command string, err error) *fakeRunner {
	f.responses[command] = response{err: err}
	return f
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := call{name: name, argv: append([]string(nil), args...)}
	f.calls = append(f.calls, c)

	resp, ok := f.responses[c.command()]
	if !ok {
		return nil, errors.New().New(ipmi.ErrCommandExited)
	}
	if resp.err != nil {
		return nil, resp.err
	}

	return []byte(resp.out), nil
}

func (f *fakeRunner) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.command()
	}

	return out
}

// blockingRunner waits for the context to end, like a hung ipmitool.
type blockingRunner struct{}

func (blockingRunner) Run(ctx context.Context, _ string, _ ...string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func testConn() ipmi.ConnectionConfig {
	return ipmi.ConnectionConfig{
		Host:     "192.168.0.150",
		Username: "root",
		Password: "calvin",
	}
}
