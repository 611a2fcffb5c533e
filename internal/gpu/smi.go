package gpu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const DefaultSMIPath = "nvidia-smi"

const waitDelay = 100 * time.Millisecond

// runFunc executes name with args and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// SMIProvider queries all devices with a single nvidia-smi invocation.
type SMIProvider struct {
	path    string
	timeout time.Duration
	run     runFunc
}

func NewSMIProvider(path string, timeout time.Duration) *SMIProvider {
	if path == "" {
		path = DefaultSMIPath
	}
	return &SMIProvider{
		path:    path,
		timeout: timeout,
		run:     execRun,
	}
}

func (p *SMIProvider) Name() string {
	return "nvidia-smi"
}

func (p *SMIProvider) Devices(ctx context.Context) ([]Device, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	output, err := p.run(ctx, p.path, queryArgs()...)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s timed out after %v: %w", p.path, p.timeout, ctxErr)
		}
		return nil, fmt.Errorf("failed to run %s: %w", p.path, err)
	}

	devices, err := ParseQueryOutput(output)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s output: %w", p.path, err)
	}
	return devices, nil
}

func queryArgs() []string {
	return []string{
		"--query-gpu=" + strings.Join(queryFields, ","),
		"--format=csv,noheader,nounits",
	}
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	// Wrapper scripts may leave children holding stdout; stop waiting on
	// them shortly after the deadline kills the process group.
	cmd.WaitDelay = waitDelay
	configureCommand(cmd)

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return output, nil
}

var _ Provider = (*SMIProvider)(nil)
