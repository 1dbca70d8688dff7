package boxes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Process defaults.
const (
	DefaultBinary    = "boxes"
	DefaultTimeout   = 200 * time.Millisecond
	DefaultMaxOutput = 200_000
)

var (
	// ErrTimeout is returned when the renderer exceeds its time budget.
	ErrTimeout = errors.New("boxes: render timed out")
	// ErrOutputTooLarge is returned when the renderer writes more than the
	// output cap. No partial output is returned.
	ErrOutputTooLarge = errors.New("boxes: output exceeds size cap")
)

// ExitError reports a renderer that exited non-zero.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("boxes exit %d: %s", e.Code, e.Stderr)
}

// Process renders by spawning the boxes program once per request.
type Process struct {
	Binary     string        // executable name or path, default "boxes"
	ConfigPath string        // boxes-config file passed with -f, optional
	Timeout    time.Duration // hard limit per call, default 200ms
	MaxOutput  int           // stdout cap in bytes, default 200KB
	Validator  Validator
	Logger     *log.Logger
}

// Compile-time check that Process implements Renderer
var _ Renderer = (*Process)(nil)

// NewProcess creates a Process with default limits and allow-list.
func NewProcess(configPath string) *Process {
	return &Process{
		Binary:     DefaultBinary,
		ConfigPath: configPath,
		Timeout:    DefaultTimeout,
		MaxOutput:  DefaultMaxOutput,
		Validator:  DefaultValidator(),
	}
}

// Render validates req, runs the renderer with req.Text on stdin, and
// returns its output together with the measured grid.
func (p *Process) Render(ctx context.Context, req Request) (Response, error) {
	if err := p.Validator.Validate(req); err != nil {
		return Response{}, err
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bin := p.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	maxOut := p.MaxOutput
	if maxOut <= 0 {
		maxOut = DefaultMaxOutput
	}

	stdout := &cappedBuffer{limit: maxOut, onOverflow: cancel}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, bin, BuildArgs(req, p.ConfigPath)...)
	cmd.Stdin = strings.NewReader(req.Text)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = timeout

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err := runError(ctx, runCtx, err, stdout.overflowed(), stderr.String()); err != nil {
		return Response{}, err
	}

	boxText := strings.TrimSuffix(stdout.String(), "\n")
	measured := Measure(boxText)
	p.logger().Debug("rendered", "design", req.Design, "size", FormatSize(req.Size),
		"measured", FormatSize(measured), "elapsed", elapsed)
	return Response{BoxText: boxText, Measured: &measured}, nil
}

// runError classifies the outcome of one renderer run. A run that exited
// cleanly succeeds even if its deadline passed while it was being reaped.
func runError(ctx, runCtx context.Context, err error, overflowed bool, stderr string) error {
	switch {
	case overflowed:
		return ErrOutputTooLarge
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Stderr: strings.TrimSpace(stderr)}
	}
	return fmt.Errorf("boxes: %w", err)
}

func (p *Process) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

// BuildArgs returns the renderer command line for req.
func BuildArgs(req Request, configPath string) []string {
	args := []string{"--no-color", "-n", "UTF-8"}
	if configPath != "" {
		args = append(args, "-f", configPath)
	}
	args = append(args, "-d", req.Design)
	eol := req.EOL
	if eol == "" {
		eol = EOLLF
	}
	args = append(args, "-e", eol)
	if req.Align != "" {
		args = append(args, "-a", req.Align)
	}
	if req.Tabs > 0 {
		args = append(args, "-t", strconv.Itoa(req.Tabs))
	}
	args = append(args, "-p", FormatPadding(req.Padding))
	if size := FormatSize(req.Size); size != "" {
		args = append(args, "-s", size)
	}
	return args
}

// cappedBuffer collects stdout until limit bytes, then refuses further
// writes and fires onOverflow once so the process is killed.
type cappedBuffer struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	limit      int
	over       bool
	onOverflow func()
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.over {
		return 0, ErrOutputTooLarge
	}
	if b.buf.Len()+len(p) > b.limit {
		b.over = true
		if b.onOverflow != nil {
			b.onOverflow()
		}
		return 0, ErrOutputTooLarge
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) overflowed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.over
}

func (b *cappedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
