package sentrycli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/nais/sentry-deploy/pkg/sentrydeploy"
)

// Oldest sentry-cli release with the `releases deploys` subcommand.
const DefaultMinimumVersion = "1.20.0"

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// CLI runs the sentry-cli binary. It implements both sentrydeploy.ToolChecker and sentrydeploy.Runner.
type CLI struct {
	Path           string
	API            APIConfig
	MinimumVersion string
	Output         io.Writer
}

// ToolError is returned when sentry-cli exits unsuccessfully.
// Its message is whatever the tool printed.
type ToolError struct {
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	if len(e.Output) > 0 {
		return e.Output
	}
	return e.Err.Error()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ExitCode of the sentry-cli process, or -1 if it never exited normally.
func (e *ToolError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func New(path string, api APIConfig) *CLI {
	if len(path) == 0 {
		path = sentrydeploy.Program
	}
	return &CLI{
		Path:           path,
		API:            api,
		MinimumVersion: DefaultMinimumVersion,
		Output:         os.Stdout,
	}
}

func (c *CLI) CheckInstalled(ctx context.Context) error {
	path, err := exec.LookPath(c.Path)
	if err != nil {
		log.Debugf("look up %s: %s", c.Path, err)
		return sentrydeploy.ErrorWrap(sentrydeploy.ExitToolMissing, sentrydeploy.ErrToolMissing)
	}

	if len(c.MinimumVersion) == 0 {
		return nil
	}

	output, err := c.command(ctx, "--version").CombinedOutput()
	if err != nil {
		return sentrydeploy.Errorf(sentrydeploy.ExitToolMissing, "%s --version: %s: %w", path, strings.TrimSpace(string(output)), err)
	}

	installed, err := ParseVersion(string(output))
	if err != nil {
		return sentrydeploy.ErrorWrap(sentrydeploy.ExitToolMissing, err)
	}

	log.Debugf("Found sentry-cli %s at %s", installed, path)

	if semver.Compare(canonical(installed), canonical(c.MinimumVersion)) < 0 {
		return sentrydeploy.Errorf(sentrydeploy.ExitToolMissing, "%w: found version %s, upgrade to at least %s", sentrydeploy.ErrToolTooOld, installed, c.MinimumVersion)
	}

	return nil
}

// Run executes sentry-cli. Output is streamed to c.Output while the process runs,
// and returned verbatim in a *ToolError if it fails.
func (c *CLI) Run(ctx context.Context, args []string) error {
	captured := &bytes.Buffer{}
	out := io.MultiWriter(captured, c.output())

	cmd := c.command(ctx, args...)
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return sentrydeploy.Errorf(sentrydeploy.ExitTimeout, "sentry-cli did not finish: %w", ctx.Err())
	}

	return sentrydeploy.ErrorWrap(sentrydeploy.ExitToolFailed, &ToolError{
		Output: strings.TrimSpace(captured.String()),
		Err:    err,
	})
}

// ParseVersion extracts the version number from `sentry-cli --version` output.
func ParseVersion(output string) (string, error) {
	version := versionPattern.FindString(output)
	if len(version) == 0 {
		return "", fmt.Errorf("unable to determine sentry-cli version from %q", strings.TrimSpace(output))
	}
	return version, nil
}

func (c *CLI) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Env = append(os.Environ(), c.API.Environ()...)
	return cmd
}

func (c *CLI) output() io.Writer {
	if c.Output == nil {
		return io.Discard
	}
	return c.Output
}

func canonical(version string) string {
	return semver.Canonical("v" + strings.TrimPrefix(version, "v"))
}
