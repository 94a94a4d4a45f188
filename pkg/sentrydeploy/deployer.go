package sentrydeploy

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	ocodes "go.opentelemetry.io/otel/codes"

	"github.com/nais/sentry-deploy/pkg/metrics"
	"github.com/nais/sentry-deploy/pkg/telemetry"
)

const Program = "sentry-cli"

// ToolChecker verifies that sentry-cli can be used before anything is executed.
type ToolChecker interface {
	CheckInstalled(ctx context.Context) error
}

// Runner executes sentry-cli with the given arguments.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// Reporter is the user facing output channel.
type Reporter interface {
	Success(message string)
	Fail(message string)
}

type Deployer struct {
	Checker  ToolChecker
	Runner   Runner
	Reporter Reporter
	DryRun   bool
}

// CreateDeploy registers a deploy of an existing release with sentry-cli.
//
// Exactly one of Reporter.Success and Reporter.Fail is called. Errors from the runner
// are returned as-is, so that the tool output reaches the caller untouched.
func (d *Deployer) CreateDeploy(ctx context.Context, request Request) error {
	start := time.Now()
	version := request.EffectiveVersion()

	ctx, span := telemetry.Tracer().Start(ctx, "Create Sentry deploy")
	defer span.End()
	telemetry.AddRequestSpanAttributes(span, version, request.Environment)

	err := d.createDeploy(ctx, request)
	metrics.Registration(start, request.Environment, int(ErrorExitCode(err)))

	if err != nil {
		span.SetStatus(ocodes.Error, err.Error())
		span.RecordError(err)
		d.Reporter.Fail(err.Error())
		return err
	}

	d.Reporter.Success(fmt.Sprintf("Successfully created deploy: %s", version))
	return nil
}

func (d *Deployer) createDeploy(ctx context.Context, request Request) error {
	err := request.Validate()
	if err != nil {
		return err
	}

	args := request.Arguments()

	if d.DryRun {
		log.Infof("Dry run; not executing: %s", CommandLine(args))
		return nil
	}

	err = d.Checker.CheckInstalled(ctx)
	if err != nil {
		return err
	}

	log.Infof("Creating deploy of release '%s' to environment '%s'...", request.EffectiveVersion(), request.Environment)
	log.Debugf("Running %s", CommandLine(args))

	return d.Runner.Run(ctx, args)
}

// CommandLine renders the full sentry-cli invocation for logging.
func CommandLine(args []string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, Program)
	for _, arg := range args {
		if len(arg) == 0 || strings.ContainsAny(arg, " \t\n\"'") {
			arg = strconv.Quote(arg)
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}
