package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nais/sentry-deploy/pkg/config"
	"github.com/nais/sentry-deploy/pkg/conftools"
	"github.com/nais/sentry-deploy/pkg/logging"
	"github.com/nais/sentry-deploy/pkg/metrics"
	"github.com/nais/sentry-deploy/pkg/sentrycli"
	"github.com/nais/sentry-deploy/pkg/sentrydeploy"
	"github.com/nais/sentry-deploy/pkg/telemetry"
	"github.com/nais/sentry-deploy/pkg/version"
)

func main() {
	os.Exit(int(run(os.Args[1:])))
}

func run(args []string) sentrydeploy.ExitCode {
	v := viper.New()
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	config.Initialize(v, flags)

	// Configuration
	cfg, err := config.Load(v, flags, args)
	if err == flag.ErrHelp {
		return sentrydeploy.ExitSuccess
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		log.Errorf("fatal: %s", err)
		flags.Usage()
		return sentrydeploy.ExitInvocationFailure
	}

	// Logging
	err = logging.Setup(cfg.LogSettings())
	if err != nil {
		log.Errorf("fatal: %s", err)
		return sentrydeploy.ExitInvocationFailure
	}

	// Welcome
	log.Infof("sentry-deploy %s", version.Version())
	ts, err := version.BuildTime()
	if err == nil {
		log.Debugf("This version was built %s", ts.Local())
	}

	for _, line := range conftools.Format(v, config.Masked) {
		log.Debug(line)
	}

	request, err := cfg.Request()
	if err != nil {
		log.Errorf("fatal: %s", err)
		return sentrydeploy.ExitInvocationFailure
	}

	api := cfg.API()
	if !cfg.DryRun {
		if err := api.Validate(); err != nil {
			log.Errorf("fatal: %s", err)
			return sentrydeploy.ExitInvocationFailure
		}
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	// Tracing
	tracerProvider, err := telemetry.New(ctx, "sentry-deploy", cfg.OpenTelemetryCollector)
	if err != nil {
		log.Errorf("fatal: set up tracing: %s", err)
		return sentrydeploy.ExitInternalError
	}
	defer func() {
		err := tracerProvider.Shutdown(context.Background())
		if err != nil {
			log.Warnf("flush traces: %s", err)
		}
	}()
	ctx = telemetry.WithTraceParent(ctx, cfg.Traceparent)

	cli := sentrycli.New(cfg.SentryCLIPath, api)
	cli.MinimumVersion = cfg.SentryCLIMinVersion

	d := sentrydeploy.Deployer{
		Checker:  cli,
		Runner:   cli,
		Reporter: logging.NewReporter(),
		DryRun:   cfg.DryRun,
	}

	if cfg.DryRun && request.Validate() == nil {
		fmt.Println(sentrydeploy.CommandLine(request.Arguments()))
	}

	err = d.CreateDeploy(ctx, request)

	if len(cfg.MetricsFile) > 0 {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warnf("write metrics to %s: %s", cfg.MetricsFile, err)
		}
	}

	return sentrydeploy.ErrorExitCode(err)
}
