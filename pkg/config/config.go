package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nais/sentry-deploy/pkg/conftools"
	"github.com/nais/sentry-deploy/pkg/logging"
	"github.com/nais/sentry-deploy/pkg/sentrycli"
	"github.com/nais/sentry-deploy/pkg/sentrydeploy"
)

const (
	ConfigName = "sentry-deploy"
	EnvPrefix  = "SENTRY_DEPLOY"
)

type Config struct {
	Actions                bool          `json:"actions"`
	APIKey                 string        `json:"api-key"`
	AppIdentifier          string        `json:"app-identifier"`
	AuthToken              string        `json:"auth-token"`
	DeployURL              string        `json:"deploy-url"`
	DryRun                 bool          `json:"dry-run"`
	Env                    string        `json:"env"`
	Finished               string        `json:"finished"`
	LogFormat              string        `json:"log-format"`
	LogLevel               string        `json:"log-level"`
	MetricsFile            string        `json:"metrics-file"`
	Name                   string        `json:"name"`
	OpenTelemetryCollector string        `json:"otel-collector-endpoint"`
	OrgSlug                string        `json:"org-slug"`
	ProjectSlug            string        `json:"project-slug"`
	Quiet                  bool          `json:"quiet"`
	ReleaseVersion         string        `json:"release-version"`
	SentryCLIMinVersion    string        `json:"sentry-cli-min-version"`
	SentryCLIPath          string        `json:"sentry-cli-path"`
	SentryLogLevel         string        `json:"sentry-log-level"`
	Started                string        `json:"started"`
	Time                   string        `json:"time"`
	Timeout                time.Duration `json:"timeout"`
	Traceparent            string        `json:"traceparent"`
	URL                    string        `json:"url"`
}

const (
	Actions                = "actions"
	APIKey                 = "api-key"
	AppIdentifier          = "app-identifier"
	AuthToken              = "auth-token"
	DeployURL              = "deploy-url"
	DryRun                 = "dry-run"
	Env                    = "env"
	Finished               = "finished"
	LogFormat              = "log-format"
	LogLevel               = "log-level"
	MetricsFile            = "metrics-file"
	Name                   = "name"
	OpenTelemetryCollector = "otel-collector-endpoint"
	OrgSlug                = "org-slug"
	ProjectSlug            = "project-slug"
	Quiet                  = "quiet"
	ReleaseVersion         = "release-version"
	SentryCLIMinVersion    = "sentry-cli-min-version"
	SentryCLIPath          = "sentry-cli-path"
	SentryLogLevel         = "sentry-log-level"
	Started                = "started"
	Time                   = "time"
	Timeout                = "timeout"
	Traceparent            = "traceparent"
	URL                    = "url"
)

// Masked keys are redacted when printing configuration.
var Masked = []string{
	APIKey,
	AuthToken,
}

var (
	ErrVersionRequired     = errors.New("release version required")
	ErrEnvironmentRequired = errors.New("environment required; values that make sense here would be 'production' or 'staging'")
)

var help = `
sentry-deploy associates a deploy with an existing release in Sentry, using sentry-cli.
See https://docs.sentry.io/product/cli/releases/#creating-deploys for more information.
`

// Bind environment variables used by sentry-cli and the fastlane Sentry plugin.
func bindSentry(v *viper.Viper) {
	v.BindEnv(APIKey, "SENTRY_API_KEY")
	v.BindEnv(AppIdentifier, "SENTRY_APP_IDENTIFIER")
	v.BindEnv(AuthToken, "SENTRY_AUTH_TOKEN")
	v.BindEnv(OrgSlug, "SENTRY_ORG_SLUG", "SENTRY_ORG")
	v.BindEnv(ProjectSlug, "SENTRY_PROJECT_SLUG", "SENTRY_PROJECT")
	v.BindEnv(SentryCLIPath, "SENTRY_CLI_PATH")
	v.BindEnv(SentryLogLevel, "SENTRY_LOG_LEVEL")
	v.BindEnv(Traceparent, "TRACEPARENT")
	v.BindEnv(URL, "SENTRY_URL")
}

// Initialize registers all command-line flags on flags and environment bindings on v.
func Initialize(v *viper.Viper, flags *flag.FlagSet) {
	conftools.Initialize(v, ConfigName, EnvPrefix)
	bindSentry(v)

	flags.Usage = func() {
		fmt.Fprint(flags.Output(), help[1:])
		fmt.Fprintln(flags.Output())
		flags.PrintDefaults()
	}

	// Deploy
	flags.String(ReleaseVersion, "", "Release version to associate the deploy with on Sentry.")
	flags.StringP(AppIdentifier, "a", "", "App bundle identifier, prepended to the release version. (env SENTRY_APP_IDENTIFIER)")
	flags.StringP(Env, "e", "", "Environment of this deploy, e.g. 'production' or 'staging'. Required.")
	flags.StringP(Name, "n", "", "Optional human readable name for this deployment.")
	flags.String(DeployURL, "", "Optional URL that points to the deployment.")
	flags.String(Started, "", "Optional unix timestamp when the deployment started.")
	flags.String(Finished, "", "Optional unix timestamp when the deployment finished.")
	flags.StringP(Time, "t", "", "Optional deployment duration in seconds. Can be specified instead of 'started' and 'finished'.")

	// Sentry
	flags.String(URL, sentrycli.DefaultURL, "URL of the Sentry server. (env SENTRY_URL)")
	flags.String(AuthToken, "", "Authentication token for Sentry. (env SENTRY_AUTH_TOKEN)")
	flags.String(APIKey, "", "API key for Sentry, used when no auth token is given. (env SENTRY_API_KEY)")
	flags.String(OrgSlug, "", "Organization slug for Sentry project. (env SENTRY_ORG_SLUG)")
	flags.String(ProjectSlug, "", "Project slug for Sentry. (env SENTRY_PROJECT_SLUG)")
	flags.String(SentryLogLevel, "", "Log level of sentry-cli: trace, debug, info, warn or error. (env SENTRY_LOG_LEVEL)")
	flags.String(SentryCLIPath, sentrydeploy.Program, "Path to the sentry-cli executable. (env SENTRY_CLI_PATH)")
	flags.String(SentryCLIMinVersion, sentrycli.DefaultMinimumVersion, "Refuse to run older sentry-cli versions. Empty to skip the check.")

	// Runtime
	flags.Bool(DryRun, false, "Print the sentry-cli command line, but don't execute it.")
	flags.Bool(Actions, false, "Use GitHub Actions compatible error and warning messages.")
	flags.Bool(Quiet, false, "Suppress printing of informational messages except errors.")
	flags.String(LogFormat, logging.FormatText, "Log format, either 'text', 'json' or 'actions'.")
	flags.String(LogLevel, "info", "Logging verbosity level.")
	flags.Duration(Timeout, 0, "Abort sentry-cli after this long. Zero waits forever.")
	flags.String(OpenTelemetryCollector, "", "OpenTelemetry collector endpoint. Traces are not exported if empty.")
	flags.String(Traceparent, "", "The W3C Trace Context traceparent value for the workflow run. (env TRACEPARENT)")
	flags.String(MetricsFile, "", "Write Prometheus metrics to this file after the run, for the node exporter textfile collector.")
}

// Load parses args and returns the resolved configuration.
func Load(v *viper.Viper, flags *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	err := conftools.Load(v, flags, args, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if len(cfg.ReleaseVersion) == 0 {
		return ErrVersionRequired
	}

	if len(cfg.Env) == 0 {
		return ErrEnvironmentRequired
	}

	return nil
}

// LogSettings returns the effective log level and format.
func (cfg *Config) LogSettings() (level, format string) {
	level, format = cfg.LogLevel, cfg.LogFormat
	if cfg.Actions {
		format = logging.FormatActions
	}
	if cfg.Quiet {
		level = "error"
	}
	return level, format
}

func (cfg *Config) API() sentrycli.APIConfig {
	return sentrycli.APIConfig{
		URL:       cfg.URL,
		AuthToken: cfg.AuthToken,
		APIKey:    cfg.APIKey,
		Org:       cfg.OrgSlug,
		Project:   cfg.ProjectSlug,
		LogLevel:  cfg.SentryLogLevel,
	}
}

// Request converts the deploy parameters into a sentrydeploy.Request.
// Timestamps and durations must be integers.
func (cfg *Config) Request() (sentrydeploy.Request, error) {
	var err error

	request := sentrydeploy.Request{
		Version:       cfg.ReleaseVersion,
		AppIdentifier: cfg.AppIdentifier,
		Environment:   cfg.Env,
		Name:          cfg.Name,
		DeployURL:     cfg.DeployURL,
	}

	request.Started, err = parseOptionalInt(Started, cfg.Started)
	if err != nil {
		return request, err
	}

	request.Finished, err = parseOptionalInt(Finished, cfg.Finished)
	if err != nil {
		return request, err
	}

	request.Time, err = parseOptionalInt(Time, cfg.Time)
	if err != nil {
		return request, err
	}

	return request, nil
}

func parseOptionalInt(key, value string) (*int64, error) {
	if len(value) == 0 {
		return nil, nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: expected an integer, found '%s'", key, value)
	}
	return &i, nil
}
