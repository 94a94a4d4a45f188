package sentrydeploy

import (
	"strconv"
)

// Request describes a single deploy to be registered against an existing release.
// Empty strings and nil pointers mean "not given".
type Request struct {
	Version       string
	AppIdentifier string
	Environment   string
	Name          string
	DeployURL     string
	Started       *int64
	Finished      *int64
	Time          *int64
}

type argument struct {
	include bool
	flag    string
	value   string
}

// EffectiveVersion is the release identifier sent to Sentry.
func (r Request) EffectiveVersion() string {
	if len(r.AppIdentifier) > 0 {
		return r.AppIdentifier + "@" + r.Version
	}
	return r.Version
}

// Validate checks that started and finished are given together whenever time is absent.
func (r Request) Validate() error {
	if r.Time == nil && (r.Started != nil) != (r.Finished != nil) {
		return ErrorWrap(ExitInvocationFailure, ErrInvalidTimeRange)
	}
	return nil
}

// Arguments returns the sentry-cli arguments, without the program name.
// Time takes precedence over started and finished.
func (r Request) Arguments() []string {
	hasTime := r.Time != nil

	optional := []argument{
		{len(r.Environment) > 0, "--env", r.Environment},
		{len(r.Name) > 0, "--name", r.Name},
		{len(r.DeployURL) > 0, "--url", r.DeployURL},
		{r.Started != nil && !hasTime, "--started", formatInt(r.Started)},
		{r.Finished != nil && !hasTime, "--finished", formatInt(r.Finished)},
		{hasTime, "--time", formatInt(r.Time)},
	}

	args := []string{"releases", "deploys", r.EffectiveVersion(), "new"}
	for _, arg := range optional {
		if arg.include {
			args = append(args, arg.flag, arg.value)
		}
	}

	return args
}

func formatInt(i *int64) string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(*i, 10)
}
