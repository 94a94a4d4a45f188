// Package version holds build information injected at link time, e.g.
//
//	go build -ldflags "-X github.com/nais/sentry-deploy/pkg/version.Revision=$(git rev-parse --short HEAD) -X github.com/nais/sentry-deploy/pkg/version.Date=$(date +%s)"
package version

import (
	"strconv"
	"time"
)

var (
	Revision = "unknown"
	Date     = "0"
)

func Version() string {
	return Revision
}

// BuildTime returns the build timestamp, which is stored as seconds since the UNIX epoch.
func BuildTime() (time.Time, error) {
	i, err := strconv.ParseInt(Date, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(i, 0), nil
}
