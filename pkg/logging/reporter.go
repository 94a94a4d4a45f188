package logging

import (
	log "github.com/sirupsen/logrus"
)

// Reporter sends deploy outcomes to the log.
type Reporter struct {
	Logger log.FieldLogger
}

func NewReporter() *Reporter {
	return &Reporter{
		Logger: log.StandardLogger(),
	}
}

func (r *Reporter) Success(message string) {
	r.Logger.Info(message)
}

func (r *Reporter) Fail(message string) {
	r.Logger.Error(message)
}
