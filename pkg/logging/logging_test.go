package logging_test

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/nais/sentry-deploy/pkg/logging"
)

func TestSetup(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	assert.NoError(t, logging.Setup("debug", logging.FormatJSON))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	assert.NoError(t, logging.Setup("error", logging.FormatActions))
	assert.Equal(t, log.ErrorLevel, log.GetLevel())
	assert.IsType(t, &logging.ActionsFormatter{}, log.StandardLogger().Formatter)

	assert.EqualError(t, logging.Setup("info", "xml"), "log format 'xml' is not recognized")
	assert.EqualError(t, logging.Setup("loud", logging.FormatText), `while setting log level: not a valid logrus Level: "loud"`)
}

func TestActionsFormatter(t *testing.T) {
	formatter := &logging.ActionsFormatter{}
	ts := time.Date(2024, time.September, 11, 10, 26, 35, 0, time.UTC)

	for _, tt := range []struct {
		level    log.Level
		message  string
		expected string
	}{
		{log.ErrorLevel, "error: API request failed\nstatus 404", "::error::error: API request failed%0Astatus 404\n"},
		{log.WarnLevel, "100% sure", "::warning::100%25 sure\n"},
		{log.InfoLevel, "Successfully created deploy: 1.2.3", "[2024-09-11T10:26:35Z] Successfully created deploy: 1.2.3\n"},
	} {
		output, err := formatter.Format(&log.Entry{Level: tt.level, Message: tt.message, Time: ts})
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, string(output))
	}
}

func TestReporter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	reporter := &logging.Reporter{Logger: logger}

	reporter.Success("Successfully created deploy: 1.2.3")
	assert.Equal(t, log.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "Successfully created deploy: 1.2.3", hook.LastEntry().Message)

	reporter.Fail("error: API request failed")
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "error: API request failed", hook.LastEntry().Message)
	assert.Len(t, hook.AllEntries(), 2)
}
