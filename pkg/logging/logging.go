package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatActions = "actions"
)

// ActionsFormatter prints errors and warnings as GitHub Actions workflow commands.
type ActionsFormatter struct{}

var actionsEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

func textFormatter() log.Formatter {
	return &log.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        time.RFC3339Nano,
		DisableLevelTruncation: true,
	}
}

func jsonFormatter() log.Formatter {
	return &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}
}

func Setup(level, format string) error {
	log.SetOutput(os.Stderr)

	switch format {
	case FormatJSON:
		log.SetFormatter(jsonFormatter())
	case FormatText:
		log.SetFormatter(textFormatter())
	case FormatActions:
		log.SetFormatter(&ActionsFormatter{})
	default:
		return fmt.Errorf("log format '%s' is not recognized", format)
	}

	logLevel, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("while setting log level: %s", err)
	}
	log.SetLevel(logLevel)

	return nil
}

func (a *ActionsFormatter) Format(e *log.Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch e.Level {
	case log.PanicLevel, log.FatalLevel, log.ErrorLevel:
		buf.WriteString("::error::")
		buf.WriteString(actionsEscaper.Replace(e.Message))
	case log.WarnLevel:
		buf.WriteString("::warning::")
		buf.WriteString(actionsEscaper.Replace(e.Message))
	default:
		buf.WriteString("[")
		buf.WriteString(e.Time.Format(time.RFC3339Nano))
		buf.WriteString("] ")
		buf.WriteString(e.Message)
	}
	buf.WriteRune('\n')
	return buf.Bytes(), nil
}
