package controller

import (
	"fmt"
	"strings"

	"unifimac/pkg/logging"
)

const httpSubsystem = "HTTP"

// httpLogger adapts pkg/logging to retryablehttp.LeveledLogger.
type httpLogger struct{}

// Error is logged at debug level. Every failed request also comes back to
// the caller as a typed error, which is what the user sees.
func (httpLogger) Error(msg string, keysAndValues ...interface{}) {
	logging.Debug(httpSubsystem, "%s", withFields(msg, keysAndValues))
}

func (httpLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Info(httpSubsystem, "%s", withFields(msg, keysAndValues))
}

func (httpLogger) Debug(msg string, keysAndValues ...interface{}) {
	logging.Debug(httpSubsystem, "%s", withFields(msg, keysAndValues))
}

func (httpLogger) Warn(msg string, keysAndValues ...interface{}) {
	logging.Warn(httpSubsystem, "%s", withFields(msg, keysAndValues))
}

// withFields appends key=value pairs to msg. A trailing key without a value
// is rendered as key=MISSING.
func withFields(msg string, keysAndValues []interface{}) string {
	if len(keysAndValues) == 0 {
		return msg
	}

	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		sb.WriteByte(' ')
		if i+1 >= len(keysAndValues) {
			fmt.Fprintf(&sb, "%v=MISSING", keysAndValues[i])
			break
		}
		fmt.Fprintf(&sb, "%v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return sb.String()
}
