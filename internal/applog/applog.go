// Package applog provides the structured logger shared by the outer,
// host-facing packages (transport/graphqlws, cmd/gqlrun). The core engine
// packages (ast, schema, validator, executor) stay logging-free; only code
// at the edges of the repository imports this package.
package applog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus.FieldLogger configured with the repository's
// default text formatter and level. Hosts that want their own instance
// pass it to WithLogger instead.
func New() logrus.FieldLogger {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	return logger
}

// Default is the package-level logger used when a caller doesn't supply
// its own via WithLogger.
var Default = New()

// WithLogger returns logger if non-nil, else Default. Packages that accept
// an optional logrus.FieldLogger field call this once at construction time
// rather than nil-checking on every log statement.
func WithLogger(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger != nil {
		return logger
	}
	return Default
}
