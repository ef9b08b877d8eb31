// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects the verbosity and presentation of log output.
type Options struct {
	Verbose bool
	Quiet   bool
	NoColor bool
}

// Level maps the verbosity flags to a zerolog level. Quiet wins over
// Verbose.
func (o Options) Level() zerolog.Level {
	switch {
	case o.Quiet:
		return zerolog.ErrorLevel
	case o.Verbose:
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// Init installs a console logger writing to w as the global logger and
// returns it.
func Init(w io.Writer, o Options) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    o.NoColor,
	}
	logger := zerolog.New(output).Level(o.Level()).With().Timestamp().Str("app", "memberfmt").Logger()
	log.Logger = logger
	return logger
}
