package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options controls diagnostic logging.
type Options struct {
	Verbose bool
	JSON    bool
	// Level applies when Verbose is false.
	Level logrus.Level
}

// Setup configures the standard logrus logger.
func Setup(out io.Writer, opts Options) {
	logrus.SetOutput(out)

	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}

	level := opts.Level
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
