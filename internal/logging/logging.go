// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pranshuparmar/procargs/internal/config"
)

// Setup applies the logging section of cfg to the standard logger and
// directs it to w.
func Setup(cfg config.LoggingConfig, w io.Writer) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(w)

	switch cfg.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return fmt.Errorf("log format %q: want text or json", cfg.Format)
	}
	return nil
}

// For returns an entry tagged with the component that logs through it.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
