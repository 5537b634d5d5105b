// Package logging builds the application's logrus logger from config.
package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/sfx-di/framework/config"
)

// New returns a logger writing to out (stderr when nil) with the level and
// format from cfg. An unknown level or format is an error, not a fallback.
func New(cfg config.LogConfig, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", cfg.Level)
	}

	logger := log.New()
	logger.SetLevel(level)
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	switch cfg.Format {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, errors.Errorf("log format %q: want text or json", cfg.Format)
	}
	return logger, nil
}
