package contract

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)

	if strings.ToLower(os.Getenv("TRACKSTAT_LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return log
}

// Log returns the shared structured logger.
func Log() *logrus.Logger {
	return logger
}

// SetVerbose switches the shared logger to debug level.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// LogWarn logs a non-fatal problem with its cause.
func LogWarn(msg string, err error) {
	if err != nil {
		logger.WithError(err).Warn(msg)
		return
	}
	logger.Warn(msg)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	if err != nil {
		logger.WithError(err).Error(msg)
	} else {
		logger.Error(msg)
	}
	os.Exit(1)
}
