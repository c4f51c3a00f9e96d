package config

import (
	"github.com/sirupsen/logrus"
)

// SetupLogging configures the shared logrus logger from the loaded
// configuration and returns it. Lambda log collection works best with one
// JSON document per line, so serverless mode switches to the JSON formatter.
func SetupLogging(config *Config) *logrus.Logger {
	logger := logrus.StandardLogger()

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if IsServerlessMode() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
