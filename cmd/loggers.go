package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// getLogger returns the logrus.Logger for use with packages that expect it
func getLogger() *logrus.Logger {
	return log
}
