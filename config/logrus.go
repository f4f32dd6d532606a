package config

import (
	"net/http"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var (
	logrusInstance *logrus.Logger
	logrusOnce     sync.Once
)

func GetLogrusInstance() *logrus.Logger {
	logrusOnce.Do(func() {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
		logrusInstance.SetOutput(os.Stdout)

		level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
		if err != nil {
			level = logrus.InfoLevel
		}
		logrusInstance.SetLevel(level)
	})
	return logrusInstance
}

// PrintLogInfo records the outcome of a handler. Anything from 400 up is
// logged as a warning, 500 and above as an error.
func PrintLogInfo(user *string, statusCode int, functionName string) {
	who := "Unknown"
	if user != nil && *user != "" {
		who = *user
	}

	entry := GetLogrusInstance().WithFields(logrus.Fields{
		"user":     who,
		"function": functionName,
		"status":   statusCode,
	})
	msg := http.StatusText(statusCode)

	switch {
	case statusCode >= fiber.StatusInternalServerError:
		entry.Error(msg)
	case statusCode >= fiber.StatusBadRequest:
		entry.Warn(msg)
	default:
		entry.Info(msg)
	}
}
