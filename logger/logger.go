package logger

import (
	"strings"

	"github.com/cuducos/astronomer/config"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key (and log field) holding the request ID
const RequestIDKey = "requestID"

// Setup will configure logrus logger
// gin messages and recovered panics are written through logrus too
func Setup(cfg config.Config) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.Logs.OutputLogsAsJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.SetLevel(StringToLogrusLogType(cfg.Logs.Level))

	gin.DefaultWriter = logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	gin.DefaultErrorWriter = logrus.StandardLogger().WriterLevel(logrus.ErrorLevel)
}

// StringToLogrusLogType will convert string to the right logrus level
// unknown levels fallback to error
func StringToLogrusLogType(logLevel string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(logLevel))
	if err != nil {
		return logrus.ErrorLevel
	}

	return level
}

// ForRequest return a log entry with the ID of the request being handled
func ForRequest(c *gin.Context) *logrus.Entry {
	return logrus.WithField(RequestIDKey, c.GetString(RequestIDKey))
}
