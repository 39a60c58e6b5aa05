package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

const (
	jsonTimestamp = "2006-01-02T15:04:05.000Z07:00"
	textTimestamp = "2006-01-02 15:04:05"
)

// InitLogger builds the process logger and installs it as Logger. An empty
// level falls back to LOG_LEVEL, then to debug in development and info
// elsewhere. Production always logs JSON; development logs text unless
// LOG_FORMAT=json.
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(formatterFor(isDevelopment, os.Getenv("LOG_FORMAT")))

	level, err := levelFor(logLevel, isDevelopment)
	log.SetLevel(level)
	if err != nil {
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	Logger = log
	return log
}

func levelFor(requested string, isDevelopment bool) (logrus.Level, error) {
	if requested == "" {
		requested = os.Getenv("LOG_LEVEL")
	}
	if requested == "" {
		if isDevelopment {
			return logrus.DebugLevel, nil
		}
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(strings.ToLower(requested))
	if err != nil {
		return logrus.InfoLevel, err
	}
	return level, nil
}

func formatterFor(isDevelopment bool, format string) logrus.Formatter {
	if isDevelopment && !strings.EqualFold(format, "json") {
		return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: textTimestamp}
	}
	return &logrus.JSONFormatter{TimestampFormat: jsonTimestamp}
}

// GetLogger returns Logger, initialising a production logger on first use.
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("info", false)
	}
	return Logger
}

// WithService tags entries with the emitting binary.
func WithService(serviceName string) *logrus.Entry {
	return GetLogger().WithField("service", serviceName)
}

// WithPlayerContext scopes entries to one card.
func WithPlayerContext(playerID uint, name string) *logrus.Entry {
	fields := logrus.Fields{"player_id": playerID}
	if name != "" {
		fields["player_name"] = name
	}
	return GetLogger().WithFields(fields)
}

// WithChatContext tags a resolved chat query with its intent and answer source.
func WithChatContext(intent, source string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"intent": intent,
		"source": source,
	})
}
