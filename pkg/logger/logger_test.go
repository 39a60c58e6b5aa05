package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name          string
		envLevel      string
		envFormat     string
		argLevel      string
		isDev         bool
		expectedLevel logrus.Level
		expectJSON    bool
	}{
		{
			name:          "production defaults to info json",
			expectedLevel: logrus.InfoLevel,
			expectJSON:    true,
		},
		{
			name:          "development defaults to debug text",
			isDev:         true,
			expectedLevel: logrus.DebugLevel,
		},
		{
			name:          "env level in development with json format",
			envLevel:      "warn",
			envFormat:     "JSON",
			isDev:         true,
			expectedLevel: logrus.WarnLevel,
			expectJSON:    true,
		},
		{
			name:          "explicit level wins over env",
			envLevel:      "debug",
			argLevel:      "ERROR",
			isDev:         true,
			expectedLevel: logrus.ErrorLevel,
		},
		{
			name:          "invalid level defaults to info",
			argLevel:      "loud",
			isDev:         true,
			expectedLevel: logrus.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.envLevel)
			t.Setenv("LOG_FORMAT", tt.envFormat)
			Logger = nil

			log := InitLogger(tt.argLevel, tt.isDev)
			require.NotNil(t, log)
			assert.Same(t, log, Logger)
			assert.Equal(t, tt.expectedLevel, log.GetLevel())

			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	Logger = nil
	t.Setenv("LOG_FORMAT", "json")
	log := InitLogger("info", false)

	var buf bytes.Buffer
	log.SetOutput(&buf)

	WithPlayerContext(7, "Lionel Messi").Info("stat override applied")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(7), entry["player_id"])
	assert.Equal(t, "Lionel Messi", entry["player_name"])
	assert.Equal(t, "stat override applied", entry["msg"])

	buf.Reset()
	WithChatContext("rank", "local").Info("resolved")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rank", entry["intent"])
	assert.Equal(t, "local", entry["source"])

	assert.Equal(t, "stats", WithService("stats").Data["service"])
}
