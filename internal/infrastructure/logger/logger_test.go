package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestSensitiveValuesAreRedacted(t *testing.T) {
	log, logs := observed()

	log.Info("login", "user_id", 7, "access_token", "abc", "Authorization", "Bearer abc", "db_dsn", "postgres://u:p@h/db")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.EqualValues(t, 7, fields["user_id"])
	assert.Equal(t, "[REDACTED]", fields["access_token"])
	assert.Equal(t, "[REDACTED]", fields["Authorization"])
	assert.Equal(t, "[REDACTED]", fields["db_dsn"])
}

func TestWithCarriesRedaction(t *testing.T) {
	log, logs := observed()

	log.With("service", "RecipeService", "s3_secret_key", "x").Warn("slow")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "RecipeService", fields["service"])
	assert.Equal(t, "[REDACTED]", fields["s3_secret_key"])
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		log, err := New(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, log.SugaredLogger)
	}
	NewNop().Info("dropped", "password", "x")
}
