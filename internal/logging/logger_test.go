package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "debug", want: zapcore.DebugLevel},
		{input: "INFO", want: zapcore.InfoLevel},
		{input: "", want: zapcore.InfoLevel},
		{input: "warning", want: zapcore.WarnLevel},
		{input: "error", want: zapcore.ErrorLevel},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LOG_DEV", "")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "console")

	config := ApplyEnv(DefaultConfig())

	assert.Equal(t, "warn", config.Level)
	assert.Equal(t, "console", config.Format)
	assert.False(t, config.Development)
}

func TestApplyEnv_DevelopmentKeepsLevelOverride(t *testing.T) {
	t.Setenv("LOG_DEV", "true")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "")

	config := ApplyEnv(DefaultConfig())

	assert.True(t, config.Development)
	assert.Equal(t, "error", config.Level)
	assert.Equal(t, "console", config.Format)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, logger.Named("test").With())

	_, err = NewLogger(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestGlobalDefaultsToNoOp(t *testing.T) {
	assert.NotNil(t, L())
	L().Info("discarded")
}
