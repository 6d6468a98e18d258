package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		encoding string
		want     zapcore.Level
		wantEnc  string
	}{
		{"Defaults", "", "", zapcore.InfoLevel, EncodingJSON},
		{"Debug", "debug", EncodingConsole, zapcore.DebugLevel, EncodingConsole},
		{"Warn", "warn", EncodingJSON, zapcore.WarnLevel, EncodingJSON},
		{"UpperCase", "ERROR", "", zapcore.ErrorLevel, EncodingJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Config(tt.level, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Level.Level())
			assert.Equal(t, tt.wantEnc, cfg.Encoding)
			assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
			assert.True(t, cfg.DisableCaller)
		})
	}
}

func TestConfig_Invalid(t *testing.T) {
	_, err := Config("loud", "")
	assert.Error(t, err)
	_, err = Config("info", "xml")
	assert.Error(t, err)
	_, err = New("loud", "")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	log, err := New("debug", EncodingConsole)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("", "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
