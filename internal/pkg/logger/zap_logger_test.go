package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("DIALOGUE", "Asked clarifying question", map[string]interface{}{"session_id": "s1"})
	l.Error("GENERATOR", "Generation failed", map[string]interface{}{"error": "timeout"})
	l.Warn("SELECTOR", "No details", nil)

	entries := logs.All()
	assert.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "DIALOGUE", first["module"])
	assert.Equal(t, map[string]interface{}{"session_id": "s1"}, first["details"])

	second := entries[1].ContextMap()
	assert.Equal(t, "timeout", second["error_ref"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)

	third := entries[2].ContextMap()
	assert.Equal(t, map[string]interface{}{}, third["details"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("X", "ignored", nil)
	assert.NoError(t, l.Sync())
}
