package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
}

func TestZapLogger_WithMergesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(map[string]any{"component": "swipes"})

	l.Warn("swipe not persisted", map[string]any{
		"pet_id": "pet-1",
		"error":  errors.New("boom"),
		"":       "ignored",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "swipe not persisted", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "swipes", ctx["component"])
	assert.Equal(t, "pet-1", ctx["pet_id"])
	assert.Equal(t, "boom", ctx["error"])
	_, hasEmpty := ctx[""]
	assert.False(t, hasEmpty)
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.With(nil).Info("x", nil)
	l.Error("y", map[string]any{"k": 1})
}
