package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Level: "debug", Output: &buf})

	log.WithComponent("Archiver").Info("Run finished", "archived", 2)

	out := buf.String()
	assert.Contains(t, out, `"message":"Run finished"`)
	assert.Contains(t, out, `"component":"Archiver"`)
	assert.Contains(t, out, `"archived":2`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Level: "warn", Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNopDiscards(t *testing.T) {
	log := NewNop()
	assert.NotPanics(t, func() {
		log.Error("ignored", "key", "value")
		log.WithComponent("x").Printf("%d", 1)
	})
}
