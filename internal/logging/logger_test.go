package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestNewLoggerDropsTime(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false, "")

	log.Debug("hidden")
	log.Info("deployed", "contract", "Auction")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "time=")
	assert.Contains(t, out, "contract=Auction")
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/run_task.go", shortPath("/home/u/src/nftops/internal/usecase/run_task.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/main.go"))
}
