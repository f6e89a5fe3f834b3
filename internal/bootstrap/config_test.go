package bootstrap

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := InitLogger(&buf, slog.LevelWarn, "text")
	logger.Info("hidden")
	slog.Warn("session store degraded", "store", "memory")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "store=memory")

	buf.Reset()
	InitLogger(&buf, slog.LevelInfo, "json").Info("ready", "addr", ":8080")
	assert.Contains(t, buf.String(), `"msg":"ready"`)
	assert.Contains(t, buf.String(), `"addr":":8080"`)
}
