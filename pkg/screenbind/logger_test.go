package screenbind

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogWarn)

	logger.Debug("hidden %d", 1)
	logger.Info("hidden too")
	logger.Warn("visible warning")
	logger.Error("visible error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] visible warning")
	assert.Contains(t, out, "[ERROR] visible error")
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo).WithField("tenant", "acme")

	logger.Info("render complete")
	assert.Contains(t, buf.String(), "tenant=acme")

	// WithField returns a copy; the parent stays field-free.
	buf.Reset()
	NewLogger(&buf, LogInfo).Info("bare")
	assert.NotContains(t, buf.String(), "tenant")
}

func TestDebugExpressionError(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, LogDebug)
	logger.DebugExpressionError("state.x +", errors.New("unexpected end of expression"))
	out := buf.String()
	assert.Contains(t, out, "expression degraded to null")
	assert.Contains(t, out, "expression=state.x +")

	// Above debug level the soft-fail path is silent.
	buf.Reset()
	quiet := NewLogger(&buf, LogInfo)
	quiet.DebugExpressionError("state.x +", errors.New("boom"))
	assert.Empty(t, buf.String())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogDebug, parseLogLevel("debug"))
	assert.Equal(t, LogOff, parseLogLevel("off"))
	assert.Equal(t, LogInfo, parseLogLevel("anything else"))
}
