package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lingualearn/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" error "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))

	assert.True(t, logger.ValidLevel("info"))
	assert.False(t, logger.ValidLevel(""))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithPrefix("lessons").
		WithFields(map[string]any{"zeta": 2, "alpha": 1})

	log.Info("listed")

	out := strings.TrimSpace(buf.String())
	assert.Contains(t, out, "[lessons]")
	assert.True(t, strings.HasSuffix(out, "listed alpha=1 zeta=2"), out)
}

func TestLogger_DerivedDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = base.WithField("user_id", 7)

	base.Info("plain")

	assert.NotContains(t, buf.String(), "user_id")
}

func TestLogger_Event(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	log.Event("lesson_complete", map[string]any{"lesson_id": "abc", "offline": false})

	out := buf.String()
	assert.Contains(t, out, "event=lesson_complete")
	assert.Contains(t, out, "lesson_id=abc")
	assert.Contains(t, out, "offline=false")
}

func TestContext(t *testing.T) {
	log := logger.New(logger.WithPrefix("req"))
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
