package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		log   func(Logger)
		want  string
	}{
		{"info", false, func(l Logger) { l.Info("loaded %d bars", 3) }, "[cli] loaded 3 bars"},
		{"warn", false, func(l Logger) { l.Warn("slow frame") }, "[cli] WARN: slow frame"},
		{"error", false, func(l Logger) { l.Error("tick %s", "failed") }, "[cli] ERROR: tick failed"},
		{"debug enabled", true, func(l Logger) { l.Debug("dt=%v", 0.5) }, "[cli] DEBUG: dt=0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(&buf, "[cli]", tt.debug))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNew_DebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "", false).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestFromEnv(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	l, ok := FromEnv("[x]").(*stdLogger)
	assert.True(t, ok)
	assert.True(t, l.debug)

	t.Setenv(DebugEnv, "")
	l = FromEnv("[x]").(*stdLogger)
	assert.False(t, l.debug)
}

func TestNoop(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("a")
		l.Info("b")
		l.Warn("c")
		l.Error("d")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	l.Info("one")
	l.Error("two %d", 2)
	l.Error("three")

	assert.Len(t, l.Entries, 3)
	assert.Equal(t, 2, l.Count("error"))
	assert.True(t, l.HasLevel("info"))
	assert.False(t, l.HasLevel("warn"))
	assert.Equal(t, "two 2", l.Entries[1].Message)

	l.Clear()
	assert.Empty(t, l.Entries)
}
