package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"error", ErrorLevel},
		{"info", InfoLevel},
		{"", InfoLevel},
		{"nonsense", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFromString(tt.input))
		})
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	t.Parallel()

	l := Nop()

	assert.NotPanics(t, func() {
		l.Debug("a")
		l.Infof("b %d", 1)
		l.Warn("c")
		l.Errorf("d %s", "e")
		l.WithField("k", "v").Info("chained")
		l.WithFields(map[string]interface{}{"k": 1}).Debug("chained")
	})
}

func TestNewZapLogger(t *testing.T) {
	t.Parallel()

	l, err := NewZapLogger(DebugLevel, true)
	require.NoError(t, err)
	require.NotNil(t, l)

	child := l.WithField("run_id", "abc")
	assert.NotNil(t, child)
	assert.NotPanics(t, func() { child.Debug("hello") })
}

func TestGlobalLoggerSwap(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	replacement := Nop()
	SetLogger(replacement)

	assert.Same(t, replacement, GetLogger())
}
