package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevelRoundTrip(t *testing.T) {
	for _, lvl := range []int{TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel} {
		require.Equal(t, lvl, ParseLevel(LogLevelToString(lvl)))
	}
	require.Equal(t, InfoLevel, ParseLevel("verbose"))
	require.Equal(t, WarnLevel, ParseLevel(" warning "))
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WarnLevel)
	logger.Info("hidden")
	logger.Warn("shown", "group", "a")
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "group=a")
}

func TestOrDiscard(t *testing.T) {
	require.NotNil(t, OrDiscard(nil))
	OrDiscard(nil).Error("dropped")
}
