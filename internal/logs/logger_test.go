package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RecordsEntries(t *testing.T) {
	logger := NewLogger(10, DEBUG)

	logger.Info("recorder", "snapshot recorded")
	logger.Warn("detector", "cannot assess vote anomalies")

	entries := logger.GetLast(10)
	require.Len(t, entries, 2)
	assert.Equal(t, "recorder", entries[0].Component)
	assert.Equal(t, WARN, entries[1].Level)
	assert.Equal(t, "cannot assess vote anomalies", entries[1].Message)
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	logger := NewLogger(10, WARN)

	logger.Debug("assembler", "probe finished")
	logger.Info("assembler", "audit complete")
	logger.Error("recorder", "append failed")

	entries := logger.GetLast(10)
	require.Len(t, entries, 1)
	assert.Equal(t, ERROR, entries[0].Level)
}

func TestLogger_RingDropsOldest(t *testing.T) {
	logger := NewLogger(2, DEBUG)

	logger.Info("a", "first")
	logger.Info("b", "second")
	logger.Info("c", "third")

	entries := logger.GetLast(10)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Message)
	assert.Equal(t, "third", entries[1].Message)
}

func TestLogger_GetLastBounded(t *testing.T) {
	logger := NewLogger(10, DEBUG)
	for i := 0; i < 5; i++ {
		logger.Info("x", "msg")
	}

	assert.Len(t, logger.GetLast(3), 3)
	assert.Len(t, logger.GetLast(100), 5)
}
