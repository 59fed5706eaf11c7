package sim

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecar_RecordHasLowestFERRoundTrip(t *testing.T) {
	sc, err := LoadSidecar(nil)
	require.NoError(t, err)

	assert.False(t, sc.Has(20, 5.0))

	sc.Cfg = NewSidecarCfg(500, 6000, "ft8", []Baud{20}, 77, 174, 1000, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	sc.Record(20, Result{SNRdB: 5.0, Rounds: 1000, BitErrs: 12, FrameErrs: 3, BER: 1e-4, FER: 3e-3})
	sc.Record(20, Result{SNRdB: 7.0, Rounds: 1000, BitErrs: 1, FrameErrs: 0, BER: 0, FER: 0, Exhausted: true})

	assert.True(t, sc.Has(20, 5.0))
	assert.True(t, sc.Has(20, 7.0))
	assert.False(t, sc.Has(20, 9.0))

	lowest, ok := sc.LowestFER(20)
	require.True(t, ok)
	assert.InDelta(t, 0.0, lowest, 1e-12)

	var buf bytes.Buffer
	require.NoError(t, sc.Save(&buf))

	reloaded, err := LoadSidecar(&buf)
	require.NoError(t, err)
	assert.True(t, reloaded.Has(20, 5.0))
	assert.Equal(t, sc.Cfg.UTC, reloaded.Cfg.UTC)
}

func TestSidecar_LowestFERUnrecordedKR(t *testing.T) {
	sc, err := LoadSidecar(nil)
	require.NoError(t, err)
	_, ok := sc.LowestFER(99)
	assert.False(t, ok)
}
