package nck

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadWAV_RoundTrip(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "nck-*.wav")
	require.NoError(t, err)
	defer f.Close()

	sig := make([]float64, 100)
	for i := range sig {
		sig[i] = 0.5 * float64(i%2*2-1)
	}

	require.NoError(t, WriteWAV(f, sig, 6000))
	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	got, fs, err := ReadWAV(f)
	require.NoError(t, err)
	assert.Equal(t, 6000, fs)
	require.Len(t, got, len(sig))
	for i := range sig {
		assert.InDelta(t, sig[i], got[i], 0.01)
	}
}

func TestWriteWAV_SaturatesToInt16Range(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "nck-*.wav")
	require.NoError(t, err)
	defer f.Close()

	sig := []float64{10, -10, 0}
	require.NoError(t, WriteWAV(f, sig, 6000))
	_, err = f.Seek(0, 0)
	require.NoError(t, err)

	got, _, err := ReadWAV(f)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Greater(t, got[0], 0.0)
	assert.Less(t, got[1], 0.0)
}
