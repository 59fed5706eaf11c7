package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSweep_StopsEarlyOnceConverged(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sc, err := LoadSidecar(nil)
	require.NoError(t, err)

	cfg := SweepConfig{
		FS: 6000, BW: 500, CF: 1250,
		MaxRounds: 20, FrameErrBudget: 30,
		KRList:    []Baud{20},
		SNRFromDB: 8.0, SNRToDB: 20.0, SNRStepDB: 2.0,
	}
	require.NoError(t, RunSweep(cfg, sc, rng, nil))

	lowest, ok := sc.LowestFER(20)
	require.True(t, ok)
	assert.LessOrEqual(t, lowest, 1e-3)

	// Every SNR point above the one that converged should have been
	// skipped, so the sweep must not have recorded the full 8..20 range.
	row := sc.Data[krKey(20)]
	assert.Less(t, len(row), 7)
}

func TestRunSweep_SkipsAlreadyConvergedKR(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sc, err := LoadSidecar(nil)
	require.NoError(t, err)
	sc.Record(20, Result{SNRdB: 10.0, Rounds: 100, FER: 0})

	cfg := SweepConfig{
		FS: 6000, BW: 500, CF: 1250,
		MaxRounds: 20, FrameErrBudget: 30,
		KRList:    []Baud{20},
		SNRFromDB: 8.0, SNRToDB: 20.0, SNRStepDB: 2.0,
	}
	require.NoError(t, RunSweep(cfg, sc, rng, nil))

	row := sc.Data[krKey(20)]
	assert.Len(t, row, 1)
}
