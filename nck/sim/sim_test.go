package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tschudin/nck/nck"
)

func TestRunner_PointProducesSaneResult(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	log := nck.NewLogger(nil, "error")

	p := Params{FS: 6000, BW: 500, CF: 1250, KR: 20, MaxRounds: 5, FrameErrBudget: 30}
	runner, err := NewRunner(p, rng, log)
	require.NoError(t, err)

	res := runner.Point(p, 10.0)

	assert.Greater(t, res.Rounds, 0)
	assert.LessOrEqual(t, res.Rounds, p.MaxRounds)
	assert.GreaterOrEqual(t, res.BER, 0.0)
	assert.GreaterOrEqual(t, res.FER, 0.0)
	assert.LessOrEqual(t, res.FER, 1.0)
}

func TestRunner_RejectsInvalidConfig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Params{FS: 6000, BW: 500, CF: 1250, KR: 7, MaxRounds: 1, FrameErrBudget: 1}
	_, err := NewRunner(p, rng, nil)
	assert.Error(t, err)
}
