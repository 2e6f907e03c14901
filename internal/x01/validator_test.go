package x01

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVisit_Range(t *testing.T) {
	require.ErrorIs(t, CheckVisit(-1, 3), ErrInvalidScore)
	require.ErrorIs(t, CheckVisit(181, 3), ErrInvalidScore)
	require.ErrorIs(t, CheckVisit(60, 0), ErrInvalidScore)
	require.ErrorIs(t, CheckVisit(60, 4), ErrInvalidScore)
	require.NoError(t, CheckVisit(0, 3))
	require.NoError(t, CheckVisit(180, 3))
}

func TestCheckVisit_Achievability(t *testing.T) {
	// Not every total up to 3x60 can be thrown; 179 and friends have no
	// segment combination. 171 (T20 T20 T17) is fine.
	for _, score := range []int{163, 166, 169, 172, 173, 175, 176, 178, 179} {
		assert.ErrorIs(t, CheckVisit(score, 3), ErrInvalidScore, "score %d", score)
	}
	for _, score := range []int{167, 170, 171, 174, 177, 180} {
		assert.NoError(t, CheckVisit(score, 3), "score %d", score)
	}

	// Single-dart scores are limited to board segments.
	for _, score := range []int{23, 29, 31, 35, 41, 43, 47, 49, 53, 59} {
		assert.ErrorIs(t, CheckVisit(score, 1), ErrInvalidScore, "score %d", score)
	}
	for _, score := range []int{0, 1, 20, 25, 26, 38, 50, 57, 60} {
		assert.NoError(t, CheckVisit(score, 1), "score %d", score)
	}

	// Two darts top out at 120 and also have holes near the top.
	assert.NoError(t, CheckVisit(23, 2))
	assert.NoError(t, CheckVisit(120, 2))
	assert.ErrorIs(t, CheckVisit(119, 2), ErrInvalidScore)
	assert.ErrorIs(t, CheckVisit(121, 2), ErrInvalidScore)
	assert.ErrorIs(t, CheckVisit(180, 2), ErrInvalidScore)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, OutcomeScore, Classify(501, 180, true))
	assert.Equal(t, OutcomeCheckout, Classify(40, 40, true))
	assert.Equal(t, OutcomeCheckout, Classify(40, 40, false))

	// Overshooting is always a bust.
	assert.Equal(t, OutcomeBust, Classify(170, 180, true))
	assert.Equal(t, OutcomeBust, Classify(170, 180, false))

	// Leaving 1 is a bust only under double-out.
	assert.Equal(t, OutcomeBust, Classify(40, 39, true))
	assert.Equal(t, OutcomeScore, Classify(40, 39, false))
}
