package x01

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentRound(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1}, players)

	assert.Equal(t, 1, CurrentRound(m))

	_, err := m.RecordVisit(players[0], 60, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, CurrentRound(m))

	_, err = m.RecordVisit(players[1], 45, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, CurrentRound(m))
}

func TestLegAverages_ExcludeBusts(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 100, LegsToWinSet: 1, SetsToWinMatch: 1, DoubleOut: true}, players)

	_, err := m.RecordVisit(players[0], 60, 3) // -> 40
	require.NoError(t, err)
	_, err = m.RecordVisit(players[1], 45, 3)
	require.NoError(t, err)
	v, err := m.RecordVisit(players[0], 39, 3) // bust, leaves 1
	require.NoError(t, err)
	require.True(t, v.Bust)

	averages := LegAverages(m.CurrentLegState())
	// The bust visit counts for neither numerator nor denominator.
	assert.InDelta(t, 60.0, averages[players[0]], 1e-9)
	assert.InDelta(t, 45.0, averages[players[1]], 1e-9)
}

func TestLegAverages_NoScoringVisits(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1}, players)

	averages := LegAverages(m.CurrentLegState())
	assert.Empty(t, averages)
}

func TestLastVisitScores_IncludeBusts(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 40, LegsToWinSet: 1, SetsToWinMatch: 1, DoubleOut: true}, players)

	_, err := m.RecordVisit(players[0], 39, 3) // bust
	require.NoError(t, err)

	last := LastVisitScores(m.CurrentLegState())
	assert.Equal(t, 39, last[players[0]])
	_, ok := last[players[1]]
	assert.False(t, ok)
}

func TestLegsWonAndSetsWon(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 100, LegsToWinSet: 2, SetsToWinMatch: 2}, players)

	winLeg(t, m, players[0])
	winLeg(t, m, players[1])
	winLeg(t, m, players[0])

	// First set went to players[0]; a fresh set is now open.
	assert.Empty(t, LegsWon(m.CurrentSetState()))
	firstSet := m.Sets[0]
	wins := LegsWon(firstSet)
	assert.Equal(t, 2, wins[players[0]])
	assert.Equal(t, 1, wins[players[1]])

	setWins := SetsWon(m)
	assert.Equal(t, 1, setWins[players[0]])
	assert.Equal(t, 0, setWins[players[1]])
}
