package x01

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playerIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func mustMatch(t *testing.T, cfg Config, players []uuid.UUID) *Match {
	t.Helper()
	m, err := NewMatch(cfg, players)
	require.NoError(t, err)
	return m
}

// winLeg plays out the current leg from a 100 starting score so that winner
// takes it: winner throws 60 then checks out, everyone else throws 0.
func winLeg(t *testing.T, m *Match, winner uuid.UUID) {
	t.Helper()
	for i := 0; i < 100; i++ {
		cur := m.CurrentPlayerID
		if cur != winner {
			_, err := m.RecordVisit(cur, 0, 3)
			require.NoError(t, err)
			continue
		}
		score := 60
		if rem := m.CurrentLegState().Remaining[winner]; rem <= 60 {
			score = rem
		}
		v, err := m.RecordVisit(winner, score, 3)
		require.NoError(t, err)
		if v.Checkout {
			return
		}
	}
	t.Fatal("leg did not finish")
}

func TestNewMatch_InitialState(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 501, LegsToWinSet: 3, SetsToWinMatch: 2, DoubleOut: true}, players)

	assert.Equal(t, StatusPending, m.Status)
	assert.Equal(t, players[0], m.CurrentPlayerID)
	require.Len(t, m.Sets, 1)
	require.Len(t, m.Sets[0].Legs, 1)
	assert.Equal(t, 1, m.Sets[0].Number)
	assert.Equal(t, 3, m.Sets[0].LegsToWin)
	for _, id := range players {
		assert.Equal(t, 501, m.CurrentLegState().Remaining[id])
	}
}

func TestNewMatch_RejectsBadConfig(t *testing.T) {
	players := playerIDs(2)

	_, err := NewMatch(Config{StartingScore: 0, LegsToWinSet: 1, SetsToWinMatch: 1}, players)
	assert.Error(t, err)
	_, err = NewMatch(Config{StartingScore: 501, LegsToWinSet: 0, SetsToWinMatch: 1}, players)
	assert.Error(t, err)
	_, err = NewMatch(Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 0}, players)
	assert.Error(t, err)
	_, err = NewMatch(Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1, Opener: "coinflip"}, players)
	assert.Error(t, err)

	_, err = NewMatch(Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1}, nil)
	assert.Error(t, err)
	_, err = NewMatch(Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1}, []uuid.UUID{players[0], players[0]})
	assert.Error(t, err)
}

func TestRecordVisit_NineDartLeg(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1, DoubleOut: true}, players)

	_, err := m.RecordVisit(players[0], 180, 3)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, m.Status)

	_, err = m.RecordVisit(players[1], 26, 3)
	require.NoError(t, err)
	_, err = m.RecordVisit(players[0], 180, 3)
	require.NoError(t, err)
	_, err = m.RecordVisit(players[1], 26, 3)
	require.NoError(t, err)

	v, err := m.RecordVisit(players[0], 141, 3)
	require.NoError(t, err)
	assert.True(t, v.Checkout)

	leg := m.Sets[0].Legs[0]
	require.NotNil(t, leg.WinnerID)
	assert.Equal(t, players[0], *leg.WinnerID)
	assert.Equal(t, 0, leg.Remaining[players[0]])

	// Single leg, single set: the checkout decides the whole match.
	assert.Equal(t, StatusFinished, m.Status)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, players[0], *m.WinnerID)
	require.NotNil(t, m.Sets[0].WinnerID)
	assert.Equal(t, players[0], *m.Sets[0].WinnerID)
}

func TestRecordVisit_WrongPlayer(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1}, players)

	_, err := m.RecordVisit(players[1], 60, 3)
	assert.ErrorIs(t, err, ErrWrongPlayer)
	assert.Empty(t, m.CurrentLegState().Visits)
	assert.Equal(t, StatusPending, m.Status)
}

func TestRecordVisit_InvalidScoreRejectedBeforeState(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 170, LegsToWinSet: 1, SetsToWinMatch: 1, DoubleOut: true}, players)

	// 179 is not an achievable three-dart score; rejected before any
	// bust/checkout logic runs.
	_, err := m.RecordVisit(players[0], 179, 3)
	assert.ErrorIs(t, err, ErrInvalidScore)
	assert.Empty(t, m.CurrentLegState().Visits)
	assert.Equal(t, players[0], m.CurrentPlayerID)
}

func TestRecordVisit_BustPassesTurn(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 40, LegsToWinSet: 1, SetsToWinMatch: 1, DoubleOut: true}, players)

	v, err := m.RecordVisit(players[0], 39, 3)
	require.NoError(t, err)
	assert.True(t, v.Bust)
	assert.Equal(t, 40, m.CurrentLegState().Remaining[players[0]])
	assert.Equal(t, players[1], m.CurrentPlayerID)
	require.Len(t, m.CurrentLegState().Visits, 1)
}

func TestRecordVisit_MatchFinished(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 100, LegsToWinSet: 1, SetsToWinMatch: 1}, players)
	winLeg(t, m, players[0])
	require.Equal(t, StatusFinished, m.Status)

	_, err := m.RecordVisit(m.CurrentPlayerID, 60, 3)
	assert.ErrorIs(t, err, ErrMatchFinished)
}

func TestTurnRotation(t *testing.T) {
	players := playerIDs(3)
	m := mustMatch(t, Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1}, players)

	for i := 0; i < 9; i++ {
		expected := players[i%3]
		assert.Equal(t, expected, m.CurrentPlayerID)
		_, err := m.RecordVisit(expected, 1, 3)
		require.NoError(t, err)
	}
}

func TestSetDecision_FirstToN(t *testing.T) {
	players := playerIDs(2)
	// Best of 3 legs encoded as first to 2.
	m := mustMatch(t, Config{StartingScore: 100, LegsToWinSet: 2, SetsToWinMatch: 1, DoubleOut: true}, players)

	winLeg(t, m, players[0])
	assert.Equal(t, StatusInProgress, m.Status)
	winLeg(t, m, players[1])
	assert.Equal(t, StatusInProgress, m.Status)
	winLeg(t, m, players[0])

	assert.Equal(t, StatusFinished, m.Status)
	require.NotNil(t, m.Sets[0].WinnerID)
	assert.Equal(t, players[0], *m.Sets[0].WinnerID)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, players[0], *m.WinnerID)
	// Exactly three legs played, no fourth opened.
	assert.Len(t, m.Sets[0].Legs, 3)
}

func TestLegOpener_Rotates(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 100, LegsToWinSet: 2, SetsToWinMatch: 1}, players)

	winLeg(t, m, players[0])
	// Second leg of the match is opened by the second seat under rotation,
	// regardless of who won the first.
	assert.Equal(t, players[1], m.CurrentPlayerID)
}

func TestLegOpener_Fixed(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 100, LegsToWinSet: 2, SetsToWinMatch: 1, Opener: OpenerFixed}, players)

	winLeg(t, m, players[1])
	assert.Equal(t, players[0], m.CurrentPlayerID)
}

func TestSetProgression(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 100, LegsToWinSet: 1, SetsToWinMatch: 2}, players)

	winLeg(t, m, players[0])
	require.Len(t, m.Sets, 2)
	assert.Equal(t, 1, m.CurrentSet)
	assert.Equal(t, 0, m.CurrentLeg)
	assert.Equal(t, 2, m.Sets[1].Number)
	assert.Equal(t, StatusInProgress, m.Status)
	for _, id := range players {
		assert.Equal(t, 100, m.CurrentLegState().Remaining[id])
	}

	winLeg(t, m, players[0])
	assert.Equal(t, StatusFinished, m.Status)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, players[0], *m.WinnerID)
}

func TestConservation(t *testing.T) {
	players := playerIDs(2)
	m := mustMatch(t, Config{StartingScore: 501, LegsToWinSet: 1, SetsToWinMatch: 1, DoubleOut: true}, players)

	scores := []int{60, 45, 100, 26, 140, 85}
	for _, score := range scores {
		cur := m.CurrentPlayerID
		before := m.CurrentLegState().Remaining[cur]
		v, err := m.RecordVisit(cur, score, 3)
		require.NoError(t, err)
		require.False(t, v.Bust)
		after := m.CurrentLegState().Remaining[cur]
		assert.Equal(t, before-score, after)
		assert.GreaterOrEqual(t, after, 0)
	}
}
