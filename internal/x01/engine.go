package x01

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewMatch creates a match in pending state with the first set and leg
// opened. Players throw in the order given; the slice index is the seat.
func NewMatch(cfg Config, playerIDs []uuid.UUID) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(playerIDs) < 1 {
		return nil, fmt.Errorf("a match needs at least one player")
	}
	seen := make(map[uuid.UUID]bool, len(playerIDs))
	players := make([]Seat, 0, len(playerIDs))
	for i, id := range playerIDs {
		if seen[id] {
			return nil, fmt.Errorf("duplicate player %s", id)
		}
		seen[id] = true
		players = append(players, Seat{PlayerID: id, Seat: i})
	}

	set := &Set{
		Number:    1,
		LegsToWin: cfg.LegsToWinSet,
		Legs:      []*Leg{newLeg(1, cfg.StartingScore, players)},
	}

	return &Match{
		ID:              uuid.New(),
		Config:          cfg,
		Players:         players,
		Sets:            []*Set{set},
		CurrentPlayerID: openerFor(cfg.openerPolicy(), 0, players),
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// RecordVisit applies one turn for the current player. A bust or a checkout
// is a normal transition, not an error; the caller reads the appended visit's
// flags or the leg's winner. All validation happens before any state change,
// so a rejected visit leaves the match untouched.
func (m *Match) RecordVisit(playerID uuid.UUID, score, darts int) (Visit, error) {
	if m.Status == StatusFinished {
		return Visit{}, ErrMatchFinished
	}
	if playerID != m.CurrentPlayerID {
		return Visit{}, fmt.Errorf("%w: expected %s", ErrWrongPlayer, m.CurrentPlayerID)
	}
	if err := CheckVisit(score, darts); err != nil {
		return Visit{}, err
	}

	v := Visit{
		PlayerID:  playerID,
		Score:     score,
		Darts:     darts,
		Seq:       m.NextSeq,
		CreatedAt: time.Now().UTC(),
	}
	outcome, err := m.CurrentLegState().Apply(&v, m.Config.DoubleOut)
	if err != nil {
		return Visit{}, err
	}
	m.NextSeq++
	if m.Status == StatusPending {
		m.Status = StatusInProgress
	}

	if outcome == OutcomeCheckout {
		m.advanceAfterCheckout(playerID, v.CreatedAt)
	} else {
		m.CurrentPlayerID = nextPlayer(m.Players, playerID)
	}
	return v, nil
}
