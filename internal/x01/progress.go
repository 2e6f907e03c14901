package x01

import (
	"time"

	"github.com/google/uuid"
)

// advanceAfterCheckout runs the set/leg state machine once a leg has been
// decided: close the set when the winner's leg count reaches the configured
// "first to N", close the match when their set count does, otherwise open the
// next leg or set and hand the darts to its opener.
func (m *Match) advanceAfterCheckout(winner uuid.UUID, at time.Time) {
	set := m.CurrentSetState()

	if legsWonIn(set)[winner] < set.LegsToWin {
		m.openNextLeg(set)
		return
	}

	w := winner
	t := at
	set.WinnerID = &w
	set.FinishedAt = &t

	if setsWonIn(m)[winner] < m.Config.SetsToWinMatch {
		m.openNextSet()
		return
	}

	mw := winner
	m.WinnerID = &mw
	m.Status = StatusFinished
}

func (m *Match) openNextLeg(set *Set) {
	leg := newLeg(len(set.Legs)+1, m.Config.StartingScore, m.Players)
	set.Legs = append(set.Legs, leg)
	m.CurrentLeg = len(set.Legs) - 1
	m.CurrentPlayerID = openerFor(m.Config.openerPolicy(), m.TotalLegs()-1, m.Players)
}

func (m *Match) openNextSet() {
	set := &Set{
		Number:    len(m.Sets) + 1,
		LegsToWin: m.Config.LegsToWinSet,
	}
	set.Legs = append(set.Legs, newLeg(1, m.Config.StartingScore, m.Players))
	m.Sets = append(m.Sets, set)
	m.CurrentSet = len(m.Sets) - 1
	m.CurrentLeg = 0
	m.CurrentPlayerID = openerFor(m.Config.openerPolicy(), m.TotalLegs()-1, m.Players)
}

func legsWonIn(set *Set) map[uuid.UUID]int {
	wins := make(map[uuid.UUID]int)
	for _, leg := range set.Legs {
		if leg.WinnerID != nil {
			wins[*leg.WinnerID]++
		}
	}
	return wins
}

func setsWonIn(m *Match) map[uuid.UUID]int {
	wins := make(map[uuid.UUID]int)
	for _, set := range m.Sets {
		if set.WinnerID != nil {
			wins[*set.WinnerID]++
		}
	}
	return wins
}
