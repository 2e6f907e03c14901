package x01

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Derived figures are computed from the match state on demand, never stored,
// so clients cannot drift from the engine's numbers.

// LegsWon counts decided legs per player within one set.
func LegsWon(set *Set) map[uuid.UUID]int {
	return legsWonIn(set)
}

// SetsWon counts decided sets per player across the match.
func SetsWon(m *Match) map[uuid.UUID]int {
	return setsWonIn(m)
}

// CurrentRound is the 1-based round number of the open leg: every player
// throwing once is one round.
func CurrentRound(m *Match) int {
	return len(m.CurrentLegState().Visits)/len(m.Players) + 1
}

// LegAverages is the mean visit score per player for one leg. Bust visits
// count for neither the numerator nor the denominator. Players without a
// scoring visit yet are absent from the result.
func LegAverages(leg *Leg) map[uuid.UUID]float64 {
	scores := make(map[uuid.UUID][]float64)
	for _, v := range leg.Visits {
		if v.Bust {
			continue
		}
		scores[v.PlayerID] = append(scores[v.PlayerID], float64(v.Score))
	}
	averages := make(map[uuid.UUID]float64, len(scores))
	for id, s := range scores {
		averages[id] = stat.Mean(s, nil)
	}
	return averages
}

// LastVisitScores is each player's most recent visit score in the leg, busts
// included (the scoreboard shows what was thrown, not what counted).
func LastVisitScores(leg *Leg) map[uuid.UUID]int {
	last := make(map[uuid.UUID]int)
	for _, v := range leg.Visits {
		last[v.PlayerID] = v.Score
	}
	return last
}
