package x01

import (
	"fmt"

	"github.com/google/uuid"
)

func newLeg(number, startingScore int, players []Seat) *Leg {
	remaining := make(map[uuid.UUID]int, len(players))
	for _, p := range players {
		remaining[p.PlayerID] = startingScore
	}
	return &Leg{
		Number:        number,
		StartingScore: startingScore,
		Remaining:     remaining,
	}
}

// Apply classifies the visit against the thrower's remaining score, records
// it (busts included, flagged), and closes the leg on a checkout. The visit's
// Bust/Checkout flags are set here.
func (l *Leg) Apply(v *Visit, doubleOut bool) (Outcome, error) {
	if l.WinnerID != nil {
		return 0, ErrLegClosed
	}
	remaining, ok := l.Remaining[v.PlayerID]
	if !ok {
		return 0, fmt.Errorf("player %s is not in this leg", v.PlayerID)
	}

	outcome := Classify(remaining, v.Score, doubleOut)
	switch outcome {
	case OutcomeBust:
		v.Bust = true
	case OutcomeCheckout:
		v.Checkout = true
		l.Remaining[v.PlayerID] = 0
		winner := v.PlayerID
		at := v.CreatedAt
		l.WinnerID = &winner
		l.FinishedAt = &at
	case OutcomeScore:
		l.Remaining[v.PlayerID] = remaining - v.Score
	}

	l.Visits = append(l.Visits, *v)
	return outcome, nil
}

// RevertLast pops the most recent visit and restores the thrower's remaining
// score. If the popped visit was the winning checkout, the leg reopens. The
// remaining score is re-derived from the shortened visit list rather than
// incrementally inverted, so a reverted bust cannot drift.
func (l *Leg) RevertLast() (Visit, error) {
	if len(l.Visits) == 0 {
		return Visit{}, ErrNothingToUndo
	}
	v := l.Visits[len(l.Visits)-1]
	l.Visits = l.Visits[:len(l.Visits)-1]
	if len(l.Visits) == 0 {
		l.Visits = nil
	}

	if v.Checkout {
		l.WinnerID = nil
		l.FinishedAt = nil
	}
	l.Remaining[v.PlayerID] = l.remainingFor(v.PlayerID)
	return v, nil
}

func (l *Leg) remainingFor(playerID uuid.UUID) int {
	remaining := l.StartingScore
	for _, v := range l.Visits {
		if v.PlayerID == playerID && !v.Bust {
			remaining -= v.Score
		}
	}
	return remaining
}
