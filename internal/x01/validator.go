package x01

import "fmt"

// Outcome classifies an accepted visit.
type Outcome int

const (
	// OutcomeScore is a normal scoring visit: remaining goes down.
	OutcomeScore Outcome = iota
	// OutcomeBust leaves remaining unchanged; the visit is still recorded.
	OutcomeBust
	// OutcomeCheckout brings remaining to exactly zero and wins the leg.
	OutcomeCheckout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeScore:
		return "score"
	case OutcomeBust:
		return "bust"
	case OutcomeCheckout:
		return "checkout"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

const maxVisitScore = 180

// achievable[d][s] is true when s can be thrown with exactly d darts from the
// board's segment values (miss, singles 1-20, doubles, trebles, 25, bull).
var achievable [4][maxVisitScore + 1]bool

func init() {
	var dart [61]bool
	dart[0] = true // miss
	for s := 1; s <= 20; s++ {
		dart[s] = true
		dart[2*s] = true
		dart[3*s] = true
	}
	dart[25] = true
	dart[50] = true

	for s := 0; s <= 60; s++ {
		achievable[1][s] = dart[s]
	}
	for d := 2; d <= 3; d++ {
		for s := 0; s <= d*60; s++ {
			for v := 0; v <= 60 && v <= s; v++ {
				if dart[v] && achievable[d-1][s-v] {
					achievable[d][s] = true
					break
				}
			}
		}
	}
}

// CheckVisit rejects visits that are out of range or not achievable with the
// reported dart count (e.g. 171 with three darts, or 55 with one dart).
func CheckVisit(score, darts int) error {
	if darts < 1 || darts > 3 {
		return fmt.Errorf("%w: darts thrown must be 1-3, got %d", ErrInvalidScore, darts)
	}
	if score < 0 || score > maxVisitScore {
		return fmt.Errorf("%w: visit score must be 0-180, got %d", ErrInvalidScore, score)
	}
	if score > darts*60 || !achievable[darts][score] {
		return fmt.Errorf("%w: %d cannot be scored with %d darts", ErrInvalidScore, score, darts)
	}
	return nil
}

// Classify decides what an already range-checked visit does to a remaining
// score. A bust is a candidate below zero, or exactly 1 under double-out (no
// dart leaves 1 while still permitting a double finish). A candidate of
// exactly zero is a checkout; with only the aggregate score recorded the
// final dart cannot be verified to be a double, so the checkout is trusted.
func Classify(remaining, score int, doubleOut bool) Outcome {
	candidate := remaining - score
	switch {
	case candidate < 0:
		return OutcomeBust
	case candidate == 0:
		return OutcomeCheckout
	case candidate == 1 && doubleOut:
		return OutcomeBust
	default:
		return OutcomeScore
	}
}
