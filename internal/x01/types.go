package x01

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// OpenerPolicy decides who throws first in each new leg.
type OpenerPolicy string

const (
	// OpenerRotate rotates the opener leg to leg across the whole match,
	// regardless of who won the previous leg.
	OpenerRotate OpenerPolicy = "rotate"
	// OpenerFixed always lets the first seat open.
	OpenerFixed OpenerPolicy = "fixed"
)

// Config is fixed once the match starts. LegsToWinSet and SetsToWinMatch are
// "first to N" counts; converting a best-of format into a first-to count is
// the caller's job.
type Config struct {
	StartingScore  int          `json:"startingScore"`
	LegsToWinSet   int          `json:"legs"`
	SetsToWinMatch int          `json:"sets"`
	DoubleIn       bool         `json:"doubleIn"`
	DoubleOut      bool         `json:"doubleOut"`
	Opener         OpenerPolicy `json:"opener,omitempty"`
}

func (c Config) Validate() error {
	if c.StartingScore < 2 {
		return fmt.Errorf("starting score must be at least 2, got %d", c.StartingScore)
	}
	if c.LegsToWinSet < 1 {
		return fmt.Errorf("legs to win a set must be at least 1, got %d", c.LegsToWinSet)
	}
	if c.SetsToWinMatch < 1 {
		return fmt.Errorf("sets to win the match must be at least 1, got %d", c.SetsToWinMatch)
	}
	switch c.Opener {
	case OpenerRotate, OpenerFixed, "":
	default:
		return fmt.Errorf("unknown opener policy %q", c.Opener)
	}
	return nil
}

func (c Config) openerPolicy() OpenerPolicy {
	if c.Opener == "" {
		return OpenerRotate
	}
	return c.Opener
}

// Seat pins a player to a throwing-order position. The roster is fixed for
// the match's lifetime.
type Seat struct {
	PlayerID uuid.UUID `json:"id"`
	Seat     int       `json:"seat"`
}

// Visit is one player's turn, recorded as a single aggregate score. Immutable
// once recorded; only the most recent visit in the match can be removed, via
// undo.
type Visit struct {
	PlayerID  uuid.UUID `json:"playerId"`
	Score     int       `json:"visitScore"`
	Darts     int       `json:"dartsThrown"`
	Seq       int       `json:"seq"`
	Bust      bool      `json:"bust"`
	Checkout  bool      `json:"checkout"`
	CreatedAt time.Time `json:"createdAt"`
}

// Leg is one countdown from the starting score to zero. Open while WinnerID
// is nil.
type Leg struct {
	Number        int               `json:"legNumber"`
	StartingScore int               `json:"startingScore"`
	Remaining     map[uuid.UUID]int `json:"scoresByPlayer"`
	Visits        []Visit           `json:"visits"`
	WinnerID      *uuid.UUID        `json:"winnerId,omitempty"`
	FinishedAt    *time.Time        `json:"finishedAt,omitempty"`
}

type Set struct {
	Number     int        `json:"setNumber"`
	LegsToWin  int        `json:"legsToWin"`
	Legs       []*Leg     `json:"legs"`
	WinnerID   *uuid.UUID `json:"winnerId,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Match is the canonical state of one X01 match. It is owned by exactly one
// writer at a time; callers serialize RecordVisit/UndoLastVisit per match.
type Match struct {
	ID              uuid.UUID `json:"id"`
	Config          Config    `json:"config"`
	Players         []Seat    `json:"players"`
	Sets            []*Set    `json:"sets"`
	CurrentSet      int       `json:"currentSetIndex"`
	CurrentLeg      int       `json:"currentLegIndex"`
	CurrentPlayerID uuid.UUID `json:"currentPlayerId"`
	Status          Status    `json:"status"`
	WinnerID        *uuid.UUID `json:"winnerId,omitempty"`
	NextSeq         int       `json:"nextSeq"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (m *Match) CurrentSetState() *Set {
	return m.Sets[m.CurrentSet]
}

func (m *Match) CurrentLegState() *Leg {
	return m.Sets[m.CurrentSet].Legs[m.CurrentLeg]
}

// TotalLegs counts every leg opened so far across all sets.
func (m *Match) TotalLegs() int {
	n := 0
	for _, s := range m.Sets {
		n += len(s.Legs)
	}
	return n
}

func (m *Match) totalVisits() int {
	n := 0
	for _, s := range m.Sets {
		for _, l := range s.Legs {
			n += len(l.Visits)
		}
	}
	return n
}

func (m *Match) hasPlayer(id uuid.UUID) bool {
	for _, p := range m.Players {
		if p.PlayerID == id {
			return true
		}
	}
	return false
}

// Clone deep-copies the match so callers can hold a snapshot that later
// mutations will not touch.
func (m *Match) Clone() *Match {
	c := *m
	c.Players = append([]Seat(nil), m.Players...)
	c.WinnerID = cloneID(m.WinnerID)
	c.Sets = make([]*Set, len(m.Sets))
	for i, s := range m.Sets {
		cs := *s
		cs.WinnerID = cloneID(s.WinnerID)
		cs.FinishedAt = cloneTime(s.FinishedAt)
		cs.Legs = make([]*Leg, len(s.Legs))
		for j, l := range s.Legs {
			cl := *l
			cl.WinnerID = cloneID(l.WinnerID)
			cl.FinishedAt = cloneTime(l.FinishedAt)
			cl.Visits = append([]Visit(nil), l.Visits...)
			cl.Remaining = make(map[uuid.UUID]int, len(l.Remaining))
			for k, v := range l.Remaining {
				cl.Remaining[k] = v
			}
			cs.Legs[j] = &cl
		}
		c.Sets[i] = &cs
	}
	return &c
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
