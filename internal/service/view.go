package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/kvanhoutte/oche/internal/x01"
)

// GameState is the wire shape consumed by the scoreboard client. Everything
// derived (round, averages, legs won) is computed from the engine snapshot
// here, on the way out; clients are never given a reason to recompute.
type GameState struct {
	ID              uuid.UUID        `json:"id"`
	CreatedAt       time.Time        `json:"createdAt"`
	Status          x01.Status       `json:"status"`
	Config          x01.Config       `json:"config"`
	Players         []GamePlayerView `json:"players"`
	CurrentPlayerID uuid.UUID        `json:"currentPlayerId"`
	Round           int              `json:"round"`
	Scores          []PlayerScore    `json:"scores"`
	History         []x01.Visit      `json:"history"`
	MatchScore      MatchScore       `json:"matchScore"`
	WinnerID        *uuid.UUID       `json:"winnerId,omitempty"`
}

type GamePlayerView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Seat int       `json:"seat"`
}

type PlayerScore struct {
	PlayerID  uuid.UUID `json:"playerId"`
	Remaining int       `json:"remaining"`
	LastVisit *int      `json:"lastVisit,omitempty"`
	Average   *float64  `json:"average,omitempty"`
}

type MatchScore struct {
	SetsToWin       int        `json:"setsToWin"`
	CurrentSetIndex int        `json:"currentSetIndex"`
	CurrentLegIndex int        `json:"currentLegIndex"`
	Sets            []*x01.Set `json:"sets"`
}

func newGameState(m *x01.Match, names map[uuid.UUID]string) *GameState {
	leg := m.CurrentLegState()
	lastVisits := x01.LastVisitScores(leg)
	averages := x01.LegAverages(leg)

	players := make([]GamePlayerView, 0, len(m.Players))
	scores := make([]PlayerScore, 0, len(m.Players))
	for _, seat := range m.Players {
		players = append(players, GamePlayerView{
			ID:   seat.PlayerID,
			Name: names[seat.PlayerID],
			Seat: seat.Seat,
		})

		score := PlayerScore{
			PlayerID:  seat.PlayerID,
			Remaining: leg.Remaining[seat.PlayerID],
		}
		if last, ok := lastVisits[seat.PlayerID]; ok {
			v := last
			score.LastVisit = &v
		}
		if avg, ok := averages[seat.PlayerID]; ok {
			a := avg
			score.Average = &a
		}
		scores = append(scores, score)
	}

	var history []x01.Visit
	for _, set := range m.Sets {
		for _, l := range set.Legs {
			history = append(history, l.Visits...)
		}
	}

	return &GameState{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		Status:          m.Status,
		Config:          m.Config,
		Players:         players,
		CurrentPlayerID: m.CurrentPlayerID,
		Round:           x01.CurrentRound(m),
		Scores:          scores,
		History:         history,
		MatchScore: MatchScore{
			SetsToWin:       m.Config.SetsToWinMatch,
			CurrentSetIndex: m.CurrentSet,
			CurrentLegIndex: m.CurrentLeg,
			Sets:            m.Sets,
		},
		WinnerID: m.WinnerID,
	}
}
