package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kvanhoutte/oche/internal/store"
	"github.com/kvanhoutte/oche/internal/x01"
	"gonum.org/v1/gonum/stat"
)

// StatsService aggregates the per-visit facts the engine records. It is a
// pure downstream consumer: nothing here feeds back into scoring.
type StatsService struct {
	db      *sqlx.DB
	games   *store.GameStore
	players *store.PlayerStore
}

func NewStatsService(db *sqlx.DB, games *store.GameStore, players *store.PlayerStore) *StatsService {
	return &StatsService{db: db, games: games, players: players}
}

type PlayerStats struct {
	PlayerID      uuid.UUID `json:"playerId"`
	PlayerName    string    `json:"playerName"`
	MatchesPlayed int       `json:"matchesPlayed"`
	MatchesWon    int       `json:"matchesWon"`
	AverageScore  float64   `json:"averageScore"`
	BestCheckout  *int      `json:"bestCheckout,omitempty"`
}

type GameSummary struct {
	ID        uuid.UUID        `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	Status    x01.Status       `json:"status"`
	Config    x01.Config       `json:"config"`
	Players   []GamePlayerView `json:"players"`
	WinnerID  *uuid.UUID       `json:"winnerId,omitempty"`
}

func (s *StatsService) PlayerStats(ctx context.Context, playerID uuid.UUID) (*PlayerStats, error) {
	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	played, err := s.games.CountMatchesPlayed(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	won, err := s.games.CountMatchesWon(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count wins: %w", err)
	}
	scores, err := s.games.ScoringVisitScores(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load visit scores: %w", err)
	}
	best, err := s.games.BestCheckout(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load best checkout: %w", err)
	}

	average := 0.0
	if len(scores) > 0 {
		average = stat.Mean(scores, nil)
	}

	return &PlayerStats{
		PlayerID:      p.ID,
		PlayerName:    p.Name,
		MatchesPlayed: played,
		MatchesWon:    won,
		AverageScore:  average,
		BestCheckout:  best,
	}, nil
}

func (s *StatsService) RecentGames(ctx context.Context, limit int) ([]GameSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	games, err := s.games.ListRecentGames(ctx, limit)
	if err != nil {
		return nil, err
	}

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	summaries := make([]GameSummary, 0, len(games))
	for _, game := range games {
		m, err := decodeState(game.State)
		if err != nil {
			return nil, fmt.Errorf("failed to decode game %s: %w", game.ID, err)
		}
		views := make([]GamePlayerView, 0, len(m.Players))
		for _, seat := range m.Players {
			views = append(views, GamePlayerView{ID: seat.PlayerID, Name: names[seat.PlayerID], Seat: seat.Seat})
		}
		summaries = append(summaries, GameSummary{
			ID:        game.ID,
			CreatedAt: game.CreatedAt,
			Status:    m.Status,
			Config:    m.Config,
			Players:   views,
			WinnerID:  m.WinnerID,
		})
	}
	return summaries, nil
}
