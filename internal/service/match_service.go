package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kvanhoutte/oche/internal/store"
	"github.com/kvanhoutte/oche/internal/x01"
)

// MatchService owns the write path of a match: it serializes operations per
// game, runs the engine transition in memory, and commits the new snapshot
// together with the throw row in one transaction. Different games proceed in
// parallel; two requests for the same game never interleave.
type MatchService struct {
	db      *sqlx.DB
	games   *store.GameStore
	players *store.PlayerStore

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewMatchService(db *sqlx.DB, games *store.GameStore, players *store.PlayerStore) *MatchService {
	return &MatchService{
		db:      db,
		games:   games,
		players: players,
		locks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *MatchService) gameLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *MatchService) CreateMatch(ctx context.Context, cfg x01.Config, playerIDs []uuid.UUID) (*GameState, error) {
	// Resolving names up front also verifies every player exists.
	names, err := s.playerNames(ctx, playerIDs)
	if err != nil {
		return nil, err
	}

	m, err := x01.NewMatch(cfg, playerIDs)
	if err != nil {
		return nil, err
	}

	state, err := encodeState(m)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	game := &store.Game{
		ID:        m.ID,
		Status:    string(m.Status),
		State:     state,
		CreatedAt: m.CreatedAt,
	}
	if err := s.games.CreateGame(ctx, tx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	seats := make([]store.GamePlayer, 0, len(m.Players))
	for _, seat := range m.Players {
		seats = append(seats, store.GamePlayer{GameID: m.ID, PlayerID: seat.PlayerID, Seat: seat.Seat})
	}
	if err := s.games.CreateGamePlayers(ctx, tx, seats); err != nil {
		return nil, fmt.Errorf("failed to create game players: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return newGameState(m, names), nil
}

func (s *MatchService) GetMatch(ctx context.Context, gameID uuid.UUID) (*GameState, error) {
	m, _, err := s.loadMatch(ctx, gameID)
	if err != nil {
		return nil, err
	}
	names, err := s.matchPlayerNames(ctx, m)
	if err != nil {
		return nil, err
	}
	return newGameState(m, names), nil
}

// RecordVisit applies one turn and persists the result. Engine rejections
// (wrong player, invalid score, finished match) come back unwrapped so the
// boundary can map them; a bust or checkout is a normal transition.
func (s *MatchService) RecordVisit(ctx context.Context, gameID, playerID uuid.UUID, visitScore, dartsThrown int) (*GameState, error) {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	m, game, err := s.loadMatch(ctx, gameID)
	if err != nil {
		return nil, err
	}

	// The visit lands in the leg that is open now; remember where that is
	// before the engine possibly advances.
	setNumber := m.CurrentSetState().Number
	legNumber := m.CurrentLegState().Number

	v, err := m.RecordVisit(playerID, visitScore, dartsThrown)
	if err != nil {
		return nil, err
	}

	throw := &store.Throw{
		ID:          uuid.New(),
		GameID:      gameID,
		PlayerID:    playerID,
		Seq:         v.Seq,
		SetNumber:   setNumber,
		LegNumber:   legNumber,
		VisitScore:  v.Score,
		DartsThrown: v.Darts,
		Bust:        v.Bust,
		Checkout:    v.Checkout,
		CreatedAt:   v.CreatedAt,
	}

	if err := s.persist(ctx, m, game, func(tx *sqlx.Tx) error {
		return s.games.InsertThrow(ctx, tx, throw)
	}); err != nil {
		return nil, err
	}

	names, err := s.matchPlayerNames(ctx, m)
	if err != nil {
		return nil, err
	}
	return newGameState(m, names), nil
}

func (s *MatchService) UndoLastVisit(ctx context.Context, gameID uuid.UUID) (*GameState, error) {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	m, game, err := s.loadMatch(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := m.UndoLastVisit(); err != nil {
		return nil, err
	}

	// After a successful undo the engine's sequence counter sits on the
	// reverted visit's number.
	seq := m.NextSeq
	if err := s.persist(ctx, m, game, func(tx *sqlx.Tx) error {
		return s.games.DeleteThrow(ctx, tx, gameID, seq)
	}); err != nil {
		return nil, err
	}

	names, err := s.matchPlayerNames(ctx, m)
	if err != nil {
		return nil, err
	}
	return newGameState(m, names), nil
}

// persist commits the new snapshot plus the throw mutation atomically, so the
// stored state is always a fully applied transition or the previous one.
func (s *MatchService) persist(ctx context.Context, m *x01.Match, game *store.Game, throwOp func(tx *sqlx.Tx) error) error {
	state, err := encodeState(m)
	if err != nil {
		return err
	}
	game.Status = string(m.Status)
	game.WinnerID = m.WinnerID
	game.State = state

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.games.UpdateGame(ctx, tx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if err := throwOp(tx); err != nil {
		return fmt.Errorf("failed to update throws: %w", err)
	}
	return tx.Commit()
}

func (s *MatchService) loadMatch(ctx context.Context, gameID uuid.UUID) (*x01.Match, *store.Game, error) {
	game, err := s.games.GetGame(ctx, gameID.String())
	if err != nil {
		return nil, nil, err
	}
	m, err := decodeState(game.State)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode game state: %w", err)
	}
	return m, game, nil
}

func (s *MatchService) playerNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		p, err := s.players.GetPlayer(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get player %s: %w", id, err)
		}
		names[id] = p.Name
	}
	return names, nil
}

func (s *MatchService) matchPlayerNames(ctx context.Context, m *x01.Match) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(m.Players))
	for _, seat := range m.Players {
		ids = append(ids, seat.PlayerID)
	}
	return s.playerNames(ctx, ids)
}

func encodeState(m *x01.Match) (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode game state: %w", err)
	}
	return string(b), nil
}

func decodeState(state string) (*x01.Match, error) {
	var m x01.Match
	if err := json.Unmarshal([]byte(state), &m); err != nil {
		return nil, err
	}
	return &m, nil
}
