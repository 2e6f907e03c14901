package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Game is the persistence row for a match. State carries the full engine
// snapshot as JSON; status and winner_id are copies of what the snapshot
// already says, kept in columns so lists and stats never parse JSON.
type Game struct {
	ID        uuid.UUID  `db:"id"`
	Status    string     `db:"status"`
	WinnerID  *uuid.UUID `db:"winner_id"`
	State     string     `db:"state"`
	CreatedAt time.Time  `db:"created_at"`
}

type GamePlayer struct {
	GameID   uuid.UUID `db:"game_id"`
	PlayerID uuid.UUID `db:"player_id"`
	Seat     int       `db:"seat"`
}

type Throw struct {
	ID          uuid.UUID `db:"id"`
	GameID      uuid.UUID `db:"game_id"`
	PlayerID    uuid.UUID `db:"player_id"`
	Seq         int       `db:"seq"`
	SetNumber   int       `db:"set_number"`
	LegNumber   int       `db:"leg_number"`
	VisitScore  int       `db:"visit_score"`
	DartsThrown int       `db:"darts_thrown"`
	Bust        bool      `db:"bust"`
	Checkout    bool      `db:"checkout"`
	CreatedAt   time.Time `db:"created_at"`
}

type GameStore struct {
	db *sqlx.DB
}

func NewGameStore(db *sqlx.DB) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) CreateGame(ctx context.Context, tx *sqlx.Tx, game *Game) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO games (id, status, winner_id, state, created_at)
		VALUES (:id, :status, :winner_id, :state, :created_at)`, game)
	return err
}

func (s *GameStore) CreateGamePlayers(ctx context.Context, tx *sqlx.Tx, seats []GamePlayer) error {
	if len(seats) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO game_players (game_id, player_id, seat)
		VALUES (:game_id, :player_id, :seat)`, seats)
	return err
}

func (s *GameStore) UpdateGame(ctx context.Context, tx *sqlx.Tx, game *Game) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE games SET status = :status, winner_id = :winner_id, state = :state
		WHERE id = :id`, game)
	return err
}

func (s *GameStore) GetGame(ctx context.Context, id string) (*Game, error) {
	var game Game
	err := s.db.GetContext(ctx, &game, "SELECT * FROM games WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameStore) ListRecentGames(ctx context.Context, limit int) ([]Game, error) {
	var games []Game
	err := s.db.SelectContext(ctx, &games, "SELECT * FROM games ORDER BY created_at DESC, id LIMIT ?", limit)
	return games, err
}

func (s *GameStore) InsertThrow(ctx context.Context, tx *sqlx.Tx, throw *Throw) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO throws (id, game_id, player_id, seq, set_number, leg_number, visit_score, darts_thrown, bust, checkout, created_at)
		VALUES (:id, :game_id, :player_id, :seq, :set_number, :leg_number, :visit_score, :darts_thrown, :bust, :checkout, :created_at)`, throw)
	return err
}

func (s *GameStore) DeleteThrow(ctx context.Context, tx *sqlx.Tx, gameID uuid.UUID, seq int) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM throws WHERE game_id = ? AND seq = ?", gameID, seq)
	return err
}

func (s *GameStore) CountThrows(ctx context.Context, gameID uuid.UUID) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM throws WHERE game_id = ?", gameID)
	return n, err
}

// Stats queries below aggregate the per-visit facts the engine emits. They
// deliberately read raw rows; derived figures stay in the stats service.

func (s *GameStore) CountMatchesPlayed(ctx context.Context, playerID uuid.UUID) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM games g
		JOIN game_players gp ON gp.game_id = g.id
		WHERE gp.player_id = ? AND g.status = 'finished'`, playerID)
	return n, err
}

func (s *GameStore) CountMatchesWon(ctx context.Context, playerID uuid.UUID) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM games WHERE winner_id = ? AND status = 'finished'", playerID)
	return n, err
}

// ScoringVisitScores returns every non-bust visit score the player has
// recorded, across all games.
func (s *GameStore) ScoringVisitScores(ctx context.Context, playerID uuid.UUID) ([]float64, error) {
	var scores []float64
	err := s.db.SelectContext(ctx, &scores, "SELECT visit_score FROM throws WHERE player_id = ? AND bust = 0", playerID)
	return scores, err
}

func (s *GameStore) BestCheckout(ctx context.Context, playerID uuid.UUID) (*int, error) {
	var best sql.NullInt64
	err := s.db.GetContext(ctx, &best, "SELECT MAX(visit_score) FROM throws WHERE player_id = ? AND checkout = 1", playerID)
	if err != nil {
		return nil, err
	}
	if !best.Valid {
		return nil, nil
	}
	v := int(best.Int64)
	return &v, nil
}
