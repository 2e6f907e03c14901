package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/kvanhoutte/oche/internal/player"
)

type PlayerStore struct {
	db *sqlx.DB
}

const (
	getPlayerQuery    = "SELECT * FROM players WHERE id = ?"
	listPlayersQuery  = "SELECT * FROM players ORDER BY created_at ASC, name ASC"
	createPlayerQuery = `
		INSERT INTO players (id, name, avatar_data, created_at) VALUES
		(:id, :name, :avatar_data, :created_at)
	`
)

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, p *player.Player) error {
	_, err := s.db.NamedExecContext(ctx, createPlayerQuery, p)
	return err
}

func (s *PlayerStore) GetPlayer(ctx context.Context, id interface{}) (*player.Player, error) {
	var p player.Player
	err := s.db.GetContext(ctx, &p, getPlayerQuery, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlayerStore) ListPlayers(ctx context.Context) ([]player.Player, error) {
	var players []player.Player
	err := s.db.SelectContext(ctx, &players, listPlayersQuery)
	return players, err
}
