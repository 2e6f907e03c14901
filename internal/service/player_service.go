package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kvanhoutte/oche/internal/player"
	"github.com/kvanhoutte/oche/internal/store"
	"github.com/kvanhoutte/oche/internal/utils"
)

// ErrInvalidInput marks caller mistakes the boundary should report as bad
// requests.
var ErrInvalidInput = errors.New("invalid input")

// Avatars arrive as data URLs straight from the client's file picker; cap
// them so a profile row stays small.
const maxAvatarBytes = 256 * 1024

type PlayerService struct {
	db    *sqlx.DB
	store *store.PlayerStore
}

func NewPlayerService(db *sqlx.DB, store *store.PlayerStore) *PlayerService {
	return &PlayerService{db: db, store: store}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, name, avatarData string) (*player.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if len(name) > 50 {
		return nil, fmt.Errorf("%w: player name exceeds 50 characters", ErrInvalidInput)
	}
	if avatarData != "" {
		if !strings.HasPrefix(avatarData, "data:image/") {
			return nil, fmt.Errorf("%w: avatar must be an image data URL", ErrInvalidInput)
		}
		if len(avatarData) > maxAvatarBytes {
			return nil, fmt.Errorf("%w: avatar exceeds %d bytes", ErrInvalidInput, maxAvatarBytes)
		}
	}

	p := &player.Player{
		ID:         uuid.New(),
		Name:       name,
		AvatarData: utils.StringOrNil(avatarData),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreatePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return p, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id uuid.UUID) (*player.Player, error) {
	return s.store.GetPlayer(ctx, id)
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	return s.store.ListPlayers(ctx)
}
