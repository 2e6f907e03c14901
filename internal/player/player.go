package player

import (
	"time"

	"github.com/google/uuid"
)

// Player is profile data only. The scoring engine never sees this; it works
// on opaque player IDs and leaves name/avatar lookup to callers.
type Player struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	AvatarData *string   `db:"avatar_data" json:"avatarData,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
