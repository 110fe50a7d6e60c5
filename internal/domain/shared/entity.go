package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identifier and timestamp columns shared by every
// persisted domain type. UpdatedAt is maintained by the persistence layer on
// save.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh identifier and creation time.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
