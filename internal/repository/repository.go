package repository

import (
	"context"
	"database/sql"

	"aquabot_telemetry/internal/models"
)

// ReadingRepo is the append-only telemetry store. It has no update or delete.
type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) (models.StoredReading, error)
	Recent(ctx context.Context, limit int) ([]models.StoredReading, error)
	Ping(ctx context.Context) error
}

type Repository struct {
	Readings ReadingRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Readings: NewReadingSQLite(db),
	}
}
