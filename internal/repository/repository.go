package repository

import (
	"context"
	"database/sql"
	"time"

	"vehicle_dashboard/internal/models"
)

// EventQuery selects journal entries. Zero bounds, no types and a zero
// limit do not filter.
type EventQuery struct {
	From  time.Time
	To    time.Time
	Types []string
	Limit int
}

// EventRepo is the append-only control journal.
type EventRepo interface {
	Append(ctx context.Context, e models.ControlEvent) error
	List(ctx context.Context, q EventQuery) ([]models.ControlEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
