package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle_dashboard/internal/models"
	"vehicle_dashboard/internal/repository"
)

const (
	DefaultLogLimit = 200
	MaxLogLimit     = 1000
)

var (
	ErrUnknownEventType = errors.New("unknown journal entry type")
	ErrInvalidTimeRange = errors.New("invalid time range: from must not be after to")
	ErrInvalidLimit     = errors.New("limit must be positive")
)

// LogFilter selects journal entries. Zero bounds and no types do not
// filter; a zero Limit means DefaultLogLimit.
type LogFilter struct {
	From  time.Time
	To    time.Time
	Types []string // CRUISE, ACCEL, CONNECT, DISCONNECT in any case
	Limit int
}

// EventLogService reads the control journal, newest entries first.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// List returns up to f.Limit journal entries matching f.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ControlEvent, error) {
	q, err := journalQuery(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q)
}

func journalQuery(f LogFilter) (repository.EventQuery, error) {
	q := repository.EventQuery{Limit: f.Limit}
	if !f.From.IsZero() {
		q.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.To = f.To.UTC()
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.EventQuery{}, ErrInvalidTimeRange
	}

	switch {
	case q.Limit < 0:
		return repository.EventQuery{}, ErrInvalidLimit
	case q.Limit == 0:
		q.Limit = DefaultLogLimit
	case q.Limit > MaxLogLimit:
		q.Limit = MaxLogLimit
	}

	seen := make(map[string]bool, len(f.Types))
	for _, raw := range f.Types {
		t, ok := models.ParseEventType(raw)
		if !ok {
			return repository.EventQuery{}, fmt.Errorf("%w: %q", ErrUnknownEventType, raw)
		}
		if !seen[t] {
			seen[t] = true
			q.Types = append(q.Types, t)
		}
	}
	return q, nil
}
