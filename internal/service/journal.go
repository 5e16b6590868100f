package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/logger"
	"vehicle_dashboard/internal/models"
	"vehicle_dashboard/internal/repository"
)

const journalTimeout = 2 * time.Second

// Journal appends control events. Failures are logged, never returned to
// the caller whose action already happened.
type Journal struct {
	events repository.EventRepo
	log    *logger.Logger
	now    func() time.Time
}

func NewJournal(events repository.EventRepo, log *logger.Logger) *Journal {
	return &Journal{events: events, log: logger.OrNop(log), now: time.Now}
}

// Record appends one entry.
func (j *Journal) Record(ctx context.Context, typ, description string, meta any) {
	err := j.events.Append(ctx, models.ControlEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  j.now().UTC(),
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
	if err != nil {
		j.log.Errorw("journal_append_failed", "err", err, "type", typ)
	}
}

// Lifecycle records telemetry connection changes. It matches the page
// controller's lifecycle hook.
func (j *Journal) Lifecycle(event string) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	switch event {
	case vd.EventConnect:
		j.Record(ctx, models.EventConnect, "telemetry connection established", nil)
	case vd.EventDisconnect:
		j.Record(ctx, models.EventDisconnect, "telemetry connection lost", nil)
	}
}
