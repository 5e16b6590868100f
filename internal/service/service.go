package service

import (
	"context"
	"io"
	"time"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/dom"
	"vehicle_dashboard/internal/models"
	"vehicle_dashboard/internal/page"
	"vehicle_dashboard/internal/repository"
	"vehicle_dashboard/internal/view"
)

// Controls forwards operator input to the telemetry server and journals it.
type Controls interface {
	SubmitCruise(ctx context.Context, fields []vd.FormField) (view.CruiseResult, error)
	UpdateAccel(ctx context.Context, v float64) (vd.AccelRequest, error)
}

// Monitoring exposes read-only page state: latest telemetry, the page
// document and gauge images.
type Monitoring interface {
	Latest() (vd.TelemetrySnapshot, bool)
	Snapshot() dom.Patch
	Subscribe() *page.Subscription
	GaugePNG(name string, w io.Writer) error
	RangeDisabled() bool
}

// EventLog exposes the control journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ControlEvent, error)
}

// Simulator feeds the page synthetic telemetry in test mode.
// Stop via context cancellation.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Page is the part of the page controller the services drive.
type Page interface {
	SubmitCruise(ctx context.Context, fields []vd.FormField) (view.CruiseResult, error)
	UpdateAccel(ctx context.Context, v float64) (vd.AccelRequest, error)
	RangeDisabled() bool
	Latest() (vd.TelemetrySnapshot, bool)
	Snapshot() dom.Patch
	Subscribe() *page.Subscription
	GaugePNG(id string, w io.Writer) error
}

// Service aggregates all sub-services.
type Service struct {
	Controls
	Monitoring
	EventLog
	Simulator
}

// NewService wires the journal and the page into concrete services. sim may
// be nil when telemetry comes from a real server.
func NewService(repos *repository.Repository, journal *Journal, p Page, sim Simulator) *Service {
	return &Service{
		Controls:   NewControlService(p, journal),
		Monitoring: NewMonitoringService(p),
		EventLog:   NewEventLogService(repos.EventRepo),
		Simulator:  sim,
	}
}
