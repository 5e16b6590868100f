package service

import (
	"fmt"
	"io"
	"strings"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/dom"
	"vehicle_dashboard/internal/page"
)

const pngSuffix = ".png"

type MonitoringService struct {
	page Page
}

func NewMonitoringService(p Page) *MonitoringService {
	return &MonitoringService{page: p}
}

// Latest returns the last telemetry snapshot, if any arrived yet.
func (s *MonitoringService) Latest() (vd.TelemetrySnapshot, bool) {
	return s.page.Latest()
}

// Snapshot returns a patch that rebuilds the whole page.
func (s *MonitoringService) Snapshot() dom.Patch {
	return s.page.Snapshot()
}

func (s *MonitoringService) Subscribe() *page.Subscription {
	return s.page.Subscribe()
}

func (s *MonitoringService) RangeDisabled() bool {
	return s.page.RangeDisabled()
}

// GaugePNG writes the gauge image named "<canvas id>.png".
func (s *MonitoringService) GaugePNG(name string, w io.Writer) error {
	id, ok := strings.CutSuffix(name, pngSuffix)
	if !ok || id == "" {
		return fmt.Errorf("%w: %q", page.ErrUnknownGauge, name)
	}
	return s.page.GaugePNG(id, w)
}
