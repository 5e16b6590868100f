package service

import (
	"context"
	"fmt"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/models"
	"vehicle_dashboard/internal/view"
)

type ControlService struct {
	page    Page
	journal *Journal
}

func NewControlService(p Page, journal *Journal) *ControlService {
	return &ControlService{page: p, journal: journal}
}

// SubmitCruise forwards the cruise form and journals what was sent. A
// message that could not be sent is not journaled.
func (s *ControlService) SubmitCruise(ctx context.Context, fields []vd.FormField) (view.CruiseResult, error) {
	res, err := s.page.SubmitCruise(ctx, fields)
	if err != nil {
		return res, fmt.Errorf("submit cruise: %w", err)
	}

	desc := "cruise control off"
	if res.RangeDisabled {
		desc = "cruise control on at " + res.Payload[1].Value
	}
	s.journal.Record(ctx, models.EventCruise, desc, map[string]any{
		"payload":        res.Payload,
		"range_disabled": res.RangeDisabled,
	})
	return res, nil
}

// UpdateAccel forwards a new accelerator value and journals it.
func (s *ControlService) UpdateAccel(ctx context.Context, v float64) (vd.AccelRequest, error) {
	payload, err := s.page.UpdateAccel(ctx, v)
	if err != nil {
		return payload, fmt.Errorf("update accel: %w", err)
	}
	s.journal.Record(ctx, models.EventAccel, fmt.Sprintf("accelerator set to %g%%", v), payload)
	return payload, nil
}
