package service

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/dom"
	"vehicle_dashboard/internal/models"
	"vehicle_dashboard/internal/page"
	"vehicle_dashboard/internal/repository"
	"vehicle_dashboard/internal/socket"
	"vehicle_dashboard/internal/view"
)

// ---- Test doubles ----

type fakePage struct {
	cruiseErr error
	accelErr  error
	disabled  bool
	latest    *vd.TelemetrySnapshot
	pngIDs    []string
	pngErr    error

	gotFields []vd.FormField
	gotAccel  float64
}

func (p *fakePage) SubmitCruise(ctx context.Context, fields []vd.FormField) (view.CruiseResult, error) {
	p.gotFields = fields
	res := view.BuildCruisePayload(fields)
	return res, p.cruiseErr
}

func (p *fakePage) UpdateAccel(ctx context.Context, v float64) (vd.AccelRequest, error) {
	p.gotAccel = v
	return view.AccelPayload(v), p.accelErr
}

func (p *fakePage) RangeDisabled() bool { return p.disabled }

func (p *fakePage) Latest() (vd.TelemetrySnapshot, bool) {
	if p.latest == nil {
		return vd.TelemetrySnapshot{}, false
	}
	return *p.latest, true
}

func (p *fakePage) Snapshot() dom.Patch {
	return dom.Patch{Ops: []dom.Op{dom.Text(vd.IDSpeedText, "0 mph")}}
}

func (p *fakePage) Subscribe() *page.Subscription {
	return page.NewHub(nil).Subscribe(1)
}

func (p *fakePage) GaugePNG(id string, w io.Writer) error {
	p.pngIDs = append(p.pngIDs, id)
	return p.pngErr
}

// recordingRepo keeps appended events in memory and lists them the way
// the sqlite journal does.
type recordingRepo struct {
	mu      sync.Mutex
	appends []models.ControlEvent
	err     error

	queries []repository.EventQuery
	listErr error
}

func (r *recordingRepo) Append(ctx context.Context, e models.ControlEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.appends = append(r.appends, e)
	return nil
}

func (r *recordingRepo) List(ctx context.Context, q repository.EventQuery) ([]models.ControlEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []models.ControlEvent{}
	for i := len(r.appends) - 1; i >= 0; i-- {
		e := r.appends[i]
		if !q.From.IsZero() && e.OccurredAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && e.OccurredAt.After(q.To) {
			continue
		}
		if len(q.Types) > 0 && !slices.Contains(q.Types, e.Type) {
			continue
		}
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		out = append(out, e)
	}
	return out, nil
}

// ---- Tests ----

func TestControlService_SubmitCruise_Journals(t *testing.T) {
	repo := &recordingRepo{}
	fp := &fakePage{}
	svc := NewControlService(fp, NewJournal(repo, nil))

	res, err := svc.SubmitCruise(context.Background(), []vd.FormField{
		{Name: vd.FieldCruiseEnable, Value: "on"},
		{Name: vd.FieldCruiseSpeed, Value: "55"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.RangeDisabled {
		t.Fatalf("expected range disabled")
	}
	if len(repo.appends) != 1 {
		t.Fatalf("want 1 journal entry, got %d", len(repo.appends))
	}
	ev := repo.appends[0]
	if ev.Type != models.EventCruise || ev.Description != "cruise control on at 55" {
		t.Fatalf("unexpected entry: %+v", ev)
	}
	if ev.EventID == "" || ev.OccurredAt.IsZero() || ev.OccurredAt.Location() != time.UTC {
		t.Fatalf("entry not stamped: %+v", ev)
	}
}

func TestControlService_SubmitCruise_Off(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewControlService(&fakePage{}, NewJournal(repo, nil))

	if _, err := svc.SubmitCruise(context.Background(), []vd.FormField{{Name: vd.FieldCruiseSpeed}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.appends[0].Description != "cruise control off" {
		t.Fatalf("unexpected description %q", repo.appends[0].Description)
	}
}

func TestControlService_SubmitCruise_NotSentNotJournaled(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewControlService(&fakePage{cruiseErr: socket.ErrNotConnected}, NewJournal(repo, nil))

	_, err := svc.SubmitCruise(context.Background(), nil)
	if !errors.Is(err, socket.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if len(repo.appends) != 0 {
		t.Fatalf("unsent message journaled: %+v", repo.appends)
	}
}

func TestControlService_UpdateAccel(t *testing.T) {
	repo := &recordingRepo{}
	fp := &fakePage{}
	svc := NewControlService(fp, NewJournal(repo, nil))

	payload, err := svc.UpdateAccel(context.Background(), 42.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload[vd.FieldAccelValue] != 42.5 || fp.gotAccel != 42.5 {
		t.Fatalf("unexpected payload %v", payload)
	}
	if len(repo.appends) != 1 || repo.appends[0].Type != models.EventAccel {
		t.Fatalf("unexpected journal: %+v", repo.appends)
	}
	if repo.appends[0].Description != "accelerator set to 42.5%" {
		t.Fatalf("unexpected description %q", repo.appends[0].Description)
	}
}

func TestControlService_UpdateAccel_RangeDisabled(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewControlService(&fakePage{accelErr: page.ErrRangeDisabled}, NewJournal(repo, nil))

	_, err := svc.UpdateAccel(context.Background(), 10)
	if !errors.Is(err, page.ErrRangeDisabled) {
		t.Fatalf("expected ErrRangeDisabled, got %v", err)
	}
	if len(repo.appends) != 0 {
		t.Fatalf("rejected update journaled")
	}
}

func TestControlService_JournalFailureDoesNotFailAction(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	svc := NewControlService(&fakePage{}, NewJournal(repo, nil))

	if _, err := svc.UpdateAccel(context.Background(), 10); err != nil {
		t.Fatalf("journal error leaked: %v", err)
	}
}

func TestJournal_Lifecycle(t *testing.T) {
	repo := &recordingRepo{}
	j := NewJournal(repo, nil)

	j.Lifecycle(vd.EventConnect)
	j.Lifecycle(vd.EventDisconnect)
	j.Lifecycle("something else")

	if len(repo.appends) != 2 {
		t.Fatalf("want 2 entries, got %d", len(repo.appends))
	}
	if repo.appends[0].Type != models.EventConnect || repo.appends[1].Type != models.EventDisconnect {
		t.Fatalf("unexpected types: %s, %s", repo.appends[0].Type, repo.appends[1].Type)
	}
}
