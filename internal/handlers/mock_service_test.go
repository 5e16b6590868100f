package handlers

import (
	"context"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/dom"
	"vehicle_dashboard/internal/models"
	"vehicle_dashboard/internal/page"
	"vehicle_dashboard/internal/service"
	"vehicle_dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockControls struct {
	cruiseErr error
	accelErr  error

	lastFields []vd.FormField
	lastAccel  float64
	accelCalls int
}

func (m *mockControls) SubmitCruise(ctx context.Context, fields []vd.FormField) (view.CruiseResult, error) {
	m.lastFields = fields
	return view.BuildCruisePayload(fields), m.cruiseErr
}

func (m *mockControls) UpdateAccel(ctx context.Context, v float64) (vd.AccelRequest, error) {
	m.accelCalls++
	m.lastAccel = v
	return view.AccelPayload(v), m.accelErr
}

type mockMonitoring struct {
	latest   *vd.TelemetrySnapshot
	snapshot dom.Patch
	hub      *page.Hub
	disabled bool
	pngErr   error
}

func newMockMonitoring() *mockMonitoring {
	return &mockMonitoring{hub: page.NewHub(nil)}
}

func (m *mockMonitoring) Latest() (vd.TelemetrySnapshot, bool) {
	if m.latest == nil {
		return vd.TelemetrySnapshot{}, false
	}
	return *m.latest, true
}

func (m *mockMonitoring) Snapshot() dom.Patch { return m.snapshot }

func (m *mockMonitoring) Subscribe() *page.Subscription { return m.hub.Subscribe(4) }

func (m *mockMonitoring) RangeDisabled() bool { return m.disabled }

func (m *mockMonitoring) GaugePNG(name string, w io.Writer) error {
	if m.pngErr != nil {
		return m.pngErr
	}
	if !strings.HasSuffix(name, ".png") {
		return page.ErrUnknownGauge
	}
	return png.Encode(w, image.NewRGBA(image.Rect(0, 0, 4, 2)))
}

type mockEventLog struct {
	resp  []models.ControlEvent
	err   error
	last  service.LogFilter
	calls int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ControlEvent, error) {
	m.calls++
	m.last = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, "")
	return h.InitRoutes()
}

func doRequest(r http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	r.ServeHTTP(w, req)
	return w
}
