package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"strings"
	"testing"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/service"
)

func TestGetTelemetry(t *testing.T) {
	mon := newMockMonitoring()
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := doRequest(r, http.MethodGet, "/api/v1/telemetry", "", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 before first snapshot, got %d", w.Code)
	}

	mon.latest = &vd.TelemetrySnapshot{VehicleSpeed: 42, MAF: 14.7, DTC: []vd.DiagnosticCode{}}
	w = doRequest(r, http.MethodGet, "/api/v1/telemetry", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got vd.TelemetrySnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.VehicleSpeed != 42 || got.MAF != 14.7 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestGetGauge(t *testing.T) {
	mon := newMockMonitoring()
	r := newTestRouter(&service.Service{Monitoring: mon})

	w := doRequest(r, http.MethodGet, "/gauges/gauge-canvas.png", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	if _, err := png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Fatalf("body is not a png: %v", err)
	}

	w = doRequest(r, http.MethodGet, "/gauges/speedometer", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	mon.pngErr = errors.New("encoder broke")
	w = doRequest(r, http.MethodGet, "/gauges/gauge-canvas.png", "", "")
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), errRenderGauge) {
		t.Fatalf("expected 500, got %d %s", w.Code, w.Body.String())
	}
}
