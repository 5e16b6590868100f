package vehicle_dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Socket event names exchanged with the telemetry server.
const (
	EventConnect          = "connect"
	EventDisconnect       = "disconnect"
	EventRequestTelemetry = "my event"
	EventTelemetry        = "my response"
	EventUpdateCruise     = "update cruise"
	EventUpdateAccel      = "update accel"
)

// Element ids the page is built from.
const (
	IDSpeedGauge   = "gauge-canvas"
	IDRatioGauge   = "gauge2-canvas"
	IDSpeedText    = "vehicle-speed-val"
	IDAFRText      = "afr-val"
	IDAccelBar     = "accel-bar"
	IDAccelText    = "accel-val"
	IDThrottleBar  = "throttle-bar"
	IDThrottleText = "throttle-val"
	IDDTCContainer = "dtc-div"
	IDCruiseForm   = "cruise-form"
	IDAccelRange   = "accel-range"
)

// Form field names and payload keys.
const (
	FieldCruiseEnable = "cruise-enable"
	FieldCruiseSpeed  = "cruise-speed"
	FieldAccelValue   = "accel-val"
)

// TelemetrySnapshot is one "my response" payload. Every snapshot fully
// replaces what was displayed before it.
type TelemetrySnapshot struct {
	VehicleSpeed float64          `json:"vehicle_speed"` // mph
	MAF          float64          `json:"maf"`           // mass air flow, x1000 on the ratio gauge
	Accelerator  float64          `json:"accelerator"`   // 0-100 %
	Throttle     float64          `json:"throttle"`      // 0-100 %
	DTC          []DiagnosticCode `json:"dtc"`
	CruiseOn     bool             `json:"cruise_on,omitempty"`
	CruiseSpeed  float64          `json:"cruise_speed,omitempty"`
}

// DiagnosticCode is a single trouble code reported by the controller.
type DiagnosticCode struct {
	Num  CodeNumber `json:"num"`
	Mesg string     `json:"mesg"`
}

// CodeNumber identifies a trouble code. Controllers send it either as a
// JSON number (171) or a string ("P0171").
type CodeNumber string

func (n *CodeNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = CodeNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("dtc num %s: %w", string(b), err)
	}
	*n = CodeNumber(num.String())
	return nil
}

// FormField is one serialized form control, in document order.
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CruiseRequest is the "update cruise" payload. The first pair is always
// cruise-enable, the second carries the setpoint.
type CruiseRequest []FormField

// AccelRequest is the "update accel" payload.
type AccelRequest map[string]float64
