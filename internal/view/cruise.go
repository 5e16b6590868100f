package view

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/dom"
)

// CruiseResult is what one cruise form submission produces.
type CruiseResult struct {
	Payload       vd.CruiseRequest
	RangeDisabled bool
	Patch         dom.Patch
}

// CruiseEnabled reports whether the enabling checkbox was checked. A
// browser only serializes a checkbox when it is checked.
func CruiseEnabled(fields []vd.FormField) bool {
	for _, f := range fields {
		if f.Name == vd.FieldCruiseEnable {
			return f.Value != "false"
		}
	}
	return false
}

// BuildCruisePayload converts the serialized cruise form into the "update
// cruise" payload. The leading pair is always cruise-enable, the setpoint
// follows (blank becomes "0"), then any other fields in form order. While
// cruise is on the accelerator range is disabled.
func BuildCruisePayload(fields []vd.FormField) CruiseResult {
	enabled := CruiseEnabled(fields)

	enable := vd.FormField{Name: vd.FieldCruiseEnable, Value: "false"}
	if enabled {
		enable.Value = "true"
	}

	var (
		setpoint *vd.FormField
		rest     []vd.FormField
	)
	for i := range fields {
		f := fields[i]
		if f.Name == vd.FieldCruiseEnable {
			continue
		}
		if setpoint == nil {
			setpoint = &f
			continue
		}
		rest = append(rest, f)
	}
	if setpoint == nil {
		setpoint = &vd.FormField{Name: vd.FieldCruiseSpeed}
	}
	if setpoint.Value == "" {
		setpoint.Value = "0"
	}

	payload := make(vd.CruiseRequest, 0, 2+len(rest))
	payload = append(payload, enable, *setpoint)
	payload = append(payload, rest...)

	res := CruiseResult{Payload: payload, RangeDisabled: enabled}
	if enabled {
		res.Patch.Append(dom.Disable(vd.IDAccelRange))
	} else {
		res.Patch.Append(dom.Enable(vd.IDAccelRange))
	}
	return res
}

// AccelPayload wraps an accelerator value for "update accel". The key is
// fixed by the server protocol.
func AccelPayload(v float64) vd.AccelRequest {
	return vd.AccelRequest{vd.FieldAccelValue: v}
}

// ErrMalformedForm is returned for bodies that are not valid urlencoded data.
var ErrMalformedForm = errors.New("malformed form body")

// ParseFormFields decodes an application/x-www-form-urlencoded body into
// fields, keeping document order (url.Values would lose it).
func ParseFormFields(body string) ([]vd.FormField, error) {
	var fields []vd.FormField
	for body != "" {
		var pair string
		pair, body, _ = strings.Cut(body, "&")
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedForm, rawName, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", ErrMalformedForm, name, err)
		}
		fields = append(fields, vd.FormField{Name: name, Value: value})
	}
	return fields, nil
}

// RenderAccelRange mirrors a new accelerator setting onto the range input.
func RenderAccelRange(v float64) dom.Patch {
	return dom.Patch{Ops: []dom.Op{dom.Value(vd.IDAccelRange, formatNumber(v))}}
}
