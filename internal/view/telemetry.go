// Package view turns telemetry and form input into DOM patches and outbound
// payloads. Nothing here performs I/O.
package view

import (
	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/dom"
)

// mafScale converts the reported MAF reading onto the ratio gauge range.
const mafScale = 1000

// DTCImagePrefix is where trouble-code icons are served relative to the page.
const DTCImagePrefix = "../static/images/"

// RenderTelemetry returns every mutation a snapshot causes, in display order.
func RenderTelemetry(s vd.TelemetrySnapshot) dom.Patch {
	var p dom.Patch
	p.Append(
		dom.Gauge(vd.IDSpeedGauge, s.VehicleSpeed),
		dom.Text(vd.IDSpeedText, formatNumber(s.VehicleSpeed)+" mph"),
		dom.Gauge(vd.IDRatioGauge, s.MAF*mafScale),
		dom.Text(vd.IDAFRText, formatNumber(s.MAF)),
		dom.Value(vd.IDAccelBar, formatNumber(s.Accelerator)),
		dom.Text(vd.IDAccelText, formatNumber(s.Accelerator)+"%"),
		dom.Value(vd.IDThrottleBar, formatNumber(s.Throttle)),
		dom.Text(vd.IDThrottleText, formatNumber(s.Throttle)+"%"),
		RenderDTC(s.DTC),
	)
	return p
}

// RenderDTC rebuilds the trouble-code container from scratch: one 64x64
// icon per code, input order, no dedup.
func RenderDTC(codes []vd.DiagnosticCode) dom.Op {
	nodes := make([]dom.Node, 0, len(codes))
	for _, c := range codes {
		name := "dtc-" + string(c.Num)
		nodes = append(nodes, dom.Node{
			Tag: "img",
			Attrs: []dom.Attr{
				{Name: "src", Value: DTCImagePrefix + name + ".png"},
				{Name: "height", Value: "64"},
				{Name: "width", Value: "64"},
				{Name: "alt", Value: name},
				{Name: "title", Value: c.Mesg},
			},
		})
	}
	return dom.Children(vd.IDDTCContainer, nodes)
}

// RenderNeedle reports that a gauge canvas was redrawn with the needle at v.
func RenderNeedle(id string, v float64) dom.Op {
	return dom.Canvas(id, formatNumber(v))
}
