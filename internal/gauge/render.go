package gauge

import (
	"image"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// gradientSteps is how many arc segments approximate the fill gradient.
const gradientSteps = 48

// geometry of the dial on the current canvas, in pixels.
type geometry struct {
	scale      float64
	cx, cy     float64
	outer      float64 // outer edge of the arc band
	lineWidth  float64
	start, end float64 // arc angles, clockwise from +x
}

func (g *Gauge) geometry() geometry {
	b := g.canvas.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	fit := 0.9
	if g.cfg.Labels != nil {
		fit = 0.75
	}
	outer := math.Min(w/2, h) * fit * g.cfg.RadiusScale
	below := math.Max(0, math.Sin(-g.cfg.Angle*math.Pi)) * outer
	margin := (h - outer - below) / 2

	return geometry{
		scale:     w / float64(max(g.cfg.Width, 1)),
		cx:        w / 2,
		cy:        margin + outer,
		outer:     outer,
		lineWidth: outer * g.cfg.LineWidth,
		start:     (1 + g.cfg.Angle) * math.Pi,
		end:       (2 - g.cfg.Angle) * math.Pi,
	}
}

// angleFor maps a fraction of the dial onto the arc.
func (geo geometry) angleFor(frac float64) float64 {
	return geo.start + frac*(geo.end-geo.start)
}

// fraction returns where v sits in the current range, clamped to [0, 1].
func (g *Gauge) fraction(v float64) float64 {
	if g.max == g.min {
		return 0
	}
	f := (v - g.min) / (g.max - g.min)
	return math.Min(1, math.Max(0, f))
}

func (g *Gauge) paint() {
	draw.Draw(g.canvas, g.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	gc, err := drawing.NewRasterGraphicContext(g.canvas)
	if err != nil {
		return
	}
	geo := g.geometry()

	g.paintArc(gc, geo)
	if g.cfg.Ticks != nil {
		g.paintTicks(gc, geo, *g.cfg.Ticks)
	}
	if g.cfg.Labels != nil {
		g.paintLabels(geo, *g.cfg.Labels)
	}
	g.paintPointer(gc, geo)
}

// paintArc draws the track, then either the static zones or the value fill.
func (g *Gauge) paintArc(gc *drawing.RasterGraphicContext, geo geometry) {
	strokeArc(gc, geo, 0, 1, parseColor(g.cfg.StrokeColor))

	if len(g.cfg.Zones) > 0 {
		for _, z := range g.cfg.Zones {
			strokeArc(gc, geo, g.fraction(z.Min), g.fraction(z.Max), parseColor(z.Color))
		}
		return
	}

	filled := g.fraction(g.displayed)
	if filled <= 0 {
		return
	}
	from := parseColor(g.cfg.ColorStart)
	if !g.cfg.GenerateGradient {
		strokeArc(gc, geo, 0, filled, from)
		return
	}
	to := parseColor(g.cfg.ColorStop)
	step := filled / gradientSteps
	for i := 0; i < gradientSteps; i++ {
		a := float64(i) * step
		// overlap the next segment so no seam shows between them
		b := math.Min(filled, a+step*1.5)
		strokeArc(gc, geo, a, b, blend(from, to, a+step/2))
	}
}

// strokeArc paints the band between dial fractions a and b.
func strokeArc(gc *drawing.RasterGraphicContext, geo geometry, a, b float64, c drawing.Color) {
	if b <= a {
		return
	}
	r := geo.outer - geo.lineWidth/2
	start := geo.angleFor(a)

	gc.BeginPath()
	gc.SetStrokeColor(c)
	gc.SetLineWidth(geo.lineWidth)
	gc.SetLineCap(drawing.ButtCap)
	gc.ArcTo(geo.cx, geo.cy, r, r, start, geo.angleFor(b)-start)
	gc.Stroke()
}

func (g *Gauge) paintTicks(gc *drawing.RasterGraphicContext, geo geometry, t Ticks) {
	if t.Divisions <= 0 {
		return
	}
	div, sub := parseColor(t.DivColor), parseColor(t.SubColor)
	for i := 0; i <= t.Divisions; i++ {
		frac := float64(i) / float64(t.Divisions)
		radial(gc, geo, frac, t.DivLength*geo.lineWidth, t.DivWidth*geo.scale, div)
		if i == t.Divisions {
			break
		}
		for s := 1; s < t.SubDivisions; s++ {
			subFrac := frac + float64(s)/float64(t.SubDivisions*t.Divisions)
			radial(gc, geo, subFrac, t.SubLength*geo.lineWidth, t.SubWidth*geo.scale, sub)
		}
	}
}

// radial draws a tick inward from the outer edge of the arc.
func radial(gc *drawing.RasterGraphicContext, geo geometry, frac, length, width float64, c drawing.Color) {
	a := geo.angleFor(frac)
	cos, sin := math.Cos(a), math.Sin(a)

	gc.BeginPath()
	gc.SetStrokeColor(c)
	gc.SetLineWidth(math.Max(width, 1))
	gc.SetLineCap(drawing.ButtCap)
	gc.MoveTo(geo.cx+cos*geo.outer, geo.cy+sin*geo.outer)
	gc.LineTo(geo.cx+cos*(geo.outer-length), geo.cy+sin*(geo.outer-length))
	gc.Stroke()
}

func (g *Gauge) paintLabels(geo geometry, l Labels) {
	face := basicfont.Face7x13
	src := image.NewUniform(parseColor(l.Color))
	dr := &font.Drawer{Dst: g.canvas, Src: src, Face: face}
	ascent := face.Metrics().Ascent.Ceil()

	for _, v := range l.Values {
		if v < g.min || v > g.max {
			continue
		}
		text := strconv.FormatFloat(v, 'f', l.FractionDigits, 64)
		a := geo.angleFor(g.fraction(v))
		r := geo.outer + 4*geo.scale + float64(ascent)
		x := geo.cx + math.Cos(a)*r
		y := geo.cy + math.Sin(a)*r
		tw := dr.MeasureString(text).Ceil()
		dr.Dot = fixed.Point26_6{
			X: fixed.I(int(math.Round(x)) - tw/2),
			Y: fixed.I(int(math.Round(y)) + ascent/2),
		}
		dr.DrawString(text)
	}
}

// paintPointer draws the needle and its hub.
func (g *Gauge) paintPointer(gc *drawing.RasterGraphicContext, geo geometry) {
	c := parseColor(g.cfg.Pointer.Color)
	a := geo.angleFor(g.fraction(g.displayed))
	length := g.cfg.Pointer.Length * geo.outer
	width := math.Max(g.cfg.Pointer.StrokeWidth*geo.outer, 1)

	gc.BeginPath()
	gc.SetStrokeColor(c)
	gc.SetLineWidth(width)
	gc.SetLineCap(drawing.ButtCap)
	gc.MoveTo(geo.cx, geo.cy)
	gc.LineTo(geo.cx+math.Cos(a)*length, geo.cy+math.Sin(a)*length)
	gc.Stroke()

	gc.BeginPath()
	gc.SetFillColor(c)
	gc.ArcTo(geo.cx, geo.cy, width, width, 0, 2*math.Pi)
	gc.Close()
	gc.Fill()
}

// blend mixes a toward b by t in [0, 1].
func blend(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// parseColor reads #RRGGBB (or #RGB); anything else is opaque black.
func parseColor(s string) drawing.Color {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
		return drawing.Color{A: 0xff}
	}
	return drawing.ColorFromHex(hex)
}
