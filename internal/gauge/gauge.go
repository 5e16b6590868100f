// Package gauge implements the radial dial widgets: needle state, animation
// and drawing onto an owned canvas.
package gauge

import (
	"image"
	"image/png"
	"io"
	"math"
	"sync"
)

// snapStep is the per-frame movement below which the needle jumps to its
// target.
const snapStep = 0.001

// Gauge is a dial bound to one canvas element. Safe for concurrent use.
type Gauge struct {
	id  string
	cfg Config

	mu        sync.Mutex
	min, max  float64
	value     float64
	displayed float64
	canvas    *image.RGBA
}

// New binds a gauge to the canvas element id.
func New(id string, cfg Config) *Gauge {
	scale := 1
	if cfg.HighDPISupport {
		scale = 2
	}
	if cfg.AnimationSpeed <= 0 {
		cfg.AnimationSpeed = 1
	}
	g := &Gauge{
		id:        id,
		cfg:       cfg,
		min:       cfg.MinValue,
		max:       cfg.MaxValue,
		value:     cfg.MinValue,
		displayed: cfg.MinValue,
		canvas:    image.NewRGBA(image.Rect(0, 0, cfg.Width*scale, cfg.Height*scale)),
	}
	g.Draw()
	return g
}

func (g *Gauge) ID() string { return g.id }

// Set moves the needle target to v. Out of range values are clamped when
// the matching limit is on; otherwise the range grows to include them.
func (g *Gauge) Set(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if v > g.max {
		if g.cfg.LimitMax {
			v = g.max
		} else {
			g.max = v + 1
		}
	} else if v < g.min {
		if g.cfg.LimitMin {
			v = g.min
		} else {
			g.min = v - 1
		}
	}
	g.value = v
}

// SetMinValue moves the lower bound, and the needle with it when resting
// below the new bound.
func (g *Gauge) SetMinValue(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.min = v
	if g.value < v {
		g.value = v
	}
	if g.displayed < v {
		g.displayed = v
	}
}

// Value returns the needle target.
func (g *Gauge) Value() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Displayed returns where the needle currently is.
func (g *Gauge) Displayed() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.displayed
}

func (g *Gauge) bounds() (min, max float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.min, g.max
}

// Step advances the needle one animation frame toward its target and
// reports whether it moved.
func (g *Gauge) Step() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.displayed == g.value {
		return false
	}
	step := (g.value - g.displayed) / g.cfg.AnimationSpeed
	if math.Abs(step) <= snapStep || g.cfg.AnimationSpeed <= 1 {
		g.displayed = g.value
	} else {
		g.displayed += step
	}
	return true
}

// settle jumps the needle straight to its target.
func (g *Gauge) settle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.displayed = g.value
}

// Draw repaints the canvas for the current needle position.
func (g *Gauge) Draw() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paint()
}

// PNG encodes the canvas.
func (g *Gauge) PNG(w io.Writer) error {
	g.mu.Lock()
	img := image.NewRGBA(g.canvas.Bounds())
	copy(img.Pix, g.canvas.Pix)
	g.mu.Unlock()
	return png.Encode(w, img)
}

// Bounds returns the canvas size in pixels.
func (g *Gauge) Bounds() image.Rectangle {
	return g.canvas.Bounds()
}
