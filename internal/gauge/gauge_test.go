package gauge

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestSetClampsWhenLimited(t *testing.T) {
	g := New("speed", SpeedConfig())

	g.Set(42)
	assert.Equal(t, 42.0, g.Value())

	g.Set(140)
	assert.Equal(t, 100.0, g.Value())

	g.Set(-5)
	assert.Equal(t, 0.0, g.Value())

	min, max := g.bounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)
}

func TestSetGrowsRangeWhenUnlimited(t *testing.T) {
	g := New("ratio", RatioConfig())

	g.Set(14700)
	assert.Equal(t, 14700.0, g.Value())

	g.Set(17000)
	assert.Equal(t, 17000.0, g.Value())
	_, max := g.bounds()
	assert.Equal(t, 17001.0, max)

	g.Set(13000)
	assert.Equal(t, 13000.0, g.Value())
	min, _ := g.bounds()
	assert.Equal(t, 12999.0, min)
}

func TestInitialValueIsMinimum(t *testing.T) {
	g := New("ratio", RatioConfig())
	assert.Equal(t, 13400.0, g.Value())
	assert.Equal(t, 13400.0, g.Displayed())
}

func TestSetMinValue(t *testing.T) {
	g := New("speed", SpeedConfig())
	g.SetMinValue(10)
	min, _ := g.bounds()
	assert.Equal(t, 10.0, min)
	assert.Equal(t, 10.0, g.Value())
	assert.Equal(t, 10.0, g.Displayed())
}

func TestStepAnimatesTowardTarget(t *testing.T) {
	g := New("speed", SpeedConfig())
	assert.False(t, g.Step(), "no movement while resting on target")

	g.Set(64)
	require.True(t, g.Step())
	assert.InDelta(t, 64.0/32, g.Displayed(), 1e-9)

	prev := g.Displayed()
	require.True(t, g.Step())
	assert.Greater(t, g.Displayed(), prev)
	assert.Less(t, g.Displayed(), 64.0)

	frames := 0
	for g.Step() {
		frames++
		require.Less(t, frames, 10000, "needle never settled")
	}
	assert.Equal(t, 64.0, g.Displayed())
}

func TestStepMovesDownward(t *testing.T) {
	g := New("speed", SpeedConfig())
	g.Set(80)
	g.settle()
	g.Set(20)
	require.True(t, g.Step())
	assert.Less(t, g.Displayed(), 80.0)
	assert.Greater(t, g.Displayed(), 20.0)
}

func TestStepWithoutAnimationJumps(t *testing.T) {
	cfg := SpeedConfig()
	cfg.AnimationSpeed = 1
	g := New("speed", cfg)
	g.Set(0.3)
	require.True(t, g.Step())
	assert.Equal(t, 0.3, g.Displayed())
	assert.False(t, g.Step())
}

func TestPNG(t *testing.T) {
	cfg := SpeedConfig()
	g := New("speed", cfg)

	var buf bytes.Buffer
	require.NoError(t, g.PNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg.Width*2, img.Bounds().Dx())
	assert.Equal(t, cfg.Height*2, img.Bounds().Dy())
}

func TestPNGWithoutHighDPI(t *testing.T) {
	cfg := SpeedConfig()
	cfg.HighDPISupport = false
	g := New("speed", cfg)
	assert.Equal(t, cfg.Width, g.Bounds().Dx())
}

// arcPixel samples the middle of the arc band at frac along the dial.
func arcPixel(g *Gauge, frac float64) drawing.Color {
	geo := g.geometry()
	a := geo.angleFor(frac)
	r := geo.outer - geo.lineWidth/2
	return canvasAt(g, geo.cx+math.Cos(a)*r, geo.cy+math.Sin(a)*r)
}

func canvasAt(g *Gauge, x, y float64) drawing.Color {
	c := g.canvas.RGBAAt(int(x), int(y))
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestDrawFillsArcUpToNeedle(t *testing.T) {
	cfg := SpeedConfig()
	g := New("speed", cfg)
	stroke := parseColor(cfg.StrokeColor)

	assert.Equal(t, stroke, arcPixel(g, 0.5), "empty gauge shows only the track")

	g.Set(100)
	g.settle()
	g.Draw()
	assert.NotEqual(t, stroke, arcPixel(g, 0.5))
	assert.NotEqual(t, drawing.Color{}, arcPixel(g, 0.5))
}

func TestDrawFillStopsAtNeedle(t *testing.T) {
	cfg := SpeedConfig()
	g := New("speed", cfg)
	g.Set(50)
	g.settle()
	g.Draw()

	assert.NotEqual(t, parseColor(cfg.StrokeColor), arcPixel(g, 0.3))
	assert.Equal(t, parseColor(cfg.StrokeColor), arcPixel(g, 0.7))
}

func TestDrawGradientRunsStartToStop(t *testing.T) {
	cfg := SpeedConfig()
	g := New("speed", cfg)
	g.Set(100)
	g.settle()
	g.Draw()

	low, high := arcPixel(g, 0.1), arcPixel(g, 0.9)
	from, to := parseColor(cfg.ColorStart), parseColor(cfg.ColorStop)
	assert.Greater(t, high.R, low.R)
	assert.GreaterOrEqual(t, low.R, from.R)
	assert.LessOrEqual(t, high.R, to.R)
	assert.Equal(t, uint8(0xff), low.A)
}

func TestDrawFlatFillWithoutGradient(t *testing.T) {
	cfg := SpeedConfig()
	cfg.GenerateGradient = false
	g := New("speed", cfg)
	g.Set(100)
	g.settle()
	g.Draw()

	assert.Equal(t, parseColor(cfg.ColorStart), arcPixel(g, 0.1))
	assert.Equal(t, parseColor(cfg.ColorStart), arcPixel(g, 0.9))
}

func TestDrawDivisionTicks(t *testing.T) {
	cfg := SpeedConfig()
	g := New("speed", cfg)
	geo := g.geometry()
	a := geo.angleFor(0.2)
	r := geo.outer - 0.1*geo.lineWidth

	tick := canvasAt(g, geo.cx+math.Cos(a)*r, geo.cy+math.Sin(a)*r)
	assert.NotEqual(t, parseColor(cfg.StrokeColor), tick)
	assert.Less(t, tick.R, parseColor(cfg.StrokeColor).R)
}

func TestDrawZones(t *testing.T) {
	g := New("ratio", RatioConfig())
	g.Draw()

	assert.Equal(t, parseColor("#30B32D"), arcPixel(g, 0.5), "14700 sits in the safe zone")
	assert.Equal(t, parseColor("#F03E3E"), arcPixel(g, 0.05))
	assert.Equal(t, parseColor("#F03E3E"), arcPixel(g, 0.95))
}

func TestDrawPointerAtCenter(t *testing.T) {
	cfg := SpeedConfig()
	g := New("speed", cfg)
	geo := g.geometry()
	assert.Equal(t, parseColor(cfg.Pointer.Color), canvasAt(g, geo.cx, geo.cy))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, drawing.Color{R: 0x6f, G: 0xad, B: 0xcf, A: 0xff}, parseColor("#6FADCF"))
	assert.Equal(t, drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, parseColor("#fff"))
	assert.Equal(t, drawing.Color{A: 0xff}, parseColor("bogus"))
	assert.Equal(t, drawing.Color{A: 0xff}, parseColor("#12345z"))
}

func TestBlend(t *testing.T) {
	a := drawing.Color{R: 0, G: 100, B: 200, A: 255}
	b := drawing.Color{R: 100, G: 100, B: 0, A: 255}
	assert.Equal(t, a, blend(a, b, 0))
	assert.Equal(t, b, blend(a, b, 1))
	assert.Equal(t, drawing.Color{R: 50, G: 100, B: 100, A: 255}, blend(a, b, 0.5))
}
