// Package page runs the dashboard page controller: one event loop that owns
// the telemetry connection, both gauges and the page document.
package page

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/dom"
	"vehicle_dashboard/internal/gauge"
	"vehicle_dashboard/internal/logger"
	"vehicle_dashboard/internal/socket"
	"vehicle_dashboard/internal/view"
)

const (
	DefaultPollInterval  = 600 * time.Millisecond
	DefaultFrameInterval = 50 * time.Millisecond

	taskQueueSize = 64
	subscriberBuf = 16
)

var (
	ErrRangeDisabled = errors.New("accelerator range is disabled while cruise control is on")
	ErrUnknownGauge  = errors.New("unknown gauge")
	ErrStopped       = errors.New("page controller stopped")
)

// Conn is the message channel to the telemetry server.
type Conn interface {
	On(event string, h socket.Handler)
	Emit(event string, payload interface{}) error
}

// Options tune the controller loop. Zero values take the defaults.
type Options struct {
	PollInterval  time.Duration
	FrameInterval time.Duration
	// Lifecycle, when set, is told about "connect" and "disconnect".
	Lifecycle func(event string)
}

// newTicker is replaced in tests to drive the loop by hand.
var newTicker = func(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Controller is the page: it polls for telemetry, renders it, and forwards
// cruise and accelerator input. All state changes run on the Run goroutine.
type Controller struct {
	conn Conn
	log  *logger.Logger
	opts Options

	gauges map[string]*gauge.Gauge
	order  []*gauge.Gauge
	doc    *dom.Document
	hub    *Hub

	tasks chan func()
	done  chan struct{}

	mu     sync.RWMutex
	latest *vd.TelemetrySnapshot
}

// NewController builds the page and registers its handlers on conn.
func NewController(conn Conn, opts Options, log *logger.Logger) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}

	speed := gauge.New(vd.IDSpeedGauge, gauge.SpeedConfig())
	speed.SetMinValue(0)
	speed.Set(0)
	ratio := gauge.New(vd.IDRatioGauge, gauge.RatioConfig())
	ratio.SetMinValue(13400)
	ratio.Set(13400)

	c := &Controller{
		conn: conn,
		log:  logger.OrNop(log),
		opts: opts,
		gauges: map[string]*gauge.Gauge{
			speed.ID(): speed,
			ratio.ID(): ratio,
		},
		order: []*gauge.Gauge{speed, ratio},
		doc:   newDocument(),
		tasks: make(chan func(), taskQueueSize),
		done:  make(chan struct{}),
	}
	c.hub = NewHub(c.doc.Snapshot)
	for _, g := range c.order {
		_ = c.doc.Apply(dom.Patch{Ops: []dom.Op{view.RenderNeedle(g.ID(), g.Displayed())}})
	}
	c.attach()
	return c
}

func newDocument() *dom.Document {
	return dom.NewDocument(
		dom.Element{ID: vd.IDSpeedGauge, Tag: "canvas"},
		dom.Element{ID: vd.IDSpeedText, Tag: "span"},
		dom.Element{ID: vd.IDRatioGauge, Tag: "canvas"},
		dom.Element{ID: vd.IDAFRText, Tag: "span"},
		dom.Element{ID: vd.IDAccelBar, Tag: "input", Value: "0"},
		dom.Element{ID: vd.IDAccelText, Tag: "span"},
		dom.Element{ID: vd.IDThrottleBar, Tag: "input", Value: "0"},
		dom.Element{ID: vd.IDThrottleText, Tag: "span"},
		dom.Element{ID: vd.IDDTCContainer, Tag: "div"},
		dom.Element{ID: vd.IDCruiseForm, Tag: "form"},
		dom.Element{ID: vd.IDAccelRange, Tag: "input", Value: "0"},
	)
}

func (c *Controller) attach() {
	c.conn.On(vd.EventConnect, func(json.RawMessage) {
		c.enqueue(func() {
			c.log.Infow("telemetry_connected")
			c.lifecycle(vd.EventConnect)
			c.requestTelemetry()
		})
	})
	c.conn.On(vd.EventDisconnect, func(json.RawMessage) {
		c.enqueue(func() {
			c.log.Infow("telemetry_disconnected")
			c.lifecycle(vd.EventDisconnect)
		})
	})
	c.conn.On(vd.EventTelemetry, func(data json.RawMessage) {
		c.enqueue(func() { c.handleTelemetry(data) })
	})
}

func (c *Controller) lifecycle(event string) {
	if c.opts.Lifecycle != nil {
		c.opts.Lifecycle(event)
	}
}

// Run executes queued work, polls and animates until ctx is done. It must
// be called once.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)

	poll, stopPoll := newTicker(c.opts.PollInterval)
	defer stopPoll()
	frame, stopFrame := newTicker(c.opts.FrameInterval)
	defer stopFrame()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-c.tasks:
			f()
		case <-poll:
			c.requestTelemetry()
		case <-frame:
			c.animate()
		}
	}
}

// enqueue hands f to the loop. It drops f once the loop has stopped.
func (c *Controller) enqueue(f func()) {
	select {
	case c.tasks <- f:
	case <-c.done:
	}
}

// call runs f on the loop and waits for it to finish. Once queued the task
// is always waited for; if ctx ends before the loop reaches it, f is skipped
// and ctx.Err() is returned.
func (c *Controller) call(ctx context.Context, f func()) error {
	finished := make(chan struct{})
	skipped := false
	task := func() {
		defer close(finished)
		if ctx.Err() != nil {
			skipped = true
			return
		}
		f()
	}
	select {
	case c.tasks <- task:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrStopped
	}
	select {
	case <-finished:
	case <-c.done:
		// Run closes done after its last task returns.
		select {
		case <-finished:
		default:
			return ErrStopped
		}
	}
	if skipped {
		return ctx.Err()
	}
	return nil
}

func (c *Controller) requestTelemetry() {
	if err := c.conn.Emit(vd.EventRequestTelemetry, nil); err != nil {
		c.log.Debugw("telemetry_request_failed", "err", err)
	}
}

func (c *Controller) handleTelemetry(data json.RawMessage) {
	var s vd.TelemetrySnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		c.log.Warnw("telemetry_decode_failed", "err", err, "payload", string(data))
		return
	}

	gaugeOps, docPatch := view.RenderTelemetry(s).Split()
	for _, op := range gaugeOps {
		if g, ok := c.gauges[op.ID]; ok {
			g.Set(op.Number)
		}
	}
	c.update(docPatch)

	c.mu.Lock()
	c.latest = &s
	c.mu.Unlock()
}

// update applies p to the document and pushes it to live pages.
func (c *Controller) update(p dom.Patch) {
	if err := c.doc.Apply(p); err != nil {
		c.log.Errorw("document_apply_failed", "err", err)
	}
	c.hub.Broadcast(p)
}

// animate advances both needles one frame and redraws the ones that moved.
func (c *Controller) animate() {
	var p dom.Patch
	for _, g := range c.order {
		if !g.Step() {
			continue
		}
		g.Draw()
		p.Append(view.RenderNeedle(g.ID(), g.Displayed()))
	}
	if !p.Empty() {
		c.update(p)
	}
}

// SubmitCruise forwards a cruise form submission and toggles the
// accelerator range. The range follows the form even when the emit fails.
func (c *Controller) SubmitCruise(ctx context.Context, fields []vd.FormField) (view.CruiseResult, error) {
	var (
		res     view.CruiseResult
		emitErr error
	)
	err := c.call(ctx, func() {
		res = view.BuildCruisePayload(fields)
		emitErr = c.conn.Emit(vd.EventUpdateCruise, res.Payload)
		if res.RangeDisabled {
			c.log.Debugw("accel_range_disabled", "payload", res.Payload)
		} else {
			c.log.Debugw("accel_range_enabled", "payload", res.Payload)
		}
		c.update(res.Patch)
	})
	if err != nil {
		return res, err
	}
	return res, emitErr
}

// UpdateAccel forwards a new accelerator value.
func (c *Controller) UpdateAccel(ctx context.Context, v float64) (vd.AccelRequest, error) {
	payload := view.AccelPayload(v)
	var actionErr error
	err := c.call(ctx, func() {
		if el, ok := c.doc.Element(vd.IDAccelRange); ok && el.Disabled {
			actionErr = ErrRangeDisabled
			return
		}
		c.update(view.RenderAccelRange(v))
		actionErr = c.conn.Emit(vd.EventUpdateAccel, payload)
	})
	if err != nil {
		return payload, err
	}
	return payload, actionErr
}

// RangeDisabled reports whether the accelerator range is currently disabled.
func (c *Controller) RangeDisabled() bool {
	el, ok := c.doc.Element(vd.IDAccelRange)
	return ok && el.Disabled
}

// Latest returns the most recent telemetry snapshot.
func (c *Controller) Latest() (vd.TelemetrySnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return vd.TelemetrySnapshot{}, false
	}
	return *c.latest, true
}

// Snapshot returns a patch that rebuilds the whole page.
func (c *Controller) Snapshot() dom.Patch {
	return c.doc.Snapshot()
}

// Subscribe returns a feed of page patches. Callers must Close it.
func (c *Controller) Subscribe() *Subscription {
	return c.hub.Subscribe(subscriberBuf)
}

// Gauge returns the gauge bound to the canvas id.
func (c *Controller) Gauge(id string) (*gauge.Gauge, error) {
	g, ok := c.gauges[id]
	if !ok {
		return nil, ErrUnknownGauge
	}
	return g, nil
}

// GaugePNG writes the current canvas of gauge id.
func (c *Controller) GaugePNG(id string, w io.Writer) error {
	g, err := c.Gauge(id)
	if err != nil {
		return err
	}
	return g.PNG(w)
}
