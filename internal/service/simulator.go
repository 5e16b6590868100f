package service

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"sync"
	"time"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/logger"
	"vehicle_dashboard/internal/socket"
)

// ----------- Simulation constants -----------
const (
	MinSpeed       = 0.0
	MaxSpeed       = 100.0
	MaxThrottleDeg = 90.0
	NominalMAF     = 14.7 // stoichiometric air-fuel ratio
	LeanLimit      = 15.3 // above: running lean
	RichLimit      = 14.1 // below: running rich

	mafSwing       = 1.2  // amplitude of the MAF excursion
	mafPhaseStep   = 0.15 // radians per tick
	accelSweepStep = 5.0  // % per tick while nobody sets the accelerator
	throttleSlew   = 15.0 // degrees per tick
	cruiseGain     = 3.0  // degrees of throttle per mph of cruise error
)

// Trouble codes raised by the simulated engine.
var (
	DTCTooLean = vd.DiagnosticCode{Num: "171", Mesg: "System Too Lean"}
	DTCTooRich = vd.DiagnosticCode{Num: "172", Mesg: "System Too Rich"}
)

// SimulatorService is a local stand-in for the telemetry server: the page
// talks to it like to a socket connection, and Run advances a toy vehicle.
type SimulatorService struct {
	log *logger.Logger

	mu       sync.Mutex
	handlers map[string]socket.Handler
	started  bool

	speed       float64
	accel       float64 // %
	manualAccel bool
	sweepDown   bool
	throttle    float64 // degrees
	mafPhase    float64
	cruiseOn    bool
	cruiseSpeed float64
}

func NewSimulatorService(log *logger.Logger) *SimulatorService {
	return &SimulatorService{
		log:      logger.OrNop(log),
		handlers: make(map[string]socket.Handler),
	}
}

func (s *SimulatorService) On(event string, h socket.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = h
}

// Emit accepts the messages a telemetry server understands. A telemetry
// request is answered asynchronously with "my response".
func (s *SimulatorService) Emit(event string, payload interface{}) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return socket.ErrNotConnected
	}
	switch event {
	case vd.EventRequestTelemetry:
		snap := s.snapshotLocked()
		h := s.handlers[vd.EventTelemetry]
		s.mu.Unlock()
		if h == nil {
			return nil
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		go h(data)
		return nil
	case vd.EventUpdateCruise:
		if req, ok := payload.(vd.CruiseRequest); ok {
			s.applyCruiseLocked(req)
		}
	case vd.EventUpdateAccel:
		if req, ok := payload.(vd.AccelRequest); ok {
			s.accel = clamp(req[vd.FieldAccelValue], 0, 100)
			s.manualAccel = true
		}
	default:
		s.log.Debugw("simulator_unhandled_event", "event", event)
	}
	s.mu.Unlock()
	return nil
}

func (s *SimulatorService) applyCruiseLocked(req vd.CruiseRequest) {
	for _, f := range req {
		switch f.Name {
		case vd.FieldCruiseEnable:
			s.cruiseOn = f.Value == "true"
		case vd.FieldCruiseSpeed:
			if v, err := strconv.ParseFloat(f.Value, 64); err == nil {
				s.cruiseSpeed = clamp(v, MinSpeed, MaxSpeed)
			}
		}
	}
}

// Run fires "connect" and ticks the vehicle at the given interval until
// ctx is canceled, then fires "disconnect".
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	s.fire(vd.EventConnect)
	s.log.Infow("simulator_started", "tick", tick)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.started = false
			s.mu.Unlock()
			s.fire(vd.EventDisconnect)
			return
		case <-t.C:
			s.Step()
		}
	}
}

func (s *SimulatorService) fire(event string) {
	s.mu.Lock()
	h := s.handlers[event]
	s.mu.Unlock()
	if h != nil {
		h(nil)
	}
}

// Step advances the vehicle by one tick.
func (s *SimulatorService) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.manualAccel {
		s.sweepAccelLocked()
	}

	target := s.accel / 100 * MaxThrottleDeg
	if s.cruiseOn {
		target = s.throttle + cruiseGain*(s.cruiseSpeed-s.speed)
	}
	s.throttle = clamp(approach(s.throttle, target, throttleSlew), 0, MaxThrottleDeg)

	accel := math.Trunc(12*(s.throttle/MaxThrottleDeg) - 2)
	s.speed = clamp(s.speed+accel, MinSpeed, MaxSpeed)

	s.mafPhase = math.Mod(s.mafPhase+mafPhaseStep, 2*math.Pi)
}

func (s *SimulatorService) sweepAccelLocked() {
	if s.sweepDown {
		s.accel -= accelSweepStep
	} else {
		s.accel += accelSweepStep
	}
	if s.accel >= 100 {
		s.accel, s.sweepDown = 100, true
	} else if s.accel <= 0 {
		s.accel, s.sweepDown = 0, false
	}
}

// Snapshot returns the telemetry the simulator would report now.
func (s *SimulatorService) Snapshot() vd.TelemetrySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SimulatorService) snapshotLocked() vd.TelemetrySnapshot {
	maf := round2(NominalMAF + mafSwing*math.Sin(s.mafPhase))
	snap := vd.TelemetrySnapshot{
		VehicleSpeed: s.speed,
		MAF:          maf,
		Accelerator:  round2(s.accel),
		Throttle:     round2(s.throttle / MaxThrottleDeg * 100),
		DTC:          diagnose(maf),
		CruiseOn:     s.cruiseOn,
	}
	if s.cruiseOn {
		snap.CruiseSpeed = s.cruiseSpeed
	}
	return snap
}

// diagnose reports the trouble codes for a MAF reading.
func diagnose(maf float64) []vd.DiagnosticCode {
	switch {
	case maf > LeanLimit:
		return []vd.DiagnosticCode{DTCTooLean}
	case maf < RichLimit:
		return []vd.DiagnosticCode{DTCTooRich}
	default:
		return []vd.DiagnosticCode{}
	}
}

// helpers
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func approach(from, to, maxStep float64) float64 {
	d := to - from
	if math.Abs(d) <= maxStep {
		return to
	}
	return from + math.Copysign(maxStep, d)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
