package roll

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/dice"
	"github.com/SeokHunPark/dicebox/internal/phys"
)

// Phase is the session state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRolling
	PhaseSettling
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRolling:
		return "rolling"
	case PhaseSettling:
		return "settling"
	default:
		return "resolved"
	}
}

// Throw tuning.
const (
	throwSpeedMin = 4.0
	throwSpeedMax = 10.0
	throwLift     = 1.5         // vertical component range, +-
	spinMax       = 3 * math.Pi // rad/s per axis at spawn
	noiseFloor    = 0.1         // impact speeds below this are elided

	// Timeout is the hard cap on simulated rolling time. A roll that has
	// not settled by then is resolved on whatever orientation the dice
	// hold.
	Timeout = 10.0
)

// Pose is a per-step snapshot of one die, safe to hand to renderers while
// the simulation keeps stepping.
type Pose struct {
	ID      int
	Kind    dice.Kind
	Pos     mgl64.Vec3
	Rot     mgl64.Quat
	Settled bool
}

// Session drives one roll at a time. It owns body lifecycle: Roll spawns
// dice, Clear detaches them, and nothing else mutates the roster.
type Session struct {
	world   *phys.World
	monitor *Monitor
	sink    Sink

	phase   Phase
	kind    dice.Kind
	color   string
	elapsed float64
	results []int
}

// NewSession wraps a world. sink may be nil.
func NewSession(w *phys.World, sink Sink) *Session {
	return &Session{
		world:   w,
		monitor: NewMonitor(w),
		sink:    sink,
		kind:    dice.DefaultKind,
	}
}

// World exposes the underlying world, mainly for views and tests.
func (s *Session) World() *phys.World { return s.world }

// Phase returns the current state machine position.
func (s *Session) Phase() Phase { return s.phase }

// Elapsed returns simulated seconds since the roll started.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Kind returns the die kind of the current or last roll.
func (s *Session) Kind() dice.Kind { return s.kind }

// SetColor stores an opaque die color tag for renderers. It carries no
// physics meaning.
func (s *Session) SetColor(c string) { s.color = c }

// Color returns the configured die color tag.
func (s *Session) Color() string { return s.color }

// Roll clears any in-flight dice and spawns count dice of the given kind,
// each with a randomized throw impulse and spin. A count below one rolls
// a single die.
func (s *Session) Roll(kind dice.Kind, count int) {
	s.Clear()
	if count < 1 {
		count = 1
	}
	s.kind = kind

	rng := s.world.RNG()
	for i := 0; i < count; i++ {
		b := s.world.AddDie(kind)

		speed := throwSpeedMin + rng.Float64()*(throwSpeedMax-throwSpeedMin)
		dir := rng.Float64() * 2 * math.Pi
		b.ApplyImpulse(mgl64.Vec3{
			math.Cos(dir) * speed,
			(rng.Float64()*2 - 1) * throwLift,
			math.Sin(dir) * speed,
		}.Mul(b.Mass))
		b.ApplySpin(mgl64.Vec3{
			(rng.Float64()*2 - 1) * spinMax,
			(rng.Float64()*2 - 1) * spinMax,
			(rng.Float64()*2 - 1) * spinMax,
		}.Mul(b.Inertia))
	}
	s.phase = PhaseRolling
}

// RollNamed parses a kind name, falling back to the default die for
// unknown names rather than failing the roll.
func (s *Session) RollNamed(name string, count int) {
	kind, err := dice.ParseKind(name)
	if err != nil {
		kind = dice.DefaultKind
	}
	s.Roll(kind, count)
}

// Clear detaches all dice from the world and returns to Idle. Safe at any
// point mid-simulation; no removed body keeps integrating.
func (s *Session) Clear() {
	s.world.RemoveDice()
	s.results = nil
	s.elapsed = 0
	s.phase = PhaseIdle
}

// Step advances the simulation by dt and returns true once the roll is
// resolved. Contacts produced by this step are classified and reported
// before the settlement decision, never deferred.
func (s *Session) Step(dt float64) bool {
	switch s.phase {
	case PhaseIdle:
		return false
	case PhaseResolved:
		return true
	}

	// Elapsed must track the time the world actually integrated, so the
	// timeout cannot fire early on oversized frame deltas.
	if dt < 0 {
		dt = 0
	}
	if dt > phys.MaxStepDt {
		dt = phys.MaxStepDt
	}

	contacts := s.world.Step(dt)
	if s.sink != nil {
		for _, c := range contacts {
			ev, ok := Classify(c)
			if ok && ev.Speed >= noiseFloor {
				s.sink.OnCollision(ev)
			}
		}
	}

	s.elapsed += dt
	s.phase = PhaseSettling

	if s.monitor.Check() || s.elapsed >= Timeout {
		s.resolve()
		return true
	}
	return false
}

// Run steps the session headless at the world's fixed rate until the roll
// resolves. The timeout bounds it; Run never hangs.
func (s *Session) Run() []int {
	for !s.Step(s.world.Params.FixedDt) {
	}
	return s.Results()
}

// Results returns the resolved values in creation order, or nil before
// resolution.
func (s *Session) Results() []int {
	return s.results
}

// Poses snapshots every live die for renderers.
func (s *Session) Poses() []Pose {
	bodies := s.world.Dice()
	poses := make([]Pose, len(bodies))
	for i, b := range bodies {
		poses[i] = Pose{
			ID:      b.ID,
			Kind:    b.Kind,
			Pos:     b.Pos,
			Rot:     b.Rot,
			Settled: b.Sleeping,
		}
	}
	return poses
}

func (s *Session) resolve() {
	rng := s.world.RNG()
	bodies := s.world.Dice()
	s.results = make([]int, len(bodies))
	for i, b := range bodies {
		s.results[i] = Resolve(b, rng)
	}
	s.phase = PhaseResolved
}
