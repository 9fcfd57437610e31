package photons2d

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lukaszgryglicki/photons2d/internal/geodesic"
)

// Status is the lifecycle stage of a ray.
type Status uint8

const (
	Active   Status = iota // stepped every frame
	Crossed                // crossed the horizon during the latest step
	Inactive               // frozen, never stepped again
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Crossed:
		return "crossed"
	case Inactive:
		return "inactive"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Reason tells why a ray stopped.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonHorizon
	ReasonDegenerate
)

// Point is a Cartesian position in the equatorial plane.
type Point struct {
	X, Y Real
}

// Ray is one photon of the wall.
type Ray struct {
	State         geodesic.State
	Offset        Real // vertical launch offset (impact parameter)
	Status        Status
	Reason        Reason
	InactiveSince int // step index at which the ray stopped, -1 while active
}

// FieldConfig describes one run. Rs and Dt are shared read-only by all rays.
type FieldConfig struct {
	Rs      Real
	Dt      Real
	X0      Real   // horizontal launch distance
	Offsets []Real // vertical offsets, in output order
	Workers int    // <= 0 uses the package Workers setting
	History bool   // keep every ray's trajectory for SnapshotAt and rendering
}

// Field owns the ray population and advances it in lock step.
type Field struct {
	consts  geodesic.Constants
	dt      Real
	x0      Real
	rays    []Ray
	hist    [][]Point
	step    int
	active  int
	workers int
}

func (c FieldConfig) validate() error {
	if !isFinite(c.Rs) || c.Rs <= 0 {
		return fmt.Errorf("%w: rs must be > 0, got %g", ErrInvalidConfiguration, c.Rs)
	}
	if !isFinite(c.Dt) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be > 0, got %g", ErrInvalidConfiguration, c.Dt)
	}
	return nil
}

// NewField launches one ray per offset b from (x0, b), moving along -x with unit speed.
func NewField(cfg FieldConfig) (*Field, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(cfg.Offsets) == 0 {
		return nil, fmt.Errorf("%w: need at least one photon", ErrInvalidConfiguration)
	}
	if !isFinite(cfg.X0) || cfg.X0 <= cfg.Rs {
		return nil, fmt.Errorf("%w: x0 must be > rs (%g), got %g", ErrInvalidConfiguration, cfg.Rs, cfg.X0)
	}
	states := make([]geodesic.State, len(cfg.Offsets))
	for i, b := range cfg.Offsets {
		if !isFinite(b) {
			return nil, fmt.Errorf("%w: offset #%d is not finite", ErrInvalidConfiguration, i)
		}
		states[i] = geodesic.FromCartesian(cfg.X0, b, -1, 0)
	}
	return newField(cfg, states, cfg.Offsets), nil
}

// NewFieldFromStates starts a field from arbitrary initial states.
// Offsets are taken from each state's angular momentum.
func NewFieldFromStates(cfg FieldConfig, states []geodesic.State) (*Field, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: need at least one photon", ErrInvalidConfiguration)
	}
	offsets := make([]Real, len(states))
	for i, s := range states {
		offsets[i] = s.AngularMomentum()
	}
	return newField(cfg, states, offsets), nil
}

func newField(cfg FieldConfig, states []geodesic.State, offsets []Real) *Field {
	workers := cfg.Workers
	if workers <= 0 {
		workers = Workers
	}
	f := &Field{
		consts:  geodesic.NewConstants(cfg.Rs),
		dt:      cfg.Dt,
		x0:      cfg.X0,
		rays:    make([]Ray, len(states)),
		workers: imax(workers, 1),
	}
	if cfg.History {
		f.hist = make([][]Point, len(states))
	}
	for i, s := range states {
		ray := Ray{State: s, Offset: offsets[i], InactiveSince: -1}
		switch {
		case !s.Finite():
			ray.Status, ray.Reason, ray.InactiveSince = Inactive, ReasonDegenerate, 0
		case s.R < cfg.Rs:
			ray.Status, ray.Reason, ray.InactiveSince = Inactive, ReasonHorizon, 0
		default:
			f.active++
		}
		f.rays[i] = ray
		if Debug {
			logRay("launched", Launched, i, 0, s)
			if ray.Status == Inactive {
				logRay("inside_horizon", Captured, i, 0, s)
			}
		}
		if f.hist != nil {
			f.hist[i] = make([]Point, 0, historyPrealloc)
			if ray.Reason != ReasonDegenerate {
				f.record(i, s)
			}
		}
	}
	DebugLog("Created field rs=%g dt=%g x0=%g rays=%d active=%d workers=%d", cfg.Rs, cfg.Dt, cfg.X0, len(states), f.active, f.workers)
	return f
}

func (f *Field) record(i int, s geodesic.State) {
	x, y := s.Cartesian()
	f.hist[i] = append(f.hist[i], Point{x, y})
}

// Step advances every active ray by one RK4 step and returns the number still active.
// A ray whose new radius falls below rs is clamped to rs and becomes Crossed at the
// new step index; one step later it is Inactive.
func (f *Field) Step() int {
	next := f.step + 1
	f.active = f.parallel(func(lo, hi int) int {
		n := 0
		for i := lo; i < hi; i++ {
			if f.stepRay(i, next) {
				n++
			}
		}
		return n
	})
	f.step = next
	return f.active
}

func (f *Field) stepRay(i, next int) bool {
	ray := &f.rays[i]
	switch ray.Status {
	case Crossed:
		ray.Status = Inactive
		return false
	case Inactive:
		return false
	}
	if !(ray.State.R > 0) || !ray.State.Finite() {
		f.deactivate(i, next)
		return false
	}
	n := geodesic.Step(ray.State, f.consts.Rs, f.dt)
	if !n.Finite() {
		f.deactivate(i, next)
		return false
	}
	if n.R < f.consts.Rs {
		n.R = f.consts.Rs
		ray.State = n
		ray.Status, ray.Reason, ray.InactiveSince = Crossed, ReasonHorizon, next
		if f.hist != nil {
			f.record(i, n)
		}
		if Debug {
			logRay("captured", Captured, i, next, n)
		}
		return false
	}
	ray.State = n
	if f.hist != nil {
		f.record(i, n)
	}
	return true
}

// deactivate retires a ray in a degenerate state; its last valid state is kept.
func (f *Field) deactivate(i, next int) {
	ray := &f.rays[i]
	ray.Status, ray.Reason, ray.InactiveSince = Inactive, ReasonDegenerate, next
	if Debug {
		logRay("degenerate", Degenerate, i, next, ray.State)
	}
	DebugLog("Ray #%d: %v at step %d: %+v", i, ErrDegenerateState, next, ray.State)
}

// parallel splits the rays into contiguous ranges, one per worker, and sums fn's results.
// Each ray slot is touched by exactly one worker.
func (f *Field) parallel(fn func(lo, hi int) int) int {
	n := len(f.rays)
	workers := f.workers
	if workers > n {
		workers = n
	}
	DebugLogOnce("Stepping %d rays on %d workers", n, imax(workers, 1))
	if workers <= 1 {
		return fn(0, n)
	}
	per, rem := n/workers, n%workers
	var (
		total int64
		wg    sync.WaitGroup
	)
	wg.Add(workers)
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + per
		if w < rem {
			hi++
		}
		go func(lo, hi int) {
			defer wg.Done()
			atomic.AddInt64(&total, int64(fn(lo, hi)))
		}(lo, hi)
		lo = hi
	}
	wg.Wait()
	return int(total)
}

// Run performs steps integration steps. progress, if not nil, is called roughly every 1%.
func (f *Field) Run(steps int, progress func(step, active int)) {
	every := imax((steps+99)/100, 1)
	for s := 1; s <= steps; s++ {
		active := f.Step()
		if progress != nil && (s%every == 0 || s == steps) {
			progress(s, active)
		}
	}
}

func (f *Field) Constants() geodesic.Constants { return f.consts }
func (f *Field) Dt() Real                      { return f.dt }
func (f *Field) X0() Real                      { return f.x0 }
func (f *Field) StepIndex() int                { return f.step }
func (f *Field) ActiveCount() int              { return f.active }
func (f *Field) Len() int                      { return len(f.rays) }
func (f *Field) HasHistory() bool              { return f.hist != nil }

// Rays returns a copy of the current ray states.
func (f *Field) Rays() []Ray {
	out := make([]Ray, len(f.rays))
	copy(out, f.rays)
	return out
}

// Ray returns a copy of ray i.
func (f *Field) Ray(i int) Ray { return f.rays[i] }

// Trajectory returns a copy of ray i's recorded positions, one per step it was live.
func (f *Field) Trajectory(i int) ([]Point, error) {
	if f.hist == nil {
		return nil, ErrNoHistory
	}
	if i < 0 || i >= len(f.hist) {
		return nil, fmt.Errorf("ray index %d out of range [0, %d)", i, len(f.hist))
	}
	out := make([]Point, len(f.hist[i]))
	copy(out, f.hist[i])
	return out, nil
}

// trail is ray i's path up to and including step; it aliases the history.
func (f *Field) trail(i, step int) []Point {
	h := f.hist[i]
	if len(h) == 0 {
		return nil
	}
	end := step + 1
	if end > len(h) {
		end = len(h)
	}
	return h[:end]
}
