package photons2d

import (
	"fmt"

	"github.com/lukaszgryglicki/photons2d/internal/geodesic"
)

// RaySnapshot is what the renderer needs to know about one ray at one step.
type RaySnapshot struct {
	Index         int
	X, Y          Real
	Placed        bool // false for a ray that never had a finite position; X and Y are then 0
	Status        Status
	InactiveSince int
}

// Snapshot holds every ray of the field, in launch order, at one step.
type Snapshot struct {
	Step int
	Rays []RaySnapshot
}

// Snapshot reports the current step.
func (f *Field) Snapshot() Snapshot {
	out := Snapshot{Step: f.step, Rays: make([]RaySnapshot, len(f.rays))}
	for i, r := range f.rays {
		x, y, ok := position(r.State)
		out.Rays[i] = RaySnapshot{Index: i, X: x, Y: y, Placed: ok, Status: r.Status, InactiveSince: r.InactiveSince}
	}
	return out
}

// SnapshotAt rebuilds the snapshot of an earlier step from the recorded history.
// Rays that had stopped by then report their last valid position.
func (f *Field) SnapshotAt(step int) (Snapshot, error) {
	if f.hist == nil {
		return Snapshot{}, ErrNoHistory
	}
	if step < 0 || step > f.step {
		return Snapshot{}, fmt.Errorf("step %d out of range [0, %d]", step, f.step)
	}
	out := Snapshot{Step: step, Rays: make([]RaySnapshot, len(f.rays))}
	for i, r := range f.rays {
		rs := RaySnapshot{Index: i, Status: statusAt(r, step), InactiveSince: r.InactiveSince}
		if rs.Status == Active {
			rs.InactiveSince = -1
		}
		if tr := f.trail(i, step); len(tr) > 0 {
			p := tr[len(tr)-1]
			rs.X, rs.Y, rs.Placed = p.X, p.Y, true
		} else {
			rs.X, rs.Y, rs.Placed = position(r.State)
		}
		out.Rays[i] = rs
	}
	return out, nil
}

func position(s geodesic.State) (Real, Real, bool) {
	x, y := s.Cartesian()
	if !isFinite(x) || !isFinite(y) {
		return 0, 0, false
	}
	return x, y, true
}

func statusAt(r Ray, step int) Status {
	if r.InactiveSince < 0 || step < r.InactiveSince {
		return Active
	}
	if step == r.InactiveSince && r.Reason == ReasonHorizon && r.InactiveSince > 0 {
		return Crossed
	}
	return Inactive
}

// FadeAlpha is the opacity of a ray's trail at step: base while live, then a linear
// fade to zero over fadeDuration steps after it stopped.
func FadeAlpha(base Real, step, inactiveSince, fadeDuration int) Real {
	if inactiveSince < 0 || step < inactiveSince {
		return base
	}
	if fadeDuration <= 0 {
		return 0
	}
	a := base * (1 - Real(step-inactiveSince)/Real(fadeDuration))
	if a < 0 {
		return 0
	}
	return a
}
