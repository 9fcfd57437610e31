package geodesic

import "math"

type Real = float64

// State is a photon in the equatorial plane: polar position and its coordinate-time rates.
// Phi accumulates and is never wrapped.
type State struct {
	R, Phi   Real
	DR, DPhi Real
}

// FromCartesian converts a Cartesian position (x, y) moving with velocity (vx, vy)
// into the polar state used by the integrator.
func FromCartesian(x, y, vx, vy Real) State {
	r2 := x*x + y*y
	r := math.Sqrt(r2)
	return State{
		R:    r,
		Phi:  math.Atan2(y, x),
		DR:   (x*vx + y*vy) / r,
		DPhi: (x*vy - y*vx) / r2,
	}
}

// Cartesian projects the state position onto the plane.
func (s State) Cartesian() (x, y Real) {
	sin, cos := math.Sincos(s.Phi)
	return s.R * cos, s.R * sin
}

// Velocity returns the Cartesian velocity (dx/dt, dy/dt).
func (s State) Velocity() (vx, vy Real) {
	sin, cos := math.Sincos(s.Phi)
	vx = s.DR*cos - s.R*s.DPhi*sin
	vy = s.DR*sin + s.R*s.DPhi*cos
	return vx, vy
}

// AngularMomentum is r^2 * dphi/dt, conserved along a geodesic.
func (s State) AngularMomentum() Real { return s.R * s.R * s.DPhi }

// Finite reports whether all components are finite numbers.
func (s State) Finite() bool {
	return isFinite(s.R) && isFinite(s.Phi) && isFinite(s.DR) && isFinite(s.DPhi)
}

func (s State) add(k State, h Real) State {
	return State{s.R + k.R*h, s.Phi + k.Phi*h, s.DR + k.DR*h, s.DPhi + k.DPhi*h}
}

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }
