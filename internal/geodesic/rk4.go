package geodesic

// Derivative evaluates the equatorial null-geodesic equations at s.
// The result is packed as a State: (dr, dphi, d2r, d2phi).
//
//	d2r/dt2   = r*dphi^2 - 1.5*rs*dphi^2
//	d2phi/dt2 = -2*dr*dphi/r
//
// r must be > 0; no guard is applied here.
func Derivative(s State, rs Real) State {
	dphi2 := s.DPhi * s.DPhi
	return State{
		R:    s.DR,
		Phi:  s.DPhi,
		DR:   s.R*dphi2 - 1.5*rs*dphi2,
		DPhi: -2 * s.DR * s.DPhi / s.R,
	}
}

// Step advances s by dt with one classical fourth-order Runge-Kutta step.
func Step(s State, rs, dt Real) State {
	half := 0.5 * dt
	k1 := Derivative(s, rs)
	k2 := Derivative(s.add(k1, half), rs)
	k3 := Derivative(s.add(k2, half), rs)
	k4 := Derivative(s.add(k3, dt), rs)

	f := dt / 6.0
	return State{
		R:    s.R + f*(k1.R+2*k2.R+2*k3.R+k4.R),
		Phi:  s.Phi + f*(k1.Phi+2*k2.Phi+2*k3.Phi+k4.Phi),
		DR:   s.DR + f*(k1.DR+2*k2.DR+2*k3.DR+k4.DR),
		DPhi: s.DPhi + f*(k1.DPhi+2*k2.DPhi+2*k3.DPhi+k4.DPhi),
	}
}
