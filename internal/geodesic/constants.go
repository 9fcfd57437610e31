package geodesic

import "math"

// Constants holds the radii derived from the scale parameter of one run.
type Constants struct {
	Rs           Real // horizon radius
	PhotonSphere Real // radius of unstable circular photon orbits
	Shadow       Real // critical impact parameter
}

// NewConstants derives the photon sphere and shadow radii from rs.
func NewConstants(rs Real) Constants {
	return Constants{Rs: rs, PhotonSphere: PhotonSphereRadius(rs), Shadow: ShadowRadius(rs)}
}

// PhotonSphereRadius returns 1.5*rs.
func PhotonSphereRadius(rs Real) Real { return 1.5 * rs }

// ShadowRadius returns the critical impact parameter (3*sqrt(3)/2)*rs.
func ShadowRadius(rs Real) Real { return math.Sqrt(27) / 2 * rs }
