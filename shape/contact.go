package shape

import "math"

// CheckContact reports whether the surface radius along the body-frame
// direction (phi, theta) reaches at least dist. The radius is
// accumulated degree by degree; at each degree the partial radius,
// scaled by the matching expansion factor, bounds the full radius from
// above, so the test can bail out as soon as the bound drops below
// dist. On contact the second return value is the converged radius.
func (s *Shape) CheckContact(ws *Workspace, phi, theta, dist float64) (bool, float64) {
	rad := s.Coeffs[0] * math.Sqrt(1/(4*math.Pi))
	if dist > s.ExpFacts[0]*rad {
		return false, 0
	}

	ws = ws.reset(s.NMax)
	x := math.Cos(theta)
	for n := 1; n <= s.NMax; n++ {
		rad += s.addDegree(ws, n, x, phi)
		if dist > s.ExpFacts[n]*rad {
			return false, 0
		}
	}
	return true, rad
}
