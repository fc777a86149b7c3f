package shell

import (
	"math"

	"github.com/granular-dem/shcontact/math/quad"
	"github.com/granular-dem/shcontact/math/sphharm"
	"github.com/granular-dem/shcontact/shape"
)

// Fit projects s onto an orthonormal spherical-harmonic basis up to
// degree nmax, returning a packed coefficient vector ready for
// shape.Build. The polar integral runs over quadOrder Gaussian nodes
// and the azimuthal integral over a matching trapezoid sweep.
func Fit(s Shell, nmax, quadOrder int) []float64 {
	coeffs := make([]float64, shape.CoeffLen(nmax))
	nPhi := 2 * quadOrder

	for i := 0; i < quadOrder; i++ {
		gp := quad.GLPair(quadOrder, i+1)
		theta := 0.5 * math.Pi * (gp.X() + 1)
		st := math.Sin(theta)
		x := math.Cos(theta)
		wTheta := gp.Weight * st * 0.5 * math.Pi

		for j := 0; j < nPhi; j++ {
			phi := 2 * math.Pi * float64(j) / float64(nPhi)
			w := wTheta * 2 * math.Pi / float64(nPhi)
			r := s(phi, theta)

			for n := 0; n <= nmax; n++ {
				for m := 0; m <= n; m++ {
					p, _ := sphharm.Plegendre(n, m, x)
					smp, cmp := math.Sincos(float64(m) * phi)
					l := shape.Loc(n, m)
					coeffs[l] += w * r * p * cmp
					coeffs[l+1] -= w * r * p * smp
				}
			}
		}
	}
	return coeffs
}

// FromShape wraps a built shape as a Shell over its body frame, for
// comparing a truncated expansion back against the surface it was
// fitted from.
func FromShape(sh *shape.Shape) Shell {
	ws := shape.NewWorkspace(sh.NMax)
	return func(phi, theta float64) float64 {
		return sh.Radius(ws, theta, phi)
	}
}
