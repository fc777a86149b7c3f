/*package shape implements star-shaped particle surfaces described by
truncated spherical harmonic expansions. A Shape is immutable once
built: the radius evaluators and the progressive contact test only read
from it, with all per-call scratch carried in a caller-owned Workspace,
so a single Shape may serve any number of goroutines.*/
package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/granular-dem/shcontact/math/sphharm"
)

// Loc returns the index of the real part of the (n, m) coefficient in
// the packed layout. Each degree stores its coefficients from m = n
// down to m = 0, interleaved (real, imaginary), so
// Loc(n, m) = n(n+1) + 2(n-m).
func Loc(n, m int) int { return n*(n+1) + 2*(n-m) }

// CoeffLen returns the packed coefficient slice length for expansions
// up to degree nmax.
func CoeffLen(nmax int) int { return (nmax + 1) * (nmax + 2) }

// Shape is a star-shaped surface together with the derived quantities
// needed for contact work. All fields are read-only after Build.
type Shape struct {
	// NMax is the maximum expansion degree, NQuad the per-axis order
	// of the surface quadrature grid.
	NMax, NQuad int

	// Coeffs holds the packed expansion coefficients for m >= 0.
	Coeffs []float64

	// Thetas, Phis and QuadRads give the polar angle, azimuth and
	// radius at each of the NQuad*NQuad surface grid points, row-major
	// with theta on the outer axis. Weights holds the per-axis
	// quadrature weights.
	Thetas, Phis, QuadRads []float64
	Weights                []float64

	// Volume is the enclosed volume. PrincipalInertia holds the
	// principal moments per unit mass, largest first, and QuatInit
	// rotates the principal frame into the body frame.
	Volume           float64
	PrincipalInertia mgl64.Vec3
	QuatInit         mgl64.Quat

	// ExpFacts[n] scales the degree-n partial radius into an upper
	// bound on the full radius. MaxRad bounds the radius over the
	// whole surface.
	ExpFacts []float64
	MaxRad   float64
}

// A returns the (n, m) coefficient, m >= 0.
func (s *Shape) A(n, m int) complex128 {
	l := Loc(n, m)
	return complex(s.Coeffs[l], s.Coeffs[l+1])
}

// Workspace holds the rolling recurrence buffers used by the radius
// evaluators. Reuse one per goroutine; a Workspace must not be shared
// by concurrent calls.
type Workspace struct {
	pm1, pm2 []float64
	pnn      float64
}

// NewWorkspace returns a Workspace sized for expansions up to degree
// nmax.
func NewWorkspace(nmax int) *Workspace {
	return &Workspace{
		pm1: make([]float64, nmax+1),
		pm2: make([]float64, nmax+1),
	}
}

// reset prepares ws for a fresh degree sweep, growing it if needed. A
// nil receiver allocates.
func (ws *Workspace) reset(nmax int) *Workspace {
	if ws == nil {
		return NewWorkspace(nmax)
	}
	if len(ws.pm1) < nmax+1 {
		ws.pm1 = make([]float64, nmax+1)
		ws.pm2 = make([]float64, nmax+1)
	}
	for i := 0; i <= nmax; i++ {
		ws.pm1[i], ws.pm2[i] = 0, 0
	}
	ws.pnn = 0
	return ws
}

// addDegree accumulates the degree-n contribution to the radius at
// cos(theta) = x, azimuth phi, advancing the rolling buffers in ws.
// Degrees must be visited in order starting from n = 1.
func (s *Shape) addDegree(ws *Workspace, n int, x, phi float64) float64 {
	c := s.Coeffs
	sum := 0.0
	switch {
	case n == 1:
		p, _ := sphharm.Plegendre(1, 0, x)
		ws.pm2[0] = p
		sum += c[4] * p
		p, _ = sphharm.Plegendre(1, 1, x)
		ws.pm2[1] = p
		smp, cmp := math.Sincos(phi)
		sum += (c[2]*cmp - c[3]*smp) * 2 * p
	case n == 2:
		p, _ := sphharm.Plegendre(2, 0, x)
		ws.pm1[0] = p
		sum += c[10] * p
		nloc := 6
		for m := 2; m >= 1; m-- {
			p, _ = sphharm.Plegendre(2, m, x)
			ws.pm1[m] = p
			smp, cmp := math.Sincos(float64(m) * phi)
			sum += (c[nloc]*cmp - c[nloc+1]*smp) * 2 * p
			nloc += 2
		}
		ws.pnn = ws.pm1[2]
	default:
		p := sphharm.PlegendreRecycle(n, 0, x, ws.pm1[0], ws.pm2[0])
		ws.pm2[0], ws.pm1[0] = ws.pm1[0], p
		loc := Loc(n, 0)
		sum += c[loc] * p
		loc -= 2
		for m := 1; m < n-1; m++ {
			p = sphharm.PlegendreRecycle(n, m, x, ws.pm1[m], ws.pm2[m])
			ws.pm2[m], ws.pm1[m] = ws.pm1[m], p
			smp, cmp := math.Sincos(float64(m) * phi)
			sum += (c[loc]*cmp - c[loc+1]*smp) * 2 * p
			loc -= 2
		}

		// m = n-1 and m = n step along the diagonal through pnn.
		p = x * math.Sqrt(2*float64(n-1)+3) * ws.pnn
		ws.pm2[n-1], ws.pm1[n-1] = ws.pm1[n-1], p
		smp, cmp := math.Sincos(float64(n-1) * phi)
		sum += (c[loc]*cmp - c[loc+1]*smp) * 2 * p
		loc -= 2

		p = sphharm.PlegendreNN(n, x, ws.pnn)
		ws.pnn = p
		ws.pm1[n] = p
		smp, cmp = math.Sincos(float64(n) * phi)
		sum += (c[loc]*cmp - c[loc+1]*smp) * 2 * p
	}
	return sum
}

// Radius evaluates the surface radius at polar angle theta and azimuth
// phi in the body frame. ws may be nil, at the cost of an allocation.
func (s *Shape) Radius(ws *Workspace, theta, phi float64) float64 {
	ws = ws.reset(s.NMax)
	rad := s.Coeffs[0] * math.Sqrt(1/(4*math.Pi))
	x := math.Cos(theta)
	for n := 1; n <= s.NMax; n++ {
		rad += s.addDegree(ws, n, x, phi)
	}
	return rad
}

// RadiusAndNormal evaluates the radius and the outward surface normal
// at (theta, phi). The normal is not normalized.
func (s *Shape) RadiusAndNormal(ws *Workspace, theta, phi float64) (float64, mgl64.Vec3) {
	if math.Sin(theta) == 0 {
		theta += 1e-5
	}
	if math.Sin(phi) == 0 {
		phi += 1e-5
	}
	rad, radDphi, radDtheta := s.RadiusAndGradients(ws, theta, phi)

	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	norm := mgl64.Vec3{
		rad * (cp*rad*st*st + sp*radDphi - cp*ct*st*radDtheta),
		rad * (rad*sp*st*st - cp*radDphi - ct*sp*st*radDtheta),
		rad * st * (ct*rad + st*radDtheta),
	}
	return rad, norm
}

// RadiusAndGradients evaluates the radius together with its partial
// derivatives with respect to phi and theta. Angles where sin(theta)
// or sin(phi) vanish are nudged off the singularity first.
func (s *Shape) RadiusAndGradients(ws *Workspace, theta, phi float64) (rad, radDphi, radDtheta float64) {
	ws = ws.reset(s.NMax)
	c := s.Coeffs
	rad = c[0] * math.Sqrt(1/(4*math.Pi))

	if math.Sin(theta) == 0 {
		theta += 1e-5
	}
	if math.Sin(phi) == 0 {
		phi += 1e-5
	}
	x := math.Cos(theta)
	st := math.Sin(theta)

	for n := 1; n <= s.NMax; n++ {
		switch {
		case n == 1:
			p, _ := sphharm.Plegendre(1, 0, x)
			ws.pm2[0] = p
			rad += c[4] * p
			fnm := math.Sqrt(3 / (4 * math.Pi))
			u10, _ := sphharm.Plgndr(1, 0, x)
			u20, _ := sphharm.Plgndr(2, 0, x)
			radDtheta -= (c[4] * fnm / st) * (2*x*u10 - 2*u20)

			p, _ = sphharm.Plegendre(1, 1, x)
			ws.pm2[1] = p
			smp, cmp := math.Sincos(phi)
			rad += (c[2]*cmp - c[3]*smp) * 2 * p
			radDphi -= (c[2]*smp + c[3]*cmp) * 2 * p
			fnm = math.Sqrt(3 / (8 * math.Pi))
			u11, _ := sphharm.Plgndr(1, 1, x)
			u21, _ := sphharm.Plgndr(2, 1, x)
			radDtheta += 2 * (fnm / st) * (2*x*u11 - u21) *
				(c[3]*smp - c[2]*cmp)
		case n == 2:
			p, _ := sphharm.Plegendre(2, 0, x)
			ws.pm1[0] = p
			rad += c[10] * p
			fnm := math.Sqrt(5 / (4 * math.Pi))
			u20, _ := sphharm.Plgndr(2, 0, x)
			u30, _ := sphharm.Plgndr(3, 0, x)
			radDtheta -= (c[10] * fnm / st) * (3*x*u20 - 3*u30)

			nloc := 6
			for m := 2; m >= 1; m-- {
				p, _ = sphharm.Plegendre(2, m, x)
				ws.pm1[m] = p
				smp, cmp := math.Sincos(float64(m) * phi)
				rad += (c[nloc]*cmp - c[nloc+1]*smp) * 2 * p
				radDphi -= (c[nloc]*smp + c[nloc+1]*cmp) * 2 * p * float64(m)
				fnm = sphharm.Fnm(2, m)
				unm, _ := sphharm.Plgndr(2, m, x)
				un1m, _ := sphharm.Plgndr(3, m, x)
				radDtheta += 2 * (fnm / st) *
					(3*x*unm - float64(3-m)*un1m) *
					(c[nloc+1]*smp - c[nloc]*cmp)
				nloc += 2
			}
			ws.pnn = ws.pm1[2]
		default:
			p := sphharm.PlegendreRecycle(n, 0, x, ws.pm1[0], ws.pm2[0])
			ws.pm2[0], ws.pm1[0] = ws.pm1[0], p
			loc := Loc(n, 0)
			rad += c[loc] * p
			fnm := math.Sqrt(float64(2*n+1) / (4 * math.Pi))
			unm, _ := sphharm.Plgndr(n, 0, x)
			un1m, _ := sphharm.Plgndr(n+1, 0, x)
			radDtheta -= (c[loc] * fnm / st) *
				(float64(n+1)*x*unm - float64(n+1)*un1m)
			loc -= 2

			for m := 1; m < n-1; m++ {
				p = sphharm.PlegendreRecycle(n, m, x, ws.pm1[m], ws.pm2[m])
				ws.pm2[m], ws.pm1[m] = ws.pm1[m], p
				smp, cmp := math.Sincos(float64(m) * phi)
				rad += (c[loc]*cmp - c[loc+1]*smp) * 2 * p
				radDphi -= (c[loc]*smp + c[loc+1]*cmp) * 2 * p * float64(m)
				fnm = sphharm.Fnm(n, m)
				unm, _ = sphharm.Plgndr(n, m, x)
				un1m, _ = sphharm.Plgndr(n+1, m, x)
				radDtheta += 2 * (fnm / st) *
					(float64(n+1)*x*unm - float64(n-m+1)*un1m) *
					(c[loc+1]*smp - c[loc]*cmp)
				loc -= 2
			}

			// m = n-1
			p = x * math.Sqrt(2*float64(n-1)+3) * ws.pnn
			ws.pm2[n-1], ws.pm1[n-1] = ws.pm1[n-1], p
			smp, cmp := math.Sincos(float64(n-1) * phi)
			rad += (c[loc]*cmp - c[loc+1]*smp) * 2 * p
			radDphi -= (c[loc]*smp + c[loc+1]*cmp) * 2 * p * float64(n-1)
			fnm = sphharm.Fnm(n, n-1)
			unm, _ = sphharm.Plgndr(n, n-1, x)
			un1m, _ = sphharm.Plgndr(n+1, n-1, x)
			radDtheta += 2 * (fnm / st) *
				(float64(n+1)*x*unm - 2*un1m) *
				(c[loc+1]*smp - c[loc]*cmp)
			loc -= 2

			// m = n
			p = sphharm.PlegendreNN(n, x, ws.pnn)
			ws.pnn = p
			ws.pm1[n] = p
			smp, cmp = math.Sincos(float64(n) * phi)
			rad += (c[loc]*cmp - c[loc+1]*smp) * 2 * p
			radDphi -= (c[loc]*smp + c[loc+1]*cmp) * 2 * p * float64(n)
			fnm = sphharm.Fnm(n, n)
			unm, _ = sphharm.Plgndr(n, n, x)
			un1m, _ = sphharm.Plgndr(n+1, n, x)
			radDtheta += 2 * (fnm / st) *
				(float64(n+1)*x*unm - un1m) *
				(c[loc+1]*smp - c[loc]*cmp)
		}
	}
	return rad, radDphi, radDtheta
}
