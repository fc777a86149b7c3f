/*package pair computes the overlap volume and the resulting contact
force and torque between two star-shaped particles. The integration
runs over a spherical cap on the first particle aimed at the second,
with Gaussian nodes along the cap axis and a trapezoid sweep in
azimuth; the inner overlap boundary along each ray is located by
bisection against the second particle's progressive contact test.*/
package pair

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/granular-dem/shcontact/geom"
	"github.com/granular-dem/shcontact/math/quad"
	"github.com/granular-dem/shcontact/shape"
)

// ErrCenterInsideOther is returned when the center of the first
// particle lies within the bounding sphere of the second, where the
// spherical cap construction breaks down.
var ErrCenterInsideOther = errors.New(
	"pair: particle center inside the other's bounding sphere",
)

// Params tunes the overlap integration. Zero values of PoleQuad and
// RadiusTol select the defaults of 30 and 1e-3.
type Params struct {
	// Stiffness and Exponent define the volume penalty
	// F = -Exponent * Stiffness * V^(Exponent-1) * S.
	Stiffness, Exponent float64

	// PoleQuad is the Gaussian order along the cap axis.
	PoleQuad int

	// RadiusTol terminates the radial bisection once the bracket is
	// narrower than RadiusTol times the first particle's bounding
	// radius.
	RadiusTol float64

	// Newton3 additionally fills in the reaction force and torque on
	// the second particle.
	Newton3 bool

	// Workspace, if non-nil, supplies the recurrence scratch. One
	// Workspace must not be shared by concurrent calls.
	Workspace *shape.Workspace
}

// Result reports one pairwise overlap. Force and Torque act on the
// first particle. BForce, BTorque and ContactPoint are only filled in
// when Params.Newton3 is set and the force is nonzero.
type Result struct {
	Touching     bool
	Volume       float64
	Force        mgl64.Vec3
	Torque       mgl64.Vec3
	ContactPoint mgl64.Vec3
	BForce       mgl64.Vec3
	BTorque      mgl64.Vec3
}

// Overlap integrates the overlap between particles a and b placed at
// xa, xb with orientations qa, qb. Non-overlapping bounding spheres
// return a zero Result and nil error.
func Overlap(a, b *shape.Shape, xa, xb mgl64.Vec3, qa, qb mgl64.Quat, p Params) (Result, error) {
	if p.PoleQuad == 0 {
		p.PoleQuad = 30
	}
	if p.RadiusTol == 0 {
		p.RadiusTol = 1e-3
	}

	del := xb.Sub(xa)
	r := del.Len()
	if r >= a.MaxRad+b.MaxRad {
		return Result{}, nil
	}
	if r <= b.MaxRad {
		return Result{}, errors.Wrapf(
			ErrCenterInsideOther,
			"separation %g, bounding radius %g", r, b.MaxRad,
		)
	}

	ws := p.Workspace
	if ws == nil {
		ws = shape.NewWorkspace(a.NMax)
	}

	iang := math.Asin(b.MaxRad / r)
	quatCont := geom.ZAlignQuat(del)
	quatBF := qa.Conjugate().Mul(quatCont).Normalize()

	absc := make([]float64, p.PoleQuad)
	wts := make([]float64, p.PoleQuad)
	for i := 0; i < p.PoleQuad; i++ {
		gp := quad.GLPair(p.PoleQuad, i+1)
		absc[i] = gp.X()
		wts[i] = gp.Weight
	}

	env := &capEnv{
		a: a, b: b, xa: xa, xb: xb,
		qa: qa, qb: qb,
		quatCont: quatCont, quatBF: quatBF,
		absc: absc, wts: wts, ws: ws,
	}

	kkCount, found := env.refineCapAngle(iang)
	if !found {
		return Result{}, nil
	}

	res := env.integrate(iang, kkCount, p)
	if !p.Newton3 || res.Force.Len() == 0 {
		return res, nil
	}

	// Reaction on b: equal and opposite force through the contact
	// point recovered from the torque.
	f := res.Force
	fn2 := f.Dot(f)
	res.BForce = f.Mul(-1)
	res.ContactPoint = xa.Sub(res.Torque.Cross(f).Mul(1 / fn2))
	res.BTorque = f.Cross(res.ContactPoint.Sub(xb))
	return res, nil
}

// capEnv carries the frame data shared by the cap sweep and the
// overlap integration.
type capEnv struct {
	a, b       *shape.Shape
	xa, xb     mgl64.Vec3
	qa, qb     mgl64.Quat
	quatCont   mgl64.Quat
	quatBF     mgl64.Quat
	absc, wts  []float64
	ws         *shape.Workspace
}

// capTheta maps a Gauss abscissa onto the polar angle of the cap of
// half-angle ang.
func capTheta(x, cosang float64) float64 {
	return math.Acos(x*((1-cosang)/2) + (1+cosang)/2)
}

// refineCapAngle sweeps the cap grid from the rim inward looking for
// the first node whose ray intersects particle b. It reports the layer
// to refine the cap to, counted one layer wider than the hit.
func (e *capEnv) refineCapAngle(iang float64) (kkCount int, found bool) {
	nAz := 2 * (len(e.absc) - 1)
	cosang := math.Cos(iang)

	for kk := len(e.absc) - 1; kk >= 0; kk-- {
		thetaPole := capTheta(e.absc[kk], cosang)
		for ll := 1; ll <= nAz+1; ll++ {
			phiPole := 2 * math.Pi * float64(ll-1) / float64(nAz+1)
			gp := geom.SphereToCart(1, thetaPole, phiPole)

			gpBF := e.quatBF.Rotate(gp)
			_, thetaBF, phiBF := geom.CartToSphere(gpBF)
			radBody := e.a.Radius(e.ws, thetaBF, phiBF)

			gpSF := e.quatCont.Rotate(gp)
			_, thetaSF, phiSF := geom.CartToSphere(gpSF)
			ixSF := geom.SphereToCart(radBody, thetaSF, phiSF).Add(e.xa)

			if ok, _ := e.projectAndCheck(ixSF); ok {
				return kk + 1, true
			}
		}
	}
	return 0, false
}

// projectAndCheck projects a space-frame point into b's body frame and
// runs the progressive contact test.
func (e *capEnv) projectAndCheck(pt mgl64.Vec3) (bool, float64) {
	rel := pt.Sub(e.xb)
	d := rel.Len()
	if d > e.b.MaxRad {
		return false, 0
	}
	proj := e.qb.Conjugate().Rotate(rel)
	phi := geom.WrapAzimuth(math.Atan2(proj[1], proj[0]))
	theta := math.Acos(proj[2] / d)
	ok, _ := e.b.CheckContact(e.ws, phi, theta, d)
	return ok, d
}

// integrate runs the cap quadrature over the refined cap, returning
// the overlap volume and the surface-normal and torque sums scaled
// into Force and Torque.
func (e *capEnv) integrate(iang float64, kkCount int, p Params) Result {
	nAz := 2 * (len(e.absc) - 1)
	radTol := p.RadiusTol * e.a.MaxRad

	cosang := math.Cos(iang)
	if kkCount < len(e.absc) {
		iang = capTheta(e.absc[kkCount], cosang)
		cosang = math.Cos(iang)
	}
	fac := ((1 - cosang) / 2) * (2 * math.Pi / float64(nAz+1))

	var volOverlap float64
	var force, torsum mgl64.Vec3

	for kk := len(e.absc) - 1; kk >= 0; kk-- {
		thetaPole := capTheta(e.absc[kk], cosang)
		for ll := 1; ll <= nAz+1; ll++ {
			phiPole := 2 * math.Pi * float64(ll-1) / float64(nAz+1)
			gp := geom.SphereToCart(1, thetaPole, phiPole)

			gpSF := e.quatCont.Rotate(gp)
			_, thetaSF, phiSF := geom.CartToSphere(gpSF)

			gpBF := e.quatBF.Rotate(gp)
			_, thetaBF, phiBF := geom.CartToSphere(gpBF)

			radBody, normBF := e.a.RadiusAndNormal(e.ws, thetaBF, phiBF)
			ixSF := geom.SphereToCart(radBody, thetaSF, phiSF).Add(e.xa)

			ok, _ := e.projectAndCheck(ixSF)
			if !ok {
				continue
			}

			// Bisect along the ray for the radius where it leaves b.
			upper, lower := radBody, 0.0
			radSample := (upper + lower) / 2
			for upper-lower > radTol {
				jxSF := geom.SphereToCart(radSample, thetaSF, phiSF).Add(e.xa)
				if inside, _ := e.projectAndCheck(jxSF); inside {
					upper = radSample
				} else {
					lower = radSample
				}
				radSample = (upper + lower) / 2
			}

			dv := e.wts[kk] * (radBody*radBody*radBody -
				radSample*radSample*radSample)
			volOverlap += dv

			normSF := e.qa.Rotate(
				normBF.Mul(e.wts[kk] / math.Sin(thetaBF)))
			force = force.Add(normSF)
			u := ixSF.Sub(e.xa)
			torsum = torsum.Add(u.Cross(normSF))
		}
	}

	volOverlap *= fac / 3
	force = force.Mul(fac)
	torsum = torsum.Mul(fac)

	pn := p.Exponent * p.Stiffness *
		math.Pow(volOverlap, p.Exponent-1)
	return Result{
		Touching: true,
		Volume:   volOverlap,
		Force:    force.Mul(-pn),
		Torque:   torsum.Mul(-pn),
	}
}
