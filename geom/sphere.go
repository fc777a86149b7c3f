/*package geom provides the small amount of coordinate geometry shared
by the shape and pair packages: spherical/Cartesian conversions and
quaternion constructors layered over mgl64.*/
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphereToCart returns the Cartesian point at radius r, polar angle
// theta measured from +z, and azimuth phi measured from +x.
func SphereToCart(r, theta, phi float64) mgl64.Vec3 {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	return mgl64.Vec3{r * st * cp, r * st * sp, r * ct}
}

// CartToSphere returns the spherical coordinates of v, with theta in
// [0, pi] and phi wrapped into [0, 2 pi).
func CartToSphere(v mgl64.Vec3) (r, theta, phi float64) {
	r = v.Len()
	if r == 0 {
		return 0, 0, 0
	}
	theta = math.Acos(v[2] / r)
	phi = WrapAzimuth(math.Atan2(v[1], v[0]))
	return r, theta, phi
}

// WrapAzimuth maps an angle into [0, 2 pi).
func WrapAzimuth(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}

// ZAlignQuat returns the rotation carrying the +z axis onto dir. dir
// need not be normalized.
func ZAlignQuat(dir mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, dir)
}

// BasisQuat converts the orthonormal basis (ex, ey, ez) into a unit
// rotation quaternion. If the basis is left-handed, ez is flipped
// first.
func BasisQuat(ex, ey, ez mgl64.Vec3) mgl64.Quat {
	if ex.Cross(ey).Dot(ez) < 0 {
		ez = ez.Mul(-1)
	}
	m := mgl64.Mat3FromCols(ex, ey, ez)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}
