/*package sphharm provides associated Legendre polynomials in the
normalization used for real spherical harmonic expansions, along with
Wigner small-d rotation tables. The hot-path entry points are written so
that degree loops can walk n upwards while reusing previously computed
values through caller-owned buffers.*/
package sphharm

import (
	"math"

	"github.com/pkg/errors"
)

// ErrDomain is returned when a Legendre evaluation is requested outside
// the valid (n, m, x) domain.
var ErrDomain = errors.New("sphharm: argument outside valid domain")

// Plegendre computes the normalized associated Legendre polynomial
// P-tilde_n^m(x), where the normalization is chosen so that the product
// with exp(i*m*phi) is an orthonormal spherical harmonic. It returns
// ErrDomain if m < 0, m > n, or |x| > 1.
func Plegendre(n, m int, x float64) (float64, error) {
	if m < 0 || m > n || math.Abs(x) > 1 {
		return 0, errors.Wrapf(
			ErrDomain, "Plegendre(n=%d, m=%d, x=%g)", n, m, x,
		)
	}
	return plegendre(n, m, x), nil
}

// plegendre is the panic-free core of Plegendre. Callers must have
// validated 0 <= m <= n and |x| <= 1.
func plegendre(n, m int, x float64) float64 {
	pmm := 1.0
	if m > 0 {
		omx2 := (1 - x) * (1 + x)
		fact := 1.0
		for i := 1; i <= m; i++ {
			pmm *= omx2 * fact / (fact + 1)
			fact += 2
		}
	}
	pmm = math.Sqrt(float64(2*m+1) * pmm / (4 * math.Pi))
	if m&1 == 1 {
		pmm = -pmm
	}
	if n == m {
		return pmm
	}

	pmmp1 := x * math.Sqrt(float64(2*m+3)) * pmm
	if n == m+1 {
		return pmmp1
	}

	oldfact := math.Sqrt(float64(2*m + 3))
	for ll := m + 2; ll <= n; ll++ {
		fact := math.Sqrt(
			float64(4*ll*ll-1) / float64(ll*ll-m*m),
		)
		pll := (x*pmmp1 - pmm/oldfact) * fact
		oldfact = fact
		pmm = pmmp1
		pmmp1 = pll
	}
	return pmmp1
}

// PlegendreNN steps the sectoral value along the diagonal, computing
// P-tilde_n^n(x) from pnn = P-tilde_{n-1}^{n-1}(x). Input is assumed
// valid.
func PlegendreNN(n int, x, pnn float64) float64 {
	return -math.Sqrt(float64(2*n+1)/float64(2*n)) *
		math.Sqrt((1-x)*(1+x)) * pnn
}

// PlegendreRecycle computes P-tilde_n^m(x) from the two previous
// degrees at the same order, p1 = P-tilde_{n-1}^m(x) and
// p2 = P-tilde_{n-2}^m(x). Input is assumed valid: callers must
// guarantee m <= n-2.
func PlegendreRecycle(n, m int, x, p1, p2 float64) float64 {
	fact := math.Sqrt(float64(4*n*n-1) / float64(n*n-m*m))
	nm1 := n - 1
	oldfact := math.Sqrt(float64(4*nm1*nm1-1) / float64(nm1*nm1-m*m))
	return (x*p1 - p2/oldfact) * fact
}

// Plgndr computes the unnormalized associated Legendre polynomial
// P_n^m(x), including the Condon-Shortley phase. It returns ErrDomain
// if m < 0, m > n, or |x| > 1.
func Plgndr(n, m int, x float64) (float64, error) {
	if m < 0 || m > n || math.Abs(x) > 1 {
		return 0, errors.Wrapf(
			ErrDomain, "Plgndr(n=%d, m=%d, x=%g)", n, m, x,
		)
	}
	return plgndr(n, m, x), nil
}

func plgndr(n, m int, x float64) float64 {
	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt((1 - x) * (1 + x))
		fact := 1.0
		for i := 1; i <= m; i++ {
			pmm *= -fact * somx2
			fact += 2
		}
	}
	if n == m {
		return pmm
	}

	pmmp1 := x * float64(2*m+1) * pmm
	if n == m+1 {
		return pmmp1
	}

	var pll float64
	for ll := m + 2; ll <= n; ll++ {
		pll = (x*float64(2*ll-1)*pmmp1 -
			float64(ll+m-1)*pmm) / float64(ll-m)
		pmm = pmmp1
		pmmp1 = pll
	}
	return pll
}

// Fnm is the normalization constant relating Plgndr to Plegendre:
// Fnm(n, m) * Plgndr(n, m, x) = Plegendre(n, m, x), both carrying the
// Condon-Shortley phase. It equals
// sqrt((2n+1) (n-m)! / (4 pi (n+m)!)).
func Fnm(n, m int) float64 {
	return math.Sqrt(float64(2*n+1) * factorial(n-m) /
		(4 * math.Pi * factorial(n+m)))
}

// factorial returns n! as a float64. The expansion degrees used here
// keep n small enough that the result is exact or near-exact in double
// precision.
func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
