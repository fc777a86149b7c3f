package shape

import (
	"math/cmplx"

	"github.com/granular-dem/shcontact/math/sphharm"
)

// RotateCoefficients rotates a packed coefficient vector by the ZYZ
// Euler angles (alpha, beta, gamma), returning the coefficients of the
// same surface expressed in the rotated frame. It fails with
// sphharm.ErrRotationDegenerate if beta lies outside [0, pi].
func RotateCoefficients(coeffs []float64, alpha, beta, gamma float64) ([]float64, error) {
	nmax := degreeOf(len(coeffs))
	t, err := sphharm.WignerD(nmax, beta)
	if err != nil {
		return nil, err
	}
	return RotateCoefficientsTable(coeffs, t, alpha, gamma), nil
}

// RotateCoefficientsTable is RotateCoefficients with the Wigner table
// precomputed, for rotating many coefficient vectors through the same
// polar angle.
func RotateCoefficientsTable(coeffs []float64, t *sphharm.WignerTable, alpha, gamma float64) []float64 {
	nmax := t.NMax
	out := make([]float64, len(coeffs))
	for n := 0; n <= nmax; n++ {
		loc0 := Loc(n, 0)
		for m := 0; m <= n; m++ {
			var acc complex128
			for mp := -n; mp <= n; mp++ {
				amp := mp
				if amp < 0 {
					amp = -amp
				}
				mloc := loc0 - 2*amp
				anm := complex(coeffs[mloc], coeffs[mloc+1])
				if mp < 0 {
					anm = cmplx.Conj(anm)
					if amp&1 == 1 {
						anm = -anm
					}
				}
				ea := cmplx.Exp(complex(0, float64(mp)*alpha))
				acc += ea * complex(t.D(n, mp, m), 0) * anm
			}
			acc *= cmplx.Exp(complex(0, float64(m)*gamma))
			l := Loc(n, m)
			out[l] = real(acc)
			out[l+1] = imag(acc)
		}
	}
	return out
}

// degreeOf inverts CoeffLen.
func degreeOf(coeffLen int) int {
	n := 0
	for CoeffLen(n+1) <= coeffLen {
		n++
	}
	return n
}
