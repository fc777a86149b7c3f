package shape

import (
	"math"

	"github.com/pkg/errors"
)

// ErrJacobiNonConverged is returned when the inertia tensor
// diagonalization fails to drive the off-diagonal mass to zero.
var ErrJacobiNonConverged = errors.New(
	"shape: eigensolver did not converge",
)

const jacobiMaxSweeps = 50

// jacobi3 diagonalizes the symmetric matrix a by cyclic Jacobi
// rotations, returning eigenvalues in descending order with the
// matching eigenvectors as columns of v. a is destroyed.
func jacobi3(a *[3][3]float64) (d [3]float64, v [3][3]float64, err error) {
	var b, z [3]float64
	for i := 0; i < 3; i++ {
		v[i][i] = 1
		b[i] = a[i][i]
		d[i] = a[i][i]
	}

	for sweep := 1; sweep <= jacobiMaxSweeps; sweep++ {
		sm := math.Abs(a[0][1]) + math.Abs(a[0][2]) + math.Abs(a[1][2])
		if sm == 0 {
			sortEigen(&d, &v)
			return d, v, nil
		}

		tresh := 0.0
		if sweep < 4 {
			tresh = 0.2 * sm / 9
		}

		for ip := 0; ip < 2; ip++ {
			for iq := ip + 1; iq < 3; iq++ {
				g := 100 * math.Abs(a[ip][iq])
				if sweep > 4 &&
					math.Abs(d[ip])+g == math.Abs(d[ip]) &&
					math.Abs(d[iq])+g == math.Abs(d[iq]) {
					a[ip][iq] = 0
					continue
				}
				if math.Abs(a[ip][iq]) <= tresh {
					continue
				}

				h := d[iq] - d[ip]
				var t float64
				if math.Abs(h)+g == math.Abs(h) {
					t = a[ip][iq] / h
				} else {
					theta := 0.5 * h / a[ip][iq]
					t = 1 / (math.Abs(theta) + math.Sqrt(1+theta*theta))
					if theta < 0 {
						t = -t
					}
				}
				c := 1 / math.Sqrt(1+t*t)
				s := t * c
				tau := s / (1 + c)
				h = t * a[ip][iq]
				z[ip] -= h
				z[iq] += h
				d[ip] -= h
				d[iq] += h
				a[ip][iq] = 0
				for j := 0; j <= ip-1; j++ {
					rotate(a, s, tau, j, ip, j, iq)
				}
				for j := ip + 1; j <= iq-1; j++ {
					rotate(a, s, tau, ip, j, j, iq)
				}
				for j := iq + 1; j < 3; j++ {
					rotate(a, s, tau, ip, j, iq, j)
				}
				for j := 0; j < 3; j++ {
					rotateV(&v, s, tau, j, ip, j, iq)
				}
			}
		}

		for i := 0; i < 3; i++ {
			b[i] += z[i]
			d[i] = b[i]
			z[i] = 0
		}
	}
	return d, v, errors.Wrapf(
		ErrJacobiNonConverged, "after %d sweeps", jacobiMaxSweeps,
	)
}

func rotate(a *[3][3]float64, s, tau float64, i, j, k, l int) {
	g := a[i][j]
	h := a[k][l]
	a[i][j] = g - s*(h+g*tau)
	a[k][l] = h + s*(g-h*tau)
}

func rotateV(v *[3][3]float64, s, tau float64, i, j, k, l int) {
	g := v[i][j]
	h := v[k][l]
	v[i][j] = g - s*(h+g*tau)
	v[k][l] = h + s*(g-h*tau)
}

func sortEigen(d *[3]float64, v *[3][3]float64) {
	for i := 0; i < 2; i++ {
		k := i
		for j := i + 1; j < 3; j++ {
			if d[j] > d[k] {
				k = j
			}
		}
		if k != i {
			d[i], d[k] = d[k], d[i]
			for row := 0; row < 3; row++ {
				v[row][i], v[row][k] = v[row][k], v[row][i]
			}
		}
	}
}
