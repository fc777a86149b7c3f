package sphharm

import (
	"math"

	"github.com/pkg/errors"
)

// ErrRotationDegenerate is returned when a rotation is requested with a
// polar Euler angle outside [0, pi].
var ErrRotationDegenerate = errors.New(
	"sphharm: polar rotation angle outside [0, pi]",
)

// WignerTable holds the small-d rotation matrix elements d^n_{m',m} for
// every degree n = 0..NMax at a fixed polar angle. A table is read-only
// once built and may be shared across goroutines and reused for every
// coefficient vector rotated through the same polar angle.
type WignerTable struct {
	NMax int
	d    [][][]float64
}

// D returns d^n_{m',m}. Indices must satisfy |m'| <= n, |m| <= n,
// n <= NMax.
func (t *WignerTable) D(n, mp, m int) float64 {
	return t.d[n][mp+n][m+n]
}

// dPrev reads a degree n-1 element, treating indices outside
// [-(n-1), n-1] as zero. The recursion coefficients multiplying such
// reads always vanish, so this keeps the three-term sums uniform.
func (t *WignerTable) dPrev(n, mp, m int) float64 {
	if mp < -(n-1) || mp > n-1 || m < -(n-1) || m > n-1 {
		return 0
	}
	return t.d[n-1][mp+n-1][m+n-1]
}

// WignerD builds the table of Wigner small-d matrix elements for
// degrees 0..nmax at polar angle beta, using the closed-form sum to
// seed degrees 0 and 1 and a three-branch degree recursion above that.
// It returns ErrRotationDegenerate if beta lies outside [0, pi].
func WignerD(nmax int, beta float64) (*WignerTable, error) {
	if beta < 0 || beta > math.Pi {
		return nil, errors.Wrapf(ErrRotationDegenerate, "beta = %g", beta)
	}

	cosbeta := math.Cos(beta / 2)
	sinbeta := math.Sin(beta / 2)
	if cosbeta == 0 {
		beta += 1e-10
		cosbeta = math.Cos(beta / 2)
	}
	if sinbeta == 0 {
		beta += 1e-10
		sinbeta = math.Sin(beta / 2)
	}

	t := &WignerTable{NMax: nmax}
	t.d = make([][][]float64, nmax+1)
	for n := 0; n <= nmax; n++ {
		t.d[n] = make([][]float64, 2*n+1)
		for i := range t.d[n] {
			t.d[n][i] = make([]float64, 2*n+1)
		}
	}

	for n := 0; n <= 1 && n <= nmax; n++ {
		for m := -n; m <= n; m++ {
			for mp := -n; mp <= n; mp++ {
				realnum := math.Sqrt(
					factorial(n+mp) * factorial(n-mp) /
						(factorial(n+m) * factorial(n-m)),
				)
				klow, khigh := 0, n-mp
				if m-mp > klow {
					klow = m - mp
				}
				if n+m < khigh {
					khigh = n + m
				}
				total := 0.0
				for k := klow; k <= khigh; k++ {
					abc := 1.0
					if (k+mp-m)&1 == 1 {
						abc = -1.0
					}
					abc *= factorial(n+m) /
						(factorial(k) * factorial(n+m-k))
					abc *= factorial(n-m) /
						(factorial(n-mp-k) * factorial(mp+k-m))
					total += abc *
						math.Pow(cosbeta, float64(2*n+m-mp-2*k)) *
						math.Pow(sinbeta, float64(2*k+mp-m))
				}
				t.d[n][mp+n][m+n] = total * realnum
			}
		}
	}

	ss := sinbeta * sinbeta
	cc := cosbeta * cosbeta
	sc := sinbeta * cosbeta
	cms := cc - ss
	for n := 2; n <= nmax; n++ {
		rn := float64(n)
		for m := -n; m <= n; m++ {
			rm := float64(m)
			for mp := -n; mp <= n; mp++ {
				rmp := float64(mp)
				term := 0.0
				switch {
				case mp > -n && mp < n:
					a := cms * math.Sqrt(
						(rn+rm)*(rn-rm)/((rn+rmp)*(rn-rmp)))
					b := sc * math.Sqrt(
						(rn+rm)*(rn+rm-1)/((rn+rmp)*(rn-rmp)))
					nb := -sc * math.Sqrt(
						(rn-rm)*(rn-rm-1)/((rn+rmp)*(rn-rmp)))
					term += a * t.dPrev(n, mp, m)
					term += b * t.dPrev(n, mp, m-1)
					term += nb * t.dPrev(n, mp, m+1)
				case mp == -n:
					c := 2 * sc * math.Sqrt(
						(rn+rm)*(rn-rm)/((rn-rmp)*(rn-rmp-1)))
					d := ss * math.Sqrt(
						(rn+rm)*(rn+rm-1)/((rn-rmp)*(rn-rmp-1)))
					nd := cc * math.Sqrt(
						(rn-rm)*(rn-rm-1)/((rn-rmp)*(rn-rmp-1)))
					term += c * t.dPrev(n, mp+1, m)
					term += d * t.dPrev(n, mp+1, m-1)
					term += nd * t.dPrev(n, mp+1, m+1)
				default:
					c := -2 * sc * math.Sqrt(
						(rn+rm)*(rn-rm)/((rn+rmp)*(rn+rmp-1)))
					d := cc * math.Sqrt(
						(rn+rm)*(rn+rm-1)/((rn+rmp)*(rn+rmp-1)))
					nd := ss * math.Sqrt(
						(rn-rm)*(rn-rm-1)/((rn+rmp)*(rn+rmp-1)))
					term += c * t.dPrev(n, mp-1, m)
					term += d * t.dPrev(n, mp-1, m-1)
					term += nd * t.dPrev(n, mp-1, m+1)
				}
				t.d[n][mp+n][m+n] = term
			}
		}
	}

	return t, nil
}
