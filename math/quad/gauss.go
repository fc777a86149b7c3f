/*package quad supplies Gauss-Legendre node/weight pairs indexed the way
surface quadrature loops want them: by order and one-based node index,
with the node reported as a polar angle. Pairs for each order are
computed once and cached, so repeated lookups are cheap.*/
package quad

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

// QuadPair is a single Gauss-Legendre node. Theta is the node position
// reported as an angle in [0, pi]; the abscissa on [-1, 1] is cos(Theta).
type QuadPair struct {
	Theta  float64
	Weight float64
}

// X returns the abscissa of the node on [-1, 1].
func (p QuadPair) X() float64 { return math.Cos(p.Theta) }

// tabulatedMax is the largest order taken from gonum's Gauss-Legendre
// rule. Above it, nodes come from Newton-refined Bessel-zero
// asymptotics.
const tabulatedMax = 100

var (
	glMu    sync.RWMutex
	glCache = map[int][]QuadPair{}
)

// GLPair returns the k-th node of the n-point Gauss-Legendre rule,
// k = 1..n. Theta increases with k, so the abscissa cos(Theta)
// decreases with k. GLPair panics if n < 1 or k is out of range; it is
// safe for concurrent use.
func GLPair(n, k int) QuadPair {
	if n < 1 {
		panic(fmt.Sprintf("quad: non-positive order %d", n))
	}
	if k < 1 || k > n {
		panic(fmt.Sprintf("quad: node %d out of range for order %d", k, n))
	}

	glMu.RLock()
	pairs, ok := glCache[n]
	glMu.RUnlock()
	if !ok {
		pairs = computePairs(n)
		glMu.Lock()
		if prev, ok := glCache[n]; ok {
			pairs = prev
		} else {
			glCache[n] = pairs
		}
		glMu.Unlock()
	}
	return pairs[k-1]
}

func computePairs(n int) []QuadPair {
	if n <= tabulatedMax {
		return smallOrderPairs(n)
	}
	return largeOrderPairs(n)
}

func smallOrderPairs(n int) []QuadPair {
	x := make([]float64, n)
	w := make([]float64, n)
	(quad.Legendre{}).FixedLocations(x, w, -1, 1)

	// FixedLocations fills x in ascending order. Reverse so that
	// pairs[0] carries the largest abscissa, i.e. the smallest Theta.
	pairs := make([]QuadPair, n)
	for k := 1; k <= n; k++ {
		pairs[k-1] = QuadPair{
			Theta:  math.Acos(x[n-k]),
			Weight: w[n-k],
		}
	}
	return pairs
}

func largeOrderPairs(n int) []QuadPair {
	nu := float64(n) + 0.5
	pairs := make([]QuadPair, n)
	for k := 1; k <= n; k++ {
		kk, mirror := k, false
		if 2*k > n+1 {
			kk, mirror = n+1-k, true
		}

		x := math.Cos(besselJ0Zero(kk) / nu)
		var dpn float64
		for iter := 0; iter < 20; iter++ {
			pn, pn1 := legendrePair(n, x)
			dpn = float64(n) * (x*pn - pn1) / (x*x - 1)
			dx := pn / dpn
			x -= dx
			if math.Abs(dx) < 1e-15 {
				break
			}
		}
		w := 2 / ((1 - x*x) * dpn * dpn)

		if mirror {
			x = -x
		}
		pairs[k-1] = QuadPair{Theta: math.Acos(x), Weight: w}
	}
	return pairs
}

// legendrePair evaluates the unnormalized Legendre polynomials P_n(x)
// and P_{n-1}(x) by the three-term recurrence.
func legendrePair(n int, x float64) (pn, pn1 float64) {
	p0, p1 := 1.0, x
	for ll := 2; ll <= n; ll++ {
		p0, p1 = p1,
			(float64(2*ll-1)*x*p1-float64(ll-1)*p0)/float64(ll)
	}
	return p1, p0
}

// besselJ0Zero approximates the k-th positive zero of the Bessel
// function J_0 by the McMahon expansion. The relative error decays like
// k^-7, which leaves the Newton refinement at most a few steps of work.
func besselJ0Zero(k int) float64 {
	b := (float64(k) - 0.25) * math.Pi
	b8 := 8 * b
	return b + 1/b8 - 124/(3*b8*b8*b8) +
		120928/(15*b8*b8*b8*b8*b8)
}
