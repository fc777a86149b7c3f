package main

import (
	"math"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/granular-dem/shcontact/catalog"
	"github.com/granular-dem/shcontact/shape"
)

const plotSamples = 256

// plotRadii draws the equatorial radius profile of every catalog shape
// into one figure, a quick visual check that coefficient files were
// read in the intended orientation and scale.
func plotRadii(cat *catalog.Catalog, fname string) error {
	colors := []string{"b", "r", "g", "k", "m", "c"}

	plt.Reset()
	plt.Figure()

	phis := make([]float64, plotSamples)
	rads := make([]float64, plotSamples)
	for h := 0; h < cat.Len(); h++ {
		s := cat.Shape(h)
		ws := shape.NewWorkspace(s.NMax)
		for i := range phis {
			phis[i] = 2 * math.Pi * float64(i) / plotSamples
			rads[i] = s.Radius(ws, math.Pi/2, phis[i])
		}
		plt.Plot(phis, rads, plt.LW(2), plt.C(colors[h%len(colors)]))
	}

	plt.Title("equatorial radius per catalog shape")
	plt.XLabel(`$\phi$`, plt.FontSize(16))
	plt.YLabel(`$r(\pi/2, \phi)$`, plt.FontSize(16))
	plt.XLim(0, 2*math.Pi)
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(fname)
	plt.Execute()
	return nil
}
