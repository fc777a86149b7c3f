/*shcontact computes pairwise overlap volumes, forces and torques for a
table of placed star-shaped particles.

	$ shcontact run.cfg placements.txt

run.cfg is a gcfg run file declaring the catalog parameters, the
contact law and the shape coefficient files. placements.txt is a
whitespace table with one particle per row and the columns

	shape x y z qw qx qy qz

where shape indexes the catalog in name order and (qw qx qy qz) is the
particle's orientation quaternion.*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/edaniels/golog"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phil-mansfield/table"

	"github.com/granular-dem/shcontact/catalog"
	"github.com/granular-dem/shcontact/pair"
	"github.com/granular-dem/shcontact/shape"
)

type placement struct {
	handle int
	x      mgl64.Vec3
	q      mgl64.Quat
}

func main() {
	var (
		plyPrefix string
		plotFile  string
	)
	flag.StringVar(
		&plyPrefix, "ply", "",
		"Prefix for per-particle PLY point cloud dumps.",
	)
	flag.StringVar(
		&plotFile, "plot", "",
		"File to save a radius diagnostic plot of every catalog shape to.",
	)
	flag.Parse()

	if flag.NArg() != 2 {
		log.Fatalf("Required file use: $ %s run.cfg placements.txt",
			os.Args[0])
	}
	cfgFile, tableFile := flag.Arg(0), flag.Arg(1)

	cfg, err := catalog.ReadConfig(cfgFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	logger := golog.NewDevelopmentLogger("shcontact")

	cat, err := catalog.NewBuilder(cfg, logger).Build()
	if err != nil {
		log.Fatal(err.Error())
	}

	ps, err := readPlacements(tableFile, cat)
	if err != nil {
		log.Fatal(err.Error())
	}

	if plotFile != "" {
		if err := plotRadii(cat, plotFile); err != nil {
			log.Fatal(err.Error())
		}
	}
	if plyPrefix != "" {
		if err := dumpPLY(cat, ps, plyPrefix); err != nil {
			log.Fatal(err.Error())
		}
	}

	params := pair.Params{
		Stiffness: cfg.Contact.Stiffness,
		Exponent:  cfg.Contact.Exponent,
		PoleQuad:  cfg.Catalog.PoleQuadrature,
		RadiusTol: cfg.Catalog.RadiusTol,
		Newton3:   cfg.Contact.Newton3,
		Workspace: shape.NewWorkspace(cfg.Catalog.MaxDegree),
	}

	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			a, b := &ps[i], &ps[j]
			res, err := pair.Overlap(
				cat.Shape(a.handle), cat.Shape(b.handle),
				a.x, b.x, a.q, b.q, params,
			)
			if err != nil {
				log.Fatalf("pair (%d, %d): %s", i, j, err.Error())
			}
			if !res.Touching {
				continue
			}
			fmt.Printf("%d %d  V %.8g  F %.8g %.8g %.8g  T %.8g %.8g %.8g\n",
				i, j, res.Volume,
				res.Force[0], res.Force[1], res.Force[2],
				res.Torque[0], res.Torque[1], res.Torque[2])
			if params.Newton3 {
				fmt.Printf("%d %d  Fb %.8g %.8g %.8g  Tb %.8g %.8g %.8g\n",
					j, i,
					res.BForce[0], res.BForce[1], res.BForce[2],
					res.BTorque[0], res.BTorque[1], res.BTorque[2])
			}
		}
	}
}

func readPlacements(file string, cat *catalog.Catalog) ([]placement, error) {
	colIdxs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	cols, err := table.ReadTable(file, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	hs := cols[0]
	ps := make([]placement, len(hs))
	for i := range ps {
		h := int(hs[i])
		if h < 0 || h >= cat.Len() {
			return nil, fmt.Errorf(
				"placement row %d: shape index %d outside catalog of %d",
				i, h, cat.Len(),
			)
		}
		ps[i].handle = h
		ps[i].x = mgl64.Vec3{cols[1][i], cols[2][i], cols[3][i]}
		ps[i].q = mgl64.Quat{
			W: cols[4][i],
			V: mgl64.Vec3{cols[5][i], cols[6][i], cols[7][i]},
		}.Normalize()
	}
	return ps, nil
}

func dumpPLY(cat *catalog.Catalog, ps []placement, prefix string) error {
	for i, p := range ps {
		fname := fmt.Sprintf("%s.%04d.ply", prefix, i)
		f, err := os.Create(fname)
		if err != nil {
			return err
		}
		rot := p.q.Mat4().Mat3()
		err = shape.WritePLY(f, cat.Shape(p.handle), rot, p.x)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}
