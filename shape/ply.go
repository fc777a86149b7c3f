package shape

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/granular-dem/shcontact/geom"
)

// WritePLY writes the surface quadrature grid of s as an ASCII PLY
// point cloud, with each body-frame vertex rotated by rot and shifted
// by off into the space frame.
func WritePLY(w io.Writer, s *Shape, rot mgl64.Mat3, off mgl64.Vec3) error {
	nq2 := s.NQuad * s.NQuad
	_, err := fmt.Fprintf(w, "ply\nformat ascii 1.0\n"+
		"element vertex %d\n"+
		"property double x\nproperty double y\nproperty double z\n"+
		"end_header\n", nq2)
	if err != nil {
		return err
	}
	for k := 0; k < nq2; k++ {
		v := geom.SphereToCart(s.QuadRads[k], s.Thetas[k], s.Phis[k])
		v = rot.Mul3x1(v).Add(off)
		_, err := fmt.Fprintf(w, "%.16g %.16g %.16g\n", v[0], v[1], v[2])
		if err != nil {
			return err
		}
	}
	return nil
}
