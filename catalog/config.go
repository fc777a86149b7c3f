package catalog

import (
	"github.com/pkg/errors"
	"gopkg.in/gcfg.v1"
)

// CatalogConfig is the [catalog] section of a run file. It sets the
// expansion and quadrature parameters shared by every shape.
type CatalogConfig struct {
	// MaxDegree is the expansion degree shapes are built at.
	MaxDegree int `gcfg:"max-degree"`
	// Quadrature is the per-axis surface quadrature order. Defaults
	// to 30.
	Quadrature int
	// PoleQuadrature is the Gaussian order of the overlap cap sweep.
	// Defaults to 30.
	PoleQuadrature int `gcfg:"pole-quadrature"`
	// Safety inflates the per-degree bounding factors. Defaults to 1.
	Safety float64
	// RadiusTol terminates the radial bisection of the overlap
	// integration. Defaults to 1e-3.
	RadiusTol float64 `gcfg:"radius-tol"`
	// Verbose enables build diagnostics.
	Verbose bool
}

// CheckInit fills in defaults and validates the section.
func (c *CatalogConfig) CheckInit() error {
	if c.MaxDegree <= 0 {
		return errors.Errorf(
			"catalog: [catalog] needs max-degree > 0, got %d", c.MaxDegree,
		)
	}
	if c.Quadrature == 0 {
		c.Quadrature = 30
	}
	if c.Quadrature < 2 {
		return errors.Errorf(
			"catalog: [catalog] needs quadrature >= 2, got %d", c.Quadrature,
		)
	}
	if c.PoleQuadrature == 0 {
		c.PoleQuadrature = 30
	}
	if c.PoleQuadrature < 2 {
		return errors.Errorf(
			"catalog: [catalog] needs pole-quadrature >= 2, got %d",
			c.PoleQuadrature,
		)
	}
	if c.Safety == 0 {
		c.Safety = 1
	}
	if c.Safety < 1 {
		return errors.Errorf(
			"catalog: [catalog] needs safety >= 1, got %g", c.Safety,
		)
	}
	if c.RadiusTol == 0 {
		c.RadiusTol = 1e-3
	}
	if c.RadiusTol <= 0 || c.RadiusTol >= 1 {
		return errors.Errorf(
			"catalog: [catalog] needs radius-tol in (0, 1), got %g",
			c.RadiusTol,
		)
	}
	return nil
}

// ContactConfig is the [contact] section of a run file. It sets the
// volume penalty of the pairwise force law.
type ContactConfig struct {
	// Stiffness scales the volume penalty.
	Stiffness float64
	// Exponent is the power of the overlap volume in the penalty.
	// Defaults to 1.
	Exponent float64
	// Newton3 also reports the reaction on the second particle of each
	// pair.
	Newton3 bool
}

// CheckInit fills in defaults and validates the section.
func (c *ContactConfig) CheckInit() error {
	if c.Stiffness <= 0 {
		return errors.Errorf(
			"catalog: [contact] needs stiffness > 0, got %g", c.Stiffness,
		)
	}
	if c.Exponent == 0 {
		c.Exponent = 1
	}
	if c.Exponent < 1 {
		return errors.Errorf(
			"catalog: [contact] needs exponent >= 1, got %g", c.Exponent,
		)
	}
	return nil
}

// ShapeConfig is one [shape "name"] section of a run file.
type ShapeConfig struct {
	// CoeffFile names the expansion coefficient file of this shape.
	CoeffFile string `gcfg:"coeff-file"`
}

// CheckInit validates the section named name.
func (c *ShapeConfig) CheckInit(name string) error {
	if c.CoeffFile == "" {
		return errors.Errorf(
			"catalog: [shape %q] needs a coeff-file", name,
		)
	}
	return nil
}

// Config is a full parsed run file.
type Config struct {
	Catalog CatalogConfig
	Contact ContactConfig
	Shape   map[string]*ShapeConfig
}

// ReadConfig parses and validates the run file at fname.
func ReadConfig(fname string) (*Config, error) {
	cfg := &Config{}
	if err := gcfg.ReadFileInto(cfg, fname); err != nil {
		return nil, errors.Wrapf(err, "catalog: reading config %q", fname)
	}
	if err := cfg.Catalog.CheckInit(); err != nil {
		return nil, err
	}
	if err := cfg.Contact.CheckInit(); err != nil {
		return nil, err
	}
	if len(cfg.Shape) == 0 {
		return nil, errors.Errorf(
			"catalog: config %q declares no [shape] sections", fname,
		)
	}
	for name, sc := range cfg.Shape {
		if err := sc.CheckInit(name); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
