package catalog

import (
	"sort"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/granular-dem/shcontact/shape"
)

// Builder turns a parsed Config into a Catalog of built shapes.
type Builder struct {
	cfg *Config
	log golog.Logger
}

// NewBuilder wraps cfg. log may be nil when the config is not verbose.
func NewBuilder(cfg *Config, log golog.Logger) *Builder {
	return &Builder{cfg: cfg, log: log}
}

// Build reads every configured coefficient file and builds its shape,
// in name order so that handles are stable across runs.
func (b *Builder) Build() (*Catalog, error) {
	names := make([]string, 0, len(b.cfg.Shape))
	for name := range b.cfg.Shape {
		names = append(names, name)
	}
	sort.Strings(names)

	cc := b.cfg.Catalog
	cat := New()
	for _, name := range names {
		sc := b.cfg.Shape[name]
		coeffs, err := ReadCoeffFile(sc.CoeffFile, cc.MaxDegree)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %q", name)
		}
		s, err := shape.Build(coeffs, shape.Options{
			NMax:    cc.MaxDegree,
			NQuad:   cc.Quadrature,
			Safety:  cc.Safety,
			Verbose: cc.Verbose,
			Logger:  b.log,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "shape %q", name)
		}
		h := cat.Add(name, s)
		if cc.Verbose && b.log != nil {
			b.log.Debugf("shape %q -> handle %d, volume %g, bound %g",
				name, h, s.Volume, s.MaxRad)
		}
	}
	return cat, nil
}
