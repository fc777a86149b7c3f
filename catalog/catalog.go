/*package catalog builds and holds the set of particle shapes a
simulation draws from. Shapes are registered once, by name, during
setup, and are addressed afterwards through small integer handles so
that per-particle records stay compact.*/
package catalog

import (
	"github.com/granular-dem/shcontact/shape"
)

// Catalog is an append-only collection of built shapes. It is not safe
// for concurrent registration, but reads may proceed concurrently once
// setup is finished.
type Catalog struct {
	shapes []*shape.Shape
	names  []string
	byName map[string]int
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{byName: map[string]int{}}
}

// Add registers s under name and returns its handle. Registering the
// same name twice panics, since handles handed out for the first entry
// would silently dangle.
func (c *Catalog) Add(name string, s *shape.Shape) int {
	if _, dup := c.byName[name]; dup {
		panic("catalog: duplicate shape name " + name)
	}
	h := len(c.shapes)
	c.shapes = append(c.shapes, s)
	c.names = append(c.names, name)
	c.byName[name] = h
	return h
}

// Shape returns the shape behind handle h.
func (c *Catalog) Shape(h int) *shape.Shape {
	return c.shapes[h]
}

// Lookup returns the handle registered under name.
func (c *Catalog) Lookup(name string) (int, bool) {
	h, ok := c.byName[name]
	return h, ok
}

// Name returns the name the shape behind handle h was registered as.
func (c *Catalog) Name(h int) string {
	return c.names[h]
}

// Len returns the number of registered shapes.
func (c *Catalog) Len() int {
	return len(c.shapes)
}
