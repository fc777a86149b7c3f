package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	fname := filepath.Join(t.TempDir(), "run.cfg")
	require.NoError(t, os.WriteFile(fname, []byte(body), 0644))
	return fname
}

func TestReadConfig(t *testing.T) {
	fname := writeConfig(t, `
[catalog]
max-degree = 6
quadrature = 20
safety = 1.05
verbose = true

[contact]
stiffness = 1e5
exponent = 2
newton3 = true

[shape "ball"]
coeff-file = ball.txt

[shape "grain"]
coeff-file = grain.txt
`)
	cfg, err := ReadConfig(fname)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Catalog.MaxDegree, "max degree")
	assert.Equal(t, 20, cfg.Catalog.Quadrature, "quadrature")
	assert.Equal(t, 30, cfg.Catalog.PoleQuadrature, "default pole order")
	assert.Equal(t, 1.05, cfg.Catalog.Safety, "safety")
	assert.Equal(t, 1e-3, cfg.Catalog.RadiusTol, "default tolerance")
	assert.True(t, cfg.Catalog.Verbose, "verbose")

	assert.Equal(t, 1e5, cfg.Contact.Stiffness, "stiffness")
	assert.Equal(t, 2.0, cfg.Contact.Exponent, "exponent")
	assert.True(t, cfg.Contact.Newton3, "newton3")

	require.Len(t, cfg.Shape, 2, "shape sections")
	assert.Equal(t, "ball.txt", cfg.Shape["ball"].CoeffFile, "ball file")
	assert.Equal(t, "grain.txt", cfg.Shape["grain"].CoeffFile, "grain file")
}

func TestReadConfigDefaults(t *testing.T) {
	fname := writeConfig(t, `
[catalog]
max-degree = 4

[contact]
stiffness = 1.0

[shape "ball"]
coeff-file = ball.txt
`)
	cfg, err := ReadConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Catalog.Quadrature, "quadrature default")
	assert.Equal(t, 30, cfg.Catalog.PoleQuadrature, "pole default")
	assert.Equal(t, 1.0, cfg.Catalog.Safety, "safety default")
	assert.Equal(t, 1e-3, cfg.Catalog.RadiusTol, "tolerance default")
	assert.Equal(t, 1.0, cfg.Contact.Exponent, "exponent default")
}

func TestReadConfigRejects(t *testing.T) {
	cases := []struct{ name, body string }{
		{"no max degree", `
[contact]
stiffness = 1.0
[shape "ball"]
coeff-file = ball.txt
`},
		{"no stiffness", `
[catalog]
max-degree = 4
[shape "ball"]
coeff-file = ball.txt
`},
		{"no shapes", `
[catalog]
max-degree = 4
[contact]
stiffness = 1.0
`},
		{"missing coeff file", `
[catalog]
max-degree = 4
[contact]
stiffness = 1.0
[shape "ball"]
`},
		{"bad safety", `
[catalog]
max-degree = 4
safety = 0.5
[contact]
stiffness = 1.0
[shape "ball"]
coeff-file = ball.txt
`},
	}
	for _, c := range cases {
		_, err := ReadConfig(writeConfig(t, c.body))
		assert.Error(t, err, c.name)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "absent.cfg"))
	assert.Error(t, err, "missing run file")
}
