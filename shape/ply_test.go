package shape

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePLY(t *testing.T) {
	r := 1.4
	s, err := Build(sphereCoeffs(2, r), Options{NMax: 2, NQuad: 6})
	require.NoError(t, err)

	var buf bytes.Buffer
	off := mgl64.Vec3{1, 2, 3}
	err = WritePLY(&buf, s, mgl64.Ident3(), off)
	require.NoError(t, err)

	sc := bufio.NewScanner(&buf)
	header := []string{
		"ply",
		"format ascii 1.0",
		fmt.Sprintf("element vertex %d", 36),
		"property double x",
		"property double y",
		"property double z",
		"end_header",
	}
	for _, want := range header {
		require.True(t, sc.Scan(), "header line %q", want)
		assert.Equal(t, want, sc.Text(), "header line")
	}

	count := 0
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		require.Len(t, fields, 3, "vertex row")
		var v mgl64.Vec3
		_, err := fmt.Sscan(sc.Text(), &v[0], &v[1], &v[2])
		require.NoError(t, err)
		assert.InDelta(t, r, v.Sub(off).Len(), 1e-9,
			"vertex on the sphere surface")
		count++
	}
	assert.Equal(t, 36, count, "one vertex per grid node")
}
