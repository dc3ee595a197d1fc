package attach

import (
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/surfattach/arclen"
	"github.com/npillmayer/surfattach/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func flatTable(t *testing.T, n int) *arclen.Table {
	t.Helper()
	tbl := arclen.NewTable()
	tbl.Rebuild(n)
	require.NoError(t, tbl.RefreshLengths(surface.Plane{U: r3.Vec{X: 10}, V: r3.Vec{Z: 10}}, CrossSectionV))
	return tbl
}

func TestWrapOffset(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.InDelta(t, 0.8, WrapOffset(0.3, -0.5), 1e-12)
	assert.InDelta(t, 0.2, WrapOffset(0.9, 0.3), 1e-12)
	assert.InDelta(t, 0.5, WrapOffset(0.5, 0), 1e-12)
	assert.InDelta(t, 0.75, WrapOffset(0.25, 2.5), 1e-12)
	assert.InDelta(t, 0.25, WrapOffset(0.75, -2.5), 1e-12)
	assert.Equal(t, 0.0, WrapOffset(0, 0))
}

func TestWrapOffsetRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		u := rnd.Float64()
		offset := (rnd.Float64() - 0.5) * 20
		w := WrapOffset(u, offset)
		assert.GreaterOrEqual(t, w, 0.0, "u=%g, offset=%g", u, offset)
		assert.Less(t, w, 1.0, "u=%g, offset=%g", u, offset)
	}
}

func TestSeamFlip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for offset := -3.0; offset <= 3.0; offset++ {
		assert.Equal(t, 1.0, WrapOffset(1.0, offset), "offset %g", offset)
	}
	// only a raw u of 1 is kept at the end of the domain
	assert.Equal(t, 0.0, WrapOffset(0.5, 0.5))
}

func TestReverseInvolution(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, u := range []float64{0, 0.1, 0.25, 0.5, 0.7, 0.999, 1} {
		assert.InDelta(t, u, Reverse(Reverse(u)), 1e-15)
	}
	assert.Equal(t, 1.0, Reverse(0))
}

func TestLengthRatio(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, 0.2, LengthRatio(FixedLength, 2, 10))
	assert.Equal(t, 1.0, LengthRatio(FixedLength, 12, 10))
	assert.Equal(t, 1.0, LengthRatio(FixedLength, 10, 10))
	assert.Equal(t, 1.0, LengthRatio(Percentage, 2, 10))
}

func TestRemapParametric(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig()
	cfg.Offset = 0.25
	cfg.Reverse = true
	u, err := Remap(0.5, cfg, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, u, 1e-12)
}

func TestRemapPercentage(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig()
	cfg.Genus = Percentage
	cfg.SampleCount = 10
	tbl := flatTable(t, 10)
	u, err := Remap(0.5, cfg, tbl)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, u, 1e-12)
	cfg.Reverse = true
	u, _ = Remap(0.3, cfg, tbl)
	assert.InDelta(t, 0.7, u, 1e-12)
}

func TestRemapFixedLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig()
	cfg.Genus = FixedLength
	cfg.SampleCount = 10
	cfg.StaticLength = 2.0
	tbl := flatTable(t, 10)
	u, err := Remap(1.0, cfg, tbl)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, u, 1e-12)
	u, _ = Remap(0.5, cfg, tbl)
	assert.InDelta(t, 0.1, u, 1e-12)
}

func TestRemapZeroLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg := DefaultConfig()
	cfg.Genus = Percentage
	tbl := arclen.NewTable()
	tbl.Rebuild(10)
	require.NoError(t, tbl.RefreshLengths(surface.Plane{V: r3.Vec{Z: 1}}, CrossSectionV))
	u, err := Remap(0.3, cfg, tbl)
	require.NoError(t, err)
	assert.Equal(t, 0.3, u)
	u, err = Remap(0.3, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.3, u)
}
