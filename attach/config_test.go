package attach

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/surfattach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestParseGenus(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for input, expected := range map[string]Genus{
		"Parametric":  Parametric,
		"percentage":  Percentage,
		"FIXEDLENGTH": FixedLength,
		"0":           Parametric,
		"1":           Percentage,
		"2":           FixedLength,
	} {
		g, err := ParseGenus(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, g, input)
	}
	for _, input := range []string{"3", "-1", "arc", ""} {
		_, err := ParseGenus(input)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "input %q", input)
	}
	assert.Equal(t, "FixedLength", FixedLength.String())
	assert.Equal(t, "Genus(5)", Genus(5).String())
	assert.False(t, Genus(5).IsValid())
	assert.False(t, Parametric.IsLengthMode())
	assert.True(t, Percentage.IsLengthMode())
}

func TestLoadConfigDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultSampleCount, cfg.SampleCount)
	assert.Equal(t, DefaultStaticLength, cfg.StaticLength)
	assert.Equal(t, Parametric, cfg.Genus)
	assert.Equal(t, surfattach.Identity(), cfg.ParentInverse)
	assert.Nil(t, cfg.Trim)
}

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	input := `
samples: 500
genus: FixedLength
offset: -0.25
reverse: true
static_length: 2.5
parent_inverse: [1,0,0,0, 0,1,0,0, 0,0,1,0, -1,-2,-3,1]
trim:
  - [[0,0], [0.5,0], [0.5,1], [0,1]]
`
	cfg, err := LoadConfig(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.SampleCount)
	assert.Equal(t, FixedLength, cfg.Genus)
	assert.Equal(t, -0.25, cfg.Offset)
	assert.True(t, cfg.Reverse)
	assert.Equal(t, 2.5, cfg.StaticLength)
	assert.Equal(t, r3.Vec{X: -1, Y: -2, Z: -3}, cfg.ParentInverse.Translation())
	require.NotNil(t, cfg.Trim)
	assert.True(t, cfg.Trim.Contains(0.25, 0.5))
	assert.False(t, cfg.Trim.Contains(0.75, 0.5))
}

func TestLoadConfigGenusOrdinal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg, err := LoadConfig(strings.NewReader("genus: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, Percentage, cfg.Genus)
}

func TestLoadConfigErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, input := range []string{
		"sample: 10\n",                     // unknown key
		"genus: Circular\n",                // unknown genus
		"parent_inverse: [1,0,0,1]\n",      // not 4x4
		"trim:\n  - [[0,0], [1,0]]\n",      // degenerate contour
		"trim:\n  - [[0,0], [1], [1,1]]\n", // not a pair
		"genus: Percentage\nsamples: 1\n",  // too few samples
		"static_length: 0\n",
	} {
		_, err := LoadConfig(strings.NewReader(input))
		assert.True(t, errors.Is(err, ErrInvalidConfig), "input %q: %v", input, err)
	}
}

func TestLoadConfigParentErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const identity = "[1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]"
	for _, input := range []string{
		"parent: [1,0,0,0, 0,1,0,0, 0,0,0,0, 0,0,0,1]\n", // singular
		"parent: [1,0,0,0]\n",
		"parent: " + identity + "\nparent_inverse: " + identity + "\n",
		"exclude:\n  - [[0,0], [1,1]]\n",
	} {
		_, err := LoadConfig(strings.NewReader(input))
		assert.True(t, errors.Is(err, ErrInvalidConfig), "input %q: %v", input, err)
	}
	_, err := LoadConfig(strings.NewReader("parent: [1,0,0,0, 0,1,0,0, 0,0,0,0, 0,0,0,1]\n"))
	assert.True(t, errors.Is(err, surfattach.ErrSingular), "expected ErrSingular, got %v", err)
}

func TestLoadConfigParent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cfg, err := LoadConfig(strings.NewReader("parent: [2,0,0,0, 0,2,0,0, 0,0,2,0, 1,2,3,1]\n"))
	require.NoError(t, err)
	assert.True(t, cfg.ParentInverse.Equal(surfattach.FrameMatrix(
		r3.Vec{X: 0.5}, r3.Vec{Y: 0.5}, r3.Vec{Z: 0.5}, r3.Vec{X: -0.5, Y: -1, Z: -1.5})),
		"parent inverse is %s", cfg.ParentInverse)
}

func TestLoadConfigExclude(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	input := `
trim:
  - [[-0.1,-0.1], [0.9,-0.1], [0.9,1.1], [-0.1,1.1]]
exclude:
  - [[0.1,0.1], [0.3,0.1], [0.3,0.3], [0.1,0.3]]
  - [[0.6,0.6], [0.8,0.6], [0.8,0.8], [0.6,0.8]]
`
	cfg, err := LoadConfig(strings.NewReader(input))
	require.NoError(t, err)
	require.NotNil(t, cfg.Trim)
	assert.True(t, cfg.Trim.Contains(0.5, 0.5))
	assert.False(t, cfg.Trim.Contains(0.2, 0.2))
	assert.False(t, cfg.Trim.Contains(0.7, 0.7))
	assert.False(t, cfg.Trim.Contains(0.95, 0.5))
	// without trim contours, holes are cut out of the unit square
	cfg, err = LoadConfig(strings.NewReader("exclude:\n  - [[0.4,0.4], [0.6,0.4], [0.6,0.6], [0.4,0.6]]\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Trim.Contains(0.2, 0.8))
	assert.False(t, cfg.Trim.Contains(0.5, 0.5))
}

func TestFailedIndices(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Nil(t, FailedIndices(nil))
	assert.Nil(t, FailedIndices(ErrOutsideTrim))
	err := errors.Join(&RequestError{Index: 4, Err: ErrOutsideTrim}, &RequestError{Index: 9, Err: ErrOutsideTrim})
	assert.Equal(t, []int{4, 9}, FailedIndices(err))
	assert.True(t, errors.Is(err, ErrOutsideTrim))
	assert.Contains(t, err.Error(), "attachment 9")
}
