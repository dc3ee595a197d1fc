package attach

import (
	"fmt"
	"io"

	"github.com/npillmayer/surfattach"
	"github.com/npillmayer/surfattach/polygon"
	"gopkg.in/yaml.v3"
)

// Defaults of a configuration.
const (
	DefaultSampleCount  = 2000
	MinStaticLength     = 0.0001
	DefaultStaticLength = MinStaticLength
)

// CrossSectionV is the v-parameter of the iso-curve along which arc length
// is measured. It is the same for all requests.
const CrossSectionV = 0.5

// Region restricts attachments to part of the (u,v) domain.
// *polygon.Polygon implements it.
type Region interface {
	Contains(u, v float64) bool
}

// Config holds the parameters of an evaluation which are shared by all
// requests.
type Config struct {
	SampleCount   int               // number of arc length samples
	StaticLength  float64           // absolute length for FixedLength
	Offset        float64           // added to every u, wrapping at the seam
	Reverse       bool              // flip u to 1-u
	Genus         Genus             // interpretation of u
	ParentInverse surfattach.Matrix // brings frames into the parent's space
	Trim          Region            // optional, nil accepts every (u,v)
}

// DefaultConfig returns a configuration with parametric placement and an
// identity parent transform.
func DefaultConfig() Config {
	return Config{
		SampleCount:   DefaultSampleCount,
		StaticLength:  DefaultStaticLength,
		Genus:         Parametric,
		ParentInverse: surfattach.Identity(),
	}
}

// Validate checks if the engine can evaluate with cfg.
// Length modes need at least 2 samples for inverting lengths.
func (cfg Config) Validate() error {
	if !cfg.Genus.IsValid() {
		return fmt.Errorf("%w: unknown genus %d", ErrInvalidConfig, int(cfg.Genus))
	}
	if cfg.SampleCount < 1 {
		return fmt.Errorf("%w: sample count must be at least 1, is %d", ErrInvalidConfig, cfg.SampleCount)
	}
	if cfg.Genus.IsLengthMode() && cfg.SampleCount < 2 {
		return fmt.Errorf("%w: %s needs at least 2 samples, have %d", ErrInvalidConfig,
			cfg.Genus, cfg.SampleCount)
	}
	if cfg.StaticLength <= 0 {
		return fmt.Errorf("%w: static length must be positive, is %g", ErrInvalidConfig, cfg.StaticLength)
	}
	return nil
}

// configFile is the YAML representation of a Config.
type configFile struct {
	Samples       *int          `yaml:"samples"`
	StaticLength  *float64      `yaml:"static_length"`
	Offset        *float64      `yaml:"offset"`
	Reverse       *bool         `yaml:"reverse"`
	Genus         *Genus        `yaml:"genus"`
	ParentInverse []float64     `yaml:"parent_inverse"`
	Parent        []float64     `yaml:"parent"`
	Trim          [][][]float64 `yaml:"trim"`
	Exclude       [][][]float64 `yaml:"exclude"`
}

// LoadConfig reads a configuration from YAML, for example
//
//	samples: 500
//	genus: Percentage     # or 0, 1, 2
//	offset: 0.25
//	reverse: true
//	static_length: 2.5
//	parent_inverse: [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]
//	parent: [...]         # alternatively, the parent's world matrix
//	trim:                 # contours of (u,v) pairs
//	  - [[0,0], [1,0], [1,1], [0,1]]
//	exclude:              # cut out of trim, or of the unit square
//	  - [[0.2,0.2], [0.4,0.2], [0.4,0.4]]
//
// Keys not present take the values of DefaultConfig. The result is
// validated.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	var file configFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := file.apply(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (file configFile) apply(cfg *Config) error {
	if file.Samples != nil {
		cfg.SampleCount = *file.Samples
	}
	if file.StaticLength != nil {
		cfg.StaticLength = *file.StaticLength
	}
	if file.Offset != nil {
		cfg.Offset = *file.Offset
	}
	if file.Reverse != nil {
		cfg.Reverse = *file.Reverse
	}
	if file.Genus != nil {
		cfg.Genus = *file.Genus
	}
	if file.ParentInverse != nil {
		m, err := surfattach.NewMatrix(file.ParentInverse)
		if err != nil {
			return fmt.Errorf("%w: parent_inverse: %w", ErrInvalidConfig, err)
		}
		cfg.ParentInverse = m
	}
	if file.Parent != nil {
		if file.ParentInverse != nil {
			return fmt.Errorf("%w: parent and parent_inverse are exclusive", ErrInvalidConfig)
		}
		m, err := surfattach.NewMatrix(file.Parent)
		if err != nil {
			return fmt.Errorf("%w: parent: %w", ErrInvalidConfig, err)
		}
		if cfg.ParentInverse, err = m.Inverse(); err != nil {
			return fmt.Errorf("%w: parent: %w", ErrInvalidConfig, err)
		}
	}
	if file.Trim != nil || file.Exclude != nil {
		trim, err := trimRegion(file.Trim, file.Exclude)
		if err != nil {
			return err
		}
		cfg.Trim = trim
	}
	return nil
}

// TrimFromPairs builds a trim polygon from contours of (u,v) pairs.
func TrimFromPairs(contours [][][]float64) (*polygon.Polygon, error) {
	pg := polygon.NullPolygon()
	for i, contour := range contours {
		if len(contour) < 3 {
			return nil, fmt.Errorf("%w: trim contour %d has %d vertices", ErrInvalidConfig, i, len(contour))
		}
		for j, uv := range contour {
			if len(uv) != 2 {
				return nil, fmt.Errorf("%w: trim contour %d, vertex %d is not a (u,v) pair", ErrInvalidConfig, i, j)
			}
			pg.Knot(surfattach.P(uv[0], uv[1]))
		}
		pg.Cycle()
	}
	return pg, nil
}

// trimRegion builds the region trim ∖ (exclude₁ ∪ exclude₂ ∪ …). Without trim
// contours, exclusions are cut out of the unit square.
func trimRegion(trim, exclude [][][]float64) (*polygon.Polygon, error) {
	region := polygon.Box(surfattach.P(0, 0), surfattach.P(1, 1))
	if trim != nil {
		var err error
		if region, err = TrimFromPairs(trim); err != nil {
			return nil, err
		}
	}
	if exclude != nil {
		holes := polygon.NullPolygon()
		for i := range exclude {
			hole, err := TrimFromPairs(exclude[i : i+1])
			if err != nil {
				return nil, err
			}
			if holes.IsEmpty() {
				holes = hole
			} else {
				holes = holes.Union(hole)
			}
		}
		region = region.Subtract(holes)
	}
	ll, ur := region.BoundingBox()
	tracer().Debugf("trim region with %d contours inside %s..%s", region.Contours(), ll, ur)
	tracer().Debugf("trim region =\n%s", polygon.AsString(region))
	return region, nil
}
