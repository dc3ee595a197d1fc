package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/surfattach"
	"github.com/npillmayer/surfattach/attach"
	"github.com/npillmayer/surfattach/node"
	"github.com/npillmayer/surfattach/surface"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// errScene indicates a scene file that cannot be evaluated.
var errScene = errors.New("invalid scene")

// scene is the contents of a scene file:
//
//	surface:
//	  kind: cylinder
//	  a: [3, 0, 0]
//	  b: [0, 1, 0]
//	  axis: [0, 0, 2]
//	  sweep: 270          # degrees
//	config:
//	  genus: Percentage
//	requests:
//	  0: [0.5, 0.5]
//	  4: [0.1, 0.9]
type scene struct {
	Surface  surfaceSpec       `yaml:"surface"`
	Config   yaml.Node         `yaml:"config"`
	Requests map[int][]float64 `yaml:"requests"`
}

// surfaceSpec selects one of the reference surfaces. Which of the fields
// are used depends on Kind.
type surfaceSpec struct {
	Kind      string      `yaml:"kind"` // plane, cylinder or extrusion
	Origin    []float64   `yaml:"origin"`
	U         []float64   `yaml:"u"`
	V         []float64   `yaml:"v"`
	Center    []float64   `yaml:"center"`
	A         []float64   `yaml:"a"`
	B         []float64   `yaml:"b"`
	Axis      []float64   `yaml:"axis"`
	Sweep     float64     `yaml:"sweep"`
	Profile   [][]float64 `yaml:"profile"`
	Direction []float64   `yaml:"direction"`
}

func loadScene(r io.Reader) (*scene, error) {
	sc := &scene{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil {
		return nil, fmt.Errorf("%w: %w", errScene, err)
	}
	return sc, nil
}

// config decodes the config section of the scene.
func (sc *scene) config() (attach.Config, error) {
	if sc.Config.Kind == 0 {
		return attach.DefaultConfig(), nil
	}
	raw, err := yaml.Marshal(&sc.Config)
	if err != nil {
		return attach.DefaultConfig(), fmt.Errorf("%w: %w", errScene, err)
	}
	return attach.LoadConfig(bytes.NewReader(raw))
}

func (spec surfaceSpec) build() (surface.Evaluator, error) {
	var errs []error
	switch spec.Kind {
	case "plane":
		pl := surface.Plane{
			Origin: vec("origin", spec.Origin, false, &errs),
			U:      vec("u", spec.U, true, &errs),
			V:      vec("v", spec.V, true, &errs),
		}
		return pl, errors.Join(errs...)
	case "cylinder":
		cy := surface.EllipticCylinder{
			Center: vec("center", spec.Center, false, &errs),
			A:      vec("a", spec.A, true, &errs),
			B:      vec("b", spec.B, true, &errs),
			Axis:   vec("axis", spec.Axis, true, &errs),
			Sweep:  spec.Sweep * surfattach.Deg2Rad,
		}
		return cy, errors.Join(errs...)
	case "extrusion":
		if len(spec.Profile) != 4 {
			return nil, fmt.Errorf("%w: profile needs 4 control points, has %d", errScene, len(spec.Profile))
		}
		ex := surface.Extrusion{
			Profile: surface.CubicBez{
				P0: vec("profile[0]", spec.Profile[0], true, &errs),
				P1: vec("profile[1]", spec.Profile[1], true, &errs),
				P2: vec("profile[2]", spec.Profile[2], true, &errs),
				P3: vec("profile[3]", spec.Profile[3], true, &errs),
			},
			Direction: vec("direction", spec.Direction, true, &errs),
		}
		return ex, errors.Join(errs...)
	}
	return nil, fmt.Errorf("%w: unknown surface kind %q", errScene, spec.Kind)
}

// vec converts xyz to a vector. Missing optional vectors are zero.
func vec(name string, xyz []float64, required bool, errs *[]error) r3.Vec {
	switch {
	case xyz == nil && !required:
		return r3.Vec{}
	case xyz == nil:
		*errs = append(*errs, fmt.Errorf("%w: surface needs %s", errScene, name))
	case len(xyz) != 3:
		*errs = append(*errs, fmt.Errorf("%w: %s needs 3 coordinates, has %d", errScene, name, len(xyz)))
	default:
		return r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	return r3.Vec{}
}

// setup creates a node for the scene, with one output per request.
func (sc *scene) setup() (*node.Node, error) {
	s, err := sc.Surface.build()
	if err != nil {
		return nil, err
	}
	cfg, err := sc.config()
	if err != nil {
		return nil, err
	}
	n := node.New()
	n.SetSurface(s)
	n.SetConfig(cfg)
	for index, uv := range sc.Requests {
		if len(uv) != 2 {
			return nil, fmt.Errorf("%w: request %d is not a (u,v) pair", errScene, index)
		}
		n.SetUV(index, uv[0], uv[1])
		n.AddOutput(index)
	}
	return n, nil
}

// evaluate computes all outputs of the scene and writes one line per
// request, sorted by index:
//
//	index tx ty tz rx ry rz
//
// with rotations in degrees. Failed requests are reported in place.
func evaluate(sc *scene, w io.Writer) error {
	n, err := sc.setup()
	if err != nil {
		return err
	}
	_, cerr := n.Compute(node.PlugOut)
	if cerr != nil && len(attach.FailedIndices(cerr)) == 0 {
		return cerr
	}
	for _, index := range n.Indices() {
		o, _ := n.Output(index)
		if o.Err != nil {
			fmt.Fprintf(w, "%d error: %v\n", index, o.Err)
			continue
		}
		rx, ry, rz := o.Rotate.Degrees()
		fmt.Fprintf(w, "%d %s %s %s %s %s %s\n", index,
			num(o.Translate.X), num(o.Translate.Y), num(o.Translate.Z),
			num(rx), num(ry), num(rz))
	}
	return cerr
}

func num(x float64) string {
	return fmt.Sprintf("%.6g", surfattach.Zap(x))
}
