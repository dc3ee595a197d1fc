/*
Package node models the surface attachment engine as a node of a dependency
graph.

A Node holds named input attributes, a sparse array of (u,v) inputs and a
sparse array of outputs. Outputs are computed on demand by pulling one of
the output plugs; every change of an input marks all outputs dirty.

	n := node.New()
	n.SetSurface(s)
	n.SetUV(3, 0.25, 0.5)
	n.AddOutput(3)
	status, err := n.Compute(node.PlugTranslate)
	out, _ := n.Output(3)

The set of active attachments is the set of existing outputs. An output
without a matching (u,v) input is placed at (0.5, 0.5).

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package node

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/surfattach"
	"github.com/npillmayer/surfattach/attach"
	"github.com/npillmayer/surfattach/polygon"
	"github.com/npillmayer/surfattach/surface"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'surfattach.node'
func tracer() tracing.Trace {
	return tracing.Select("surfattach.node")
}

var (
	// ErrUnknownAttribute is returned for attributes a node does not have.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrAttributeType is returned for values of the wrong type.
	ErrAttributeType = errors.New("attribute value has wrong type")
	// ErrNoSurface is returned when computing without a surface connected.
	ErrNoSurface = errors.New("no surface connected")
)

// Names of input attributes.
const (
	AttrSurface       = "surface"
	AttrParentInverse = "parentInverse"
	AttrSamples       = "samples"
	AttrStaticLength  = "staticLength"
	AttrOffset        = "offset"
	AttrType          = "type"
	AttrReverse       = "reverse"
	AttrTrim          = "trim"
)

// Names of output plugs.
const (
	PlugOut       = "out"
	PlugTranslate = "translate"
	PlugRotate    = "rotate"
)

// DefaultUV is the (u,v) of outputs without an input.
const DefaultUV = 0.5

// Status is the outcome of Compute.
type Status int

const (
	// StatusHandled tells that the node computed the plug.
	StatusHandled Status = iota
	// StatusUnknownParameter tells that the node does not compute the plug.
	StatusUnknownParameter
)

func (st Status) String() string {
	switch st {
	case StatusHandled:
		return "handled"
	case StatusUnknownParameter:
		return "unknown parameter"
	}
	return fmt.Sprintf("Status(%d)", int(st))
}

// Output is one element of the output array.
type Output struct {
	Translate r3.Vec
	Rotate    surfattach.Euler // radians
	Err       error            // failure of the most recent computation, if any
	clean     bool
}

// Node is an attachment node. Create one with New.
type Node struct {
	surface surface.Evaluator
	cfg     attach.Config
	inUV    *treemap.Map // index -> attach.Request
	out     *treemap.Map // index -> *Output
	engine  *attach.Engine
}

// New creates a node with default attributes, no surface, and no inputs
// or outputs.
func New() *Node {
	return &Node{
		cfg:    attach.DefaultConfig(),
		inUV:   treemap.NewWithIntComparator(),
		out:    treemap.NewWithIntComparator(),
		engine: attach.NewEngine(),
	}
}

// Config returns the current attribute values as an engine configuration.
func (n *Node) Config() attach.Config {
	return n.cfg
}

// Engine exposes the node's engine.
func (n *Node) Engine() *attach.Engine {
	return n.engine
}

// === Attributes ============================================================

// SetSurface connects a surface.
func (n *Node) SetSurface(s surface.Evaluator) {
	n.surface = s
	n.dirty()
}

// SetParentInverse sets the inverse of the parent's world matrix.
func (n *Node) SetParentInverse(m surfattach.Matrix) {
	n.cfg.ParentInverse = m
	n.dirty()
}

// SetSamples sets the sample count of the arc length table, at least 1.
func (n *Node) SetSamples(count int) {
	n.cfg.SampleCount = max(count, 1)
	n.dirty()
}

// SetStaticLength sets the length for fixed length placement, at least
// attach.MinStaticLength.
func (n *Node) SetStaticLength(length float64) {
	n.cfg.StaticLength = max(length, attach.MinStaticLength)
	n.dirty()
}

// SetOffset sets the offset added to every u.
func (n *Node) SetOffset(offset float64) {
	n.cfg.Offset = offset
	n.dirty()
}

// SetGenus sets the interpretation of u.
func (n *Node) SetGenus(g attach.Genus) {
	n.cfg.Genus = g
	n.dirty()
}

// SetReverse sets if u is flipped.
func (n *Node) SetReverse(reverse bool) {
	n.cfg.Reverse = reverse
	n.dirty()
}

// SetTrim sets a trim region. nil removes it.
func (n *Node) SetTrim(trim attach.Region) {
	n.cfg.Trim = trim
	n.dirty()
}

// SetConfig sets all attributes from cfg, clamping them as the individual
// setters do.
func (n *Node) SetConfig(cfg attach.Config) {
	n.cfg = cfg
	n.cfg.SampleCount = max(cfg.SampleCount, 1)
	n.cfg.StaticLength = max(cfg.StaticLength, attach.MinStaticLength)
	n.dirty()
}

// Set sets an input attribute by name. Numeric attributes accept any of
// int or float64; type accepts an attach.Genus, its name or its ordinal.
func (n *Node) Set(name string, value any) error {
	switch name {
	case AttrSurface:
		s, ok := value.(surface.Evaluator)
		if !ok {
			return typeError(name, value)
		}
		n.SetSurface(s)
	case AttrParentInverse:
		m, ok := value.(surfattach.Matrix)
		if !ok {
			return typeError(name, value)
		}
		n.SetParentInverse(m)
	case AttrSamples:
		x, ok := number(value)
		if !ok {
			return typeError(name, value)
		}
		n.SetSamples(int(x))
	case AttrStaticLength:
		x, ok := number(value)
		if !ok {
			return typeError(name, value)
		}
		n.SetStaticLength(x)
	case AttrOffset:
		x, ok := number(value)
		if !ok {
			return typeError(name, value)
		}
		n.SetOffset(x)
	case AttrType:
		g, err := genus(value)
		if err != nil {
			return err
		}
		n.SetGenus(g)
	case AttrReverse:
		b, ok := value.(bool)
		if !ok {
			return typeError(name, value)
		}
		n.SetReverse(b)
	case AttrTrim:
		r, ok := value.(attach.Region)
		if pg, isPolygon := value.(*polygon.Polygon); (!ok && value != nil) || (isPolygon && pg == nil) {
			return typeError(name, value)
		}
		n.SetTrim(r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	tracer().Debugf("attribute %s set to %v", name, value)
	return nil
}

func typeError(name string, value any) error {
	return fmt.Errorf("%w: %s cannot be set to %T", ErrAttributeType, name, value)
}

func number(value any) (float64, bool) {
	switch x := value.(type) {
	case int:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func genus(value any) (attach.Genus, error) {
	switch x := value.(type) {
	case attach.Genus:
		return x, nil
	case int:
		return attach.ParseGenus(fmt.Sprint(x))
	case string:
		return attach.ParseGenus(x)
	}
	return attach.Parametric, typeError(AttrType, value)
}

// === Arrays ================================================================

// SetUV sets the (u,v) input at index.
func (n *Node) SetUV(index int, u, v float64) {
	n.inUV.Put(index, attach.Request{U: u, V: v})
	n.dirty()
}

// RemoveUV removes the (u,v) input at index. An output at index falls back
// to DefaultUV.
func (n *Node) RemoveUV(index int) {
	n.inUV.Remove(index)
	n.dirty()
}

// UV returns the (u,v) the output at index is placed at.
func (n *Node) UV(index int) attach.Request {
	if req, ok := n.inUV.Get(index); ok {
		return req.(attach.Request)
	}
	return attach.Request{U: DefaultUV, V: DefaultUV}
}

// AddOutput creates an output at index. Existing outputs are kept.
func (n *Node) AddOutput(index int) {
	if _, ok := n.out.Get(index); !ok {
		n.out.Put(index, &Output{})
	}
}

// RemoveOutput removes the output at index.
func (n *Node) RemoveOutput(index int) {
	n.out.Remove(index)
}

// Output returns the output at index.
func (n *Node) Output(index int) (Output, bool) {
	o := n.output(index)
	if o == nil {
		return Output{}, false
	}
	return *o, true
}

func (n *Node) output(index int) *Output {
	if o, ok := n.out.Get(index); ok {
		return o.(*Output)
	}
	return nil
}

// IsClean is a predicate: has the output at index been computed since the
// last change of an input?
func (n *Node) IsClean(index int) bool {
	o := n.output(index)
	return o != nil && o.clean
}

// Indices returns the indices of all existing outputs in ascending order.
func (n *Node) Indices() []int {
	indices := make([]int, 0, n.out.Size())
	it := n.out.Iterator()
	for it.Next() {
		indices = append(indices, it.Key().(int))
	}
	return indices
}

// Requests returns the requests of all existing outputs.
func (n *Node) Requests() attach.Requests {
	requests := make(attach.Requests, n.out.Size())
	for _, i := range n.Indices() {
		requests[i] = n.UV(i)
	}
	return requests
}

func (n *Node) dirty() {
	it := n.out.Iterator()
	for it.Next() {
		it.Value().(*Output).clean = false
	}
}

// === Compute ===============================================================

// Compute computes plug. The output plugs compute every existing output and
// mark it clean; for other plugs, StatusUnknownParameter is returned.
//
// Outputs of failed requests keep their previous placement, have Err set
// and stay dirty. The returned error joins the failures.
func (n *Node) Compute(plug string) (Status, error) {
	switch plug {
	case PlugOut, PlugTranslate, PlugRotate:
	default:
		tracer().Debugf("not computing plug %q", plug)
		return StatusUnknownParameter, nil
	}
	if n.surface == nil {
		return StatusHandled, ErrNoSurface
	}
	results, err := n.engine.Evaluate(n.Requests(), n.cfg, n.surface)
	if results == nil && err != nil {
		return StatusHandled, err
	}
	it := n.out.Iterator()
	for it.Next() {
		i, o := it.Key().(int), it.Value().(*Output)
		r, ok := results[i]
		if !ok {
			o.Err = requestErr(err, i)
			continue
		}
		o.Translate, o.Rotate = r.Translation, r.Rotation
		o.Err = nil
		o.clean = true
	}
	tracer().Infof("computed %s for %d outputs", plug, len(results))
	return StatusHandled, err
}

func requestErr(err error, index int) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err
	}
	for _, e := range joined.Unwrap() {
		var re *attach.RequestError
		if errors.As(e, &re) && re.Index == index {
			return re.Err
		}
	}
	return err
}
