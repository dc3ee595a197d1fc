/*
Package attach places attachments on surfaces.

An Engine evaluates a set of requests, each a raw (u,v) coordinate, against
a surface and a shared configuration. Depending on the configured Genus, the
u-coordinate is used verbatim (Parametric), as a fraction of the arc length
measured along the iso-curve v = CrossSectionV (Percentage), or as a fraction
of a fixed absolute length (FixedLength). For every request the engine builds
a frame from the surface's tangents and normal and decomposes it into
translation and rotation.

	eng := attach.NewEngine()
	cfg := attach.DefaultConfig()
	cfg.Genus = attach.Percentage
	results, err := eng.Evaluate(attach.Requests{0: {U: 0.5, V: 0.5}}, cfg, s)

The engine keeps its arc length table across evaluations. The table is
reallocated only if the sample count changes, and re-measured on every
evaluation in a length mode. An Engine is not safe for concurrent use;
distinct engines are independent of each other.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package attach

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/surfattach/arclen"
	"github.com/npillmayer/surfattach/surface"
)

// tracer writes to trace with key 'surfattach.attach'
func tracer() tracing.Trace {
	return tracing.Select("surfattach.attach")
}

// Request is a raw placement coordinate, nominally in [0,1]×[0,1].
type Request struct {
	U, V float64
}

// Requests maps logical indices to requests. Indices need not be contiguous.
type Requests map[int]Request

// Indices returns the indices of rs in ascending order.
func (rs Requests) Indices() []int {
	indices := make([]int, 0, len(rs))
	for i := range rs {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// Results maps logical indices to placements.
type Results map[int]Result

// Engine evaluates attachment requests. Create one with NewEngine.
type Engine struct {
	table       *arclen.Table
	sampleCount int // sample count the table is allocated for
}

// NewEngine creates an engine with an empty arc length table.
func NewEngine() *Engine {
	return &Engine{table: arclen.NewTable()}
}

// Table exposes the engine's arc length table, e.g. for inspecting the
// measured lengths. Clients must not modify it.
func (eng *Engine) Table() *arclen.Table {
	return eng.table
}

// Evaluate places every request on s.
//
// An invalid configuration or a failure while measuring arc length fails the
// whole evaluation and returns no results. A failure of a single request is
// reported as a *RequestError, joined with the errors of other failed
// requests; results of all successful requests are returned nevertheless.
func (eng *Engine) Evaluate(requests Requests, cfg Config, s surface.Evaluator) (Results, error) {
	if err := cfg.Validate(); err != nil {
		tracer().Errorf("rejecting configuration: %v", err)
		return nil, err
	}
	if err := eng.prepare(cfg, s); err != nil {
		tracer().Errorf("cannot measure surface: %v", err)
		return nil, err
	}
	results := make(Results, len(requests))
	var errs []error
	for _, i := range requests.Indices() {
		r, err := eng.place(requests[i], cfg, s)
		if err != nil {
			tracer().Errorf("attachment %d at (%g,%g) failed: %v", i, requests[i].U, requests[i].V, err)
			errs = append(errs, &RequestError{Index: i, Err: err})
			continue
		}
		results[i] = r
	}
	tracer().P("genus", cfg.Genus).Infof("placed %d of %d attachments", len(results), len(requests))
	return results, errors.Join(errs...)
}

// prepare brings the arc length table up to date for length modes.
func (eng *Engine) prepare(cfg Config, s surface.Evaluator) error {
	if !cfg.Genus.IsLengthMode() {
		return nil
	}
	if cfg.SampleCount != eng.sampleCount {
		eng.table.Rebuild(cfg.SampleCount)
		eng.sampleCount = cfg.SampleCount
	}
	return eng.table.RefreshLengths(s, CrossSectionV)
}

func (eng *Engine) place(req Request, cfg Config, s surface.Evaluator) (Result, error) {
	u, err := Remap(req.U, cfg, eng.table)
	if err != nil {
		return Result{}, err
	}
	if cfg.Trim != nil && !cfg.Trim.Contains(u, req.V) {
		return Result{}, fmt.Errorf("%w: (%g,%g)", ErrOutsideTrim, u, req.V)
	}
	return BuildFrame(s, u, req.V, cfg.ParentInverse)
}
