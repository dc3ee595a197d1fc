// Package polygon implements trim regions in the parametric (u,v) domain of
// a surface.
//
// A Polygon is a set of closed contours. A point is inside the polygon if it
// is enclosed by an odd number of contours, so holes are simply contours
// nested within others. Boolean operations are delegated to polyclip.
//
// Polygons are built with a small builder API:
//
//	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,0)).Knot(P(0.5,1)).Cycle()
//
// BSD License
//
// Copyright (c) Norbert Pillmayer
//
// All rights reserved.
//
// Please refer to the license file for more information.
package polygon

import (
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/surfattach"
)

// L traces to the polygon tracer.
func L() tracing.Trace {
	return tracing.Select("surfattach.polygon")
}

// Polygon is a trim region made of closed contours.
type Polygon struct {
	contours polyclip.Polygon
	open     polyclip.Contour // contour under construction
}

// NullPolygon creates an empty polygon, to be extended by subsequent builder
// calls.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Box creates a rectangular polygon spanned by two opposite corners.
func Box(a, b surfattach.Pair) *Polygon {
	minu, maxu := math.Min(a.U(), b.U()), math.Max(a.U(), b.U())
	minv, maxv := math.Min(a.V(), b.V()), math.Max(a.V(), b.V())
	return NullPolygon().
		Knot(surfattach.P(minu, minv)).Knot(surfattach.P(maxu, minv)).
		Knot(surfattach.P(maxu, maxv)).Knot(surfattach.P(minu, maxv)).Cycle()
}

// Knot adds a vertex to the contour under construction.
// Part of builder functionality.
func (pg *Polygon) Knot(p surfattach.Pair) *Polygon {
	pg.open.Add(polyclip.Point{X: p.U(), Y: p.V()})
	return pg
}

// Cycle closes the contour under construction. Contours with less than
// 3 vertices are dropped. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	if len(pg.open) < 3 {
		L().Errorf("dropping degenerate contour with %d vertices", len(pg.open))
	} else {
		pg.contours.Add(pg.open)
	}
	pg.open = nil
	return pg
}

// N returns the number of vertices of all contours, including the one under
// construction.
func (pg *Polygon) N() int {
	return pg.contours.NumVertices() + len(pg.open)
}

// Contours returns the number of closed contours.
func (pg *Polygon) Contours() int {
	return len(pg.contours)
}

// IsEmpty is a predicate: has this polygon no closed contour?
func (pg *Polygon) IsEmpty() bool {
	return len(pg.contours) == 0
}

// Contains is a predicate: is (u,v) inside the polygon?
// A nil polygon contains no point.
func (pg *Polygon) Contains(u, v float64) bool {
	if pg == nil {
		return false
	}
	p := polyclip.Point{X: u, Y: v}
	inside := false
	for _, c := range pg.contours {
		if c.Contains(p) {
			inside = !inside
		}
	}
	return inside
}

// Intersect returns the intersection of two polygons as a new polygon.
func (pg *Polygon) Intersect(other *Polygon) *Polygon {
	return pg.construct(polyclip.INTERSECTION, other)
}

// Union returns the union of two polygons as a new polygon.
func (pg *Polygon) Union(other *Polygon) *Polygon {
	return pg.construct(polyclip.UNION, other)
}

// Subtract returns pg without other as a new polygon.
func (pg *Polygon) Subtract(other *Polygon) *Polygon {
	return pg.construct(polyclip.DIFFERENCE, other)
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) *Polygon {
	result := pg.contours.Construct(op, other.contours)
	L().Debugf("clipping: %d and %d contours yield %d", len(pg.contours), len(other.contours), len(result))
	return &Polygon{contours: result}
}

// BoundingBox returns the lower left and upper right corner of the polygon.
func (pg *Polygon) BoundingBox() (surfattach.Pair, surfattach.Pair) {
	if pg.IsEmpty() {
		return surfattach.P(0, 0), surfattach.P(0, 0)
	}
	r := pg.contours.BoundingBox()
	return surfattach.P(r.Min.X, r.Min.Y), surfattach.P(r.Max.X, r.Max.Y)
}

// AsString returns a polygon as a (debugging) string, one contour per line.
//
//	(0,0) -- (1,3) -- (3,0) -- cycle
func AsString(pg *Polygon) string {
	var sb strings.Builder
	for i, c := range pg.contours {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeContour(&sb, c)
		sb.WriteString(" -- cycle")
	}
	if len(pg.open) > 0 {
		if len(pg.contours) > 0 {
			sb.WriteString("\n")
		}
		writeContour(&sb, pg.open)
	}
	return sb.String()
}

func writeContour(sb *strings.Builder, c polyclip.Contour) {
	for i, pt := range c {
		if i > 0 {
			sb.WriteString(" -- ")
		}
		sb.WriteString(surfattach.P(pt.X, pt.Y).String())
	}
}
