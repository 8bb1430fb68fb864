// Package geom provides the small amount of plane geometry the layout needs:
// points, circles and the minimum enclosing circle of a set of circles.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec converts p to a gonum vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// FromVec converts a gonum vector to a Point.
func FromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return FromVec(r2.Add(p.Vec(), q.Vec())) }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return FromVec(r2.Sub(p.Vec(), q.Vec())) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return r2.Norm(r2.Sub(p.Vec(), q.Vec())) }

// Circle is a disk given by its center and radius.
type Circle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Center returns the center of c.
func (c Circle) Center() Point { return Point{X: c.X, Y: c.Y} }

// Translate returns c moved by d.
func (c Circle) Translate(d Point) Circle {
	return Circle{X: c.X + d.X, Y: c.Y + d.Y, R: c.R}
}

// Contains reports whether c contains o, allowing a relative tolerance of
// 1e-9 scaled by the larger radius.
func (c Circle) Contains(o Circle) bool {
	eps := math.Max(math.Max(c.R, o.R), 1) * 1e-9
	return c.Center().Dist(o.Center())+o.R <= c.R+eps
}

func (c Circle) valid() bool {
	return !math.IsNaN(c.X) && !math.IsNaN(c.Y) && !math.IsNaN(c.R) &&
		!math.IsInf(c.R, 0) && c.R >= 0
}
