package force

import (
	"cmp"
	"math"
	"slices"
)

// sweep returns node indices ordered by the left edge of their collision
// circle at the given positions.
func sweep(xs, radius []float64) []int {
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(xs[a]-radius[a], xs[b]-radius[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return order
}

// applyCollide runs one relaxation pass of the collision constraint on the
// positions each node would reach with its current velocity. Overlapping
// pairs are pushed apart through their velocities, the smaller circle moving
// more.
func (s *Simulation) applyCollide() {
	n := len(s.nodes)
	px := make([]float64, n)
	for i, nd := range s.nodes {
		px[i] = nd.X + nd.VX
	}
	order := sweep(px, s.radius)
	strength := s.cfg.CollideStrength

	for p, i := range order {
		ri := s.radius[i]
		ri2 := ri * ri
		node := &s.nodes[i]
		xi, yi := node.X+node.VX, node.Y+node.VY
		right := px[i] + ri
		for _, j := range order[p+1:] {
			rj := s.radius[j]
			if px[j]-rj > right {
				break
			}
			other := &s.nodes[j]
			x := xi - other.X - other.VX
			y := yi - other.Y - other.VY
			l := x*x + y*y
			r := ri + rj
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = s.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.jiggle()
				l += y * y
			}
			d := math.Sqrt(l)
			f := (r - d) / d * strength
			x *= f
			y *= f
			rj2 := rj * rj
			w := rj2 / (ri2 + rj2)
			node.VX += x * w
			node.VY += y * w
			other.VX -= x * (1 - w)
			other.VY -= y * (1 - w)
		}
	}
}

// Settle removes remaining overlaps by moving positions directly, without
// touching velocities. It performs at most passes sweeps and stops early once
// a sweep finds no overlapping pair. It returns the number of sweeps run.
//
// Settle does nothing when no collision radius is configured.
func (s *Simulation) Settle(passes int) int {
	if s.radius == nil {
		return 0
	}
	n := len(s.nodes)
	xs := make([]float64, n)
	for pass := 0; pass < passes; pass++ {
		for i, nd := range s.nodes {
			xs[i] = nd.X
		}
		order := sweep(xs, s.radius)
		moved := false
		for p, i := range order {
			ri := s.radius[i]
			a := &s.nodes[i]
			for _, j := range order[p+1:] {
				rj := s.radius[j]
				if xs[j]-rj > xs[i]+ri {
					break
				}
				b := &s.nodes[j]
				x, y := a.X-b.X, a.Y-b.Y
				r := ri + rj
				l := x*x + y*y
				if l >= r*r*(1-1e-12) {
					continue
				}
				d := math.Sqrt(l)
				if d == 0 {
					// Separate along a fixed, index dependent direction.
					ang := float64(i*7919+j) * 0.618033988749895 * 2 * math.Pi
					x, y, d = math.Cos(ang), math.Sin(ang), 1
				}
				overlap := (r - d) / d
				w := rj * rj / (ri*ri + rj*rj)
				if ri == 0 && rj == 0 {
					w = 0.5
				}
				a.X += x * overlap * w
				a.Y += y * overlap * w
				b.X -= x * overlap * (1 - w)
				b.Y -= y * overlap * (1 - w)
				moved = true
			}
		}
		if !moved {
			return pass + 1
		}
	}
	return passes
}
