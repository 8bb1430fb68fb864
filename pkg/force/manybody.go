package force

import (
	"math"

	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"
)

// body adapts a node to barneshut.Particle2. Mass is the magnitude of the
// node's charge so that aggregate centers are charge weighted.
type body struct {
	index int
	pos   r2.Vec
	mass  float64
}

func (b *body) Coord2() r2.Vec { return b.pos }
func (b *body) Mass() float64  { return b.mass }

// applyCharge adds the many-body force to every node's velocity. Charges are
// assumed to share one sign, which holds for the layout's purely repulsive
// use.
func (s *Simulation) applyCharge(alpha float64) {
	bodies := make([]barneshut.Particle2, len(s.nodes))
	sign := -1.0
	for i, n := range s.nodes {
		c := s.charge[i]
		if c > 0 {
			sign = 1
		}
		bodies[i] = &body{index: i, pos: r2.Vec{X: n.X, Y: n.Y}, mass: math.Max(math.Abs(c), 1e-9)}
	}

	theta := s.cfg.Theta
	plane, err := barneshut.NewPlane(bodies)
	if err != nil {
		// Coincident or extremely spread positions cannot be split into a
		// quad tree. Fall back to the exact pairwise sum.
		plane = &barneshut.Plane{Particles: bodies}
		theta = 0
	}

	dmin2 := s.cfg.DistanceMin * s.cfg.DistanceMin
	repel := func(p1, p2 barneshut.Particle2, _, m2 float64, v r2.Vec) r2.Vec {
		if p2 != nil && p1 == p2 {
			return r2.Vec{}
		}
		if v.X == 0 {
			v.X = s.jiggle()
		}
		if v.Y == 0 {
			v.Y = s.jiggle()
		}
		l := r2.Norm2(v)
		if l < dmin2 {
			l = math.Sqrt(dmin2 * l)
		}
		return r2.Scale(sign*m2*alpha/l, v)
	}

	for i, b := range bodies {
		f := plane.ForceOn(b, theta, repel)
		s.nodes[i].VX += f.X
		s.nodes[i].VY += f.Y
	}
}

// applyLinks pulls linked nodes towards their rest distance. The correction
// is split between both ends in proportion to their link counts.
func (s *Simulation) applyLinks(alpha float64) {
	for k, l := range s.links {
		src, tgt := &s.nodes[l.Source], &s.nodes[l.Target]
		x := tgt.X + tgt.VX - src.X - src.VX
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if x == 0 {
			x = s.jiggle()
		}
		if y == 0 {
			y = s.jiggle()
		}
		d := math.Hypot(x, y)
		f := (d - s.distance[k]) / d * alpha * s.strength[k]
		x *= f
		y *= f
		b := s.bias[k]
		tgt.VX -= x * b
		tgt.VY -= y * b
		src.VX += x * (1 - b)
		src.VY += y * (1 - b)
	}
}
