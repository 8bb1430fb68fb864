package geom

import (
	"math"
	"math/rand/v2"
	"slices"
)

// encloseSeed fixes the shuffle so Enclose is a pure function of its input.
const encloseSeed = 0x5eed

// Enclose returns the smallest circle that contains every circle in cs.
//
// The algorithm is Welzl's randomized incremental construction generalised
// to circles (the move-to-front variant used by d3-hierarchy's packEnclose):
// the input is shuffled with a fixed seed, then a basis of at most three
// circles is grown whenever a circle falls outside the current answer.
// Expected running time is linear.
//
// Enclose of an empty slice is the zero Circle. Enclose never fails: if the
// basis construction degenerates numerically it falls back to a circle
// around the centroid that covers every input.
func Enclose(cs []Circle) Circle {
	if len(cs) == 0 {
		return Circle{}
	}
	circles := slices.Clone(cs)
	rng := rand.New(rand.NewPCG(encloseSeed, uint64(len(circles))))
	rng.Shuffle(len(circles), func(i, j int) {
		circles[i], circles[j] = circles[j], circles[i]
	})

	var (
		basis []Circle
		e     Circle
		have  bool
	)
	for i := 0; i < len(circles); {
		p := circles[i]
		if have && enclosesWeak(e, p) {
			i++
			continue
		}
		var ok bool
		basis, ok = extendBasis(basis, p)
		if !ok {
			return fallback(cs)
		}
		e = encloseBasis(basis)
		if !e.valid() {
			return fallback(cs)
		}
		have = true
		i = 0
	}
	return e
}

func extendBasis(b []Circle, p Circle) ([]Circle, bool) {
	if enclosesWeakAll(p, b) {
		return []Circle{p}, true
	}

	for i := range b {
		if enclosesNot(p, b[i]) && enclosesWeakAll(encloseBasis2(b[i], p), b) {
			return []Circle{b[i], p}, true
		}
	}

	for i := 0; i < len(b)-1; i++ {
		for j := i + 1; j < len(b); j++ {
			if enclosesNot(encloseBasis2(b[i], b[j]), p) &&
				enclosesNot(encloseBasis2(b[i], p), b[j]) &&
				enclosesNot(encloseBasis2(b[j], p), b[i]) &&
				enclosesWeakAll(encloseBasis3(b[i], b[j], p), b) {
				return []Circle{b[i], b[j], p}, true
			}
		}
	}
	return nil, false
}

func enclosesNot(a, b Circle) bool {
	dr := a.R - b.R
	dx, dy := b.X-a.X, b.Y-a.Y
	return dr < 0 || dr*dr < dx*dx+dy*dy
}

func enclosesWeak(a, b Circle) bool {
	dr := a.R - b.R + math.Max(math.Max(a.R, b.R), 1)*1e-9
	dx, dy := b.X-a.X, b.Y-a.Y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

func enclosesWeakAll(a Circle, b []Circle) bool {
	for _, c := range b {
		if !enclosesWeak(a, c) {
			return false
		}
	}
	return true
}

func encloseBasis(b []Circle) Circle {
	switch len(b) {
	case 1:
		return b[0]
	case 2:
		return encloseBasis2(b[0], b[1])
	default:
		return encloseBasis3(b[0], b[1], b[2])
	}
}

func encloseBasis2(a, b Circle) Circle {
	x21, y21, r21 := b.X-a.X, b.Y-a.Y, b.R-a.R
	l := math.Hypot(x21, y21)
	if l == 0 {
		if a.R >= b.R {
			return a
		}
		return b
	}
	return Circle{
		X: (a.X + b.X + x21/l*r21) / 2,
		Y: (a.Y + b.Y + y21/l*r21) / 2,
		R: (l + a.R + b.R) / 2,
	}
}

func encloseBasis3(a, b, c Circle) Circle {
	x1, y1, r1 := a.X, a.Y, a.R
	x2, y2, r2 := b.X, b.Y, b.R
	x3, y3, r3 := c.X, c.Y, c.R

	a2, a3 := x1-x2, x1-x3
	b2, b3 := y1-y2, y1-y3
	c2, c3 := r2-r1, r3-r1
	d1 := x1*x1 + y1*y1 - r1*r1
	d2 := d1 - x2*x2 - y2*y2 + r2*r2
	d3 := d1 - x3*x3 - y3*y3 + r3*r3
	ab := a3*b2 - a2*b3
	xa := (b2*d3-b3*d2)/(ab*2) - x1
	xb := (b3*c2 - b2*c3) / ab
	ya := (a3*d2-a2*d3)/(ab*2) - y1
	yb := (a2*c3 - a3*c2) / ab
	qa := xb*xb + yb*yb - 1
	qb := 2 * (r1 + xa*xb + ya*yb)
	qc := xa*xa + ya*ya - r1*r1

	var r float64
	if math.Abs(qa) > 1e-6 {
		r = -(qb + math.Sqrt(qb*qb-4*qa*qc)) / (2 * qa)
	} else {
		r = -qc / qb
	}
	return Circle{X: x1 + xa + xb*r, Y: y1 + ya + yb*r, R: r}
}

// fallback returns a circle centered on the centroid of cs that covers all of
// them. It is never smaller than the optimum.
func fallback(cs []Circle) Circle {
	var cx, cy float64
	for _, c := range cs {
		cx += c.X
		cy += c.Y
	}
	n := float64(len(cs))
	center := Point{X: cx / n, Y: cy / n}
	var r float64
	for _, c := range cs {
		r = math.Max(r, center.Dist(c.Center())+c.R)
	}
	return Circle{X: center.X, Y: center.Y, R: r}
}
