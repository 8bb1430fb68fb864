package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/hclayout/pkg/geom"
)

// layoutIsolates packs nodes that share no edge and centers them on their
// enclosing circle.
func layoutIsolates(nodes []Node, opts *Options) geom.Circle {
	switch opts.Isolates {
	case IsolatesRandom:
		scatter(nodes, opts.Seed)
	default:
		grid(nodes, opts.IsolateSpacing)
	}
	return center(nodes)
}

// grid fills a square lattice row by row. The pitch never drops below the
// largest diameter, so neighbouring cells cannot overlap.
func grid(nodes []Node, spacing float64) {
	side := int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	maxR := 0.0
	for i := range nodes {
		maxR = math.Max(maxR, nodes[i].Radius)
	}
	pitch := math.Max(spacing, 2*maxR)
	for i := range nodes {
		nodes[i].X = float64(i%side) * pitch
		nodes[i].Y = float64(i/side) * pitch
	}
}

// scatter draws positions uniformly from a disk of radius 2n.
func scatter(nodes []Node, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, uint64(len(nodes))))
	r := 2 * float64(len(nodes))
	for i := range nodes {
		d := r * math.Sqrt(rng.Float64())
		a := 2 * math.Pi * rng.Float64()
		nodes[i].X = d * math.Cos(a)
		nodes[i].Y = d * math.Sin(a)
	}
}

// center translates nodes so the center of their enclosing circle is the
// origin and returns that circle, which is therefore {0, 0, r}.
func center(nodes []Node) geom.Circle {
	circles := make([]geom.Circle, len(nodes))
	for i, n := range nodes {
		circles[i] = geom.Circle{X: n.X, Y: n.Y, R: n.Radius}
	}
	size := geom.Enclose(circles)
	for i := range nodes {
		nodes[i].X -= size.X
		nodes[i].Y -= size.Y
	}
	return geom.Circle{R: size.R}
}
