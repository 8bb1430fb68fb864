package layout

import (
	"context"
	"math"

	"github.com/matzehuels/hclayout/pkg/force"
	"github.com/matzehuels/hclayout/pkg/geom"
)

// Force parameters as functions of node radius.
const (
	chargePerRadius  = -8.0
	linkSlack        = 1.1
	collideScale     = 1.2
	minInitialSpread = 10.0
)

// iterations returns the number of simulation steps for a community of n
// nodes.
func iterations(n int, opts *Options) int {
	if opts.Iterations == IterationsFixed {
		return opts.FixedIterations
	}
	steps := min(float64(n), math.Floor(30*math.Log(float64(n))))
	return max(2, int(steps))
}

// layoutPhysics runs the force simulation on ig and centers the result on
// its enclosing circle. Only coordinates change.
func layoutPhysics(ctx context.Context, ig *InternalGraph, opts *Options) (geom.Circle, int, error) {
	nodes := ig.Nodes
	sim := make([]force.Node, len(nodes))
	meanR := 0.0
	for _, n := range nodes {
		meanR += n.Radius
	}
	meanR /= float64(len(nodes))
	force.Phyllotaxis(sim, math.Max(minInitialSpread, 2*meanR))

	links := make([]force.Link, len(ig.Edges))
	for i, e := range ig.Edges {
		links[i] = force.Link{Source: e.Source, Target: e.Target}
	}

	forces := force.Forces{
		Charge: func(i int) float64 { return chargePerRadius * nodes[i].Radius },
		Distance: func(l force.Link) float64 {
			s, t := nodes[l.Source], nodes[l.Target]
			if !s.Sized || !t.Sized {
				return opts.LinkDistance
			}
			return linkSlack * (s.Radius + t.Radius)
		},
		Radius: func(i int) float64 { return collideScale * nodes[i].Radius },
	}
	s := force.NewSimulation(sim, links, forces, force.Config{
		CollideIterations: opts.CollideIterations,
		Seed:              opts.Seed,
	})
	steps := iterations(len(nodes), opts)
	if err := s.Run(ctx, steps); err != nil {
		return geom.Circle{}, 0, err
	}
	if opts.SettlePasses > 0 {
		s.Settle(opts.SettlePasses)
	}

	for i, p := range s.Nodes() {
		nodes[i].X = p.X
		nodes[i].Y = p.Y
	}
	return center(nodes), steps, nil
}
