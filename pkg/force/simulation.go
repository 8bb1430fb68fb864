// Package force implements a small velocity Verlet force simulation modelled
// on d3-force: many-body repulsion, spring links and collision avoidance
// acting on circles in the plane.
//
// The simulation is deliberately minimal. Alpha is fixed (no cooling), the
// caller chooses the number of steps, and all randomness (the jiggle used to
// separate coincident nodes) comes from a seeded generator, so identical
// inputs always produce identical positions.
//
// Many-body forces use the Barnes-Hut approximation from
// gonum.org/v1/gonum/spatial/barneshut. Collisions are detected with a
// sweep-and-prune pass over the x axis.
package force

import (
	"context"
	"math"
	"math/rand/v2"
)

// Default simulation parameters. They match d3-force's defaults except for
// alpha, which stays at 1 because the layout never cools the simulation.
const (
	DefaultAlpha             = 1.0
	DefaultVelocityDecay     = 0.6
	DefaultTheta             = 0.9
	DefaultDistanceMin       = 1.0
	DefaultCollideStrength   = 1.0
	DefaultCollideIterations = 1
	DefaultSeed              = uint64(1)
	DefaultInitialSpacing    = 10.0
)

// Node is a simulated particle. X and Y are read back after the run.
type Node struct {
	X, Y   float64
	VX, VY float64
}

// Link is a spring between two nodes, given by index.
type Link struct {
	Source int
	Target int
}

// Forces supplies the per node and per link parameters of the simulation.
// A nil function disables the corresponding force.
type Forces struct {
	// Charge returns the many-body strength of node i. Negative values repel.
	Charge func(i int) float64
	// Distance returns the rest length of link l.
	Distance func(l Link) float64
	// Radius returns the collision radius of node i.
	Radius func(i int) float64
}

// Config tunes the integrator. Zero values select the defaults above.
type Config struct {
	Alpha             float64
	VelocityDecay     float64
	Theta             float64
	DistanceMin       float64
	CollideStrength   float64
	CollideIterations int
	Seed              uint64
}

func (c *Config) setDefaults() {
	if c.Alpha == 0 {
		c.Alpha = DefaultAlpha
	}
	if c.VelocityDecay == 0 {
		c.VelocityDecay = DefaultVelocityDecay
	}
	if c.Theta == 0 {
		c.Theta = DefaultTheta
	}
	if c.DistanceMin == 0 {
		c.DistanceMin = DefaultDistanceMin
	}
	if c.CollideStrength == 0 {
		c.CollideStrength = DefaultCollideStrength
	}
	if c.CollideIterations <= 0 {
		c.CollideIterations = DefaultCollideIterations
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
}

// Simulation advances a set of nodes under the configured forces.
// It is not safe for concurrent use.
type Simulation struct {
	nodes  []Node
	links  []Link
	forces Forces
	cfg    Config
	rng    *rand.Rand

	// cached per run
	charge   []float64
	radius   []float64
	distance []float64
	strength []float64
	bias     []float64
}

// NewSimulation returns a simulation over nodes and links. The nodes slice is
// used in place: positions are updated directly in it. Links whose endpoints
// are out of range or equal are ignored.
func NewSimulation(nodes []Node, links []Link, forces Forces, cfg Config) *Simulation {
	cfg.setDefaults()
	s := &Simulation{
		nodes:  nodes,
		forces: forces,
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	for _, l := range links {
		if l.Source == l.Target || l.Source < 0 || l.Target < 0 || l.Source >= len(nodes) || l.Target >= len(nodes) {
			continue
		}
		s.links = append(s.links, l)
	}
	s.initialize()
	return s
}

func (s *Simulation) initialize() {
	n := len(s.nodes)
	if s.forces.Charge != nil {
		s.charge = make([]float64, n)
		for i := range s.charge {
			s.charge[i] = s.forces.Charge(i)
		}
	}
	if s.forces.Radius != nil {
		s.radius = make([]float64, n)
		for i := range s.radius {
			s.radius[i] = s.forces.Radius(i)
		}
	}
	if s.forces.Distance != nil {
		count := make([]int, n)
		for _, l := range s.links {
			count[l.Source]++
			count[l.Target]++
		}
		s.distance = make([]float64, len(s.links))
		s.strength = make([]float64, len(s.links))
		s.bias = make([]float64, len(s.links))
		for k, l := range s.links {
			s.distance[k] = s.forces.Distance(l)
			s.strength[k] = 1 / float64(min(count[l.Source], count[l.Target]))
			s.bias[k] = float64(count[l.Source]) / float64(count[l.Source]+count[l.Target])
		}
	}
}

// Nodes returns the simulated nodes.
func (s *Simulation) Nodes() []Node { return s.nodes }

// Tick advances the simulation by one step: every force adds to the node
// velocities, then velocities decay and positions integrate.
func (s *Simulation) Tick() {
	alpha := s.cfg.Alpha
	if s.charge != nil {
		s.applyCharge(alpha)
	}
	if s.distance != nil {
		s.applyLinks(alpha)
	}
	if s.radius != nil {
		for k := 0; k < s.cfg.CollideIterations; k++ {
			s.applyCollide()
		}
	}
	for i := range s.nodes {
		n := &s.nodes[i]
		n.VX *= s.cfg.VelocityDecay
		n.VY *= s.cfg.VelocityDecay
		n.X += n.VX
		n.Y += n.VY
	}
}

// Run performs steps ticks, stopping early if ctx is cancelled.
func (s *Simulation) Run(ctx context.Context, steps int) error {
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Tick()
	}
	return nil
}

// jiggle returns a tiny non-zero offset used to separate coincident nodes.
func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}

// Phyllotaxis places nodes on a sunflower spiral around the origin and
// clears their velocities. Consecutive nodes are spacing apart on average,
// which gives every node a distinct starting point without randomness.
func Phyllotaxis(nodes []Node, spacing float64) {
	if spacing <= 0 {
		spacing = DefaultInitialSpacing
	}
	angle := math.Pi * (3 - math.Sqrt(5))
	for i := range nodes {
		r := spacing * math.Sqrt(0.5+float64(i))
		a := float64(i) * angle
		nodes[i] = Node{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
}
