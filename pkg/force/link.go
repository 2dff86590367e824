package force

import "math"

// Edge connects two bodies by index.
type Edge struct {
	Source, Target int
}

// Link pulls connected bodies toward a target distance. Each edge's
// strength defaults to 1/min(degree) so hubs are not yanked around, and the
// correction is split between the ends in proportion to their degrees.
type Link struct {
	edges      []Edge
	distance   float64
	iterations int

	bodies    []*Body
	rnd       Rand
	strengths []float64
	bias      []float64
}

// NewLink returns a link force with d3's defaults (distance 30).
func NewLink(edges []Edge) *Link {
	return &Link{edges: edges, distance: 30, iterations: 1}
}

// WithDistance sets the target length of every edge.
func (l *Link) WithDistance(d float64) *Link {
	l.distance = d
	return l
}

// WithIterations sets how many passes are made per tick.
func (l *Link) WithIterations(n int) *Link {
	l.iterations = n
	return l
}

// Distance returns the target edge length.
func (l *Link) Distance() float64 { return l.distance }

// Initialize implements Force.
func (l *Link) Initialize(bodies []*Body, rnd Rand) {
	l.bodies = bodies
	l.rnd = rnd

	count := make([]int, len(bodies))
	for _, e := range l.edges {
		count[e.Source]++
		count[e.Target]++
	}
	l.strengths = make([]float64, len(l.edges))
	l.bias = make([]float64, len(l.edges))
	for i, e := range l.edges {
		cs, ct := count[e.Source], count[e.Target]
		l.strengths[i] = 1 / float64(min(cs, ct))
		l.bias[i] = float64(cs) / float64(cs+ct)
	}
}

// Apply implements Force.
func (l *Link) Apply(alpha float64) {
	for k := 0; k < l.iterations; k++ {
		for i, e := range l.edges {
			src, tgt := l.bodies[e.Source], l.bodies[e.Target]
			x := tgt.X + tgt.VX - src.X - src.VX
			if x == 0 {
				x = jiggle(l.rnd)
			}
			y := tgt.Y + tgt.VY - src.Y - src.VY
			if y == 0 {
				y = jiggle(l.rnd)
			}
			d := math.Sqrt(x*x + y*y)
			d = (d - l.distance) / d * alpha * l.strengths[i]
			x *= d
			y *= d

			b := l.bias[i]
			tgt.VX -= x * b
			tgt.VY -= y * b
			src.VX += x * (1 - b)
			src.VY += y * (1 - b)
		}
	}
}
