package contour

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Segment is a pair of crossing points produced by one cell.
type Segment struct {
	A, B Point
}

// Polyline is an ordered chain of crossing points. Closed polylines
// implicitly connect the last point back to the first.
type Polyline struct {
	Points []Point
	Closed bool
}

// node is one distinct crossing point with at most two neighbours.
type node struct {
	p       Point
	links   [2]int
	n       int
	visited bool
}

func (nd *node) linksTo(i int) bool {
	for k := 0; k < nd.n; k++ {
		if nd.links[k] == i {
			return true
		}
	}
	return false
}

type stitcher struct {
	index  map[Point]int
	nodes  []node
	strict bool
}

func newStitcher(capacity int, strict bool) *stitcher {
	return &stitcher{
		index:  make(map[Point]int, capacity),
		nodes:  make([]node, 0, capacity),
		strict: strict,
	}
}

func (s *stitcher) id(p Point) int {
	if i, ok := s.index[p]; ok {
		return i
	}
	i := len(s.nodes)
	s.nodes = append(s.nodes, node{p: p})
	s.index[p] = i
	return i
}

// link connects a and b. A third neighbour on either point means the
// segment list is malformed.
func (s *stitcher) link(a, b int) {
	na, nb := &s.nodes[a], &s.nodes[b]
	for _, nd := range []*node{na, nb} {
		if nd.n == 2 {
			panic(fmt.Sprintf("contour: point (%g, %g) has more than two neighbours", nd.p.X, nd.p.Y))
		}
	}
	na.links[na.n] = b
	na.n++
	nb.links[nb.n] = a
	nb.n++
}

// full reports whether p is already linked to two neighbours.
func (s *stitcher) full(p Point) bool {
	i, ok := s.index[p]
	return ok && s.nodes[i].n == 2
}

func (s *stitcher) add(seg Segment) {
	if seg.A == seg.B {
		return
	}
	if !s.strict && (s.full(seg.A) || s.full(seg.B)) {
		return
	}
	s.link(s.id(seg.A), s.id(seg.B))
}

// walk follows unvisited neighbours from start until none remain.
func (s *stitcher) walk(start int) Polyline {
	var pts []Point
	cur := start
	for {
		nd := &s.nodes[cur]
		nd.visited = true
		pts = append(pts, nd.p)

		next := -1
		for k := 0; k < nd.n; k++ {
			if !s.nodes[nd.links[k]].visited {
				next = nd.links[k]
				break
			}
		}
		if next < 0 {
			return Polyline{
				Points: pts,
				Closed: len(pts) >= 3 && nd.linksTo(start),
			}
		}
		cur = next
	}
}

func (s *stitcher) polylines() []Polyline {
	var out []Polyline
	// Open chains start from an end so they come out whole.
	for i := range s.nodes {
		if s.nodes[i].n == 1 && !s.nodes[i].visited {
			out = append(out, s.walk(i))
		}
	}
	for i := range s.nodes {
		if !s.nodes[i].visited {
			out = append(out, s.walk(i))
		}
	}
	return out
}

// Stitch assembles segments into polylines. Points are merged by exact
// coordinate equality. The output order depends only on the segment order.
// A point with more than two neighbours panics; Engine output never has one.
func Stitch(segments []Segment) []Polyline {
	if len(segments) == 0 {
		return nil
	}
	s := newStitcher(len(segments), true)
	for _, seg := range segments {
		s.add(seg)
	}
	return s.polylines()
}

// StitchTolerance is like Stitch but first merges endpoints lying within eps
// of each other on both axes. Segments that collapse to a point, or that would
// give a point a third neighbour, are dropped. eps <= 0 is Stitch.
func StitchTolerance(segments []Segment, eps float64) []Polyline {
	if eps <= 0 {
		return Stitch(segments)
	}
	if len(segments) == 0 {
		return nil
	}
	snap := newSnapper(eps)
	s := newStitcher(len(segments), false)
	for _, seg := range segments {
		s.add(Segment{A: snap.canonical(seg.A), B: snap.canonical(seg.B)})
	}
	return s.polylines()
}

// snapper maps points to the first-seen representative within eps.
type snapper struct {
	eps     float64
	buckets map[[2]int64][]Point
}

func newSnapper(eps float64) *snapper {
	return &snapper{eps: eps, buckets: make(map[[2]int64][]Point)}
}

func (s *snapper) key(p Point) [2]int64 {
	return [2]int64{int64(math.Floor(p.X / s.eps)), int64(math.Floor(p.Y / s.eps))}
}

func (s *snapper) canonical(p Point) Point {
	k := s.key(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, q := range s.buckets[[2]int64{k[0] + dx, k[1] + dy}] {
				if scalar.EqualWithinAbs(p.X, q.X, s.eps) && scalar.EqualWithinAbs(p.Y, q.Y, s.eps) {
					return q
				}
			}
		}
	}
	s.buckets[k] = append(s.buckets[k], p)
	return p
}
