package kdtree

import (
	"github.com/df07/go-sppm/pkg/core"
)

// Searcher runs range queries against a tree. It owns the scratch state used to
// deduplicate results, so each goroutine needs its own Searcher.
type Searcher struct {
	tree    *Tree
	visited []bool
	found   []int
}

// NewSearcher creates a searcher with a visited marker per point
func (t *Tree) NewSearcher() *Searcher {
	return &Searcher{
		tree:    t,
		visited: make([]bool, len(t.points)),
	}
}

// Within returns the indices of all points within radius of center. The
// returned slice is reused by the next call.
func (s *Searcher) Within(center core.Vec3, radius float64) []int {
	s.found = s.found[:0]
	if s.tree.root == noChild || radius < 0 {
		return s.found
	}

	s.search(s.tree.root, center, radius, radius*radius)

	// Reset only the markers this query set
	for _, i := range s.found {
		s.visited[i] = false
	}
	return s.found
}

func (s *Searcher) search(id int32, center core.Vec3, radius, radius2 float64) {
	n := &s.tree.nodes[id]

	// Prune cubes that cannot reach the sphere
	if !n.bounds.ContainsWithin(center, radius) {
		return
	}

	if n.isLeaf() {
		for _, i := range s.tree.indices[n.start:n.end] {
			if s.visited[i] {
				continue
			}
			if s.tree.points[i].DistanceSquared(center) <= radius2 {
				s.visited[i] = true
				s.found = append(s.found, int(i))
			}
		}
		return
	}

	if n.left != noChild {
		s.search(n.left, center, radius, radius2)
	}
	if n.right != noChild {
		s.search(n.right, center, radius, radius2)
	}
}
