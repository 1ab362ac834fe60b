// Package kdtree indexes hit points for shrinking-radius range queries.
//
// Children of a node split its cube at a plane along the node's axis and are
// dilated by a small epsilon, so points on the plane are stored in both children.
// Range queries therefore deduplicate their results.
package kdtree

import (
	"fmt"
	"sort"

	"github.com/df07/go-sppm/pkg/core"
)

// SplitStrategy chooses the split plane of an inner node
type SplitStrategy string

const (
	// SplitMedian splits at the median coordinate of the node's points
	SplitMedian SplitStrategy = "median"
	// SplitMidpoint splits at the middle of the node's cube
	SplitMidpoint SplitStrategy = "midpoint"
)

// ParseSplitStrategy converts a strategy name into a SplitStrategy
func ParseSplitStrategy(name string) (SplitStrategy, error) {
	switch SplitStrategy(name) {
	case SplitMedian, SplitMidpoint:
		return SplitStrategy(name), nil
	default:
		return "", fmt.Errorf("unknown split strategy %q (want %q or %q)", name, SplitMedian, SplitMidpoint)
	}
}

// Options controls tree construction
type Options struct {
	Split       SplitStrategy
	MinLeafSize int     // Nodes with fewer points become leaves
	MaxDepth    int     // Nodes at this depth become leaves
	Epsilon     float64 // Child cube dilation and partition tolerance
}

// DefaultOptions returns the construction parameters used by the renderer
func DefaultOptions() Options {
	return Options{
		Split:       SplitMidpoint,
		MinLeafSize: 16,
		MaxDepth:    100,
		Epsilon:     core.Eps,
	}
}

const noChild int32 = -1

// node is an entry in the tree's arena. Leaves have no children and own
// indices[start:end].
type node struct {
	bounds      core.AABB
	left, right int32
	start, end  int32
}

func (n *node) isLeaf() bool {
	return n.left == noChild && n.right == noChild
}

// Tree is an immutable KD-tree over a set of points
type Tree struct {
	points  []core.Vec3
	nodes   []node
	indices []int32
	root    int32
	options Options
	stats   Stats
}

// Stats describes the shape of a built tree
type Stats struct {
	Points        int // Indexed points
	Nodes         int // Total nodes
	Leaves        int // Leaf nodes
	MaxDepth      int // Deepest leaf
	MaxLeafSize   int // Most points stored by one leaf
	StoredIndices int // Point references held by leaves; exceeds Points when boundary points are shared
}

// New builds a tree over points. The slice is retained and must not be modified
// while the tree is in use.
func New(points []core.Vec3, options Options) *Tree {
	if options.MinLeafSize < 1 {
		options.MinLeafSize = 1
	}
	if options.Split == "" {
		options.Split = SplitMidpoint
	}

	t := &Tree{
		points:  points,
		root:    noChild,
		options: options,
		stats:   Stats{Points: len(points)},
	}
	if len(points) == 0 {
		return t
	}

	all := make([]int32, len(points))
	for i := range all {
		all[i] = int32(i)
	}

	t.root = t.build(all, core.NewAABBFromPoints(points...), 0)
	t.stats.Nodes = len(t.nodes)
	t.stats.StoredIndices = len(t.indices)
	return t
}

// build adds the subtree holding indices inside bounds and returns its node index
func (t *Tree) build(indices []int32, bounds core.AABB, depth int) int32 {
	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{bounds: bounds, left: noChild, right: noChild})

	if len(indices) < t.options.MinLeafSize || depth >= t.options.MaxDepth {
		t.makeLeaf(id, indices, depth)
		return id
	}

	// Start at the depth's axis and fall through to the others when the points
	// share a coordinate along it. A split that only empties one side still
	// halves the cube, so it is kept as a fallback.
	var chosen, fallback *partition
	for k := 0; k < 3 && chosen == nil; k++ {
		p := t.partition(indices, bounds, (depth+k)%3)
		if p.shrinks(len(indices)) {
			chosen = &p
		} else if fallback == nil && p.halvesCube(t.options.Epsilon) {
			fallback = &p
		}
	}
	if chosen == nil {
		chosen = fallback
	}
	if chosen == nil {
		t.makeLeaf(id, indices, depth)
		return id
	}

	leftChild := t.child(chosen.left, chosen.leftBounds, depth+1)
	rightChild := t.child(chosen.right, chosen.rightBounds, depth+1)
	t.nodes[id].left = leftChild
	t.nodes[id].right = rightChild
	return id
}

// partition is a candidate split of a node's points along one axis
type partition struct {
	extent                  float64
	left, right             []int32
	leftBounds, rightBounds core.AABB
}

// shrinks reports whether both sides hold fewer points than the parent
func (p *partition) shrinks(parentCount int) bool {
	return len(p.left) < parentCount && len(p.right) < parentCount
}

// halvesCube reports whether one side is empty while the cube is wide enough
// for its halves to be smaller than itself
func (p *partition) halvesCube(eps float64) bool {
	return (len(p.left) == 0 || len(p.right) == 0) && p.extent > 4*eps
}

func (t *Tree) partition(indices []int32, bounds core.AABB, axis int) partition {
	split := t.splitValue(indices, bounds, axis)
	eps := t.options.Epsilon

	// Both children keep points within eps of the split plane
	p := partition{extent: bounds.Max.Axis(axis) - bounds.Min.Axis(axis)}
	for _, i := range indices {
		c := t.points[i].Axis(axis)
		if c <= split+eps {
			p.left = append(p.left, i)
		}
		if c >= split-eps {
			p.right = append(p.right, i)
		}
	}

	p.leftBounds = core.NewAABB(bounds.Min, bounds.Max.WithAxis(axis, split+eps))
	p.rightBounds = core.NewAABB(bounds.Min.WithAxis(axis, split-eps), bounds.Max)
	return p
}

// child builds one side of a split
func (t *Tree) child(indices []int32, bounds core.AABB, depth int) int32 {
	if len(indices) == 0 {
		return noChild
	}
	return t.build(indices, bounds, depth)
}

func (t *Tree) makeLeaf(id int32, indices []int32, depth int) {
	n := &t.nodes[id]
	n.start = int32(len(t.indices))
	t.indices = append(t.indices, indices...)
	n.end = int32(len(t.indices))

	t.stats.Leaves++
	if len(indices) > t.stats.MaxLeafSize {
		t.stats.MaxLeafSize = len(indices)
	}
	if depth > t.stats.MaxDepth {
		t.stats.MaxDepth = depth
	}
}

// splitValue returns the coordinate of the split plane along axis
func (t *Tree) splitValue(indices []int32, bounds core.AABB, axis int) float64 {
	if t.options.Split == SplitMedian {
		coords := make([]float64, len(indices))
		for k, i := range indices {
			coords[k] = t.points[i].Axis(axis)
		}
		sort.Float64s(coords)
		return coords[len(coords)/2]
	}
	return 0.5 * (bounds.Min.Axis(axis) + bounds.Max.Axis(axis))
}

// Len returns the number of indexed points
func (t *Tree) Len() int {
	return len(t.points)
}

// Bounds returns the cube of the root node
func (t *Tree) Bounds() core.AABB {
	if t.root == noChild {
		return core.AABB{}
	}
	return t.nodes[t.root].bounds
}

// Stats returns construction statistics
func (t *Tree) Stats() Stats {
	return t.stats
}

// Within returns the indices of all points within radius of center, in no
// particular order. It allocates; hot loops should use a Searcher.
func (t *Tree) Within(center core.Vec3, radius float64) []int {
	found := t.NewSearcher().Within(center, radius)
	return append([]int(nil), found...)
}
