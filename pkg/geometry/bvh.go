package geometry

import (
	"github.com/df07/go-sppm/pkg/core"
)

// bvhNode represents a node in the Bounding Volume Hierarchy
type bvhNode struct {
	bounds    core.AABB
	left      *bvhNode
	right     *bvhNode
	primitive []int // Primitive indices for leaf nodes (nil for internal nodes)
}

// bvh is a Bounding Volume Hierarchy over the primitives of a single composite surface
type bvh struct {
	root  *bvhNode
	boxes []core.AABB
}

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafThreshold = 8

// newBVH builds a hierarchy over primitives given by their bounding boxes
func newBVH(boxes []core.AABB) *bvh {
	if len(boxes) == 0 {
		return &bvh{}
	}

	indices := make([]int, len(boxes))
	for i := range indices {
		indices[i] = i
	}

	b := &bvh{boxes: boxes}
	b.root = b.build(indices)
	return b
}

// build recursively splits primitives at the midpoint of the longest axis
func (b *bvh) build(indices []int) *bvhNode {
	bounds := b.boxes[indices[0]]
	for _, i := range indices[1:] {
		bounds = bounds.Union(b.boxes[i])
	}

	// Base case: few primitives - create leaf node with all of them
	if len(indices) <= leafThreshold {
		return &bvhNode{bounds: bounds, primitive: indices}
	}

	axis := bounds.LongestAxis()
	minVal, maxVal := bounds.Min.Axis(axis), bounds.Max.Axis(axis)

	// Skip if no extent along this axis
	if maxVal <= minVal {
		return &bvhNode{bounds: bounds, primitive: indices}
	}

	splitPos := (minVal + maxVal) * 0.5
	var left, right []int
	for _, i := range indices {
		if b.boxes[i].Center().Axis(axis) < splitPos {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return &bvhNode{bounds: bounds, primitive: indices}
	}

	return &bvhNode{
		bounds: bounds,
		left:   b.build(left),
		right:  b.build(right),
	}
}

// traverse calls visit for every primitive in a leaf whose box the ray crosses
// before *tMax. visit may lower *tMax to prune the rest of the traversal.
func (b *bvh) traverse(ray core.Ray, tMax *float64, visit func(index int)) {
	if b.root == nil {
		return
	}
	b.traverseNode(b.root, ray, tMax, visit)
}

func (b *bvh) traverseNode(node *bvhNode, ray core.Ray, tMax *float64, visit func(index int)) {
	// First check if ray hits the bounding box
	if !node.bounds.Hit(ray, 0, *tMax) {
		return
	}

	if node.primitive != nil {
		for _, i := range node.primitive {
			visit(i)
		}
		return
	}

	b.traverseNode(node.left, ray, tMax, visit)
	b.traverseNode(node.right, ray, tMax, visit)
}

// bounds returns the overall bounding box of the hierarchy
func (b *bvh) bounds() core.AABB {
	if b.root == nil {
		return core.AABB{}
	}
	return b.root.bounds
}

// depth returns the maximum depth of the hierarchy
func (b *bvh) depth() int {
	var walk func(node *bvhNode) int
	walk = func(node *bvhNode) int {
		if node == nil {
			return 0
		}
		return 1 + max(walk(node.left), walk(node.right))
	}
	return walk(b.root)
}
