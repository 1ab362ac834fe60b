package kdtree

import (
	"sort"
	"testing"

	gonumkd "gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-sppm/pkg/core"
)

func toR3(v core.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// bruteForce returns the sorted indices of points within radius of center
func bruteForce(points []core.Vec3, center core.Vec3, radius float64) []int {
	var result []int
	c := toR3(center)
	for i, p := range points {
		if r3.Norm2(r3.Sub(toR3(p), c)) <= radius*radius {
			result = append(result, i)
		}
	}
	return result
}

func randomPoints(n int, seed int64) []core.Vec3 {
	sampler := core.NewSeededSampler(seed)
	points := make([]core.Vec3, n)
	for i := range points {
		points[i] = sampler.Get3D().Multiply(10).Subtract(core.NewVec3(5, 5, 5))
	}
	return points
}

func sortedCopy(indices []int) []int {
	result := append([]int(nil), indices...)
	sort.Ints(result)
	return result
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTree_MatchesBruteForce(t *testing.T) {
	points := randomPoints(5000, 1)
	queries := randomPoints(200, 2)

	for _, split := range []SplitStrategy{SplitMidpoint, SplitMedian} {
		t.Run(string(split), func(t *testing.T) {
			options := DefaultOptions()
			options.Split = split
			tree := New(points, options)
			searcher := tree.NewSearcher()

			for _, radius := range []float64{0.1, 0.5, 1.5, 20} {
				for qi, q := range queries {
					got := sortedCopy(searcher.Within(q, radius))
					want := bruteForce(points, q, radius)
					if !equalInts(got, want) {
						t.Fatalf("Query %d radius %f: expected %d points, got %d", qi, radius, len(want), len(got))
					}
				}
			}
		})
	}
}

func TestTree_MatchesGonumOracle(t *testing.T) {
	points := randomPoints(2000, 3)
	tree := New(points, DefaultOptions())

	oraclePoints := make(gonumkd.Points, len(points))
	for i, p := range points {
		oraclePoints[i] = gonumkd.Point{p.X, p.Y, p.Z}
	}
	oracle := gonumkd.New(oraclePoints, false)

	for qi, q := range randomPoints(100, 4) {
		const radius = 0.8

		// Points.Distance is the squared Euclidean distance
		keeper := gonumkd.NewDistKeeper(radius * radius)
		oracle.NearestSet(keeper, gonumkd.Point{q.X, q.Y, q.Z})

		want := make(map[core.Vec3]bool)
		for _, c := range keeper.Heap {
			if c.Comparable == nil {
				continue
			}
			p := c.Comparable.(gonumkd.Point)
			want[core.NewVec3(p[0], p[1], p[2])] = true
		}

		got := tree.Within(q, radius)
		if len(got) != len(want) {
			t.Fatalf("Query %d: oracle found %d points, tree found %d", qi, len(want), len(got))
		}
		for _, i := range got {
			if !want[points[i]] {
				t.Fatalf("Query %d: tree returned %v which the oracle did not", qi, points[i])
			}
		}
	}
}

func TestTree_NoDuplicatesOnSplitPlanes(t *testing.T) {
	// A lattice puts many points exactly on midpoint split planes
	var points []core.Vec3
	for x := 0; x <= 8; x++ {
		for y := 0; y <= 8; y++ {
			for z := 0; z <= 8; z++ {
				points = append(points, core.NewVec3(float64(x), float64(y), float64(z)))
			}
		}
	}

	tree := New(points, DefaultOptions())
	if stats := tree.Stats(); stats.StoredIndices <= stats.Points {
		t.Errorf("Expected boundary points to be shared between children, got %d stored for %d points",
			stats.StoredIndices, stats.Points)
	}

	searcher := tree.NewSearcher()
	for _, center := range []core.Vec3{core.NewVec3(4, 4, 4), core.NewVec3(2, 6, 4), core.NewVec3(0, 0, 0)} {
		got := searcher.Within(center, 2.5)
		seen := make(map[int]bool)
		for _, i := range got {
			if seen[i] {
				t.Fatalf("Index %d returned twice for center %v", i, center)
			}
			seen[i] = true
		}
		if want := bruteForce(points, center, 2.5); len(got) != len(want) {
			t.Errorf("Center %v: expected %d points, got %d", center, len(want), len(got))
		}
	}
}

func TestTree_IdenticalPoints(t *testing.T) {
	// Splitting can never separate identical points; construction must still terminate
	points := make([]core.Vec3, 100)
	for i := range points {
		points[i] = core.NewVec3(1, 2, 3)
	}

	for _, split := range []SplitStrategy{SplitMidpoint, SplitMedian} {
		t.Run(string(split), func(t *testing.T) {
			options := DefaultOptions()
			options.Split = split
			tree := New(points, options)

			if got := tree.Within(core.NewVec3(1, 2, 3), 0.01); len(got) != 100 {
				t.Errorf("Expected all 100 points, got %d", len(got))
			}
			if got := tree.Within(core.NewVec3(2, 2, 3), 0.5); len(got) != 0 {
				t.Errorf("Expected no points, got %d", len(got))
			}
		})
	}
}

func TestTree_Empty(t *testing.T) {
	tree := New(nil, DefaultOptions())
	if got := tree.Within(core.Zero, 100); len(got) != 0 {
		t.Errorf("Expected no points from an empty tree, got %d", len(got))
	}
	if tree.Stats().Nodes != 0 {
		t.Errorf("Expected no nodes, got %d", tree.Stats().Nodes)
	}
}

func TestTree_NodesContainTheirPoints(t *testing.T) {
	points := randomPoints(3000, 9)
	for _, split := range []SplitStrategy{SplitMidpoint, SplitMedian} {
		tree := New(points, Options{Split: split, MinLeafSize: 16, MaxDepth: 100, Epsilon: core.Eps})

		for id, n := range tree.nodes {
			if !n.isLeaf() {
				continue
			}
			for _, i := range tree.indices[n.start:n.end] {
				if !n.bounds.Contains(points[i]) {
					t.Fatalf("%s: leaf %d stores point %v outside its range %v", split, id, points[i], n.bounds)
				}
			}
		}

		if tree.Stats().Leaves < 3000/16 {
			t.Errorf("%s: expected the tree to split, got %d leaves", split, tree.Stats().Leaves)
		}
	}
}

func TestParseSplitStrategy(t *testing.T) {
	if s, err := ParseSplitStrategy("median"); err != nil || s != SplitMedian {
		t.Errorf("Expected median, got %q (%v)", s, err)
	}
	if _, err := ParseSplitStrategy("sah"); err == nil {
		t.Error("Expected error for unknown split strategy")
	}
}

func TestTree_SplitsFlatPointSets(t *testing.T) {
	sampler := core.NewSeededSampler(11)
	var floor, room []core.Vec3
	for i := 0; i < 4000; i++ {
		uv := sampler.Get2D()
		floor = append(floor, core.NewVec3(uv.X*10, 0, uv.Y*10))
	}
	room = append(room, floor...)
	for i := 0; i < 4000; i++ {
		uv := sampler.Get2D()
		room = append(room, core.NewVec3(0, uv.X*10, uv.Y*10))
	}

	tests := []struct {
		name   string
		points []core.Vec3
	}{
		{"floor", floor},
		{"floor and wall", room},
	}

	for _, tt := range tests {
		for _, split := range []SplitStrategy{SplitMidpoint, SplitMedian} {
			t.Run(tt.name+"/"+string(split), func(t *testing.T) {
				options := DefaultOptions()
				options.Split = split
				tree := New(tt.points, options)

				stats := tree.Stats()
				if stats.MaxLeafSize >= options.MinLeafSize {
					t.Errorf("Expected leaves under %d points, got %d", options.MinLeafSize, stats.MaxLeafSize)
				}
				if stats.StoredIndices > 2*stats.Points {
					t.Errorf("Expected little boundary sharing, got %d stored for %d points", stats.StoredIndices, stats.Points)
				}

				searcher := tree.NewSearcher()
				for _, q := range []core.Vec3{core.NewVec3(5, 0, 5), core.NewVec3(0, 5, 5), core.NewVec3(0.5, 0.5, 9)} {
					if got, want := searcher.Within(q, 0.7), bruteForce(tt.points, q, 0.7); len(got) != len(want) {
						t.Errorf("Query %v: expected %d points, got %d", q, len(want), len(got))
					}
				}
			})
		}
	}
}
