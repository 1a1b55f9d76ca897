// Package bvh builds a bounding volume hierarchy over world-space boxes and
// answers ray queries against it.
package bvh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is an inner node when Left and Right are set, otherwise a leaf holding
// the index of one input box in Leaf.
type Node struct {
	Min   mgl32.Vec3
	Max   mgl32.Vec3
	Left  int32
	Right int32
	Leaf  int32
}

func (n *Node) IsLeaf() bool {
	return n.Left < 0
}

type item struct {
	min      mgl32.Vec3
	max      mgl32.Vec3
	centroid mgl32.Vec3
	index    int
}

// Tree is rooted at Nodes[0]. An empty tree has no nodes.
type Tree struct {
	Nodes []Node
}

// Build splits the boxes at the centroid median of the longest axis until
// every leaf holds one box.
func Build(boxes [][2]mgl32.Vec3) *Tree {
	t := &Tree{}
	if len(boxes) == 0 {
		return t
	}
	items := make([]item, len(boxes))
	for i, b := range boxes {
		items[i] = item{
			min:      b[0],
			max:      b[1],
			centroid: b[0].Add(b[1]).Mul(0.5),
			index:    i,
		}
	}
	t.Nodes = make([]Node, 0, 2*len(boxes)-1)
	t.build(items)
	return t
}

func (t *Tree) build(items []item) int32 {
	idx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Left: -1, Right: -1, Leaf: -1})

	inf := float32(math.Inf(1))
	minB := mgl32.Vec3{inf, inf, inf}
	maxB := mgl32.Vec3{-inf, -inf, -inf}
	for _, it := range items {
		for k := 0; k < 3; k++ {
			minB[k] = min(minB[k], it.min[k])
			maxB[k] = max(maxB[k], it.max[k])
		}
	}
	t.Nodes[idx].Min = minB
	t.Nodes[idx].Max = maxB

	if len(items) == 1 {
		t.Nodes[idx].Leaf = int32(items[0].index)
		return idx
	}

	extent := maxB.Sub(minB)
	axis := 0
	if extent[1] > extent[axis] {
		axis = 1
	}
	if extent[2] > extent[axis] {
		axis = 2
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].centroid[axis] < items[j].centroid[axis]
	})

	mid := len(items) / 2
	left := t.build(items[:mid])
	right := t.build(items[mid:])
	t.Nodes[idx].Left = left
	t.Nodes[idx].Right = right
	return idx
}

// IntersectBox returns the parametric interval in which the ray origin + t*dir
// lies inside the box, clipped to t >= 0.
func IntersectBox(origin, dir, minB, maxB mgl32.Vec3) (tEnter, tExit float32, ok bool) {
	tEnter, tExit = 0, float32(math.MaxFloat32)
	for k := 0; k < 3; k++ {
		if math.Abs(float64(dir[k])) < 1e-12 {
			if origin[k] < minB[k] || origin[k] > maxB[k] {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / dir[k]
		t1 := (minB[k] - origin[k]) * inv
		t2 := (maxB[k] - origin[k]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tEnter = max(tEnter, t1)
		tExit = min(tExit, t2)
	}
	return tEnter, tExit, tEnter <= tExit
}

// Ray visits the leaves whose boxes the ray enters before tMax, nearer
// children first. visit returns the new tMax, so a caller that found a hit
// can prune everything behind it.
func (t *Tree) Ray(origin, dir mgl32.Vec3, tMax float32, visit func(index int, tEnter float32) float32) {
	if len(t.Nodes) == 0 {
		return
	}
	stack := []int32{0}
	for len(stack) > 0 {
		n := &t.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		tEnter, _, ok := IntersectBox(origin, dir, n.Min, n.Max)
		if !ok || tEnter > tMax {
			continue
		}
		if n.IsLeaf() {
			tMax = visit(int(n.Leaf), tEnter)
			continue
		}

		l, r := &t.Nodes[n.Left], &t.Nodes[n.Right]
		tl, _, okL := IntersectBox(origin, dir, l.Min, l.Max)
		tr, _, okR := IntersectBox(origin, dir, r.Min, r.Max)
		near, far := n.Left, n.Right
		if okR && (!okL || tr < tl) {
			near, far = far, near
		}
		// Pushed last, popped first.
		stack = append(stack, far, near)
	}
}
