package geometry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Leaves hold primitives directly as children; a single-object subtree
// stores the same object on both sides.
type BVHNode struct {
	Left  core.Hittable
	Right core.Hittable
	Box   core.AABB
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	Objects    int
}

// NewBVH builds a hierarchy over objects. Every object must report a bounding
// box over [time0, time1]. The split axis of each node is drawn from random.
func NewBVH(objects []core.Hittable, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, errors.New("cannot build bvh over an empty object list")
	}

	// Validate once up front so the recursive build never sees a missing box
	boxes := make([]core.AABB, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("object %d (%T) has no bounding box", i, object)
		}
		boxes[i] = box
	}

	// Work on a copy so the caller's slice order is preserved
	entries := make([]bvhEntry, len(objects))
	for i := range objects {
		entries[i] = bvhEntry{object: objects[i], box: boxes[i]}
	}

	return buildBVH(entries, random), nil
}

// bvhEntry pairs an object with its precomputed bounding box
type bvhEntry struct {
	object core.Hittable
	box    core.AABB
}

// buildBVH recursively splits entries at the median along a random axis
func buildBVH(entries []bvhEntry, random *rand.Rand) *BVHNode {
	axis := random.Intn(3)
	less := func(a, b bvhEntry) bool {
		return a.box.Min.Component(axis) < b.box.Min.Component(axis)
	}

	node := &BVHNode{}
	var leftBox, rightBox core.AABB

	switch len(entries) {
	case 1:
		node.Left, node.Right = entries[0].object, entries[0].object
		leftBox, rightBox = entries[0].box, entries[0].box
	case 2:
		first, second := entries[0], entries[1]
		if less(second, first) {
			first, second = second, first
		}
		node.Left, node.Right = first.object, second.object
		leftBox, rightBox = first.box, second.box
	default:
		sort.Slice(entries, func(i, j int) bool {
			return less(entries[i], entries[j])
		})
		mid := len(entries) / 2
		left := buildBVH(entries[:mid], random)
		right := buildBVH(entries[mid:], random)
		node.Left, node.Right = left, right
		leftBox, rightBox = left.Box, right.Box
	}

	node.Box = leftBox.Union(rightBox)
	return node
}

// Hit tests the node box, then both children. The right child is queried with
// the upper bound tightened to the left hit and wins when it hits.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the node box computed at build time
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// Stats returns statistics about the BVH structure
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []core.Hittable{n.Left}
	if n.Right != n.Left {
		children = append(children, n.Right)
	}

	isLeaf := true
	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			isLeaf = false
			node.collectStats(depth+1, stats)
		} else {
			stats.Objects++
		}
	}
	if isLeaf {
		stats.LeafNodes++
	}
}
