// Package pathsearch implements the bidirectional best-first traversal of
// spec.md §4.4: given a Registry, a source frame, and a target frame, find
// the path whose worst per-edge interpolation error (time_to_nearest) is
// smallest, expanding frontiers from both ends simultaneously until they
// meet.
package pathsearch

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/frametree/tfcache/frame"
)

// ErrNotConnected is returned when no path exists between source and target.
var ErrNotConnected = errors.New("tf: frames are not connected")

// NotConnectedError carries the two frame IDs that could not be joined.
type NotConnectedError struct {
	Source, Target frame.ID
}

func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("tf: %q and %q are not connected", e.Source, e.Target)
}

func (e *NotConnectedError) Unwrap() error { return ErrNotConnected }

// searchNode is the bidirectional wrapper of spec §4.4 step 1: a frame
// carries up to two parentage links, one toward the source frontier
// (back) and one toward the target frontier (fwd). A node with both set
// is a meeting point.
type searchNode struct {
	id   frame.ID
	cost int64
	seq  int
	back *searchNode
	fwd  *searchNode
}

// nodeHeap orders searchNodes by (cost, seq) ascending, giving FIFO
// tie-breaking among equal-cost nodes (spec §4.4 "Tie-break").
type nodeHeap []*searchNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(*searchNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Search runs the bidirectional best-first search and returns the inverse
// leg (ordered from the meeting frame out to source) and forward leg
// (ordered from the meeting frame out to target), each as a list of edge
// samples evaluated at t,
// ready for tfcore's composition pipeline. Both frames are resolved into
// reg if not already present — an unreferenced frame is a valid, just
// edge-less, search node.
func Search(reg *frame.Registry, source, target frame.ID, at frame.Stamp) (inverse, forward []frame.Transform, err error) {
	if source == target {
		return nil, nil, nil
	}

	seq := 0
	nextSeq := func() int { seq++; return seq }

	sourceNode := &searchNode{id: source, seq: nextSeq()}
	sourceNode.back = sourceNode
	targetNode := &searchNode{id: target, seq: nextSeq()}
	targetNode.fwd = targetNode

	visited := map[frame.ID]*searchNode{
		source: sourceNode,
		target: targetNode,
	}

	q := &nodeHeap{sourceNode, targetNode}
	heap.Init(q)

	for q.Len() > 0 {
		cur := heap.Pop(q).(*searchNode)

		if cur.back != nil && cur.fwd != nil {
			return reconstruct(reg, cur, source, target, at)
		}

		f := reg.ResolveOrInsert(cur.id)
		for _, parent := range f.ParentFrames() {
			existing, seen := visited[parent]

			var candidate *searchNode
			switch {
			case !seen:
				candidate = &searchNode{id: parent, seq: nextSeq()}
				visited[parent] = candidate
			case (existing.back == nil && cur.fwd == nil) || (existing.fwd == nil && cur.back == nil):
				// Visited from the opposite direction: fork a meeting
				// candidate without disturbing the original node, which
				// stays in the queue for its own side (spec §4.4 step 6).
				candidate = &searchNode{id: existing.id, back: existing.back, fwd: existing.fwd, seq: nextSeq()}
			default:
				continue // already visited from the same direction
			}

			tc := f.TimeCacheFor(parent)
			edgeCost := tc.TimeToNearest(at)
			joinedCost := int64(0)
			if seen {
				joinedCost = existing.cost
			}
			candidate.cost = maxInt64(maxInt64(cur.cost, joinedCost), edgeCost)
			if cur.back != nil {
				candidate.back = cur
			}
			if cur.fwd != nil {
				candidate.fwd = cur
			}
			heap.Push(q, candidate)
		}
	}

	return nil, nil, &NotConnectedError{Source: source, Target: target}
}

func reconstruct(reg *frame.Registry, meet *searchNode, source, target frame.ID, at frame.Stamp) ([]frame.Transform, []frame.Transform, error) {
	var inverse []frame.Transform
	for node := meet; node.id != source; {
		child := node.back
		tc := childCache(reg, child.id, node.id)
		data, err := tc.GetData(at, "")
		if err != nil {
			return nil, nil, err
		}
		inverse = append(inverse, data)
		node = child
	}

	var forward []frame.Transform
	for node := meet; node.id != target; {
		child := node.fwd
		tc := childCache(reg, child.id, node.id)
		data, err := tc.GetData(at, "")
		if err != nil {
			return nil, nil, err
		}
		forward = append(forward, data)
		node = child
	}

	return inverse, forward, nil
}

func childCache(reg *frame.Registry, childID, parentID frame.ID) *frame.TimeCache {
	f, _ := reg.Get(childID)
	if f == nil {
		return frame.NewTimeCache(0)
	}
	tc := f.TimeCacheFor(parentID)
	if tc == nil {
		return frame.NewTimeCache(0)
	}
	return tc
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
