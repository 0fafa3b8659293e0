// Package hull maintains the convex hull boundary of a growing
// triangulation as a circular, pseudo-angle-ordered doubly linked list,
// bucketed by angle for near-O(1) expected lookup of the hull edge a new
// point falls outside of.
//
// The bucket array is resized to keep roughly n/2 <= numBuckets <= 4n
// (with a floor of 16 buckets) as the hull grows or shrinks, the way a
// open-addressed hash table resizes its backing array.
package hull

import (
	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

const minBuckets = 16

type node struct {
	vertex  types.VertexID
	angle   float64
	next    int
	prev    int
	bucket  int
	removed bool
}

// Node is an opaque handle into the hull's node arena.
type Node int

// NilNode is the sentinel for an absent hull node.
const NilNode Node = -1

// Index tracks the convex hull of a point set as a circular list of
// (angle, vertex) nodes ordered by pseudo-angle around a fixed center.
type Index struct {
	center  types.Point
	nodes   []node
	free    []int
	buckets []int // bucket -> node index of the first node at/after that bucket's angle, or -1
	count   int
	head    int // any live node, or -1 if empty
}

// New creates a hull index centered at center, sized for an expected n
// hull vertices.
func New(center types.Point, n int) *Index {
	idx := &Index{center: center, head: -1}
	idx.nodes = make([]node, 0, n)
	idx.resizeBuckets(n)
	return idx
}

func bucketCount(n int) int {
	k := minBuckets
	for k < n/2 {
		k *= 2
	}
	return k
}

func (idx *Index) resizeBuckets(n int) {
	k := bucketCount(n)
	idx.buckets = make([]int, k)
	for i := range idx.buckets {
		idx.buckets[i] = -1
	}
	idx.rebucketAll()
}

func (idx *Index) bucketOf(angle float64) int {
	k := len(idx.buckets)
	b := int(angle * float64(k))
	if b < 0 {
		b = 0
	}
	if b >= k {
		b = k - 1
	}
	return b
}

// rebucketAll does a full O(numBuckets + ring size) rebuild of the bucket
// array. It is only correct to call after a resize (maybeGrow/maybeShrink
// reallocating idx.buckets to a different length): every other mutation
// must use the O(1) bucketizeNode instead, or the Index degrades to O(hull
// size) per insert/remove.
func (idx *Index) rebucketAll() {
	for i := range idx.buckets {
		idx.buckets[i] = -1
	}
	if idx.head < 0 {
		return
	}
	h := idx.head
	for {
		n := &idx.nodes[h]
		n.bucket = idx.bucketOf(n.angle)
		if cur := idx.buckets[n.bucket]; cur < 0 || idx.nodes[cur].angle > n.angle {
			idx.buckets[n.bucket] = h
		}
		h = n.next
		if h == idx.head {
			break
		}
	}
}

// bucketizeNode assigns node i's bucket field and, if it is now the
// minimum-angle node in that bucket, updates the bucket's representative.
// This is the O(1) counterpart to rebucketAll, used on every insert/remove
// that doesn't change the shape of the bucket array.
func (idx *Index) bucketizeNode(i int) {
	n := &idx.nodes[i]
	n.bucket = idx.bucketOf(n.angle)
	if cur := idx.buckets[n.bucket]; cur < 0 || idx.nodes[cur].angle > n.angle {
		idx.buckets[n.bucket] = i
	}
}

// Len returns the number of live vertices on the hull.
func (idx *Index) Len() int { return idx.count }

// Vertex returns the vertex stored at node n.
func (idx *Index) Vertex(n Node) types.VertexID { return idx.nodes[n].vertex }

// Next returns the next node CCW around the hull.
func (idx *Index) Next(n Node) Node { return Node(idx.nodes[n].next) }

// Prev returns the previous node CCW around the hull (i.e. next CW).
func (idx *Index) Prev(n Node) Node { return Node(idx.nodes[n].prev) }

func (idx *Index) angleOf(p types.Point) float64 {
	return predicates.PseudoAngle(p, idx.center)
}

// InsertFirstThree seeds the hull with the triangle (a,b,c), whose points
// are supplied so the three can be ordered by pseudo-angle around the
// index's center.
func (idx *Index) InsertFirstThree(verts [3]types.VertexID, points [3]types.Point) {
	for i := range verts {
		idx.insertNode(verts[i], idx.angleOf(points[i]))
	}
}

func (idx *Index) insertNode(v types.VertexID, angle float64) Node {
	var i int
	if n := len(idx.free); n > 0 {
		i = idx.free[n-1]
		idx.free = idx.free[:n-1]
	} else {
		idx.nodes = append(idx.nodes, node{})
		i = len(idx.nodes) - 1
	}

	idx.count++
	if idx.maybeGrow() {
		// Buckets just got reallocated; rebuild the full array against the
		// ring as it stands before the new node is spliced in, so the
		// findPredecessor lookup below (and the head<0 bootstrap case) see
		// a consistent bucket array rather than zero-valued garbage.
		idx.rebucketAll()
	}

	if idx.head < 0 {
		idx.nodes[i] = node{vertex: v, angle: angle, next: i, prev: i}
		idx.head = i
		idx.bucketizeNode(i)
		return Node(i)
	}

	pred := idx.findPredecessor(angle)
	succ := idx.nodes[pred].next

	idx.nodes[i] = node{vertex: v, angle: angle, next: succ, prev: pred}
	idx.nodes[pred].next = i
	idx.nodes[succ].prev = i

	idx.bucketizeNode(i)
	return Node(i)
}

// InsertAfter inserts vertex v (at point p) immediately CCW of node after,
// maintaining angular order. Used when the caller already knows the
// correct hull position (e.g. during a circle-sweep bulk load), avoiding
// the bucket search InsertSorted performs.
func (idx *Index) InsertAfter(after Node, v types.VertexID, p types.Point) Node {
	angle := idx.angleOf(p)
	var i int
	if n := len(idx.free); n > 0 {
		i = idx.free[n-1]
		idx.free = idx.free[:n-1]
	} else {
		idx.nodes = append(idx.nodes, node{})
		i = len(idx.nodes) - 1
	}
	succ := idx.nodes[after].next
	idx.nodes[i] = node{vertex: v, angle: angle, next: succ, prev: int(after)}
	idx.nodes[after].next = i
	idx.nodes[succ].prev = i
	idx.count++
	if idx.maybeGrow() {
		idx.rebucketAll()
	} else {
		idx.bucketizeNode(i)
	}
	return Node(i)
}

// InsertSorted inserts vertex v at point p in its angularly correct
// position and returns the new node.
func (idx *Index) InsertSorted(v types.VertexID, p types.Point) Node {
	return idx.insertNode(v, idx.angleOf(p))
}

// Remove deletes node n from the hull.
func (idx *Index) Remove(n Node) {
	nd := &idx.nodes[n]
	b := nd.bucket
	wasRepresentative := idx.buckets[b] == int(n)
	replacement := nd.next

	if nd.next == int(n) {
		idx.head = -1
	} else {
		idx.nodes[nd.prev].next = nd.next
		idx.nodes[nd.next].prev = nd.prev
		if idx.head == int(n) {
			idx.head = nd.next
		}
	}
	nd.removed = true
	idx.free = append(idx.free, int(n))
	idx.count--

	if idx.maybeShrink() {
		idx.rebucketAll()
		return
	}
	if !wasRepresentative {
		return
	}
	// n was the angle-minimum node of bucket b. Bucket membership forms a
	// contiguous run along the angle-sorted ring (bucketOf is a monotone
	// step function of angle, and the ring's single wrap point never cuts
	// through a bucket's interior), so n's ring successor is either still
	// in bucket b - and is then the new minimum by construction - or b is
	// now empty.
	if idx.count == 0 {
		idx.buckets[b] = -1
	} else if idx.nodes[replacement].bucket == b {
		idx.buckets[b] = replacement
	} else {
		idx.buckets[b] = -1
	}
}

func (idx *Index) maybeGrow() bool {
	k := len(idx.buckets)
	if idx.count > 2*k {
		idx.buckets = make([]int, bucketCount(idx.count))
		return true
	}
	return false
}

func (idx *Index) maybeShrink() bool {
	k := len(idx.buckets)
	if k > minBuckets && idx.count*4 < k {
		idx.buckets = make([]int, bucketCount(idx.count))
		return true
	}
	return false
}

// FindNode looks up the hull node holding vertex v by scanning the ring.
// The hull is expected to stay small relative to the full vertex set for
// most inputs, so this linear scan is acceptable outside of the hot
// per-point insertion path (it is only used for outside-hull expansion and
// hull-vertex removal, both already O(hull size) operations).
func (idx *Index) FindNode(v types.VertexID) (Node, bool) {
	if idx.head < 0 {
		return NilNode, false
	}
	n := idx.head
	for {
		if idx.nodes[n].vertex == v {
			return Node(n), true
		}
		n = idx.nodes[n].next
		if n == idx.head {
			return NilNode, false
		}
	}
}

// FindPredecessor returns the hull node whose angle is the largest one
// not exceeding angle (wrapping), i.e. the hull edge that a point at this
// angle lies just CCW of. Exported for the triangulation kernel's
// outside-hull insertion and the bulk loader's sweep.
func (idx *Index) FindPredecessor(angle float64) Node {
	return Node(idx.findPredecessor(angle))
}

// FindPredecessorOfPoint is a convenience wrapper computing the pseudo-angle
// of p around the index's center before searching.
func (idx *Index) FindPredecessorOfPoint(p types.Point) Node {
	return idx.FindPredecessor(idx.angleOf(p))
}

// findPredecessor returns the node with the largest angle <= the query
// angle (wrapping around the minimum-angle node if the query precedes
// every node). It uses the bucket array to jump near the right spot, then
// confirms/corrects with a short local walk, the way the teacher's
// Locator walk steps from a hint rather than searching from scratch.
func (idx *Index) findPredecessor(angle float64) int {
	b := idx.bucketOf(angle)
	k := len(idx.buckets)

	start := -1
	for offset := 0; offset < k; offset++ {
		bi := (b + offset) % k
		if idx.buckets[bi] >= 0 {
			start = idx.buckets[bi]
			break
		}
	}
	if start < 0 {
		start = idx.head
	}

	// start is some node whose bucket is >= b; walk backward (prev) until
	// we find the last node with angle <= query, which is the predecessor.
	n := start
	for idx.nodes[n].angle > angle {
		p := idx.nodes[n].prev
		if p == start {
			// Wrapped all the way around: every node has angle > query.
			return idx.maxAngleNode()
		}
		n = p
	}
	for {
		nxt := idx.nodes[n].next
		if idx.nodes[nxt].angle > angle || idx.nodes[nxt].angle < idx.nodes[n].angle || nxt == start {
			return n
		}
		n = nxt
	}
}

// Loop returns the hull's vertices in CCW order starting from an
// arbitrary node, for callers (package mesh) that need a snapshot of the
// convex hull boundary rather than incremental node handles.
func (idx *Index) Loop() []types.VertexID {
	if idx.head < 0 {
		return nil
	}
	out := make([]types.VertexID, 0, idx.count)
	n := idx.head
	for {
		out = append(out, idx.nodes[n].vertex)
		n = idx.nodes[n].next
		if n == idx.head {
			break
		}
	}
	return out
}

func (idx *Index) maxAngleNode() int {
	n := idx.head
	best := idx.head
	for {
		if idx.nodes[n].angle > idx.nodes[best].angle {
			best = n
		}
		n = idx.nodes[n].next
		if n == idx.head {
			break
		}
	}
	return best
}
