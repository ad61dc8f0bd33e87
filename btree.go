package bptree

import (
	"cmp"
	"fmt"

	"github.com/kerns-huang/bptree/internal/algo"
)

// Stats counts structural events since the tree was created
type Stats struct {
	Splits        uint64 // Leaf and branch splits
	Merges        uint64 // Sibling merges on underflow
	Borrows       uint64 // Entries moved from a sibling on underflow
	RootGrowths   uint64 // Splits that created a new root
	RootCollapses uint64 // Roots replaced by their single remaining child
}

// Tree is an in-memory B+ tree ordered by a caller supplied comparator.
//
// A Tree is not safe for concurrent use. Every Insert and Delete may replace
// the root, so callers must not hold on to nodes or cursors across mutations.
type Tree[K any, V any] struct {
	order int
	cmp   func(a, b K) int
	root  *node[K, V]
	size  int

	// Bumped by every mutation, used to detect stale cursors
	version uint64

	stats Stats
	opts  Options
}

// step is one level of the path recorded while descending for a delete
type step[K any, V any] struct {
	node  *node[K, V]
	index int // child index the descent continued into
}

// New creates an empty tree of the given order. The order is the maximum
// number of children of a branch and the maximum number of keys of a leaf
// plus one; it must be at least MinOrder. compare must define a total order
// and return a negative number, zero or a positive number when a < b,
// a == b or a > b.
func New[K any, V any](order int, compare func(a, b K) int, opts ...Option) (*Tree[K, V], error) {
	if order < MinOrder {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	if compare == nil {
		return nil, ErrNilComparator
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Tree[K, V]{
		order: order,
		cmp:   compare,
		root:  newLeaf[K, V](order),
		opts:  options,
	}, nil
}

// NewOrdered creates an empty tree for keys with a natural ordering
func NewOrdered[K cmp.Ordered, V any](order int, opts ...Option) (*Tree[K, V], error) {
	return New[K, V](order, cmp.Compare[K], opts...)
}

// Order returns the order the tree was created with
func (t *Tree[K, V]) Order() int {
	return t.order
}

// Name returns the label configured with WithName
func (t *Tree[K, V]) Name() string {
	return t.opts.name
}

// Size returns the number of distinct keys stored
func (t *Tree[K, V]) Size() int {
	return t.size
}

// IsEmpty reports whether the tree holds no keys
func (t *Tree[K, V]) IsEmpty() bool {
	return t.size == 0
}

// Height returns the number of levels, 1 for a tree whose root is a leaf
func (t *Tree[K, V]) Height() int {
	h := 1
	for n := t.root; !n.isLeaf; n = n.children[0] {
		h++
	}
	return h
}

// Stats returns a snapshot of the structural counters
func (t *Tree[K, V]) Stats() Stats {
	return t.stats
}

// Get returns the value stored for key. The boolean is false if the key is
// absent.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	leaf := t.findLeaf(key)
	if i := leaf.getIndex(key, t.cmp); i >= 0 {
		return leaf.values[i], true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is stored in the tree
func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// findLeaf descends from the root to the leaf that owns key
func (t *Tree[K, V]) findLeaf(key K) *node[K, V] {
	n := t.root
	for !n.isLeaf {
		n = n.children[n.childFor(key, t.cmp)]
	}
	return n
}

// Insert stores value under key. An existing key has its value replaced in
// place without any structural change.
func (t *Tree[K, V]) Insert(key K, value V) {
	leaf := t.findLeaf(key)

	i := leaf.getIndex(key, t.cmp)
	if i >= 0 {
		leaf.values[i] = value
		return
	}

	pos := algo.Decode(i)
	leaf.keys = algo.InsertAt(leaf.keys, pos, key)
	leaf.values = algo.InsertAt(leaf.values, pos, value)
	t.size++
	t.version++

	if leaf.isOverflowed(t.order) {
		t.split(leaf)
	}
}

// split splits n and walks up the parent links, splitting every ancestor
// that overflows in turn. A new root is created when the old root splits.
func (t *Tree[K, V]) split(n *node[K, V]) {
	for n.isOverflowed(t.order) {
		var right *node[K, V]
		var separator K
		if n.isLeaf {
			right, separator = t.splitLeaf(n)
		} else {
			right, separator = t.splitBranch(n)
		}
		t.stats.Splits++

		parent := n.parent
		if parent == nil {
			parent = newBranch[K, V](t.order)
			parent.children = append(parent.children, n)
			n.parent = parent
			t.root = parent
			t.stats.RootGrowths++
			t.opts.logger.Info("root split", "tree", t.opts.name, "height", t.Height(), "size", t.size)
		}

		t.insertChild(parent, n, separator, right)
		n = parent
	}
}

// splitLeaf moves the upper half of n into a new right sibling and returns
// it with its first key, which becomes the separator in the parent
func (t *Tree[K, V]) splitLeaf(n *node[K, V]) (*node[K, V], K) {
	mid := len(n.keys) >> 1

	right := newLeaf[K, V](t.order)
	right.keys = append(right.keys, n.keys[mid:]...)
	right.values = append(right.values, n.values[mid:]...)

	clear(n.keys[mid:])
	clear(n.values[mid:])
	n.keys = n.keys[:mid]
	n.values = n.values[:mid]

	// Splice right into the sibling chain after n
	right.next = n.next
	if n.next != nil {
		n.next.prev = right
	}
	n.next = right
	right.prev = n

	return right, right.keys[0]
}

// splitBranch moves the keys above the middle key and the children to the
// right of it into a new branch. The middle key itself moves up.
func (t *Tree[K, V]) splitBranch(n *node[K, V]) (*node[K, V], K) {
	mid := len(n.keys) >> 1
	separator := n.keys[mid]

	right := newBranch[K, V](t.order)
	right.keys = append(right.keys, n.keys[mid+1:]...)
	right.children = append(right.children, n.children[mid+1:]...)
	right.adopt(right.children)

	clear(n.keys[mid:])
	clear(n.children[mid+1:])
	n.keys = n.keys[:mid]
	n.children = n.children[:mid+1]

	return right, separator
}

// insertChild links right into parent directly after left, with separator
// as the key between them
func (t *Tree[K, V]) insertChild(parent, left *node[K, V], separator K, right *node[K, V]) {
	i := parent.getIndex(separator, t.cmp)
	if i >= 0 {
		panic(corruption("separator already present in parent"))
	}
	pos := algo.Decode(i)
	if parent.children[pos] != left {
		panic(corruption("split node is not child %d of its parent", pos))
	}

	parent.keys = algo.InsertAt(parent.keys, pos, separator)
	parent.children = algo.InsertAt(parent.children, pos+1, right)
	right.parent = parent
}

// Delete removes key from the tree and reports whether it was present.
// Deleting an absent key is a no-op.
func (t *Tree[K, V]) Delete(key K) bool {
	var path []step[K, V]

	n := t.root
	for !n.isLeaf {
		i := n.childFor(key, t.cmp)
		path = append(path, step[K, V]{node: n, index: i})
		n = n.children[i]
	}

	i := n.getIndex(key, t.cmp)
	if i < 0 {
		return false
	}

	n.keys = algo.RemoveAt(n.keys, i)
	n.values = algo.RemoveAt(n.values, i)
	t.size--
	t.version++

	t.rebalance(n, path)
	return true
}

// rebalance restores the minimum occupancy of n after a removal, walking
// the recorded ancestor path upward for as long as merges leave the parent
// underflowed. Only one sibling is consulted per level: the right one for
// the leftmost child, the left one otherwise.
func (t *Tree[K, V]) rebalance(n *node[K, V], path []step[K, V]) {
	for level := len(path) - 1; level >= 0 && n.isUnderflowed(t.order); level-- {
		parent, idx := path[level].node, path[level].index
		if parent.children[idx] != n {
			panic(corruption("ancestor path does not lead back to node at level %d", level))
		}

		if idx == 0 {
			right := parent.children[1]
			if right.hasSlack(t.order) {
				t.borrowFromRight(n, right, parent, 0)
				return
			}
			t.mergeNodes(n, right, parent, 0)
		} else {
			left := parent.children[idx-1]
			if left.hasSlack(t.order) {
				t.borrowFromLeft(n, left, parent, idx-1)
				return
			}
			t.mergeNodes(left, n, parent, idx-1)
		}

		n = parent
	}

	t.collapseRoot()
}

// borrowFromRight moves entries from the front of the right sibling to the
// end of n until n is back at the minimum occupancy
func (t *Tree[K, V]) borrowFromRight(n, right, parent *node[K, V], sepIdx int) {
	for n.isUnderflowed(t.order) && right.hasSlack(t.order) {
		if n.isLeaf {
			n.keys = append(n.keys, right.keys[0])
			n.values = append(n.values, right.values[0])
			right.keys = algo.RemoveAt(right.keys, 0)
			right.values = algo.RemoveAt(right.values, 0)
		} else {
			// Separator rotates down into n, right's first key rotates up
			child := right.children[0]
			n.keys = append(n.keys, parent.keys[sepIdx])
			n.children = append(n.children, child)
			child.parent = n
			parent.keys[sepIdx] = right.keys[0]
			right.keys = algo.RemoveAt(right.keys, 0)
			right.children = algo.RemoveAt(right.children, 0)
		}
		t.stats.Borrows++
	}

	if n.isLeaf {
		parent.keys[sepIdx] = right.keys[0]
	}
}

// borrowFromLeft moves entries from the end of the left sibling to the
// front of n until n is back at the minimum occupancy
func (t *Tree[K, V]) borrowFromLeft(n, left, parent *node[K, V], sepIdx int) {
	for n.isUnderflowed(t.order) && left.hasSlack(t.order) {
		last := len(left.keys) - 1
		if n.isLeaf {
			n.keys = algo.InsertAt(n.keys, 0, left.keys[last])
			n.values = algo.InsertAt(n.values, 0, left.values[last])
			left.keys = algo.RemoveAt(left.keys, last)
			left.values = algo.RemoveAt(left.values, last)
		} else {
			child := left.children[last+1]
			n.keys = algo.InsertAt(n.keys, 0, parent.keys[sepIdx])
			n.children = algo.InsertAt(n.children, 0, child)
			child.parent = n
			parent.keys[sepIdx] = left.keys[last]
			left.keys = algo.RemoveAt(left.keys, last)
			left.children = algo.RemoveAt(left.children, last+1)
		}
		t.stats.Borrows++
	}

	if n.isLeaf {
		parent.keys[sepIdx] = n.keys[0]
	}
}

// mergeNodes folds right into left and drops the separator at sepIdx and
// the right child from parent. Branch merges pull the separator down.
func (t *Tree[K, V]) mergeNodes(left, right, parent *node[K, V], sepIdx int) {
	if left.isLeaf {
		left.keys = append(left.keys, right.keys...)
		left.values = append(left.values, right.values...)

		// Unlink right from the sibling chain
		left.next = right.next
		if right.next != nil {
			right.next.prev = left
		}
	} else {
		left.keys = append(left.keys, parent.keys[sepIdx])
		left.keys = append(left.keys, right.keys...)
		left.children = append(left.children, right.children...)
		left.adopt(right.children)
	}

	parent.keys = algo.RemoveAt(parent.keys, sepIdx)
	parent.children = algo.RemoveAt(parent.children, sepIdx+1)

	right.detach()
	t.stats.Merges++
}

// collapseRoot replaces a branch root that is down to one child by that
// child
func (t *Tree[K, V]) collapseRoot() {
	for !t.root.isLeaf && len(t.root.children) == 1 {
		old := t.root
		t.root = old.children[0]
		t.root.parent = nil
		old.detach()
		t.stats.RootCollapses++
		t.opts.logger.Info("root collapsed", "tree", t.opts.name, "height", t.Height(), "size", t.size)
	}
}

// corruption builds the error used when a structural invariant is broken
// in the middle of a mutation
func corruption(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruption, fmt.Sprintf(format, args...))
}
