package bptree

import (
	"github.com/kerns-huang/bptree/internal/algo"
)

// MinOrder is the smallest order for which the occupancy bounds hold
const MinOrder = 4

// node is either a leaf or a branch. Leaves hold values aligned with keys and
// are chained to their siblings; branches hold len(keys)+1 children.
type node[K any, V any] struct {
	isLeaf bool
	keys   []K

	// Leaf only
	values []V
	prev   *node[K, V]
	next   *node[K, V]

	// Branch only
	children []*node[K, V]

	// Non-owning back-pointer, nil for the root
	parent *node[K, V]
}

func newLeaf[K any, V any](order int) *node[K, V] {
	return &node[K, V]{
		isLeaf: true,
		keys:   make([]K, 0, order),
		values: make([]V, 0, order),
	}
}

func newBranch[K any, V any](order int) *node[K, V] {
	return &node[K, V]{
		keys:     make([]K, 0, order),
		children: make([]*node[K, V], 0, order+1),
	}
}

// minKeys is the minimum key count of a non-root node: ceil(m/2) - 1
func minKeys(order int) int {
	return (order+1)/2 - 1
}

// isOverflowed reports whether the node holds more than m-1 keys. For a
// branch that is the same as holding more than m children.
func (n *node[K, V]) isOverflowed(order int) bool {
	return len(n.keys) > order-1
}

// isUnderflowed checks if node has too few keys (doesn't apply to root)
func (n *node[K, V]) isUnderflowed(order int) bool {
	return len(n.keys) < minKeys(order)
}

// hasSlack reports whether the node can give an entry away and stay at or
// above the minimum occupancy
func (n *node[K, V]) hasSlack(order int) bool {
	return len(n.keys) > minKeys(order)
}

// getIndex returns the slot of key, or -(insertionPoint)-1 when absent
func (n *node[K, V]) getIndex(key K, cmp func(a, b K) int) int {
	return algo.Search(n.keys, key, cmp)
}

// childFor returns the index of the child that owns key
func (n *node[K, V]) childFor(key K, cmp func(a, b K) int) int {
	return algo.ChildIndex(n.keys, key, cmp)
}

// adopt sets the parent of every child in children to n
func (n *node[K, V]) adopt(children []*node[K, V]) {
	for _, c := range children {
		c.parent = n
	}
}

// detach clears every link of a node that has been merged away so that any
// later use of a stale reference is caught by the consistency check
func (n *node[K, V]) detach() {
	n.keys = nil
	n.values = nil
	n.children = nil
	n.parent = nil
	n.prev = nil
	n.next = nil
}
