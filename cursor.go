package bptree

import (
	"github.com/kerns-huang/bptree/internal/algo"
)

// Cursor provides ordered iteration over the keys of a tree by walking the
// leaf sibling chain. A cursor is invalidated by any Insert of a new key or
// any Delete made on its tree after it was positioned.
type Cursor[K any, V any] struct {
	tree    *Tree[K, V]
	leaf    *node[K, V] // Leaf holding the current entry
	index   int         // Slot of the current entry within leaf
	version uint64      // Tree version the cursor was positioned at
	valid   bool        // Is cursor positioned on valid key?
}

// Cursor creates a new cursor for this tree.
// Cursor starts in invalid state - call First, Last or Seek to position it
func (t *Tree[K, V]) Cursor() *Cursor[K, V] {
	return &Cursor[K, V]{tree: t}
}

// First positions cursor at the smallest key
func (c *Cursor[K, V]) First() (K, V, bool) {
	n := c.tree.root
	for !n.isLeaf {
		n = n.children[0]
	}
	return c.position(n, 0)
}

// Last positions cursor at the largest key
func (c *Cursor[K, V]) Last() (K, V, bool) {
	n := c.tree.root
	for !n.isLeaf {
		n = n.children[len(n.children)-1]
	}
	return c.position(n, len(n.keys)-1)
}

// Seek positions cursor at the first key >= target
func (c *Cursor[K, V]) Seek(target K) (K, V, bool) {
	n := c.tree.findLeaf(target)
	i := algo.Decode(n.getIndex(target, c.tree.cmp))

	// Every key of this leaf is smaller than target, continue in the next one
	if i == len(n.keys) && n.next != nil {
		return c.position(n.next, 0)
	}
	return c.position(n, i)
}

// Next advances cursor to the next key
func (c *Cursor[K, V]) Next() (K, V, bool) {
	if !c.Valid() {
		return c.invalidate()
	}

	if c.index+1 < len(c.leaf.keys) {
		return c.position(c.leaf, c.index+1)
	}
	if c.leaf.next == nil {
		return c.invalidate()
	}
	return c.position(c.leaf.next, 0)
}

// Prev moves cursor to the previous key
func (c *Cursor[K, V]) Prev() (K, V, bool) {
	if !c.Valid() {
		return c.invalidate()
	}

	if c.index > 0 {
		return c.position(c.leaf, c.index-1)
	}
	if c.leaf.prev == nil {
		return c.invalidate()
	}
	prev := c.leaf.prev
	return c.position(prev, len(prev.keys)-1)
}

// Key returns current key (only meaningful when Valid() == true)
func (c *Cursor[K, V]) Key() K {
	if !c.Valid() {
		var zero K
		return zero
	}
	return c.leaf.keys[c.index]
}

// Value returns current value (only meaningful when Valid() == true)
func (c *Cursor[K, V]) Value() V {
	if !c.Valid() {
		var zero V
		return zero
	}
	return c.leaf.values[c.index]
}

// Valid returns true if cursor is positioned on a key and the tree has not
// been mutated since
func (c *Cursor[K, V]) Valid() bool {
	return c.valid && c.version == c.tree.version
}

func (c *Cursor[K, V]) position(leaf *node[K, V], index int) (K, V, bool) {
	if index < 0 || index >= len(leaf.keys) {
		return c.invalidate()
	}
	c.leaf = leaf
	c.index = index
	c.version = c.tree.version
	c.valid = true
	return leaf.keys[index], leaf.values[index], true
}

func (c *Cursor[K, V]) invalidate() (K, V, bool) {
	c.leaf = nil
	c.valid = false
	var k K
	var v V
	return k, v, false
}

// Ascend calls fn for every entry in ascending key order until fn returns
// false
func (t *Tree[K, V]) Ascend(fn func(key K, value V) bool) {
	n := t.root
	for !n.isLeaf {
		n = n.children[0]
	}
	for ; n != nil; n = n.next {
		for i := range n.keys {
			if !fn(n.keys[i], n.values[i]) {
				return
			}
		}
	}
}

// Descend calls fn for every entry in descending key order until fn returns
// false
func (t *Tree[K, V]) Descend(fn func(key K, value V) bool) {
	n := t.root
	for !n.isLeaf {
		n = n.children[len(n.children)-1]
	}
	for ; n != nil; n = n.prev {
		for i := len(n.keys) - 1; i >= 0; i-- {
			if !fn(n.keys[i], n.values[i]) {
				return
			}
		}
	}
}

// Range calls fn for every entry with from <= key < to in ascending order
// until fn returns false
func (t *Tree[K, V]) Range(from, to K, fn func(key K, value V) bool) {
	c := t.Cursor()
	for k, v, ok := c.Seek(from); ok; k, v, ok = c.Next() {
		if t.cmp(k, to) >= 0 || !fn(k, v) {
			return
		}
	}
}

// Min returns the smallest key and its value
func (t *Tree[K, V]) Min() (K, V, bool) {
	return t.Cursor().First()
}

// Max returns the largest key and its value
func (t *Tree[K, V]) Max() (K, V, bool) {
	return t.Cursor().Last()
}
