package bptree

import (
	"fmt"
)

// bound is an optional key limit used while checking separator ranges
type bound[K any] struct {
	key K
	set bool
}

// Verify walks the whole tree and checks its structural invariants: sorted
// keys, occupancy bounds, separator ranges, parent back-links, uniform leaf
// depth, the leaf sibling chain and the element count. The first violation
// found is returned wrapped in ErrCorruption.
func (t *Tree[K, V]) Verify() error {
	if t.root == nil {
		return fmt.Errorf("%w: nil root", ErrCorruption)
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrCorruption)
	}

	var leaves []*node[K, V]
	leafDepth := -1
	count := 0

	var walk func(n *node[K, V], depth int, lo, hi bound[K]) error
	walk = func(n *node[K, V], depth int, lo, hi bound[K]) error {
		if err := t.verifyNode(n); err != nil {
			return err
		}

		for _, k := range n.keys {
			if lo.set && t.cmp(k, lo.key) < 0 {
				return fmt.Errorf("%w: key %v below subtree lower bound %v", ErrCorruption, k, lo.key)
			}
			if hi.set && t.cmp(k, hi.key) >= 0 {
				return fmt.Errorf("%w: key %v not below subtree upper bound %v", ErrCorruption, k, hi.key)
			}
		}

		if n.isLeaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if depth != leafDepth {
				return fmt.Errorf("%w: leaf at depth %d, expected %d", ErrCorruption, depth, leafDepth)
			}
			leaves = append(leaves, n)
			count += len(n.keys)
			return nil
		}

		for i, child := range n.children {
			if child.parent != n {
				return fmt.Errorf("%w: child %d has a stale parent pointer", ErrCorruption, i)
			}
			childLo, childHi := lo, hi
			if i > 0 {
				childLo = bound[K]{key: n.keys[i-1], set: true}
			}
			if i < len(n.keys) {
				childHi = bound[K]{key: n.keys[i], set: true}
			}
			if err := walk(child, depth+1, childLo, childHi); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(t.root, 0, bound[K]{}, bound[K]{}); err != nil {
		return err
	}

	if count != t.size {
		return fmt.Errorf("%w: leaves hold %d keys, size is %d", ErrCorruption, count, t.size)
	}

	return verifyChain(leaves, t.cmp)
}

// verifyNode checks the local shape of a single node
func (t *Tree[K, V]) verifyNode(n *node[K, V]) error {
	isRoot := n == t.root

	if len(n.keys) > t.order-1 {
		return fmt.Errorf("%w: node holds %d keys, max is %d", ErrCorruption, len(n.keys), t.order-1)
	}
	if !isRoot && len(n.keys) < minKeys(t.order) {
		return fmt.Errorf("%w: node holds %d keys, min is %d", ErrCorruption, len(n.keys), minKeys(t.order))
	}

	for i := 1; i < len(n.keys); i++ {
		if t.cmp(n.keys[i-1], n.keys[i]) >= 0 {
			return fmt.Errorf("%w: keys out of order at slot %d", ErrCorruption, i)
		}
	}

	if n.isLeaf {
		if len(n.values) != len(n.keys) {
			return fmt.Errorf("%w: leaf has %d keys and %d values", ErrCorruption, len(n.keys), len(n.values))
		}
		if len(n.children) != 0 {
			return fmt.Errorf("%w: leaf has children", ErrCorruption)
		}
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return fmt.Errorf("%w: branch has %d keys and %d children", ErrCorruption, len(n.keys), len(n.children))
	}
	if isRoot && len(n.children) < 2 {
		return fmt.Errorf("%w: branch root has a single child", ErrCorruption)
	}
	if len(n.values) != 0 || n.prev != nil || n.next != nil {
		return fmt.Errorf("%w: branch carries leaf data", ErrCorruption)
	}
	return nil
}

// verifyChain checks that the prev/next links visit exactly the leaves in
// tree order and that keys ascend strictly across leaf boundaries
func verifyChain[K any, V any](leaves []*node[K, V], cmp func(a, b K) int) error {
	if leaves[0].prev != nil {
		return fmt.Errorf("%w: leftmost leaf has a previous sibling", ErrCorruption)
	}
	if leaves[len(leaves)-1].next != nil {
		return fmt.Errorf("%w: rightmost leaf has a next sibling", ErrCorruption)
	}

	var last *K
	for i, leaf := range leaves {
		if i > 0 && leaf.prev != leaves[i-1] {
			return fmt.Errorf("%w: leaf %d has a wrong previous sibling", ErrCorruption, i)
		}
		if i < len(leaves)-1 && leaf.next != leaves[i+1] {
			return fmt.Errorf("%w: leaf %d has a wrong next sibling", ErrCorruption, i)
		}
		for j := range leaf.keys {
			if last != nil && cmp(*last, leaf.keys[j]) >= 0 {
				return fmt.Errorf("%w: leaf chain out of order at leaf %d", ErrCorruption, i)
			}
			last = &leaf.keys[j]
		}
	}
	return nil
}
