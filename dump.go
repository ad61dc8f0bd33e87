package bptree

import (
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Dump writes the tree level by level, one line per level, each node shown
// as its bracketed key list.
func (t *Tree[K, V]) Dump(w io.Writer) error {
	level := []*node[K, V]{t.root}
	for depth := 0; len(level) > 0; depth++ {
		var b strings.Builder
		fmt.Fprintf(&b, "L%d:", depth)

		var next []*node[K, V]
		for _, n := range level {
			b.WriteString(" [")
			for i, k := range n.keys {
				if i > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprint(&b, k)
			}
			b.WriteByte(']')
			next = append(next, n.children...)
		}
		b.WriteByte('\n')

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		level = next
	}
	return nil
}

// String returns the Dump output
func (t *Tree[K, V]) String() string {
	var b strings.Builder
	_ = t.Dump(&b)
	return b.String()
}

// Checksum fingerprints the ordered contents of the tree. encode appends the
// byte form of one entry to dst and returns the extended slice. Two trees
// holding the same entries have the same checksum whatever their shape.
func (t *Tree[K, V]) Checksum(encode func(dst []byte, key K, value V) []byte) uint64 {
	d := xxhash.New()
	var buf []byte
	t.Ascend(func(key K, value V) bool {
		buf = encode(buf[:0], key, value)
		_, _ = d.Write(buf)
		return true
	})
	return d.Sum64()
}
