package bptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorEmptyTree(t *testing.T) {
	t.Parallel()

	tree := setup(t, 4)
	c := tree.Cursor()
	assert.False(t, c.Valid(), "new cursor starts invalid")

	_, _, ok := c.First()
	assert.False(t, ok)
	_, _, ok = c.Last()
	assert.False(t, ok)
	_, _, ok = c.Seek(10)
	assert.False(t, ok)
	_, _, ok = c.Next()
	assert.False(t, ok)

	_, _, ok = tree.Min()
	assert.False(t, ok)
	_, _, ok = tree.Max()
	assert.False(t, ok)
}

func TestCursorForwardAndBackward(t *testing.T) {
	t.Parallel()

	tree := setup(t, 4)
	for _, k := range seq(1, 50) {
		tree.Insert(k*2, "")
	}

	c := tree.Cursor()
	var forward []int
	for k, _, ok := c.First(); ok; k, _, ok = c.Next() {
		forward = append(forward, k)
	}
	assert.Len(t, forward, 50)
	assert.Equal(t, 2, forward[0])
	assert.Equal(t, 100, forward[49])
	assert.False(t, c.Valid(), "cursor is exhausted")

	var backward []int
	for k, _, ok := c.Last(); ok; k, _, ok = c.Prev() {
		backward = append(backward, k)
	}
	require.Len(t, backward, 50)
	for i := range backward {
		assert.Equal(t, forward[len(forward)-1-i], backward[i])
	}
}

func TestCursorSeek(t *testing.T) {
	t.Parallel()

	tree := setup(t, 5)
	for _, k := range seq(1, 100) {
		tree.Insert(k*10, "")
	}

	tests := []struct {
		name   string
		target int
		want   int
		ok     bool
	}{
		{"before_first", 0, 10, true},
		{"exact_first", 10, 10, true},
		{"exact_middle", 500, 500, true},
		{"between_keys", 505, 510, true},
		{"exact_last", 1000, 1000, true},
		{"past_last", 1001, 0, false},
	}

	// Every leaf boundary must be crossed correctly
	for _, k := range seq(1, 99) {
		tests = append(tests, struct {
			name   string
			target int
			want   int
			ok     bool
		}{"gap", k*10 + 1, k*10 + 10, true})
	}

	for _, tt := range tests {
		c := tree.Cursor()
		k, _, ok := c.Seek(tt.target)
		assert.Equal(t, tt.ok, ok, "%s: seek %d", tt.name, tt.target)
		if tt.ok {
			assert.Equal(t, tt.want, k, "%s: seek %d", tt.name, tt.target)
			assert.Equal(t, tt.want, c.Key())
		}
	}
}

func TestCursorInvalidatedByMutation(t *testing.T) {
	t.Parallel()

	tree := setup(t, 4)
	for _, k := range seq(1, 10) {
		tree.Insert(k, "v")
	}

	c := tree.Cursor()
	_, _, ok := c.Seek(5)
	require.True(t, ok)
	assert.Equal(t, "v", c.Value())

	// Updating an existing key leaves the structure, and the cursor, intact
	tree.Insert(5, "w")
	assert.True(t, c.Valid())
	assert.Equal(t, "w", c.Value())

	tree.Delete(7)
	assert.False(t, c.Valid())
	assert.Zero(t, c.Key())
	_, _, ok = c.Next()
	assert.False(t, ok)
}

func TestAscendDescendRange(t *testing.T) {
	t.Parallel()

	tree := setup(t, 4)
	for _, k := range seq(1, 30) {
		tree.Insert(k, "")
	}

	var desc []int
	tree.Descend(func(k int, _ string) bool {
		desc = append(desc, k)
		return k > 21
	})
	assert.Equal(t, []int{30, 29, 28, 27, 26, 25, 24, 23, 22, 21}, desc)

	var asc []int
	tree.Ascend(func(k int, _ string) bool {
		asc = append(asc, k)
		return len(asc) < 3
	})
	assert.Equal(t, []int{1, 2, 3}, asc)

	var rng []int
	tree.Range(7, 13, func(k int, _ string) bool {
		rng = append(rng, k)
		return true
	})
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, rng)

	rng = rng[:0]
	tree.Range(25, 100, func(k int, _ string) bool {
		rng = append(rng, k)
		return true
	})
	assert.Equal(t, seq(25, 30), rng)

	k, _, ok := tree.Min()
	assert.True(t, ok)
	assert.Equal(t, 1, k)
	k, _, ok = tree.Max()
	assert.True(t, ok)
	assert.Equal(t, 30, k)
}
