package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerns-huang/bptree"
)

func TestLoad(t *testing.T) {
	tree, err := bptree.NewOrdered[string, string](4)
	require.NoError(t, err)

	input := `
# comment
b two
a one
c three words
b second
`
	require.NoError(t, load(tree, strings.NewReader(input)))
	assert.Equal(t, 3, tree.Size())

	v, ok := tree.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	v, _ = tree.Get("c")
	assert.Equal(t, "three words", v)
	assert.NoError(t, tree.Verify())
}

func TestBenchRun(t *testing.T) {
	g := &cli{Order: 5}
	for _, cache := range []uint32{0, 64} {
		cmd := &benchCmd{Count: 500, Seed: 7, Cache: cache}
		assert.NoError(t, cmd.Run(g))
	}
}
