package algo

import (
	"cmp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(n int, step int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = (i + 1) * step
	}
	return keys
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name string
		keys []int
		key  int
		want int
	}{
		{
			name: "empty_node",
			keys: nil,
			key:  5,
			want: -1,
		},
		{
			name: "key_found_first",
			keys: []int{2, 4, 6},
			key:  2,
			want: 0,
		},
		{
			name: "key_found_middle",
			keys: []int{2, 4, 6},
			key:  4,
			want: 1,
		},
		{
			name: "key_found_last",
			keys: []int{2, 4, 6},
			key:  6,
			want: 2,
		},
		{
			name: "key_less_than_first",
			keys: []int{2, 4, 6},
			key:  1,
			want: -1,
		},
		{
			name: "key_between_keys",
			keys: []int{2, 4, 6},
			key:  5,
			want: -3,
		},
		{
			name: "key_greater_than_all",
			keys: []int{2, 4, 6},
			key:  7,
			want: -4,
		},
		{
			name: "large_node_found",
			keys: ints(100, 2),
			key:  150,
			want: 74,
		},
		{
			name: "large_node_missing",
			keys: ints(100, 2),
			key:  151,
			want: -76,
		},
		{
			name: "large_node_past_end",
			keys: ints(100, 2),
			key:  1000,
			want: -101,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.keys, tt.key, cmp.Compare[int])
			assert.Equal(t, tt.want, got, "Search should return slot or encoded insertion point")
		})
	}
}

func TestSearchMatchesSortPackage(t *testing.T) {
	// Both scan strategies must agree with sort.SearchInts
	for _, n := range []int{0, 1, 7, searchThreshold - 1, searchThreshold, 257} {
		keys := ints(n, 3)
		for key := 0; key <= n*3+3; key++ {
			pos := sort.SearchInts(keys, key)
			got := Search(keys, key, cmp.Compare[int])
			if pos < n && keys[pos] == key {
				require.Equal(t, pos, got, "n=%d key=%d", n, key)
			} else {
				require.Equal(t, -pos-1, got, "n=%d key=%d", n, key)
			}
			require.Equal(t, pos, Decode(got))
		}
	}
}

func TestDecode(t *testing.T) {
	assert.Equal(t, 0, Decode(0))
	assert.Equal(t, 3, Decode(3))
	assert.Equal(t, 0, Decode(-1))
	assert.Equal(t, 4, Decode(-5))
}

func TestChildIndex(t *testing.T) {
	tests := []struct {
		name string
		keys []int
		key  int
		want int
	}{
		{"empty_node", nil, 1, 0},
		{"key_less_than_first", []int{10, 20}, 5, 0},
		{"key_equal_first", []int{10, 20}, 10, 1},
		{"key_between_keys", []int{10, 20}, 15, 1},
		{"key_equal_last", []int{10, 20}, 20, 2},
		{"key_greater_than_all", []int{10, 20}, 99, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChildIndex(tt.keys, tt.key, cmp.Compare[int]))
		})
	}
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		index int
		value string
		want  []string
	}{
		{"insert_into_empty", nil, 0, "a", []string{"a"}},
		{"insert_at_beginning", []string{"b", "c"}, 0, "a", []string{"a", "b", "c"}},
		{"insert_in_middle", []string{"a", "c"}, 1, "b", []string{"a", "b", "c"}},
		{"insert_at_end", []string{"a", "b"}, 2, "c", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InsertAt(tt.slice, tt.index, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		index int
		want  []string
	}{
		{"remove_only", []string{"a"}, 0, []string{}},
		{"remove_first", []string{"a", "b", "c"}, 0, []string{"b", "c"}},
		{"remove_middle", []string{"a", "b", "c"}, 1, []string{"a", "c"}},
		{"remove_last", []string{"a", "b", "c"}, 2, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveAt(tt.slice, tt.index)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveAtClearsTail(t *testing.T) {
	backing := []*int{new(int), new(int), new(int)}
	got := RemoveAt(backing, 0)
	require.Len(t, got, 2)
	assert.Nil(t, backing[2], "vacated slot should be zeroed")
}
