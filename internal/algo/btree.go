// Package algo contains search and slice helpers used for traversing and
// editing a b+ tree.
package algo

const searchThreshold = 32

// Search returns the index of key in the sorted keys if present. Otherwise
// it returns -(insertionPoint) - 1, so a single call tells the caller both
// whether key was found and where it would be inserted. Use Decode to turn
// either result into a slot position.
func Search[K any](keys []K, key K, cmp func(a, b K) int) int {
	// Small nodes are faster to scan linearly
	if len(keys) < searchThreshold {
		for i := range keys {
			c := cmp(key, keys[i])
			if c == 0 {
				return i
			}
			if c < 0 {
				return -i - 1
			}
		}
		return -len(keys) - 1
	}

	low, high := 0, len(keys)-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		c := cmp(key, keys[mid])
		switch {
		case c > 0:
			low = mid + 1
		case c < 0:
			high = mid - 1
		default:
			return mid
		}
	}
	return -low - 1
}

// Decode converts a Search result into a slot position: the match index
// when found, the insertion point otherwise.
func Decode(index int) int {
	if index >= 0 {
		return index
	}
	return -index - 1
}

// ChildIndex returns the index of the child pointer to follow for key in a
// branch holding keys. children[i] owns keys < keys[i], and a key equal to a
// separator belongs to the subtree on its right.
func ChildIndex[K any](keys []K, key K, cmp func(a, b K) int) int {
	i := Search(keys, key, cmp)
	if i >= 0 {
		return i + 1
	}
	return -i - 1
}

// InsertAt inserts value at index, shifting later elements right by one
func InsertAt[T any](slice []T, index int, value T) []T {
	var zero T
	slice = append(slice, zero)
	copy(slice[index+1:], slice[index:])
	slice[index] = value
	return slice
}

// RemoveAt removes the element at index, shifting later elements left by one
func RemoveAt[T any](slice []T, index int) []T {
	copy(slice[index:], slice[index+1:])
	var zero T
	// Clear the vacated tail slot so it does not pin a value or node
	slice[len(slice)-1] = zero
	return slice[:len(slice)-1]
}
