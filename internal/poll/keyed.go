package poll

import "slices"

// Keyed is implemented by list items with a stable unique key.
type Keyed[K comparable] interface {
	Key() K
}

// IndexOf returns the position of the item with key, or -1.
func IndexOf[K comparable, T Keyed[K]](items []T, key K) int {
	return slices.IndexFunc(items, func(item T) bool { return item.Key() == key })
}

// Keys returns the keys of items in order.
func Keys[K comparable, T Keyed[K]](items []T) []K {
	keys := make([]K, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key())
	}
	return keys
}

// Remove drops the item with key. The input slice is not modified.
func Remove[K comparable, T Keyed[K]](items []T, key K) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Key() != key {
			out = append(out, item)
		}
	}
	return out
}

// Replace swaps in item for the entry sharing its key. Items without a match
// are returned unchanged.
func Replace[K comparable, T Keyed[K]](items []T, item T) []T {
	out := slices.Clone(items)
	if i := IndexOf(out, item.Key()); i >= 0 {
		out[i] = item
	}
	return out
}

// Append adds item at the end unless its key is already present.
func Append[K comparable, T Keyed[K]](items []T, item T) []T {
	if IndexOf(items, item.Key()) >= 0 {
		return items
	}
	return append(slices.Clone(items), item)
}

// ReorderByKeys returns items arranged in the given key order. Items whose
// key is absent from order keep their relative order at the end; unknown
// keys are ignored.
func ReorderByKeys[K comparable, T Keyed[K]](items []T, order []K) []T {
	byKey := make(map[K]int, len(items))
	for i, item := range items {
		byKey[item.Key()] = i
	}
	used := make([]bool, len(items))
	out := make([]T, 0, len(items))
	for _, key := range order {
		i, ok := byKey[key]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		out = append(out, items[i])
	}
	for i, item := range items {
		if !used[i] {
			out = append(out, item)
		}
	}
	return out
}

// MoveKey turns the intent "move key to position" into a complete key order.
// position is clamped to the list bounds. When key is absent the order is
// returned unchanged.
func MoveKey[K comparable](keys []K, key K, position int) []K {
	from := slices.Index(keys, key)
	if from < 0 {
		return slices.Clone(keys)
	}
	out := slices.Delete(slices.Clone(keys), from, from+1)
	position = max(0, min(position, len(out)))
	return slices.Insert(out, position, key)
}
