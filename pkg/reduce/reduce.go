// Package reduce provides the merge functions used to combine successive
// partial updates of a single state field. Every reducer is total: absent
// inputs (nil pointers, nil slices, nil maps, zero scalars) are valid and
// produce a defined result.
package reduce

// LastNonNull returns next when it is non-nil, otherwise prev.
func LastNonNull[T any](prev, next *T) *T {
	if next != nil {
		return next
	}
	return prev
}

// FirstNonNull returns prev when it is non-nil, otherwise next.
// Fields fixed at pipeline start use it so later updates cannot replace them.
func FirstNonNull[T any](prev, next *T) *T {
	if prev != nil {
		return prev
	}
	return next
}

// LastNonZero is LastNonNull for scalar fields where the zero value means absent.
func LastNonZero[T comparable](prev, next T) T {
	var zero T
	if next != zero {
		return next
	}
	return prev
}

// FirstNonZero is FirstNonNull for scalar fields where the zero value means absent.
func FirstNonZero[T comparable](prev, next T) T {
	var zero T
	if prev != zero {
		return prev
	}
	return next
}

// Concat returns a new slice holding prev followed by next. Order is preserved,
// duplicates are kept, and the result is never nil.
func Concat[S ~[]E, E any](prev, next S) S {
	out := make(S, 0, len(prev)+len(next))
	out = append(out, prev...)
	return append(out, next...)
}

// Overlay returns a shallow merge of prev and next where keys in next replace
// keys in prev. Neither input is modified and the result is never nil.
func Overlay[M ~map[K]V, K comparable, V any](prev, next M) M {
	out := make(M, len(prev)+len(next))
	for k, v := range prev {
		out[k] = v
	}
	for k, v := range next {
		out[k] = v
	}
	return out
}
