package model

// Patch is one field of a partial update. An unset patch leaves the stored
// value alone; a set patch with a nil Value clears it.
type Patch[T any] struct {
	Set   bool
	Value *T
}

// Replace sets the stored value to v.
func Replace[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: &v}
}

// ReplaceOrClear sets the stored value to *v, or clears it when v is nil.
func ReplaceOrClear[T any](v *T) Patch[T] {
	return Patch[T]{Set: true, Value: v}
}
