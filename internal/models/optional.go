// ABOUTME: Optional value type for metrics fields that may be absent.
// ABOUTME: Forces consumers to check presence instead of ad hoc nil tests.
package models

// Optional wraps a value that may be missing from a record.
// The zero value is "absent".
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Has reports whether a value is present.
func (o Optional[T]) Has() bool {
	return o.set
}

// Value returns the held value and whether it is present.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.set
}

// Or returns the held value, or fallback when absent.
func (o Optional[T]) Or(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}

// Ptr returns a pointer to the value, or nil when absent.
// Used at the storage boundary for nullable columns.
func (o Optional[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// FromPtr builds an Optional from a nullable pointer.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}
