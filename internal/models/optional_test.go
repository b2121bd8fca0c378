// ABOUTME: Tests for the Optional wrapper type.
// ABOUTME: Covers presence, fallbacks, and pointer conversion.
package models

import "testing"

func TestOptionalZeroValueAbsent(t *testing.T) {
	var o Optional[float64]
	if o.Has() {
		t.Error("zero value should be absent")
	}
	if _, ok := o.Value(); ok {
		t.Error("Value() on absent should report false")
	}
	if got := o.Or(42); got != 42 {
		t.Errorf("Or fallback = %v, want 42", got)
	}
	if o.Ptr() != nil {
		t.Error("Ptr() on absent should be nil")
	}
}

func TestOptionalSome(t *testing.T) {
	o := Some(7.5)
	if !o.Has() {
		t.Error("Some should be present")
	}
	v, ok := o.Value()
	if !ok || v != 7.5 {
		t.Errorf("Value() = %v %v, want 7.5 true", v, ok)
	}
	if got := o.Or(42); got != 7.5 {
		t.Errorf("Or = %v, want held value", got)
	}
	p := o.Ptr()
	if p == nil || *p != 7.5 {
		t.Errorf("Ptr() = %v", p)
	}
}

func TestOptionalPtrIsCopy(t *testing.T) {
	o := Some(1.0)
	p := o.Ptr()
	*p = 99
	if v, _ := o.Value(); v != 1.0 {
		t.Error("mutating Ptr() result must not change the Optional")
	}
}

func TestFromPtr(t *testing.T) {
	if FromPtr[int](nil).Has() {
		t.Error("FromPtr(nil) should be absent")
	}
	v := 5
	o := FromPtr(&v)
	if got, ok := o.Value(); !ok || got != 5 {
		t.Errorf("FromPtr value = %v %v", got, ok)
	}
}
