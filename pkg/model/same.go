package model

import "reflect"

// Same reports whether a and b are the identical value: == for comparable
// values, reference equality for maps, slices and pointers. Funcs and
// non-comparable structs are never identical unless both are nil, so setting
// one always counts as a change. NaN is never identical to itself. Non-nil
// slices without capacity have no backing array to compare, so they are
// never identical: each []T{} is a new reference.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		if va.Cap() == 0 || vb.Cap() == 0 {
			return false
		}
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}
