package helpers

import "reflect"

// StrPanic panics with panicMessage if p is empty; otherwise returns p. Used for fail-fast
// validation of required constructor arguments (panel base URL, API keys).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan, func);
// otherwise returns v.
//
// Called from service.NewWatchdog, service.NewLiveness, adapters.panel.NewClient and other
// constructors when validating required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil returns true if v is nil or a typed nil pointer/slice/map/chan/func/interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
