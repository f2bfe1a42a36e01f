// Package ptr provides helper functions for optional configuration values.
package ptr

// Bool returns a pointer to the given bool value.
func Bool(b bool) *bool { return &b }

// BoolOr dereferences p, falling back to def when p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
