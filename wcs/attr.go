package wcs

// Attr is an optional extension attribute. The zero value is undeclared.
type Attr[T any] struct {
	declared bool
	value    *T
}

// Declare returns a declared attribute holding v. A nil v records that the
// attribute is known to be absent.
func Declare[T any](v *T) Attr[T] {
	var a Attr[T]
	a.Set(v)
	return a
}

// Set declares the attribute and stores a copy of v (nil for unset).
func (a *Attr[T]) Set(v *T) {
	a.declared = true
	a.value = nil
	if v != nil {
		cp := *v
		a.value = &cp
	}
}

// Clear returns the attribute to the undeclared state.
func (a *Attr[T]) Clear() {
	a.declared = false
	a.value = nil
}

// Declared reports whether the attribute slot exists, set or not.
func (a Attr[T]) Declared() bool { return a.declared }

// Get returns a copy of the value, or nil when undeclared or unset.
func (a Attr[T]) Get() *T {
	if a.value == nil {
		return nil
	}
	cp := *a.value
	return &cp
}

func (a Attr[T]) clone() Attr[T] {
	return Attr[T]{declared: a.declared, value: a.Get()}
}
