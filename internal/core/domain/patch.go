package domain

type patchState uint8

const (
	patchUnchanged patchState = iota
	patchSet
	patchCleared
)

// Patch is a field of a sparse update: left unchanged, set to a value, or
// cleared. The zero value is unchanged.
type Patch[T any] struct {
	state patchState
	value T
}

func Unchanged[T any]() Patch[T] {
	return Patch[T]{}
}

func SetTo[T any](value T) Patch[T] {
	return Patch[T]{state: patchSet, value: value}
}

func Cleared[T any]() Patch[T] {
	return Patch[T]{state: patchCleared}
}

// SetOrClear sets the field when value is non-nil and clears it otherwise.
func SetOrClear[T any](value *T) Patch[T] {
	if value == nil {
		return Cleared[T]()
	}
	return SetTo(*value)
}

func (p Patch[T]) IsUnchanged() bool { return p.state == patchUnchanged }
func (p Patch[T]) IsSet() bool       { return p.state == patchSet }
func (p Patch[T]) IsCleared() bool   { return p.state == patchCleared }

// Value returns the value and true when the patch sets one.
func (p Patch[T]) Value() (T, bool) {
	return p.value, p.state == patchSet
}

// Ptr returns a pointer to the set value, or nil when cleared or unchanged.
func (p Patch[T]) Ptr() *T {
	if p.state != patchSet {
		return nil
	}
	value := p.value
	return &value
}

// Apply returns the field after the patch is applied to current.
func (p Patch[T]) Apply(current *T) *T {
	switch p.state {
	case patchSet:
		return p.Ptr()
	case patchCleared:
		return nil
	default:
		return current
	}
}
