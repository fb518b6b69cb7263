package ptr

// New creates and returns a pointer to the provided value.
func New[T any](v T) *T { return &v }

// ValueOr dereferences p, falling back to def when p is nil.
func ValueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
