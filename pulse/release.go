package pulse

type Releaser interface {
	Release()
}

// ReleaseGuard releases its delegate unless Keep was called first. Use it
// with defer while building an object out of multiple device resources.
type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Keep() {
	r.delegate = nil
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}

// ReleaseFunc adapts a plain function to the Releaser interface.
type ReleaseFunc func()

func (fn ReleaseFunc) Release() {
	fn()
}

func releaseAll[T Releaser](values []T) {
	for _, value := range values {
		value.Release()
	}
}
