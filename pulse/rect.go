package pulse

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type numeric interface {
	constraints.Integer | constraints.Float
}

type Rectangle2i = Rectangle2[int32]
type Rectangle2f = Rectangle2[float32]

// Rectangle2 is an axis aligned rectangle, Min is inclusive and Max exclusive.
type Rectangle2[T numeric] struct {
	Min [2]T
	Max [2]T
}

func RectangleFromXYWH[T numeric](x, y, w, h T) Rectangle2[T] {
	return RectangleFromPoints([2]T{x, y}, [2]T{x + w, y + h})
}

func RectangleFromPoints[T numeric](a, b [2]T) Rectangle2[T] {
	return Rectangle2[T]{
		Min: [2]T{min(a[0], b[0]), min(a[1], b[1])},
		Max: [2]T{max(a[0], b[0]), max(a[1], b[1])},
	}
}

func (r Rectangle2[T]) Width() T {
	return r.Max[0] - r.Min[0]
}

func (r Rectangle2[T]) Height() T {
	return r.Max[1] - r.Min[1]
}

func (r Rectangle2[T]) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

func (r Rectangle2[T]) XYWH() (T, T, T, T) {
	return r.Min[0], r.Min[1], r.Width(), r.Height()
}

// Intersect returns the largest rectangle contained in both r and other.
// The result is empty if they do not overlap.
func (r Rectangle2[T]) Intersect(other Rectangle2[T]) Rectangle2[T] {
	result := Rectangle2[T]{
		Min: [2]T{max(r.Min[0], other.Min[0]), max(r.Min[1], other.Min[1])},
		Max: [2]T{min(r.Max[0], other.Max[0]), min(r.Max[1], other.Max[1])},
	}

	if result.Empty() {
		return Rectangle2[T]{}
	}

	return result
}

// Fit returns the largest rectangle with the aspect ratio of content that is
// centered in r.
func (r Rectangle2[T]) Fit(contentWidth, contentHeight T) Rectangle2[T] {
	if contentWidth <= 0 || contentHeight <= 0 || r.Empty() {
		return Rectangle2[T]{}
	}

	scale := min(
		float64(r.Width())/float64(contentWidth),
		float64(r.Height())/float64(contentHeight),
	)

	w := T(float64(contentWidth) * scale)
	h := T(float64(contentHeight) * scale)

	x := r.Min[0] + (r.Width()-w)/2
	y := r.Min[1] + (r.Height()-h)/2

	return RectangleFromXYWH(x, y, w, h)
}

func (r Rectangle2[T]) String() string {
	return fmt.Sprintf("Rectangle(%v, %v, %v, %v)", r.Min[0], r.Min[1], r.Width(), r.Height())
}

// SetViewport sets the device viewport to the rectangle.
func (ctx *Context) SetViewport(rect Rectangle2i) {
	ctx.Viewport(rect.XYWH())
}
