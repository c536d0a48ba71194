package pulse

import (
	"fmt"

	"github.com/oliverbestmann/pulse/gpu"
)

// UniformBuffer holds a single value of T in a uniform buffer. T must match
// the std140 layout of the block it is bound to.
type UniformBuffer[T any] struct {
	ctx *Context
	buf *Buffer[T]
}

func NewUniformBuffer[T any](ctx *Context, value T) *UniformBuffer[T] {
	buf := NewBuffer[T](ctx)
	buf.UploadMutable([]T{value})

	return &UniformBuffer[T]{ctx: ctx, buf: buf}
}

// Value returns the current value, or the zero value after Release.
func (u *UniformBuffer[T]) Value() T {
	if u.buf == nil {
		var zeroT T
		return zeroT
	}

	return u.buf.Elements()[0]
}

// Update writes value into the existing device storage.
func (u *UniformBuffer[T]) Update(value T) error {
	if u.buf == nil {
		return ErrUniformBufferMissing
	}

	if err := u.buf.SetLocal(0, value); err != nil {
		return err
	}

	return u.buf.UpdateRange(0)
}

// Bind binds the buffer to a uniform buffer binding slot. Programs reference
// the slot through ShaderProgram.BindUniformBlock.
func (u *UniformBuffer[T]) Bind(slot uint32) error {
	if u.buf == nil {
		return fmt.Errorf("bind to slot %d: %w", slot, ErrUniformBufferMissing)
	}

	u.ctx.BindBufferBase(gpu.UniformBuffer, slot, u.buf.Handle())

	return nil
}

func (u *UniformBuffer[T]) Release() {
	if u.buf != nil {
		u.buf.Release()
		u.buf = nil
	}
}
