package pulse

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/pulse/gpu"
)

var (
	ErrUniformNotFound       = errors.New("uniform not found")
	ErrUniformBlockNotFound  = errors.New("uniform block not found")
	ErrUniformBufferMissing  = errors.New("uniform buffer is not present")
	ErrShaderCompile         = errors.New("shader compilation failed")
	ErrFramebufferIncomplete = errors.New("framebuffer is not complete")
	ErrCannotResize          = errors.New("cannot resize immutable texture")
	ErrSizeMismatch          = errors.New("size mismatch")
	ErrUnsupportedFormat     = errors.New("unsupported pixel format")
	ErrIndexOutOfBounds      = errors.New("index out of bounds")
	ErrNoStorage             = errors.New("buffer has no device storage")
	ErrReleased              = errors.New("resource has been released")
)

// ShaderCompileError describes a failed compile of a single shader stage or,
// if Stage is zero, a failed link of the program.
type ShaderCompileError struct {
	Stage   gpu.Enum
	Object  uint32
	InfoLog string
}

func (err *ShaderCompileError) Error() string {
	if err.Stage == 0 {
		return fmt.Sprintf("link program %d: %s", err.Object, err.InfoLog)
	}

	return fmt.Sprintf("compile %s %d: %s", err.Stage, err.Object, err.InfoLog)
}

func (err *ShaderCompileError) Unwrap() error {
	return ErrShaderCompile
}
