package glimpse

// Window is a native window with a current OpenGL context.
type Window interface {
	// FramebufferSize returns the size of the default framebuffer in pixels.
	FramebufferSize() (width, height int32)

	// Run calls render once per frame and presents the result until the
	// window is closed or render fails.
	Run(render func(input UpdateInputState) error) error

	Terminate()
}

type Options struct {
	Width  int
	Height int
	Title  string

	// request a debug context, needed for KHR_debug output
	Debug bool

	// synchronize buffer swaps with the display refresh
	VSync bool

	// "cpu" or "mem" records a profile until Terminate
	Profile string
}
