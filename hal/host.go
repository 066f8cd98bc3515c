package hal

import (
	"go.uber.org/zap"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Options configures the host HAL.
type Options struct {
	Title string
	// Width and Height are the initial window size in logical pixels.
	Width  int
	Height int
	// Scale overrides the monitor's device scale factor when positive.
	Scale  float64
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Title == "" {
		o.Title = "graphing"
	}
	return o
}

type hostHAL struct {
	log *zap.Logger
	fb  *hostFramebuffer
	kbd *hostKeyboard
	ptr *hostPointer
}

// New returns a host HAL whose framebuffer starts at the configured size.
func New(opts Options) HAL {
	return newHost(opts.withDefaults())
}

func newHost(opts Options) *hostHAL {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return &hostHAL{
		log: opts.Logger,
		fb:  newHostFramebuffer(int(float64(opts.Width)*scale), int(float64(opts.Height)*scale), scale),
		kbd: newHostKeyboard(),
		ptr: newHostPointer(),
	}
}

func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }
