// Package hal is the host platform under the plotter: a window or headless loop, an
// RGBA framebuffer sized to the window in device pixels, and keyboard and pointer
// event streams.
package hal

import (
	"errors"
	"image"
)

var ErrNotImplemented = errors.New("not implemented")

// Framebuffer is an RGBA pixel buffer plus a "present" hook.
//
// Width and Height are in device pixels. Scale is the number of device pixels per
// logical pixel, so Width/Scale is the logical width.
type Framebuffer interface {
	Width() int
	Height() int
	Scale() float64
	// Image is the drawing surface. It is replaced when the window is resized, so
	// callers should fetch it again on every frame.
	Image() *image.RGBA
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyHome
	KeyPageUp
	KeyPageDown
)

// KeyEvent is a keyboard event. Text input arrives with Code KeyUnknown and Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

type PointerKind uint8

const (
	PointerMove PointerKind = iota + 1
	PointerPress
	PointerRelease
	PointerWheel
)

// PointerEvent is a mouse event in framebuffer (device) pixels.
// WheelY is positive when the wheel moves away from the user.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   float64
	WheelY float64
}

// Pointer provides primary-button and wheel events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// HAL is the only contact point between the plotter and the outside world.
type HAL interface {
	Display() Display
	Input() Input
}
