package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu    sync.Mutex
	img   *image.RGBA
	scale float64
}

func newHostFramebuffer(width, height int, scale float64) *hostFramebuffer {
	f := &hostFramebuffer{}
	f.resize(width, height, scale)
	return f
}

func (f *hostFramebuffer) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.Rect.Dx()
}

func (f *hostFramebuffer) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.Rect.Dy()
}

func (f *hostFramebuffer) Scale() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scale
}

func (f *hostFramebuffer) Image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img
}

func (f *hostFramebuffer) Present() error { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 0xFF
	}
}

// resize reallocates the buffer when the size or scale changes. It reports whether
// anything changed.
func (f *hostFramebuffer) resize(width, height int, scale float64) bool {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if scale <= 0 {
		scale = 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img != nil && f.img.Rect.Dx() == width && f.img.Rect.Dy() == height && f.scale == scale {
		return false
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	f.scale = scale
	return true
}

// snapshot copies the pixels into dst, growing it as needed.
func (f *hostFramebuffer) snapshot(dst []byte) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.img.Pix) {
		dst = make([]byte, len(f.img.Pix))
	}
	dst = dst[:len(f.img.Pix)]
	copy(dst, f.img.Pix)
	return dst
}
