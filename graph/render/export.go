package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// PNGOptions controls WritePNG.
type PNGOptions struct {
	// Scale resizes the image before encoding. 0 and 1 keep the size unchanged.
	Scale float64
}

// WritePNG encodes img as PNG, resampling it first when opts.Scale asks for it.
func WritePNG(w io.Writer, img image.Image, opts PNGOptions) error {
	if img == nil {
		return fmt.Errorf("render: nil image")
	}
	out := img
	if s := opts.Scale; s > 0 && s != 1 && !math.IsInf(s, 0) {
		b := img.Bounds()
		dw := maxInt(1, roundInt(float64(b.Dx())*s))
		dh := maxInt(1, roundInt(float64(b.Dy())*s))
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		out = dst
	}
	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}
