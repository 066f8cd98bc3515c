package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"tinygo.org/x/tinyfont"

	"github.com/PriyathamGoroju/graphing/graph/render"
)

const (
	panicLineHeight = 11
	panicAscent     = 8
)

// recoverPanic turns a panic in Step into an error, after logging it and painting
// the panic screen so the window does not just freeze.
func (p *Plotter) recoverPanic(err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	p.log.Error("plotter panic", zap.Any("panic", v), zap.ByteString("stack", stack))
	p.drawPanic(v, stack)
	*err = fmt.Errorf("plotter panic: %v", v)
}

func (p *Plotter) drawPanic(v any, stack []byte) {
	if p.fb == nil {
		return
	}
	p.fb.ClearRGB(255, 255, 255)
	c := render.NewCanvas(p.fb.Image())
	font := render.DefaultFont

	_, glyphW := tinyfont.LineWidth(font, "0")
	if glyphW == 0 {
		_ = p.fb.Present()
		return
	}
	cols := p.fb.Width() / int(glyphW)
	if cols <= 0 {
		cols = 1
	}

	lines := []string{"Plotter panic:", fmt.Sprintf("panic: %v", v), "stack:"}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	fg := color.RGBA{A: 255}
	y := 0
	maxH := p.fb.Height()
draw:
	for _, line := range lines {
		for len(line) > 0 {
			if y+panicLineHeight > maxH {
				break draw
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(c, font, 0, int16(y+panicAscent), chunk, fg)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = p.fb.Present()
}

// takeRunes splits s after at most n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
