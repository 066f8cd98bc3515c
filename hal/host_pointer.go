//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch chan PointerEvent

	lastX, lastY int
	seen         bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 128)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) poll() {
	emit := func(ev PointerEvent) {
		select {
		case p.ch <- ev:
		default:
		}
	}

	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	if !p.seen || x != p.lastX || y != p.lastY {
		p.lastX, p.lastY, p.seen = x, y, true
		emit(PointerEvent{Kind: PointerMove, X: fx, Y: fy})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		emit(PointerEvent{Kind: PointerPress, X: fx, Y: fy})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		emit(PointerEvent{Kind: PointerRelease, X: fx, Y: fy})
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		emit(PointerEvent{Kind: PointerWheel, X: fx, Y: fy, WheelY: wy})
	}
}
