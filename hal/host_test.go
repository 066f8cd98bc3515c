package hal

import (
	"context"
	"errors"
	"testing"
)

func TestNew_FramebufferUsesScale(t *testing.T) {
	h := New(Options{Width: 300, Height: 200, Scale: 2})
	fb := h.Display().Framebuffer()
	if fb.Width() != 600 || fb.Height() != 400 || fb.Scale() != 2 {
		t.Fatalf("framebuffer %dx%d scale %v, want 600x400 scale 2", fb.Width(), fb.Height(), fb.Scale())
	}
	if img := fb.Image(); img.Rect.Dx() != 600 || len(img.Pix) != 600*400*4 {
		t.Fatalf("image rect %v, pix %d", img.Rect, len(img.Pix))
	}
	if h.Input().Keyboard() == nil || h.Input().Pointer() == nil {
		t.Fatalf("input devices missing")
	}
}

func TestNew_Defaults(t *testing.T) {
	fb := New(Options{}).Display().Framebuffer()
	if fb.Width() != DefaultWidth || fb.Height() != DefaultHeight || fb.Scale() != 1 {
		t.Fatalf("default framebuffer %dx%d scale %v", fb.Width(), fb.Height(), fb.Scale())
	}
}

func TestFramebuffer_ResizeAndClear(t *testing.T) {
	fb := newHostFramebuffer(4, 3, 1)
	if fb.resize(4, 3, 1) {
		t.Fatalf("same size should not reallocate")
	}
	old := fb.Image()
	if !fb.resize(8, 6, 2) {
		t.Fatalf("new size should reallocate")
	}
	if fb.Image() == old || fb.Width() != 8 || fb.Height() != 6 || fb.Scale() != 2 {
		t.Fatalf("resize did not take effect")
	}
	if !fb.resize(0, -5, 0) || fb.Width() != 1 || fb.Height() != 1 || fb.Scale() != 1 {
		t.Fatalf("degenerate resize should clamp to 1x1 scale 1")
	}

	fb.resize(2, 2, 1)
	fb.ClearRGB(10, 20, 30)
	snap := fb.snapshot(nil)
	want := []byte{10, 20, 30, 0xFF}
	for i := 0; i < len(snap); i += 4 {
		for j := range want {
			if snap[i+j] != want[j] {
				t.Fatalf("pixel %d = %v, want %v", i/4, snap[i:i+4], want)
			}
		}
	}
}

func TestRunHeadless_StopsAfterTicks(t *testing.T) {
	steps := 0
	err := RunHeadless(context.Background(), Options{Width: 10, Height: 10}, func(h HAL) func() error {
		if h.Display().Framebuffer().Width() != 10 {
			t.Fatalf("headless framebuffer width %d, want 10", h.Display().Framebuffer().Width())
		}
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 3})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps=%d, want 3", steps)
	}
}

func TestRunHeadless_StepErrorAndCancel(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), Options{}, func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want %v", err, boom)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = RunHeadless(ctx, Options{}, func(HAL) func() error { return nil }, HeadlessConfig{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}
