package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PriyathamGoroju/graphing/graph/render"
)

var errNoFramebuffer = errors.New("no framebuffer")

// Snapshot writes the current frame to a new timestamped PNG in the export directory
// and returns its path.
func (p *Plotter) Snapshot() (string, error) {
	p.exportSeq++
	name := fmt.Sprintf("graph-%s-%03d.png", time.Now().Format("20060102-150405"), p.exportSeq)
	path := filepath.Join(p.exportDir, name)
	if err := p.ExportPNG(path); err != nil {
		return "", err
	}
	return path, nil
}

// ExportPNG renders pending changes and writes the frame to path at logical size.
func (p *Plotter) ExportPNG(path string) error {
	if p.fb == nil {
		return errNoFramebuffer
	}
	if p.dirty {
		if err := p.Render(); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.WritePNG(f, p.fb.Image(), render.PNGOptions{Scale: 1 / p.scale()}); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
