package display

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGDir writes every presented frame as a numbered PNG file. It exists for
// debugging layout without the panel attached.
type PNGDir struct {
	dir           string
	width, height int
	frame         int
}

// NewPNGDir creates dir if needed and returns a sink reporting the given
// dimensions.
func NewPNGDir(dir string, width, height int) (*PNGDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}
	return &PNGDir{dir: dir, width: width, height: height}, nil
}

func (p *PNGDir) Clear() error {
	return nil
}

func (p *PNGDir) WaitReady(ctx context.Context) error {
	return nil
}

func (p *PNGDir) Present(img *image.Gray) error {
	p.frame++
	path := filepath.Join(p.dir, fmt.Sprintf("frame-%04d.png", p.frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	return f.Close()
}

func (p *PNGDir) Size() (int, int) {
	return p.width, p.height
}

func (p *PNGDir) Close() error {
	return nil
}
