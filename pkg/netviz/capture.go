package netviz

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func (e *Engine) captureFrame(img *ebiten.Image, frame int) {
	if e.FrameCaptureDir == "" {
		return
	}
	if err := os.MkdirAll(e.FrameCaptureDir, 0o755); err != nil {
		log.Printf("[capture] creating directory: %v", err)
		return
	}

	filename := fmt.Sprintf("netviz-%s-%05d.png", time.Now().Format("20060102-150405"), frame)
	path := filepath.Join(e.FrameCaptureDir, filename)

	// The screen is reused next frame; encode from a private copy.
	rgba := image.NewRGBA(img.Bounds())
	img.ReadPixels(rgba.Pix)

	go func() {
		if err := writePNG(path, rgba); err != nil {
			log.Printf("[capture] %v", err)
			return
		}
		log.Printf("[capture] wrote %s", path)
	}()
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
