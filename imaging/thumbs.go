// Package imaging turns the project screenshots into WebP thumbnails for
// the showcase cards.
package imaging

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/dustin/go-humanize"
	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

const DefaultWidth = 640

type Config struct {
	SourceDir string
	OutputDir string
	Width     int
	Workers   int
	Logger    *slog.Logger
}

// Result holds the outcome of converting one image.
type Result struct {
	Name   string
	Output string
	Bytes  int64
	Err    error
}

// ThumbnailName maps a source image name to its thumbnail file name.
func ThumbnailName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
}

// Thumbnail scales src down to width, keeping the aspect ratio. Images
// already narrower than width keep their size.
func Thumbnail(src image.Image, width int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if width > 0 && w > width {
		h = max(1, h*width/w)
		w = width
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Encode writes img as lossless WebP.
func Encode(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

// Convert decodes one png, jpeg or tga image and writes its thumbnail.
func Convert(src, outDir string, width int) Result {
	name := filepath.Base(src)
	res := Result{Name: name, Output: filepath.Join(outDir, ThumbnailName(name))}

	in, err := os.Open(src)
	if err != nil {
		res.Err = err
		return res
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		res.Err = fmt.Errorf("decode %s: %w", name, err)
		return res
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		res.Err = err
		return res
	}
	out, err := os.Create(res.Output)
	if err != nil {
		res.Err = err
		return res
	}
	defer out.Close()

	if err := Encode(out, Thumbnail(img, width)); err != nil {
		res.Err = err
		return res
	}
	if info, err := out.Stat(); err == nil {
		res.Bytes = info.Size()
	}
	return res
}

// Run converts the named images from SourceDir using a worker pool.
// Results are in the order of names.
func Run(ctx context.Context, cfg Config, names []string) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]Result, len(names))
	start := time.Now()

	work := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Name: names[idx], Err: err}
					continue
				}
				results[idx] = Convert(filepath.Join(cfg.SourceDir, names[idx]), cfg.OutputDir, cfg.Width)
			}
		}()
	}

	for i := range names {
		work <- i
	}
	close(work)
	wg.Wait()

	var total int64
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Warn("thumbnail failed", "image", r.Name, "error", r.Err)
			continue
		}
		total += r.Bytes
	}
	logger.Info("thumbnails built",
		"count", len(names)-failed,
		"failed", failed,
		"size", humanize.Bytes(uint64(total)),
		"took", time.Since(start).Round(time.Millisecond))
	return results
}
