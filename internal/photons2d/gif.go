package photons2d

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
)

// SaveAnimatedGIF writes one frame per rendered step.
// delay is in 100ths of a second (e.g., 4 => 25 fps).
func SaveAnimatedGIF(f *Field, r *Renderer, path string, delay int) error {
	steps := r.FrameSteps(f.StepIndex())
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(steps)),
		Delay:     make([]int, 0, len(steps)),
		LoopCount: 0,
	}

	every := imax(1, len(steps)/100)
	for n, step := range steps {
		if n%every == 0 { // ~1% steps
			fmt.Printf("[GIF] %.2f%%\n", Real(n+1)*100/Real(len(steps)))
		}
		img, err := r.Frame(f, step)
		if err != nil {
			return err
		}
		// Quantize to paletted for GIF
		pimg := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), img, img.Bounds().Min)

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return gif.EncodeAll(fh, out)
}
