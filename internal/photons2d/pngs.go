package photons2d

import (
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// SavePNGSequence writes one lossless PNG per rendered step as prefix_NNNN.png
// and returns the written paths.
func SavePNGSequence(f *Field, r *Renderer, prefix string) ([]string, error) {
	steps := r.FrameSteps(f.StepIndex())

	// Zero-padding width based on number of frames.
	width := 1
	if len(steps) > 1 {
		width = int(math.Log10(Real(len(steps)-1))) + 1
	}
	if dir := filepath.Dir(prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	step := imax(1, len(steps)/100)
	paths := make([]string, 0, len(steps))
	for n, s := range steps {
		if n%step == 0 {
			fmt.Printf("[PNG]  %.2f%%\n", Real(n+1)*100/Real(len(steps)))
		}
		img, err := r.Frame(f, s)
		if err != nil {
			return paths, err
		}

		full := fmt.Sprintf("%s_%0*d.png", prefix, width, n)
		fh, err := os.Create(full)
		if err != nil {
			return paths, err
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression} // still lossless
		if err := enc.Encode(fh, img); err != nil {
			fh.Close()
			return paths, err
		}
		if err := fh.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, full)
	}
	return paths, nil
}
