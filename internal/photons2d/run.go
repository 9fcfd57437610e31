package photons2d

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Run loads the config, integrates the photon wall and writes (or plays) the animation.
func Run(cfgPath string) error {
	if err := LoadEnv(filepath.Dir(cfgPath)); err != nil {
		return err
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	field, err := NewField(cfg.FieldConfig())
	if err != nil {
		return err
	}
	c := field.Constants()
	DebugLog("rs=%g photon sphere=%g shadow=%g dt=%g x0=%g", c.Rs, c.PhotonSphere, c.Shadow, field.Dt(), field.X0())

	fmt.Println("Computing photon trajectories...")
	start := time.Now()
	field.Run(cfg.Steps, func(step, active int) {
		fmt.Printf("[PROGRESS] %.2f%% (active %d/%d)\n", Real(step)*100/Real(cfg.Steps), active, field.Len())
	})
	DebugLog("Steps: %d, rays: %d, time: %s", cfg.Steps, field.Len(), time.Since(start))

	if Debug {
		logSurvivors(field)
		raysStats()
	}

	if TUI {
		return PlayTerminal(field, cfg)
	}

	r, err := NewRenderer(cfg, c)
	if err != nil {
		return err
	}
	defer r.Close()

	var outputs []string
	if PNG {
		prefix := strings.Replace(cfg.GIFOut, ".gif", "", 1)
		prefix = strings.Replace(prefix, "gifs/", "pngs/", 1)
		paths, err := SavePNGSequence(field, r, prefix)
		if err != nil {
			return err
		}
		DebugLog("Saved PNG sequence with prefix: %s", prefix)
		outputs = paths
	} else {
		if err := SaveAnimatedGIF(field, r, cfg.GIFOut, cfg.GIFDelay); err != nil {
			return err
		}
		DebugLog("Saved animated GIF: %s", cfg.GIFOut)
		outputs = []string{cfg.GIFOut}
	}

	up, err := NewUploader(cfg.Upload)
	if err != nil {
		return err
	}
	if up != nil {
		return up.Upload(context.Background(), outputs)
	}
	return nil
}
