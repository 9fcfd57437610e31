package photons2d

import (
	"encoding/json"
	"fmt"
	"os"
)

// ViewCfg is the world-space window shown in every frame.
type ViewCfg struct {
	XMin Real `json:"xMin"`
	XMax Real `json:"xMax"`
	YMin Real `json:"yMin"`
	YMax Real `json:"yMax"`
}

type RenderCfg struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Supersample int    `json:"supersample,omitempty"` // render at N times the size, then downscale
	LineWidth   Real   `json:"lineWidth,omitempty"`
	Alpha       Real   `json:"alpha,omitempty"`       // trajectory opacity
	FrameStride int    `json:"frameStride,omitempty"` // integration steps per frame
	Title       string `json:"title,omitempty"`
	TitleSize   Real   `json:"titleSize,omitempty"`
	TermFPS     int    `json:"termFps,omitempty"`
}

// UploadCfg selects an S3 destination for the produced files. Credentials come from the environment.
type UploadCfg struct {
	Bucket   string `json:"bucket,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
}

type Config struct {
	Rs           Real      `json:"rs"`
	X0           Real      `json:"x0"`
	TMax         Real      `json:"tMax"`
	Steps        int       `json:"steps"`
	Dt           Real      `json:"dt,omitempty"` // defaults to tMax/(steps-1)
	NPhotons     int       `json:"nPhotons"`
	YLim         Real      `json:"yLim"`
	Offsets      []Real    `json:"offsets,omitempty"` // explicit offsets override nPhotons/yLim
	FadeDuration int       `json:"fadeDuration"`      // in frames
	Workers      int       `json:"workers,omitempty"`
	GIFOut       string    `json:"gifOut"`
	GIFDelay     int       `json:"gifDelay,omitempty"`
	Render       RenderCfg `json:"render"`
	View         ViewCfg   `json:"view"`
	Upload       UploadCfg `json:"upload"`
}

func defaultConfig() Config {
	return Config{
		Rs:           Rs,
		X0:           X0,
		TMax:         TMax,
		Steps:        Steps,
		NPhotons:     NPhotons,
		YLim:         YLim,
		FadeDuration: FadeDuration,
		GIFOut:       GIFOut,
		GIFDelay:     GIFDelay,
		Render: RenderCfg{
			Width:       FrameWidth,
			Height:      FrameHeight,
			Supersample: Supersample,
			LineWidth:   LineWidth,
			Alpha:       Alpha,
			FrameStride: FrameStride,
			Title:       Title,
			TitleSize:   TitleSize,
			TermFPS:     TermFPS,
		},
	}
}

// parseConfig decodes data over the defaults, so absent keys keep their default
// and explicit values (including zero) are validated as given.
func parseConfig(data []byte) (*Config, error) {
	cfg := defaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Dt == 0 && cfg.Steps > 0 {
		// same spacing as steps samples over [0, tMax]
		cfg.Dt = cfg.TMax / Real(imax(cfg.Steps-1, 1))
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.View == (ViewCfg{}) {
		cfg.View = ViewCfg{XMin: ViewXMin, XMax: ViewXMax, YMin: -cfg.YLim - ViewMargin, YMax: cfg.YLim + ViewMargin}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	DebugLog("Loaded config from %s: rs=%g x0=%g dt=%g steps=%d photons=%d frame=%dx%d", path, cfg.Rs, cfg.X0, cfg.Dt, cfg.Steps, len(cfg.PhotonOffsets()), cfg.Render.Width, cfg.Render.Height)
	return cfg, nil
}

// Validate rejects configurations that cannot produce a run.
func (c *Config) Validate() error {
	bad := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidConfiguration}, args...)...)
	}
	switch {
	case !isFinite(c.Rs) || c.Rs <= 0:
		return bad("rs must be > 0, got %g", c.Rs)
	case c.Steps <= 0:
		return bad("steps must be > 0, got %d", c.Steps)
	case !isFinite(c.Dt) || c.Dt <= 0:
		return bad("dt must be > 0, got %g", c.Dt)
	case len(c.Offsets) == 0 && c.NPhotons <= 0:
		return bad("nPhotons must be > 0, got %d", c.NPhotons)
	case !isFinite(c.X0) || c.X0 <= c.Rs:
		return bad("x0 must be > rs, got %g", c.X0)
	case c.FadeDuration < 0:
		return bad("fadeDuration must be >= 0, got %d", c.FadeDuration)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return bad("frame size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	case c.Render.Supersample < 1:
		return bad("supersample must be >= 1, got %d", c.Render.Supersample)
	case c.Render.FrameStride < 1:
		return bad("frameStride must be >= 1, got %d", c.Render.FrameStride)
	case c.View.XMax <= c.View.XMin || c.View.YMax <= c.View.YMin:
		return bad("empty view %+v", c.View)
	}
	return nil
}

// PhotonOffsets are the vertical launch offsets, monotonic in wall order.
func (c *Config) PhotonOffsets() []Real {
	if len(c.Offsets) > 0 {
		return c.Offsets
	}
	return Offsets(c.NPhotons, -c.YLim, c.YLim)
}

// FadeSteps is the fade-out length in integration steps.
func (c *Config) FadeSteps() int { return c.FadeDuration * imax(c.Render.FrameStride, 1) }

func (c *Config) FieldConfig() FieldConfig {
	return FieldConfig{
		Rs:      c.Rs,
		Dt:      c.Dt,
		X0:      c.X0,
		Offsets: c.PhotonOffsets(),
		Workers: c.Workers,
		History: true,
	}
}
