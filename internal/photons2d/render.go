package photons2d

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/lukaszgryglicki/photons2d/internal/geodesic"
	"github.com/nfnt/resize"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	background  = gg.RGB(0.5, 0.5, 0.5)
	dimGrey     = gg.RGB(105.0/255, 105.0/255, 105.0/255)
	photonColor = gg.RGB(1, 1, 0)
)

// Renderer draws frames of a simulated field: the horizon disk, the shadow and photon
// sphere overlays, and every ray's trail faded by its status.
type Renderer struct {
	cfg    RenderCfg
	view   ViewCfg
	consts geodesic.Constants
	x0     Real
	fade   int

	w, h   int  // canvas size, supersampled
	scale  Real // pixels per world unit
	offX   Real
	offY   Real
	source *text.FontSource
	face   text.Face
}

func NewRenderer(cfg *Config, consts geodesic.Constants) (*Renderer, error) {
	ss := cfg.Render.Supersample
	if ss < 1 {
		ss = 1
	}
	r := &Renderer{
		cfg:    cfg.Render,
		view:   cfg.View,
		consts: consts,
		x0:     cfg.X0,
		fade:   cfg.FadeSteps(),
		w:      cfg.Render.Width * ss,
		h:      cfg.Render.Height * ss,
	}
	r.cfg.Supersample = ss

	// Equal aspect: fit the view into the canvas and center it.
	spanX := r.view.XMax - r.view.XMin
	spanY := r.view.YMax - r.view.YMin
	r.scale = math.Min(Real(r.w)/spanX, Real(r.h)/spanY)
	r.offX = (Real(r.w) - spanX*r.scale) / 2
	r.offY = (Real(r.h) - spanY*r.scale) / 2

	if r.cfg.Title != "" {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, err
		}
		r.source = src
		r.face = src.Face(r.cfg.TitleSize * Real(ss))
	}
	DebugLog("Renderer canvas=%dx%d scale=%.3f px/unit", r.w, r.h, r.scale)
	return r, nil
}

func (r *Renderer) Close() error {
	if r.source != nil {
		return r.source.Close()
	}
	return nil
}

// toPixel maps world coordinates to canvas pixels with y pointing up.
func (r *Renderer) toPixel(x, y Real) (Real, Real) {
	px := r.offX + (x-r.view.XMin)*r.scale
	py := Real(r.h) - (r.offY + (y-r.view.YMin)*r.scale)
	return px, py
}

// FrameSteps lists the integration steps that become frames, always including the last one.
func (r *Renderer) FrameSteps(total int) []int { return frameSteps(r.cfg.FrameStride, total) }

func frameSteps(stride, total int) []int {
	stride = imax(stride, 1)
	out := make([]int, 0, total/stride+2)
	for s := 0; s <= total; s += stride {
		out = append(out, s)
	}
	if out[len(out)-1] != total {
		out = append(out, total)
	}
	return out
}

// Frame renders the field as it was at step. The field must keep history.
func (r *Renderer) Frame(f *Field, step int) (image.Image, error) {
	if !f.HasHistory() {
		return nil, ErrNoHistory
	}
	ss := Real(r.cfg.Supersample)
	dc := gg.NewContext(r.w, r.h)
	defer dc.Close()
	dc.ClearWithColor(background)

	cx, cy := r.toPixel(0, 0)
	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(cx, cy, r.consts.Rs*r.scale)
	if err := dc.Fill(); err != nil {
		return nil, err
	}

	dc.SetColor(dimGrey.Color())
	dc.SetLineWidth(1.5 * ss)
	dc.DrawCircle(cx, cy, r.consts.Shadow*r.scale)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}
	dc.SetLineWidth(1 * ss)
	for _, sgn := range []Real{1, -1} {
		x1, y1 := r.toPixel(r.x0, sgn*r.consts.Shadow)
		x2, y2 := r.toPixel(0, sgn*r.consts.Shadow)
		dc.DrawLine(x1, y1, x2, y2)
		if err := dc.Stroke(); err != nil {
			return nil, err
		}
	}

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1.2 * ss)
	dc.DrawCircle(cx, cy, r.consts.PhotonSphere*r.scale)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	dc.SetLineWidth(r.cfg.LineWidth * ss)
	for i := range f.rays {
		a := FadeAlpha(r.cfg.Alpha, step, f.rays[i].InactiveSince, r.fade)
		if a <= 0 {
			continue
		}
		tr := f.trail(i, step)
		if len(tr) < 2 {
			continue
		}
		x, y := r.toPixel(tr[0].X, tr[0].Y)
		dc.MoveTo(x, y)
		for _, p := range tr[1:] {
			x, y = r.toPixel(p.X, p.Y)
			dc.LineTo(x, y)
		}
		dc.SetRGBA(photonColor.R, photonColor.G, photonColor.B, a)
		if err := dc.Stroke(); err != nil {
			return nil, err
		}
	}

	if r.face != nil {
		dc.SetFont(r.face)
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(r.cfg.Title, Real(r.w)/2, r.cfg.TitleSize*ss, 0.5, 0.5)
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	img := dc.Image()
	if r.cfg.Supersample > 1 {
		img = resize.Resize(uint(r.cfg.Width), uint(r.cfg.Height), img, resize.Lanczos3)
	}
	return img, nil
}
