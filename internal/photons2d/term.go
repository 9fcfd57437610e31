package photons2d

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lukaszgryglicki/photons2d/internal/geodesic"
)

const cellAspect = 2.1 // terminal cells are about twice as tall as wide

var (
	styleHorizon = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlack)
	styleSphere  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleShadow  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(105, 105, 105))
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// TermView plays a simulated field in a terminal, one character per photon.
type TermView struct {
	screen tcell.Screen
	field  *Field
	consts geodesic.Constants
	view   ViewCfg
	fade   int

	// cell mapping, refreshed on every draw
	cols, rows int
	scale      Real // columns per world unit
	offX, offY Real
}

func NewTermView(screen tcell.Screen, f *Field, cfg *Config) *TermView {
	return &TermView{
		screen: screen,
		field:  f,
		consts: f.Constants(),
		view:   cfg.View,
		fade:   cfg.FadeSteps(),
	}
}

func (v *TermView) layout() {
	cols, rows := v.screen.Size()
	v.cols, v.rows = cols, imax(rows-1, 1) // last row is the status line
	spanX := v.view.XMax - v.view.XMin
	spanY := v.view.YMax - v.view.YMin
	v.scale = math.Min(Real(v.cols)/spanX, Real(v.rows)*cellAspect/spanY)
	v.offX = (Real(v.cols) - spanX*v.scale) / 2
	v.offY = (Real(v.rows) - spanY*v.scale/cellAspect) / 2
}

func (v *TermView) toCell(x, y Real) (int, int, bool) {
	cx := int(math.Floor(v.offX + (x-v.view.XMin)*v.scale))
	cy := int(math.Floor(v.offY + (v.view.YMax-y)*v.scale/cellAspect))
	return cx, cy, cx >= 0 && cx < v.cols && cy >= 0 && cy < v.rows
}

// toWorld returns the world position of a cell center.
func (v *TermView) toWorld(cx, cy int) (Real, Real) {
	x := v.view.XMin + (Real(cx)+0.5-v.offX)/v.scale
	y := v.view.YMax - (Real(cy)+0.5-v.offY)*cellAspect/v.scale
	return x, y
}

// Draw paints the field as it was at step and shows it.
func (v *TermView) Draw(step int) {
	v.layout()
	v.screen.Clear()

	ring := 0.5 * cellAspect / v.scale
	for cy := 0; cy < v.rows; cy++ {
		for cx := 0; cx < v.cols; cx++ {
			x, y := v.toWorld(cx, cy)
			d := math.Hypot(x, y)
			switch {
			case d <= v.consts.Rs:
				v.screen.SetContent(cx, cy, ' ', nil, styleHorizon)
			case math.Abs(d-v.consts.PhotonSphere) < ring:
				v.screen.SetContent(cx, cy, 'o', nil, styleSphere)
			case math.Abs(d-v.consts.Shadow) < ring:
				v.screen.SetContent(cx, cy, '.', nil, styleShadow)
			}
		}
	}

	snap, err := v.field.SnapshotAt(step)
	if err != nil {
		snap = v.field.Snapshot()
	}
	active := 0
	for _, rs := range snap.Rays {
		if rs.Status == Active {
			active++
		}
		a := FadeAlpha(1, snap.Step, rs.InactiveSince, v.fade)
		if a <= 0 || !rs.Placed {
			continue
		}
		cx, cy, ok := v.toCell(rs.X, rs.Y)
		if !ok {
			continue
		}
		ch := '*'
		if rs.Status != Active {
			ch = '+'
		}
		c := int32(255 * a)
		v.screen.SetContent(cx, cy, ch, nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(c, c, 0)))
	}

	status := fmt.Sprintf("step %d/%d  active %d/%d  rs=%g  photon sphere=%.3f  shadow=%.3f  [space] pause  [q] quit",
		snap.Step, v.field.StepIndex(), active, len(snap.Rays), v.consts.Rs, v.consts.PhotonSphere, v.consts.Shadow)
	for i, ch := range []rune(status) {
		if i >= v.cols {
			break
		}
		v.screen.SetContent(i, v.rows, ch, nil, styleStatus)
	}
	v.screen.Show()
}

// Play draws every frame step at the given delay until the user quits.
// The last frame stays on screen.
func (v *TermView) Play(delay time.Duration, steps []int) error {
	if len(steps) == 0 {
		return nil
	}
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	idx, paused := 0, false
	v.Draw(steps[idx])
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					paused = !paused
				}
			case *tcell.EventResize:
				v.screen.Sync()
				v.Draw(steps[idx])
			}
		case <-ticker.C:
			if paused || idx == len(steps)-1 {
				continue
			}
			idx++
			v.Draw(steps[idx])
		}
	}
}

// PlayTerminal opens the terminal and plays the simulated field.
func PlayTerminal(f *Field, cfg *Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	fps := imax(cfg.Render.TermFPS, 1)
	return NewTermView(screen, f, cfg).Play(time.Second/time.Duration(fps), frameSteps(cfg.Render.FrameStride, f.StepIndex()))
}
