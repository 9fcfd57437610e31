package photons2d

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lukaszgryglicki/photons2d/internal/geodesic"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

func termConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := parseConfig([]byte(`{
		"x0": 20, "tMax": 20, "steps": 200, "offsets": [0, 5],
		"view": {"xMin": -10, "xMax": 25, "yMin": -11, "yMax": 11}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestTermViewDraw(t *testing.T) {
	cfg := termConfig(t)
	f := tinyField(t, cfg)
	s := simScreen(t)
	v := NewTermView(s, f, cfg)
	v.Draw(0)

	cx, cy, ok := v.toCell(0, 0)
	if !ok {
		t.Fatal("origin off screen")
	}
	_, _, st, _ := s.GetContent(cx, cy)
	if st != styleHorizon {
		t.Fatalf("horizon cell style %v", st)
	}

	px, py, ok := v.toCell(20, 5)
	if !ok {
		t.Fatal("launch point off screen")
	}
	if ch, _, _, _ := s.GetContent(px, py); ch != '*' {
		t.Fatalf("photon cell %q", ch)
	}

	sphere, shadow := false, false
	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.cols; x++ {
			ch, _, _, _ := s.GetContent(x, y)
			sphere = sphere || ch == 'o'
			shadow = shadow || ch == '.'
		}
	}
	if !sphere || !shadow {
		t.Fatalf("overlays missing: sphere=%v shadow=%v", sphere, shadow)
	}

	var sb strings.Builder
	for x := 0; x < 20; x++ {
		ch, _, _, _ := s.GetContent(x, 23)
		sb.WriteRune(ch)
	}
	if !strings.HasPrefix(sb.String(), "step 0/200") {
		t.Fatalf("status line %q", sb.String())
	}
}

func TestTermViewFadesCapturedRay(t *testing.T) {
	cfg := termConfig(t)
	f := tinyField(t, cfg)
	since := f.Ray(0).InactiveSince
	if since <= 0 {
		t.Fatalf("radial ray still active: %+v", f.Ray(0))
	}
	s := simScreen(t)
	v := NewTermView(s, f, cfg)
	v.Draw(since + 1)
	cx, cy, _ := v.toCell(1, 0)
	if ch, _, _, _ := s.GetContent(cx, cy); ch != '+' {
		t.Fatalf("captured ray cell %q", ch)
	}
}

func TestTermViewSkipsRayWithoutPosition(t *testing.T) {
	cfg := termConfig(t)
	states := []geodesic.State{{R: math.Inf(1), DPhi: 0.1}, geodesic.FromCartesian(20, 5, -1, 0)}
	f, err := NewFieldFromStates(cfg.FieldConfig(), states)
	if err != nil {
		t.Fatal(err)
	}
	s := simScreen(t)
	v := NewTermView(s, f, cfg)
	if v.fade != cfg.FadeDuration*cfg.Render.FrameStride {
		t.Fatalf("fade spans %d steps", v.fade)
	}
	v.Draw(0)
	cx, cy, _ := v.toCell(0, 0)
	if ch, _, st, _ := s.GetContent(cx, cy); ch != ' ' || st != styleHorizon {
		t.Fatalf("ray without a position drawn at the origin: %q", ch)
	}
}

func TestTermViewPlayQuits(t *testing.T) {
	cfg := termConfig(t)
	f := tinyField(t, cfg)
	s := simScreen(t)
	v := NewTermView(s, f, cfg)

	done := make(chan error, 1)
	go func() { done <- v.Play(5*time.Millisecond, frameSteps(10, f.StepIndex())) }()
	time.Sleep(20 * time.Millisecond)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Play did not return after q")
	}
}
