package photons2d

// Defaults applied by loadConfig to zero-valued fields.
const (
	Rs           = 1.0
	X0           = 20.0
	TMax         = 100.0
	Steps        = 5000
	NPhotons     = 1000
	YLim         = 10.0 // vertical extent of the photon wall
	FadeDuration = 30   // frames over which a captured photon fades out
	Alpha        = 0.2  // trajectory opacity
	FrameStride  = 25   // integration steps per animation frame
	FrameWidth   = 800
	FrameHeight  = 800
	Supersample  = 2
	LineWidth    = 1.0
	GIFOut       = "gifs/shadow.gif"
	GIFDelay     = 4 // 100ths of a second per frame
	TermFPS      = 30
	ViewXMin     = -10.0
	ViewXMax     = 20.0
	ViewMargin   = 1.0 // added above and below the photon wall
	Title        = "Photon Deflection by a Black Hole (Schwarzschild)"
	TitleSize    = 18.0

	historyPrealloc = 256 // initial capacity of each ray's trajectory
)
