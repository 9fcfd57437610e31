package photons2d

import "runtime"

var (
	Debug   = false            // set to true for verbose debug output and ray statistics
	PNG     = false            // set to true to save a PNG sequence instead of an animated GIF
	TUI     = false            // set to true to play the animation in the terminal instead of writing files
	Workers = runtime.NumCPU() // goroutines used to step the ray field, 1 means sequential
)
