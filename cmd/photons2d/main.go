package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/lukaszgryglicki/photons2d/internal/photons2d"
)

func main() {
	photons2d.Debug = os.Getenv("DEBUG") != ""
	photons2d.PNG = os.Getenv("PNG") != ""
	photons2d.TUI = os.Getenv("TUI") != ""
	if w, err := strconv.Atoi(os.Getenv("WORKERS")); err == nil && w > 0 {
		photons2d.Workers = w
	}
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "scenes/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := photons2d.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
