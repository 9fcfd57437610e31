package photons2d

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lukaszgryglicki/photons2d/internal/geodesic"
)

type Category uint8

const (
	Launched   Category = iota // ray created
	Captured                   // ray crossed (or started inside) the horizon
	Degenerate                 // ray retired because its state became unusable
	Survived                   // ray still active when the run ended
)

type RayLog struct {
	Name     string
	Category Category
	Index    int            // ray index in launch order
	Step     int            // step at which the event happened
	State    geodesic.State // state at the event
}

type RayLogCache struct {
	mu   sync.Mutex
	rays map[string][]RayLog // map of event name to logs
}

var cache = &RayLogCache{
	rays: make(map[string][]RayLog),
}

func logRay(name string, category Category, index, step int, state geodesic.State) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.rays[name] = append(cache.rays[name], RayLog{
		Name:     name,
		Category: category,
		Index:    index,
		Step:     step,
		State:    state,
	})
}

// logSurvivors records every ray that is still active.
func logSurvivors(f *Field) {
	for i, r := range f.rays {
		if r.Status == Active {
			logRay("survived", Survived, i, f.step, r.State)
		}
	}
}

func raysStats() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	names := make([]string, 0, len(cache.rays))
	for k := range cache.rays {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v := cache.rays[k]
		fmt.Printf("Ray event %s: %d logs\n", k, len(v))
		if k == "captured" && len(v) > 0 {
			first, last := v[0].Step, v[0].Step
			for _, l := range v {
				if l.Step < first {
					first = l.Step
				}
				if l.Step > last {
					last = l.Step
				}
			}
			fmt.Printf("  captured between steps %d and %d\n", first, last)
		}
	}
}
