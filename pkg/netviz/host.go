package netviz

import (
	"slices"

	"github.com/sudorandom/network-viz/pkg/config"
	"github.com/sudorandom/network-viz/pkg/scene"
)

// Host is the surface the visualization mounts into: it offers named
// container slots and reports the size of the window around them.
type Host interface {
	Lookup(id string) bool
	WindowSize() (width, height int)
}

// WindowHost is a Host backed by a fixed list of container ids and a window
// size.
type WindowHost struct {
	Containers    []string
	Width, Height int
}

// Lookup implements Host.
func (h WindowHost) Lookup(id string) bool {
	return slices.Contains(h.Containers, id)
}

// WindowSize implements Host.
func (h WindowHost) WindowSize() (int, int) {
	return h.Width, h.Height
}

// Mount builds an engine sized to the host window. When the host has no
// container named by cfg.Render.MountID nothing is built and both return
// values are nil.
func Mount(host Host, cfg *config.Config, rnd scene.Rand) (*Engine, error) {
	if !host.Lookup(cfg.Render.MountID) {
		return nil, nil
	}
	w, h := host.WindowSize()
	return NewEngine(cfg, w, h, rnd)
}
