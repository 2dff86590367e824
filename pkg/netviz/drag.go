package netviz

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handlePointer turns left-button presses over a node into a drag.
func (e *Engine) handlePointer() {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if i, ok := e.NodeAt(x, y); ok {
			e.DragStart(i, x, y)
		}
	case e.dragging == noDrag:
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		e.DragEnd()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		e.DragMove(x, y)
	}
}

// NodeAt returns the topmost node whose disc, grown by the collision
// padding, contains (x, y).
func (e *Engine) NodeAt(x, y float64) (int, bool) {
	pad := e.cfg.Forces.CollisionPadding
	nodes := e.scene.Nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if math.Hypot(n.X-x, n.Y-y) <= n.Radius+pad {
			return i, true
		}
	}
	return 0, false
}

// Dragging returns the index of the node being dragged.
func (e *Engine) Dragging() (int, bool) {
	return e.dragging, e.dragging != noDrag
}

// DragStart heats the layout and pins node i under the pointer.
func (e *Engine) DragStart(i int, x, y float64) {
	if e.dragging != noDrag {
		e.DragEnd()
	}
	e.sim.Reheat(e.cfg.Forces.DragAlpha)
	e.scene.Nodes[i].Pin(x, y)
	e.dragging = i
}

// DragMove keeps the pinned node under the pointer.
func (e *Engine) DragMove(x, y float64) {
	if e.dragging == noDrag {
		return
	}
	e.scene.Nodes[e.dragging].Pin(x, y)
}

// DragEnd lets the layout cool back down and releases the node to the
// forces.
func (e *Engine) DragEnd() {
	if e.dragging == noDrag {
		return
	}
	e.sim.SetAlphaTarget(0)
	e.scene.Nodes[e.dragging].Release()
	e.dragging = noDrag
}
