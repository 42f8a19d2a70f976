package sapling

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup moves a node, and with it the node's subtree, along an eased
// path. Create one with TweenPosition or TweenBy and either call Update(dt)
// each frame or hand it to Window.Animate.
type TweenGroup struct {
	x, y   *gween.Tween
	target *Node
	Done   bool
}

// Update advances the tween by dt seconds and writes the new position through
// SetPos, so descendants follow. Once finished, Done is set and further calls
// do nothing.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	x, xDone := g.x.Update(dt)
	y, yDone := g.y.Update(dt)
	g.target.SetPos(float64(x), float64(y))
	g.Done = xDone && yDone
}

// TweenPosition creates a TweenGroup that animates node from its current
// absolute position to (toX, toY) over duration seconds using fn.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return &TweenGroup{
		x:      gween.New(float32(node.x), float32(toX), duration, fn),
		y:      gween.New(float32(node.y), float32(toY), duration, fn),
		target: node,
	}
}

// TweenBy creates a TweenGroup that animates node by (dx, dy) from where it
// is now.
func TweenBy(node *Node, dx, dy float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenPosition(node, node.x+dx, node.y+dy, duration, fn)
}

// Animate drives g from the window's update event and unregisters it when it
// finishes. Unthrottled windows (FPS < 0) have a zero delta, so their tweens
// never advance.
func (w *Window) Animate(g *TweenGroup) ListenerHandle {
	var h ListenerHandle
	h = w.AddEventListener(EventUpdate, func(e Event) error {
		g.Update(float32(e.Delta))
		if g.Done {
			h.Remove()
		}
		return nil
	})
	return h
}
