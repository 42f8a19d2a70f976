// Package sapling is a small retained-mode 2D scene graph that paints sprites
// and text labels into an RGB canvas and shows it through a pluggable window
// surface.
//
// # Quick start
//
// Create a [Window] on a [Surface] backend, add nodes, register listeners and
// call [Window.Show]:
//
//	win, err := sapling.NewWindow(ebitensurface.New(), sapling.Config{Name: "Demo"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	square := sapling.NewSprite("square", sapling.NewSolidBitmap(50, 50, sapling.RGB8(255, 0, 0)))
//	win.Add(square)
//	win.OnMouseMove(func(x, y float64) { square.SetPos(x, y) })
//	if err := win.Show(); err != nil {
//		log.Fatal(err)
//	}
//
// Show runs frames until the close key (Escape by default) is pressed, the
// user closes the window, or [Window.Close] is called. Each frame fires the
// update listeners, clears the canvas to the background color, draws every
// root, presents the canvas and then waits up to one frame interval for input.
//
// # Scene graph
//
// Every element is a [Node]: a container, a sprite ([Bitmap] pixels) or a
// text label ([TextBlock]). Positions are absolute canvas coordinates. Moving
// a node with [Node.SetX], [Node.SetY] or [Node.SetPos] moves its whole
// subtree by the same delta, and [Node.RPos]/[Node.SetRPos] work relative to
// the parent.
//
// Drawing is depth-first pre-order: a node paints before its children,
// later siblings paint over earlier ones, and later roots over earlier roots.
// Hiding a node hides its subtree.
//
// # Backends
//
// Surfaces live in subpackages: ebitensurface (Ebitengine, tick driven),
// raylibsurface (raylib, polled) and headless (in memory, with injected input,
// JSON scripts and PNG screenshots for tests).
//
// # Errors
//
// Failures are reported as [*Error] values carrying a [Code]; test them with
// errors.Is against [ErrInvalidOperation], [ErrResourceUnavailable] and
// [ErrMalformedAsset]. Listener failures never stop the loop; they are logged
// and passed to Config.OnListenerError as [*ListenerError].
package sapling
