// Package ebitensurface presents a sapling.Window through Ebitengine.
//
// Ebitengine owns the main loop, so the surface implements sapling.Driver:
// the window's frame function runs from Game.Update once per tick, and the
// tick rate (SetTPS) paces the frames instead of an input wait.
package ebitensurface

import (
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sapling"
)

// Surface is a sapling.Surface and sapling.Driver backed by an Ebitengine
// window. Create it with New and hand it to sapling.NewWindow.
type Surface struct {
	// Logger receives lifecycle messages at debug level. Nil uses log.Default().
	Logger *log.Logger

	name          string
	width, height int
	pix           []byte

	opened  bool
	closed  bool
	closing bool

	frame  func() (bool, error)
	events []sapling.Event
	keyBuf []ebiten.Key

	mouseDown   bool
	cursorKnown bool
	cursorX     int
	cursorY     int
}

// New returns an unopened surface.
func New() *Surface {
	return &Surface{}
}

// Open implements sapling.Surface. It sizes and titles the window; the
// window itself appears when Drive starts the game loop.
func (s *Surface) Open(name string, width, height int) error {
	if s.opened && !s.closed {
		return sapling.NewResourceError("ebitensurface.Open", nil, "surface %q is already open", s.name)
	}
	s.name = name
	s.width, s.height = width, height
	s.pix = make([]byte, 4*width*height)
	s.opened, s.closed, s.closing = true, false, false

	ebiten.SetWindowTitle(name)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowClosingHandled(true)
	s.logger().Debug("surface opened", "backend", "ebiten", "name", name, "width", width, "height", height)
	return nil
}

// Present implements sapling.Surface. The pixels are uploaded to the screen
// in the next Game.Draw.
func (s *Surface) Present(frame *image.RGBA) error {
	if !s.opened || s.closed {
		return sapling.NewResourceError("ebitensurface.Present", nil, "surface %q is not open", s.name)
	}
	copy(s.pix, frame.Pix)
	return nil
}

// WaitEvent implements sapling.Surface. Input is gathered once per tick, so
// WaitEvent never blocks and only drains what that tick collected.
func (s *Surface) WaitEvent(time.Duration) (sapling.Event, bool) {
	if len(s.events) == 0 {
		return sapling.Event{}, false
	}
	e := s.events[0]
	s.events = s.events[1:]
	return e, true
}

// Visible implements sapling.Surface. It turns false once the user asks the
// window to close.
func (s *Surface) Visible() bool {
	return s.opened && !s.closed && !s.closing
}

// Close implements sapling.Surface. The Ebitengine window goes away when
// Drive returns; Close only marks the surface released.
func (s *Surface) Close() error {
	if !s.opened || s.closed {
		return sapling.NewResourceError("ebitensurface.Close", nil, "surface %q already released", s.name)
	}
	s.closed = true
	s.events = nil
	s.logger().Debug("surface closed", "backend", "ebiten", "name", s.name)
	return nil
}

// Drive implements sapling.Driver. It runs the Ebitengine game loop at fps
// ticks per second (a non-positive fps syncs ticks to the display refresh)
// and calls frame once per tick until it reports false or fails.
func (s *Surface) Drive(fps int, frame func() (bool, error)) error {
	if fps > 0 {
		ebiten.SetTPS(fps)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}
	s.frame = frame
	return ebiten.RunGame(&game{s: s})
}

// pollInput converts this tick's key presses, pointer motion and primary
// button transitions into events.
func (s *Surface) pollInput() {
	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		if key := mapKey(k); key != sapling.KeyNone {
			s.events = append(s.events, sapling.Event{Type: sapling.EventKeyDown, Key: key})
		}
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if s.cursorKnown && (mx != s.cursorX || my != s.cursorY) {
		s.events = append(s.events, sapling.Event{Type: sapling.EventMouseMove, X: x, Y: y})
	}
	s.cursorX, s.cursorY, s.cursorKnown = mx, my, true

	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case down && !s.mouseDown:
		s.events = append(s.events, sapling.Event{Type: sapling.EventMouseDown, X: x, Y: y})
	case !down && s.mouseDown:
		s.events = append(s.events, sapling.Event{Type: sapling.EventMouseUp, X: x, Y: y})
	}
	s.mouseDown = down
}

func (s *Surface) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// game adapts the surface to ebiten.Game.
type game struct {
	s *Surface
}

func (g *game) Update() error {
	s := g.s
	if ebiten.IsWindowBeingClosed() {
		s.closing = true
	}
	s.pollInput()
	more, err := s.frame()
	if err != nil {
		return err
	}
	if !more {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.s.pix)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.s.width, g.s.height
}
