// Package raylibsurface presents a sapling.Window through raylib.
//
// The surface is polled: the window's loop presents a frame, then WaitEvent
// polls raylib's input queues in short slices until an event arrives or the
// frame budget runs out.
package raylibsurface

import (
	"image"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phanxgames/sapling"
)

// pollInterval is the sleep between input polls inside WaitEvent.
const pollInterval = time.Millisecond

// Surface is a sapling.Surface backed by a raylib window.
type Surface struct {
	// Logger receives lifecycle messages at debug level. Nil uses log.Default().
	Logger *log.Logger

	name          string
	width, height int
	tex           rl.Texture2D
	buf           []color.RGBA

	opened bool
	closed bool

	events      []sapling.Event
	mouseDown   bool
	cursorKnown bool
	cursorX     int32
	cursorY     int32
}

// New returns an unopened surface.
func New() *Surface {
	return &Surface{}
}

// Open implements sapling.Surface. It creates the window and the streaming
// texture frames are uploaded to. raylib's own exit key is disabled so the
// window's close key is the only keyboard exit.
func (s *Surface) Open(name string, width, height int) error {
	if s.opened && !s.closed {
		return sapling.NewResourceError("raylibsurface.Open", nil, "surface %q is already open", s.name)
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), name)
	if !rl.IsWindowReady() {
		return sapling.NewResourceError("raylibsurface.Open", nil, "raylib window %q is not ready", name)
	}
	rl.SetExitKey(0)

	img := rl.GenImageColor(width, height, rl.Black)
	s.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	s.name = name
	s.width, s.height = width, height
	s.buf = make([]color.RGBA, width*height)
	s.opened, s.closed = true, false
	s.logger().Debug("surface opened", "backend", "raylib", "name", name, "width", width, "height", height)
	return nil
}

// Present implements sapling.Surface.
func (s *Surface) Present(frame *image.RGBA) error {
	if !s.opened || s.closed {
		return sapling.NewResourceError("raylibsurface.Present", nil, "surface %q is not open", s.name)
	}
	pix := frame.Pix
	for i := range s.buf {
		j := i * 4
		s.buf[i] = color.RGBA{R: pix[j], G: pix[j+1], B: pix[j+2], A: 255}
	}
	rl.UpdateTexture(s.tex, s.buf)

	rl.BeginDrawing()
	rl.DrawTexture(s.tex, 0, 0, rl.White)
	rl.EndDrawing()
	return nil
}

// WaitEvent implements sapling.Surface.
func (s *Surface) WaitEvent(timeout time.Duration) (sapling.Event, bool) {
	deadline := time.Now().Add(timeout)
	for {
		s.collect()
		if len(s.events) > 0 {
			e := s.events[0]
			s.events = s.events[1:]
			return e, true
		}
		if timeout <= 0 || !time.Now().Before(deadline) || rl.WindowShouldClose() {
			return sapling.Event{}, false
		}
		rl.WaitTime(pollInterval.Seconds())
		rl.PollInputEvents()
	}
}

// Visible implements sapling.Surface. It turns false once the user closes
// the window.
func (s *Surface) Visible() bool {
	return s.opened && !s.closed && !rl.WindowShouldClose()
}

// Close implements sapling.Surface.
func (s *Surface) Close() error {
	if !s.opened || s.closed {
		return sapling.NewResourceError("raylibsurface.Close", nil, "surface %q already released", s.name)
	}
	s.closed = true
	s.events = nil
	rl.UnloadTexture(s.tex)
	rl.CloseWindow()
	s.logger().Debug("surface closed", "backend", "raylib", "name", s.name)
	return nil
}

// collect drains raylib's key queue and samples the pointer, appending
// events for presses, motion and primary button transitions.
func (s *Surface) collect() {
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		if key := mapKey(k); key != sapling.KeyNone {
			s.events = append(s.events, sapling.Event{Type: sapling.EventKeyDown, Key: key})
		}
	}

	mx, my := rl.GetMouseX(), rl.GetMouseY()
	x, y := float64(mx), float64(my)
	if s.cursorKnown && (mx != s.cursorX || my != s.cursorY) {
		s.events = append(s.events, sapling.Event{Type: sapling.EventMouseMove, X: x, Y: y})
	}
	s.cursorX, s.cursorY, s.cursorKnown = mx, my, true

	down := rl.IsMouseButtonDown(rl.MouseButtonLeft)
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
