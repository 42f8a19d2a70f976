// Package headless provides an in-memory sapling.Surface for tests, CI and
// scripted visual checks. Frames are kept in memory instead of shown, input
// is injected programmatically or from a JSON script, and screenshots are
// written as PNG files.
package headless

import (
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/sapling"
)

// DefaultScreenshotDir is where screenshots land when ScreenshotDir is empty.
const DefaultScreenshotDir = "screenshots"

// Surface is a sapling.Surface that renders to memory. The zero value is not
// usable; call New.
type Surface struct {
	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string
	// Realtime makes WaitEvent sleep for its timeout when no input is
	// pending, so a window runs at its configured frame rate. Off by default
	// so tests run as fast as possible.
	Realtime bool
	// Logger receives screenshot failures. Nil uses log.Default().
	Logger *log.Logger

	name          string
	width, height int
	opened        bool
	closed        bool
	hidden        bool

	frames int
	last   *image.RGBA

	injectQueue     []sapling.Event
	ready           []sapling.Event
	screenshotQueue []string
	script          *Script
}

// New returns a headless surface writing screenshots to DefaultScreenshotDir.
func New() *Surface {
	return &Surface{ScreenshotDir: DefaultScreenshotDir}
}

// Open implements sapling.Surface.
func (s *Surface) Open(name string, width, height int) error {
	if s.opened && !s.closed {
		return sapling.NewResourceError("headless.Open", nil, "surface %q is already open", s.name)
	}
	s.name = name
	s.width, s.height = width, height
	s.opened, s.closed, s.hidden = true, false, false
	s.frames = 0
	s.last = nil
	return nil
}

// Present implements sapling.Surface. It keeps a copy of frame, advances the
// attached script, writes queued screenshots and releases the next injected
// event for the following input wait.
func (s *Surface) Present(frame *image.RGBA) error {
	if !s.opened || s.closed {
		return sapling.NewResourceError("headless.Present", nil, "surface %q is not open", s.name)
	}
	if s.last == nil || s.last.Rect != frame.Rect {
		s.last = image.NewRGBA(frame.Rect)
	}
	copy(s.last.Pix, frame.Pix)
	s.frames++

	if s.script != nil {
		s.script.step(s)
	}
	s.flushScreenshots()
	s.releaseInjected()
	return nil
}

// WaitEvent implements sapling.Surface.
func (s *Surface) WaitEvent(timeout time.Duration) (sapling.Event, bool) {
	if len(s.ready) > 0 {
		e := s.ready[0]
		s.ready = s.ready[1:]
		return e, true
	}
	if s.Realtime && timeout > 0 {
		time.Sleep(timeout)
	}
	return sapling.Event{}, false
}

// Visible implements sapling.Surface. It turns false after CloseWindow.
func (s *Surface) Visible() bool {
	return s.opened && !s.closed && !s.hidden
}

// Close implements sapling.Surface. Closing twice returns a
// ResourceUnavailable error.
func (s *Surface) Close() error {
	if !s.opened || s.closed {
		return sapling.NewResourceError("headless.Close", nil, "surface %q already released", s.name)
	}
	s.closed = true
	s.ready = nil
	s.injectQueue = nil
	return nil
}

// CloseWindow simulates the user closing the window chrome: the surface
// stops being visible and the window shuts down after the current frame.
func (s *Surface) CloseWindow() {
	s.hidden = true
}

// Name returns the name the surface was opened with.
func (s *Surface) Name() string { return s.name }

// Size returns the size the surface was opened with.
func (s *Surface) Size() (width, height int) { return s.width, s.height }

// Closed reports whether Close has been called.
func (s *Surface) Closed() bool { return s.closed }

// Frames returns the number of frames presented since Open.
func (s *Surface) Frames() int { return s.frames }

// LastFrame returns a copy of the most recently presented frame, or nil
// if nothing was presented yet.
func (s *Surface) LastFrame() *image.RGBA {
	if s.last == nil {
		return nil
	}
	out := image.NewRGBA(s.last.Rect)
	copy(out.Pix, s.last.Pix)
	return out
}

// SetScript attaches a script that advances one step per presented frame.
// Passing nil detaches the current script.
func (s *Surface) SetScript(sc *Script) {
	s.script = sc
}

// Script returns the attached script, or nil.
func (s *Surface) Script() *Script { return s.script }

func (s *Surface) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
