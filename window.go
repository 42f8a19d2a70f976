package sapling

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Default window settings.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultFPS    = 60
)

// Unthrottled is the Config.FPS value for a window that runs frames as fast
// as it can: update listeners see delta 0 and input is polled for 1 ms.
const Unthrottled = -1

// Config configures a Window.
type Config struct {
	Name       string
	Width      int
	Height     int
	Background Color
	// FPS is the target frame rate. Zero means unset and selects DefaultFPS,
	// as with every other zero field. Unthrottled, or any negative value,
	// disables throttling (frame delta 0, minimal input wait).
	FPS int
	// CloseKey closes the window when pressed. Zero selects KeyEscape.
	CloseKey Key
	// Debug logs per-frame timing stats and tree size warnings at debug level.
	Debug bool
	// Logger receives listener failures and debug output. Nil builds a
	// stderr logger at info level (debug level when Debug is set).
	Logger *log.Logger
	// OnListenerError, if set, is called for every failed listener after it
	// has been logged.
	OnListenerError func(*ListenerError)
}

// DefaultConfig returns a 640x480, black, 60 fps configuration closed by Escape.
func DefaultConfig() Config {
	return Config{
		Name:       "sapling",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: ColorBlack,
		FPS:        DefaultFPS,
		CloseKey:   KeyEscape,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.FPS == 0 {
		c.FPS = d.FPS
	}
	if c.CloseKey == KeyNone {
		c.CloseKey = d.CloseKey
	}
	if c.Logger == nil {
		level := log.InfoLevel
		if c.Debug {
			level = log.DebugLevel
		}
		c.Logger = NewLogger(os.Stderr, level)
	}
	return c
}

// State is the lifecycle state of a Window.
type State uint8

const (
	StateOpen   State = iota // initial; frames run while open
	StateClosed              // terminal; the surface has been released
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Window owns the canvas, the root nodes, the listener registry and the
// frame loop. Each frame runs update listeners, clears and draws the scene,
// presents the canvas to the surface, then waits for and dispatches input.
// Everything happens on the caller's goroutine.
type Window struct {
	cfg     Config
	surface Surface
	canvas  *Canvas
	roots   []*Node

	listeners       listenerRegistry
	logger          *log.Logger
	onListenerError func(*ListenerError)

	state          State
	inFrame        bool
	closeRequested bool
	frame          uint64
}

// NewWindow opens surface with cfg's name and size and returns a window in
// StateOpen. A surface that fails to open yields a ResourceUnavailable error.
func NewWindow(surface Surface, cfg Config) (*Window, error) {
	if surface == nil {
		return nil, newError(CodeInvalidOperation, "NewWindow", "nil surface")
	}
	cfg = cfg.withDefaults()
	if err := surface.Open(cfg.Name, cfg.Width, cfg.Height); err != nil {
		if CodeOf(err) != "" {
			return nil, err
		}
		return nil, wrapError(CodeResourceUnavailable, "NewWindow", err, "open surface %q", cfg.Name)
	}
	w := &Window{
		cfg:             cfg,
		surface:         surface,
		canvas:          NewCanvas(cfg.Width, cfg.Height),
		logger:          cfg.Logger,
		onListenerError: cfg.OnListenerError,
		state:           StateOpen,
	}
	w.canvas.Clear(cfg.Background)
	return w, nil
}

// Config returns the effective configuration.
func (w *Window) Config() Config { return w.cfg }

// Canvas returns the window's canvas.
func (w *Window) Canvas() *Canvas { return w.canvas }

// Logger returns the window's logger.
func (w *Window) Logger() *log.Logger { return w.logger }

// State returns the current lifecycle state.
func (w *Window) State() State { return w.state }

// Frame returns the number of frames started so far.
func (w *Window) Frame() uint64 { return w.frame }

// Delta returns the update delta in seconds: 1/FPS, or 0 when unthrottled.
func (w *Window) Delta() float64 {
	if w.cfg.FPS <= 0 {
		return 0
	}
	return 1 / float64(w.cfg.FPS)
}

// frameBudget is how long a poll surface may block for input each frame.
func (w *Window) frameBudget() time.Duration {
	if w.cfg.FPS <= 0 {
		return time.Millisecond
	}
	return time.Second / time.Duration(w.cfg.FPS)
}

// --- Roots ---

// Add appends node to the root list. Roots draw in list order, so later
// roots paint over earlier ones.
func (w *Window) Add(node *Node) {
	if node == nil {
		panic("sapling: cannot add nil node")
	}
	w.roots = append(w.roots, node)
	if w.cfg.Debug {
		debugCheckTree(w.logger, node)
	}
}

// Remove removes node from the root list. It reports whether node was a root.
func (w *Window) Remove(node *Node) bool {
	for i, r := range w.roots {
		if r == node {
			copy(w.roots[i:], w.roots[i+1:])
			w.roots[len(w.roots)-1] = nil
			w.roots = w.roots[:len(w.roots)-1]
			return true
		}
	}
	return false
}

// Roots returns the root list. The returned slice MUST NOT be mutated by the caller.
func (w *Window) Roots() []*Node {
	return w.roots
}

// --- Loop ---

// Show runs frames until the window reaches StateClosed: the close key was
// pressed, Close was called, or the surface stopped being visible. The
// surface is released on every exit path, including errors and panics.
func (w *Window) Show() (err error) {
	if w.state == StateClosed {
		return newError(CodeResourceUnavailable, "Window.Show", "window %q is closed", w.cfg.Name)
	}
	defer func() {
		w.inFrame = false
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if d, ok := w.surface.(Driver); ok {
		return d.Drive(w.cfg.FPS, func() (bool, error) {
			return w.step(0)
		})
	}
	budget := w.frameBudget()
	for {
		more, err := w.step(budget)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// step runs one frame and reports whether another frame should follow.
func (w *Window) step(budget time.Duration) (bool, error) {
	if w.state == StateClosed {
		return false, nil
	}
	w.inFrame = true
	w.frame++

	var stats frameStats
	t0 := time.Now()

	stats.failures += w.dispatch(Event{Type: EventUpdate, Delta: w.Delta()})
	stats.updateTime = time.Since(t0)
	t0 = time.Now()

	stats.nodes = w.Draw()
	stats.drawTime = time.Since(t0)
	t0 = time.Now()

	if err := w.surface.Present(w.canvas.img); err != nil {
		w.inFrame = false
		if CodeOf(err) == "" {
			err = wrapError(CodeResourceUnavailable, "Window.Show", err, "present frame %d", w.frame)
		}
		return false, err
	}
	stats.presentTime = time.Since(t0)
	t0 = time.Now()

	closeKey := false
	if !w.closeRequested {
		closeKey = w.pumpEvents(budget, &stats)
	}
	stats.dispatchTime = time.Since(t0)
	w.inFrame = false

	if w.cfg.Debug {
		w.debugLog(stats)
	}

	if closeKey || w.closeRequested || !w.surface.Visible() {
		return false, w.release()
	}
	return true, nil
}

// pumpEvents waits up to budget for the first input event, then drains any
// others already pending, dispatching each. It reports whether the close key
// was pressed; dispatch stops right after it.
func (w *Window) pumpEvents(budget time.Duration, stats *frameStats) bool {
	e, ok := w.surface.WaitEvent(budget)
	for ok {
		stats.events++
		stats.failures += w.dispatch(e)
		if e.Type == EventKeyDown && e.Key == w.cfg.CloseKey {
			return true
		}
		if w.closeRequested {
			return false
		}
		e, ok = w.surface.WaitEvent(0)
	}
	return false
}

// Draw clears the canvas to the background color and draws every visible
// root in list order. It returns the number of nodes drawn.
func (w *Window) Draw() int {
	w.canvas.Clear(w.cfg.Background)
	drawn := 0
	for _, root := range w.roots {
		drawn += root.draw(w.canvas)
	}
	return drawn
}

// Close moves the window to StateClosed and releases the surface. It is
// idempotent. Called from a listener it takes effect when the current frame
// ends, so no further frame starts and the running one is not cut short.
// A surface that reports it was already released is not an error.
func (w *Window) Close() error {
	if w.state == StateClosed {
		return nil
	}
	if w.inFrame {
		w.closeRequested = true
		return nil
	}
	return w.release()
}

func (w *Window) release() error {
	if w.state == StateClosed {
		return nil
	}
	w.state = StateClosed
	w.closeRequested = false
	if err := w.surface.Close(); err != nil {
		if errors.Is(err, ErrResourceUnavailable) {
			w.logger.Debug("surface already released", "window", w.cfg.Name, "err", err)
			return nil
		}
		return err
	}
	return nil
}
