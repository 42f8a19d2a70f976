package sapling

import (
	"image"
	"time"
)

// Surface is the windowing capability a Window renders to and reads input
// from. Implementations live in the backend packages (ebitensurface,
// raylibsurface, headless).
type Surface interface {
	// Open creates the named surface at the given size.
	Open(name string, width, height int) error
	// Present shows the frame. The image is only valid for the duration of
	// the call; implementations copy what they keep.
	Present(frame *image.RGBA) error
	// WaitEvent blocks up to timeout for the next input event. It reports
	// false when no event arrived in time. A zero timeout only drains events
	// that are already pending.
	WaitEvent(timeout time.Duration) (Event, bool)
	// Visible reports whether the surface is still open on screen. It turns
	// false when the user closes the window chrome.
	Visible() bool
	// Close releases the surface. Closing an already released surface
	// returns a ResourceUnavailable error (see NewResourceError).
	Close() error
}

// Driver is implemented by surfaces whose toolkit insists on owning the
// main loop. Instead of being polled, the surface calls frame once per tick
// until it reports false or an error; WaitEvent must not block for such
// surfaces since the tick rate already paces the frames.
type Driver interface {
	Drive(fps int, frame func() (more bool, err error)) error
}
