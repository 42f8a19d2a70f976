package sapling

import (
	"fmt"
	"time"
)

// NewFPSCounter creates a start-aligned text node showing the measured frame
// rate, and the update listener that refreshes it about twice a second.
// Register the listener with AddEventListener(EventUpdate, ...).
func NewFPSCounter(font Font) (*Node, Listener) {
	node := NewText("fps_counter", "FPS: --", font)
	node.TextBlock.Align = TextAlignStart
	node.TextBlock.Size = 16

	var (
		last   time.Time
		frames int
	)
	listener := func(Event) error {
		now := time.Now()
		if last.IsZero() {
			last = now
			return nil
		}
		frames++
		elapsed := now.Sub(last)
		if elapsed < 500*time.Millisecond {
			return nil
		}
		node.TextBlock.Content = fmt.Sprintf("FPS: %.1f", float64(frames)/elapsed.Seconds())
		frames = 0
		last = now
		return nil
	}
	return node, listener
}
