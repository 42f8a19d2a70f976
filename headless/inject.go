package headless

import "github.com/phanxgames/sapling"

// Injected events are released one per presented frame, in the order they
// were queued, so a sequence like a drag spreads across several frames the
// way real input would.

// Inject queues an arbitrary event.
func (s *Surface) Inject(e sapling.Event) {
	s.injectQueue = append(s.injectQueue, e)
}

// InjectKey queues a key press.
func (s *Surface) InjectKey(key sapling.Key) {
	s.Inject(sapling.Event{Type: sapling.EventKeyDown, Key: key})
}

// InjectPress queues a primary button press at (x, y).
func (s *Surface) InjectPress(x, y float64) {
	s.Inject(sapling.Event{Type: sapling.EventMouseDown, X: x, Y: y})
}

// InjectMove queues a pointer move to (x, y).
func (s *Surface) InjectMove(x, y float64) {
	s.Inject(sapling.Event{Type: sapling.EventMouseMove, X: x, Y: y})
}

// InjectRelease queues a primary button release at (x, y).
func (s *Surface) InjectRelease(x, y float64) {
	s.Inject(sapling.Event{Type: sapling.EventMouseUp, X: x, Y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Surface) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Surface) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// Pending returns the number of injected events not yet released.
func (s *Surface) Pending() int {
	return len(s.injectQueue) + len(s.ready)
}

// releaseInjected moves the head of the inject queue to the ready list.
func (s *Surface) releaseInjected() {
	if len(s.injectQueue) == 0 {
		return
	}
	s.ready = append(s.ready, s.injectQueue[0])
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
}
