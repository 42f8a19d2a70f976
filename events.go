package sapling

import (
	"fmt"
	"strings"
)

// EventType identifies a kind of event delivered to window listeners.
type EventType uint8

const (
	EventKeyDown   EventType = iota // fires once per key press with the key code
	EventMouseDown                  // fires when the primary pointer button is pressed
	EventMouseMove                  // fires when the pointer moves over the surface
	EventMouseUp                    // fires when the primary pointer button is released
	EventUpdate                     // fires at the start of every frame with the frame delta
	numEventTypes
)

var eventNames = [numEventTypes]string{
	EventKeyDown:   "onKeyDown",
	EventMouseDown: "onMouseDown",
	EventMouseMove: "onMouseMove",
	EventMouseUp:   "onMouseUp",
	EventUpdate:    "onUpdate",
}

func (t EventType) String() string {
	if t < numEventTypes {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// ParseEventType maps an event name ("onKeyDown", "keydown", ...) to its type.
func ParseEventType(name string) (EventType, error) {
	norm := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "on")
	for t, n := range eventNames {
		if strings.ToLower(strings.TrimPrefix(n, "on")) == norm {
			return EventType(t), nil
		}
	}
	return 0, newError(CodeInvalidOperation, "ParseEventType", "unknown event %q", name)
}

// Event carries the data for one listener invocation. Key is set for
// EventKeyDown, X and Y for mouse events, Delta (seconds) for EventUpdate.
type Event struct {
	Type  EventType
	Key   Key
	X, Y  float64
	Delta float64
}

// Listener handles an event. A returned error is reported and does not stop
// other listeners from running.
type Listener func(Event) error

// --- Listener registry ---

type listenerEntry struct {
	id uint32
	fn Listener
}

type listenerRegistry struct {
	lists  [numEventTypes][]listenerEntry
	nextID uint32
}

func (r *listenerRegistry) add(t EventType, fn Listener) ListenerHandle {
	if t >= numEventTypes {
		panic(fmt.Sprintf("sapling: unknown event type %d", t))
	}
	if fn == nil {
		panic("sapling: nil listener")
	}
	r.nextID++
	r.lists[t] = append(r.lists[t], listenerEntry{id: r.nextID, fn: fn})
	return ListenerHandle{id: r.nextID, reg: r, event: t}
}

// snapshot returns the listeners for t as of now. Dispatch iterates the
// snapshot, so listeners added or removed mid-dispatch apply to the next one.
func (r *listenerRegistry) snapshot(t EventType) []listenerEntry {
	l := r.lists[t]
	return l[:len(l):len(l)]
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id    uint32
	reg   *listenerRegistry
	event EventType
}

// Remove unregisters this listener so it no longer fires. Removing twice is a no-op.
func (h ListenerHandle) Remove() {
	if h.reg == nil {
		return
	}
	list := h.reg.lists[h.event]
	for i := range list {
		if list[i].id == h.id {
			// Fresh slice so snapshots taken before removal stay intact.
			next := make([]listenerEntry, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			h.reg.lists[h.event] = next
			return
		}
	}
}

// --- Registration ---

// AddEventListener appends fn to the listeners for t. Listeners for the same
// event fire in registration order.
func (w *Window) AddEventListener(t EventType, fn Listener) ListenerHandle {
	return w.listeners.add(t, fn)
}

// OnKeyDown registers fn for key presses.
func (w *Window) OnKeyDown(fn func(key Key)) ListenerHandle {
	return w.AddEventListener(EventKeyDown, func(e Event) error {
		fn(e.Key)
		return nil
	})
}

// OnMouseDown registers fn for primary button presses.
func (w *Window) OnMouseDown(fn func(x, y float64)) ListenerHandle {
	return w.AddEventListener(EventMouseDown, mouseListener(fn))
}

// OnMouseMove registers fn for pointer motion.
func (w *Window) OnMouseMove(fn func(x, y float64)) ListenerHandle {
	return w.AddEventListener(EventMouseMove, mouseListener(fn))
}

// OnMouseUp registers fn for primary button releases.
func (w *Window) OnMouseUp(fn func(x, y float64)) ListenerHandle {
	return w.AddEventListener(EventMouseUp, mouseListener(fn))
}

// OnUpdate registers fn to run at the start of every frame with the frame
// delta in seconds.
func (w *Window) OnUpdate(fn func(dt float64)) ListenerHandle {
	return w.AddEventListener(EventUpdate, func(e Event) error {
		fn(e.Delta)
		return nil
	})
}

func mouseListener(fn func(x, y float64)) Listener {
	return func(e Event) error {
		fn(e.X, e.Y)
		return nil
	}
}

// --- Dispatch ---

// dispatch runs every listener for e.Type in registration order. A listener
// that returns an error or panics is reported and the rest still run.
// Returns the number of failed listeners.
func (w *Window) dispatch(e Event) int {
	failed := 0
	for i, entry := range w.listeners.snapshot(e.Type) {
		if err := callListener(entry.fn, e); err != nil {
			failed++
			w.reportListenerError(&ListenerError{Event: e.Type, Index: i, Err: err})
		}
	}
	return failed
}

// callListener invokes fn, converting a panic into an error.
func callListener(fn Listener, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", perr)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(e)
}

func (w *Window) reportListenerError(err *ListenerError) {
	w.logger.Error("listener failed", "event", err.Event, "index", err.Index, "err", err.Err)
	if w.onListenerError != nil {
		w.onListenerError(err)
	}
}
