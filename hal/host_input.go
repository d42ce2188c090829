package hal

import "sync"

const (
	inputQueueDepth = 256
	// inputOverflow bounds the backlog of droppable events kept while the
	// queue is full. Contact ends are kept regardless.
	inputOverflow = 64
)

type touchState struct {
	x, y int
}

// hostInput feeds keyboard, mouse and touch events into one ordered queue.
//
// When the queue is full, events wait in an overflow backlog that drains
// ahead of anything newer. Pointer moves are dropped first, other events
// once the backlog is full, and contact ends never.
type hostInput struct {
	ch chan Event

	mu       sync.Mutex
	overflow []Event
	dropped  uint64

	// Poll state, touched only by the window goroutine.
	mouseX, mouseY int
	mouseSeen      bool
	touches        map[int]touchState
	scratch        []int
}

func newHostInput() *hostInput {
	return &hostInput{
		ch:      make(chan Event, inputQueueDepth),
		touches: make(map[int]touchState),
	}
}

func (in *hostInput) Events() <-chan Event { return in.ch }

func (in *hostInput) key(ev KeyEvent) bool {
	return in.emit(Event{Kind: EventKey, Key: ev})
}

func (in *hostInput) pointer(ev PointerEvent) bool {
	return in.emit(Event{Kind: EventPointer, Pointer: ev})
}

// emit queues ev and reports whether it was kept.
func (in *hostInput) emit(ev Event) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.drainLocked()
	if len(in.overflow) == 0 {
		select {
		case in.ch <- ev:
			return true
		default:
		}
	}

	switch {
	case ev.Kind == EventPointer && ev.Pointer.Ends():
	case ev.Kind == EventPointer && ev.Pointer.Kind == PointerMove:
		in.dropped++
		return false
	case len(in.overflow) >= inputOverflow:
		in.dropped++
		return false
	}
	in.overflow = append(in.overflow, ev)
	return true
}

// pump moves backlogged events into the queue as room frees up. The host
// calls it once per frame.
func (in *hostInput) pump() {
	in.mu.Lock()
	in.drainLocked()
	in.mu.Unlock()
}

func (in *hostInput) drainLocked() {
	n := 0
drain:
	for ; n < len(in.overflow); n++ {
		select {
		case in.ch <- in.overflow[n]:
		default:
			break drain
		}
	}
	if n > 0 {
		rest := copy(in.overflow, in.overflow[n:])
		clear(in.overflow[rest:])
		in.overflow = in.overflow[:rest]
	}
}

// Dropped reports how many events were discarded because the queue was full.
func (in *hostInput) Dropped() uint64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.dropped
}
