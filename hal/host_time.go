package hal

import "time"

// hostTime turns wall-clock progress between frames into 1ms ticks. A slow
// frame is caught up in one burst; ticks beyond the channel capacity are
// dropped.
type hostTime struct {
	ch  chan uint64
	seq uint64
	now func() time.Time

	last time.Time
	acc  time.Duration
}

const hostTickDur = time.Millisecond

func newHostTime() *hostTime {
	return newHostTimeWithClock(time.Now)
}

func newHostTimeWithClock(now func() time.Time) *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now
	if n := uint64(t.acc / hostTickDur); n > 0 {
		t.acc %= hostTickDur
		t.emit(n)
	}
}

func (t *hostTime) emit(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
