package input

import (
	"time"

	"pixelpad/hal"
	logclient "pixelpad/studio/client/logger"
	"pixelpad/studio/kernel"
	"pixelpad/studio/proto"
)

const (
	maxPending    = 256
	retryInterval = 4 * time.Millisecond
)

type pendingMsg struct {
	kind    proto.Kind
	payload []byte
}

// Service forwards HAL input events to one consumer endpoint as MsgPointer
// and MsgKey, in the order the host delivered them.
//
// When the consumer queue is full, events wait in a bounded backlog and are
// retried. Once the backlog is full, new events are dropped and counted,
// except pointer ups and cancels, which always queue so strokes can end.
type Service struct {
	in     hal.Input
	out    kernel.Capability
	logCap kernel.Capability

	pending []pendingMsg
	dropped uint64
}

func New(in hal.Input, out, logCap kernel.Capability) *Service {
	return &Service{in: in, out: out, logCap: logCap}
}

// Run forwards events until the kernel shuts down.
func (s *Service) Run(ctx *kernel.Context) {
	var events <-chan hal.Event
	if s.in != nil {
		events = s.in.Events()
	}

	for {
		var retry <-chan time.Time
		if len(s.pending) > 0 {
			retry = time.After(retryInterval)
		}

		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.enqueue(ev)
		case <-retry:
		}

		if !s.flush(ctx) {
			return
		}
	}
}

func (s *Service) enqueue(ev hal.Event) {
	var m pendingMsg
	switch ev.Kind {
	case hal.EventPointer:
		p := ev.Pointer
		m = pendingMsg{kind: proto.MsgPointer, payload: proto.PointerPayload(uint8(p.Kind), uint8(p.Source), uint16(p.ID), int32(p.X), int32(p.Y))}
		if p.Ends() {
			s.pending = append(s.pending, m)
			return
		}
	case hal.EventKey:
		m = pendingMsg{kind: proto.MsgKey, payload: proto.KeyPayload(uint16(ev.Key.Code), ev.Key.Press, ev.Key.Rune)}
	default:
		return
	}
	if len(s.pending) >= maxPending {
		s.dropped++
		return
	}
	s.pending = append(s.pending, m)
}

// flush sends the backlog head first. It returns false if the consumer is
// gone for good.
func (s *Service) flush(ctx *kernel.Context) bool {
	sent := 0
	defer func() {
		if sent > 0 {
			n := copy(s.pending, s.pending[sent:])
			s.pending = s.pending[:n]
		}
	}()
	for _, m := range s.pending {
		switch res := ctx.SendToCapResult(s.out, uint16(m.kind), m.payload, kernel.Capability{}); res {
		case kernel.SendOK:
			sent++
		case kernel.SendErrQueueFull:
			return true
		default:
			logclient.Logf(ctx, s.logCap, "input: forward %s: %s", m.kind, res)
			return false
		}
	}
	if s.dropped > 0 {
		logclient.Logf(ctx, s.logCap, "input: dropped %d events", s.dropped)
		s.dropped = 0
	}
	return true
}
