package capture

import (
	"fmt"

	"pixelpad/studio/kernel"
	"pixelpad/studio/paint"
	"pixelpad/studio/proto"
)

// Request publishes snap in shared and asks the capture service to write it.
//
// It never blocks: a full service queue or shared buffer is reported as an
// error and the capture is simply not taken. Every accepted request keeps its
// own snapshot, so back-to-back captures each produce a file. reply, if valid,
// receives the outcome.
func Request(ctx *kernel.Context, captureCap kernel.Capability, shared *kernel.SharedBuffer, requestID uint32, snap paint.Snapshot, reply kernel.Capability) error {
	if ctx == nil {
		return fmt.Errorf("capture request: nil context")
	}
	if shared == nil {
		return fmt.Errorf("capture request: nil shared buffer")
	}
	if snap.Cols <= 0 || snap.Rows <= 0 || snap.Cols > 0xFFFF || snap.Rows > 0xFFFF {
		return fmt.Errorf("capture request: bad grid size %dx%d", snap.Cols, snap.Rows)
	}

	seq, ok := shared.Write(snap.Encode())
	if !ok {
		return fmt.Errorf("capture request %d: %d snapshots pending", requestID, shared.Pending())
	}
	payload := proto.CapturePayload(requestID, seq, uint16(snap.Cols), uint16(snap.Rows))
	if res := ctx.SendToCapResult(captureCap, uint16(proto.MsgCapture), payload, reply); res != kernel.SendOK {
		shared.Discard(seq)
		return fmt.Errorf("capture request %d: %s", requestID, res)
	}
	return nil
}

// Outcome is the decoded reply to a capture request.
type Outcome struct {
	RequestID uint32
	Name      string
	Err       error
}

// DecodeReply interprets a message received on the reply endpoint.
func DecodeReply(msg kernel.Message) (Outcome, bool) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgCaptureDone:
		id, name, ok := proto.DecodeCaptureDonePayload(msg.Payload())
		return Outcome{RequestID: id, Name: name}, ok
	case proto.MsgError:
		code, ref, id, detail, ok := proto.DecodeErrorPayload(msg.Payload())
		if !ok || ref != proto.MsgCapture {
			return Outcome{}, false
		}
		return Outcome{RequestID: id, Err: fmt.Errorf("capture %s: %s", code, detail)}, true
	default:
		return Outcome{}, false
	}
}
