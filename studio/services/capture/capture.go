package capture

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"pixelpad/hal"
	logclient "pixelpad/studio/client/logger"
	"pixelpad/studio/kernel"
	"pixelpad/studio/paint"
	"pixelpad/studio/proto"
)

var (
	ErrEmptySnapshot = errors.New("empty snapshot")
	ErrNoStorage     = errors.New("no storage")
)

// Config controls output naming and resolution.
type Config struct {
	// Prefix starts every file name; the default is "your-art".
	Prefix string
	// NameRange bounds the random suffix: names use n in [0, NameRange).
	NameRange int
	// CellPx is the edge of one cell in the written image.
	CellPx int
	// Rand returns a value in [0, n). Defaults to math/rand/v2.
	Rand func(n int) int
}

func (c Config) withDefaults() Config {
	if c.Prefix == "" {
		c.Prefix = "your-art"
	}
	if c.NameRange <= 0 {
		c.NameRange = 1000
	}
	if c.CellPx <= 0 {
		c.CellPx = 12
	}
	if c.Rand == nil {
		c.Rand = rand.IntN
	}
	return c
}

// FileName returns the download name for suffix n.
func (c Config) FileName(n int) string {
	return fmt.Sprintf("%s-%d.png", c.Prefix, n)
}

// Service turns MsgCapture requests into PNG files.
//
// The grid colours arrive through a SharedBuffer; the request carries the
// sequence number of the write and the service takes exactly that snapshot.
// Requests are handled one at a time in arrival order. A reply capability on the request, if any, receives
// MsgCaptureDone or MsgError. Every outcome is also logged.
type Service struct {
	ep     kernel.Capability
	shared *kernel.SharedBuffer
	store  hal.Storage
	logCap kernel.Capability
	cfg    Config
}

func New(ep kernel.Capability, shared *kernel.SharedBuffer, store hal.Storage, logCap kernel.Capability, cfg Config) *Service {
	return &Service{ep: ep, shared: shared, store: store, logCap: logCap, cfg: cfg.withDefaults()}
}

func (s *Service) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		if proto.Kind(msg.Kind) != proto.MsgCapture {
			continue
		}
		s.handle(ctx, msg)
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	requestID, seq, cols, rows, ok := proto.DecodeCapturePayload(msg.Payload())
	if !ok {
		s.fail(ctx, msg.Cap, proto.ErrBadMessage, requestID, "short capture request")
		return
	}
	data, ok := s.shared.Read(seq)
	if !ok {
		s.fail(ctx, msg.Cap, proto.ErrBadMessage, requestID, fmt.Sprintf("snapshot %d missing", seq))
		return
	}
	snap, err := paint.DecodeSnapshot(int(cols), int(rows), data)
	if err != nil {
		s.fail(ctx, msg.Cap, proto.ErrBadMessage, requestID, err.Error())
		return
	}

	name, err := s.Write(snap)
	if err != nil {
		s.fail(ctx, msg.Cap, proto.ErrInternal, requestID, err.Error())
		return
	}

	logclient.Logf(ctx, s.logCap, "capture: wrote %s (%dx%d)", name, cols, rows)
	if msg.Cap.Valid() {
		ctx.SendToCapResult(msg.Cap, uint16(proto.MsgCaptureDone), proto.CaptureDonePayload(requestID, name), kernel.Capability{})
	}
}

// Write renders snap and stores it under a fresh random name, overwriting
// any earlier file with the same name.
func (s *Service) Write(snap paint.Snapshot) (string, error) {
	if s.store == nil {
		return "", ErrNoStorage
	}
	img, err := Render(snap, s.cfg.CellPx)
	if err != nil {
		return "", err
	}
	name := s.cfg.FileName(s.cfg.Rand(s.cfg.NameRange))
	if err := s.store.WriteFile(name, img); err != nil {
		return "", fmt.Errorf("store %s: %w", name, err)
	}
	return name, nil
}

func (s *Service) fail(ctx *kernel.Context, reply kernel.Capability, code proto.ErrCode, requestID uint32, detail string) {
	logclient.Logf(ctx, s.logCap, "capture: request %d: %s: %s", requestID, code, detail)
	if !reply.Valid() {
		return
	}
	payload := proto.ErrorPayload(code, proto.MsgCapture, requestID, []byte(detail))
	if len(payload) > kernel.MaxMessageBytes {
		payload = payload[:kernel.MaxMessageBytes]
	}
	ctx.SendToCapResult(reply, uint16(proto.MsgError), payload, kernel.Capability{})
}
