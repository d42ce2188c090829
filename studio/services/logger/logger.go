package logger

import (
	"pixelpad/hal"
	"pixelpad/studio/kernel"
	"pixelpad/studio/proto"
)

// Service drains MsgLogLine messages into the HAL logger.
type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

// Run writes every log line it receives until the endpoint closes.
func (s *Service) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		if s.log == nil || msg.Kind != uint16(proto.MsgLogLine) {
			continue
		}
		s.log.WriteLineBytes(msg.Payload())
	}
}
