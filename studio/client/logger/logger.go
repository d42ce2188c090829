package logger

import (
	"fmt"

	"pixelpad/studio/kernel"
	"pixelpad/studio/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(line, kernel.MaxMessageBytes), kernel.Capability{})
}

// Logf formats according to a format specifier and sends the result with Log.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}

// LogRetry is Log that waits for the next tick while the logger queue is
// full, up to limit times.
func LogRetry(ctx *kernel.Context, logCap kernel.Capability, line string, limit int) error {
	if ctx == nil {
		return fmt.Errorf("logger retry: nil context")
	}
	res := ctx.SendToCapRetry(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(line, kernel.MaxMessageBytes), kernel.Capability{}, limit)
	if res != kernel.SendOK {
		return fmt.Errorf("logger send: %s", res)
	}
	return nil
}
