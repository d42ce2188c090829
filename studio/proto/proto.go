package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgError
	MsgPointer
	MsgKey
	MsgCapture
	MsgCaptureDone
)

// ErrCode is a generic error category for MsgError responses.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrNotFound
	ErrBusy
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrBadMessage:
		return "bad_message"
	case ErrNotFound:
		return "not_found"
	case ErrBusy:
		return "busy"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgError:
		return "error"
	case MsgPointer:
		return "pointer"
	case MsgKey:
		return "key"
	case MsgCapture:
		return "capture"
	case MsgCaptureDone:
		return "capture_done"
	default:
		return "unknown"
	}
}
