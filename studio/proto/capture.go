package proto

import "encoding/binary"

// CapturePayload encodes a MsgCapture request payload.
//
// The grid colours travel in a kernel.SharedBuffer; seq names the write.
//
// Layout (little-endian):
//   - u32: requestID
//   - u32: shared buffer sequence
//   - u16: columns
//   - u16: rows
func CapturePayload(requestID, seq uint32, cols, rows uint16) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	binary.LittleEndian.PutUint32(buf[4:8], seq)
	binary.LittleEndian.PutUint16(buf[8:10], cols)
	binary.LittleEndian.PutUint16(buf[10:12], rows)
	return buf
}

// DecodeCapturePayload decodes a CapturePayload.
func DecodeCapturePayload(payload []byte) (requestID, seq uint32, cols, rows uint16, ok bool) {
	if len(payload) < 12 {
		return 0, 0, 0, 0, false
	}
	requestID = binary.LittleEndian.Uint32(payload[0:4])
	seq = binary.LittleEndian.Uint32(payload[4:8])
	cols = binary.LittleEndian.Uint16(payload[8:10])
	rows = binary.LittleEndian.Uint16(payload[10:12])
	return requestID, seq, cols, rows, true
}

// CaptureDonePayload encodes a MsgCaptureDone response payload.
//
// Layout (little-endian):
//   - u32: requestID
//   - bytes: written file name
func CaptureDonePayload(requestID uint32, name string) []byte {
	buf := make([]byte, 4+len(name))
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	copy(buf[4:], name)
	return buf
}

// DecodeCaptureDonePayload decodes a CaptureDonePayload.
func DecodeCaptureDonePayload(payload []byte) (requestID uint32, name string, ok bool) {
	if len(payload) < 4 {
		return 0, "", false
	}
	return binary.LittleEndian.Uint32(payload[0:4]), string(payload[4:]), true
}
