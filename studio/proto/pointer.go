package proto

import "encoding/binary"

// PointerPayload encodes a MsgPointer payload.
//
// Layout (little-endian):
//   - u8: kind (hal.PointerKind)
//   - u8: source (hal.PointerSource)
//   - u16: contact ID
//   - i32: x
//   - i32: y
func PointerPayload(kind, source uint8, id uint16, x, y int32) []byte {
	buf := make([]byte, 12)
	buf[0] = kind
	buf[1] = source
	binary.LittleEndian.PutUint16(buf[2:4], id)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(x))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(y))
	return buf
}

// DecodePointerPayload decodes a PointerPayload.
func DecodePointerPayload(payload []byte) (kind, source uint8, id uint16, x, y int32, ok bool) {
	if len(payload) < 12 {
		return 0, 0, 0, 0, 0, false
	}
	kind = payload[0]
	source = payload[1]
	id = binary.LittleEndian.Uint16(payload[2:4])
	x = int32(binary.LittleEndian.Uint32(payload[4:8]))
	y = int32(binary.LittleEndian.Uint32(payload[8:12]))
	return kind, source, id, x, y, true
}

// KeyPayload encodes a MsgKey payload.
//
// Layout (little-endian):
//   - u16: code (hal.KeyCode)
//   - u8: press (0/1)
//   - u32: rune
func KeyPayload(code uint16, press bool, r rune) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint16(buf[0:2], code)
	if press {
		buf[2] = 1
	}
	binary.LittleEndian.PutUint32(buf[3:7], uint32(r))
	return buf
}

// DecodeKeyPayload decodes a KeyPayload.
func DecodeKeyPayload(payload []byte) (code uint16, press bool, r rune, ok bool) {
	if len(payload) < 7 {
		return 0, false, 0, false
	}
	code = binary.LittleEndian.Uint16(payload[0:2])
	press = payload[2] != 0
	r = rune(binary.LittleEndian.Uint32(payload[3:7]))
	return code, press, r, true
}
