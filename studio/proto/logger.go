package proto

// LogLinePayload encodes a MsgLogLine payload.
//
// The payload is UTF-8 without a trailing newline, cut to max bytes on a
// rune boundary. Delivery is best-effort.
func LogLinePayload(line string, max int) []byte {
	if max > 0 && len(line) > max {
		cut := max
		for cut > 0 && !runeStart(line[cut]) {
			cut--
		}
		line = line[:cut]
	}
	return []byte(line)
}

func runeStart(b byte) bool { return b&0xC0 != 0x80 }
