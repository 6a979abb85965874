//go:build linux

package evdev

import "encoding/binary"

// Event type codes from the Linux input subsystem.
const (
	evKey = 0x01
	evRel = 0x02
)

// eventSize is sizeof(struct input_event) on 64-bit Linux:
// two int64 timeval fields, type, code, value.
const eventSize = 24

type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

func decodeEvents(buf []byte) []inputEvent {
	n := len(buf) / eventSize
	out := make([]inputEvent, 0, n)
	for i := 0; i < n; i++ {
		b := buf[i*eventSize : (i+1)*eventSize]
		out = append(out, inputEvent{
			Sec:   int64(binary.LittleEndian.Uint64(b[0:8])),
			Usec:  int64(binary.LittleEndian.Uint64(b[8:16])),
			Type:  binary.LittleEndian.Uint16(b[16:18]),
			Code:  binary.LittleEndian.Uint16(b[18:20]),
			Value: int32(binary.LittleEndian.Uint32(b[20:24])),
		})
	}
	return out
}

// isAction reports whether the event counts as a user action: a key press or
// mouse button click (value 1 is press, 0 release, 2 autorepeat).
func isAction(ev inputEvent) bool {
	return ev.Type == evKey && ev.Value == 1
}
