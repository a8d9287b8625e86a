// Package frame defines the wire format for a single drive command.
//
// A frame is a fixed 12-byte little-endian record: int32 robot id,
// float32 left wheel velocity, float32 right wheel velocity. There is
// no length prefix, checksum or delimiter; the receiver reads exactly
// 12 bytes per command at a fixed cadence.
package frame

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Size is the length of an encoded frame in bytes.
const Size = 12

// Frame is one drive command: a robot id and the per-wheel velocities,
// each a signed fraction of the robot's rated maximum speed.
type Frame struct {
	RobotID int32
	Left    float32
	Right   float32
}

// Encode returns the 12-byte wire representation of the frame.
// It does not validate the robot id; addressing rules live with the
// input mapping layer.
func Encode(f Frame) []byte {
	buf := make([]byte, Size)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(f.RobotID))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(f.Left))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(f.Right))
	return buf
}

// Decode parses a 12-byte wire record back into a Frame.
func Decode(buf []byte) (Frame, error) {
	if len(buf) != Size {
		return Frame{}, fmt.Errorf("decode frame: got %d bytes, want %d", len(buf), Size)
	}
	return Frame{
		RobotID: int32(binary.LittleEndian.Uint32(buf[0:4])),
		Left:    math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
		Right:   math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])),
	}, nil
}
