package frame

import (
	"bytes"
	"testing"
)

func TestEncode_Layout(t *testing.T) {
	got := Encode(Frame{RobotID: 2, Left: 1.0, Right: -0.5})

	want := []byte{
		0x02, 0x00, 0x00, 0x00, // id 2, little endian
		0x00, 0x00, 0x80, 0x3f, // 1.0
		0x00, 0x00, 0x00, 0xbf, // -0.5
	}

	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x, want % x", got, want)
	}
}

func TestEncode_Size(t *testing.T) {
	if n := len(Encode(Frame{})); n != Size {
		t.Errorf("Encode produced %d bytes, want %d", n, Size)
	}
}

func TestRoundTrip(t *testing.T) {
	velocities := []float32{0, 1.0, -1.0, 0.5, -0.5, 1.5, -0.25}

	for id := int32(0); id < 4; id++ {
		for _, l := range velocities {
			for _, r := range velocities {
				f := Frame{RobotID: id, Left: l, Right: r}
				back, err := Decode(Encode(f))
				if err != nil {
					t.Fatalf("Decode failed for %+v: %v", f, err)
				}
				if back != f {
					t.Errorf("round-trip %+v -> %+v", f, back)
				}
			}
		}
	}
}

func TestDecode_BadLength(t *testing.T) {
	for _, n := range []int{0, 4, 11, 13} {
		if _, err := Decode(make([]byte, n)); err == nil {
			t.Errorf("Decode accepted %d bytes", n)
		}
	}
}
