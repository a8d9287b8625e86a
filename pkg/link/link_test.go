package link

import (
	"bytes"
	"errors"
	"testing"
)

// mockPort implements Porter for testing.
type mockPort struct {
	written    bytes.Buffer
	writeErr   error
	shortWrite bool
	closeErr   error
	closeCalls int
}

func (m *mockPort) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	if m.shortWrite {
		n := len(p) / 2
		m.written.Write(p[:n])
		return n, nil
	}
	m.written.Write(p)
	return len(p), nil
}

func (m *mockPort) Close() error {
	m.closeCalls++
	return m.closeErr
}

func TestChannel_Send(t *testing.T) {
	port := &mockPort{}
	ch := Wrap(port)

	frame := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if err := ch.Send(frame); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !bytes.Equal(port.written.Bytes(), frame) {
		t.Errorf("wrote % x, want % x", port.written.Bytes(), frame)
	}
}

func TestChannel_SendError(t *testing.T) {
	port := &mockPort{writeErr: errors.New("device unplugged")}
	ch := Wrap(port)

	if err := ch.Send([]byte{1}); err == nil {
		t.Fatal("Send swallowed write error")
	}

	// Channel stays usable: next tick tries again.
	port.writeErr = nil
	if err := ch.Send([]byte{2}); err != nil {
		t.Errorf("Send after recovered error: %v", err)
	}
}

func TestChannel_ShortWrite(t *testing.T) {
	port := &mockPort{shortWrite: true}
	ch := Wrap(port)

	if err := ch.Send([]byte{1, 2, 3, 4}); err == nil {
		t.Error("short write not reported")
	}
}

func TestChannel_CloseOnce(t *testing.T) {
	port := &mockPort{}
	ch := Wrap(port)

	if err := ch.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := ch.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if port.closeCalls != 1 {
		t.Errorf("port closed %d times, want 1", port.closeCalls)
	}
	if !ch.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestChannel_SendAfterClose(t *testing.T) {
	ch := Wrap(&mockPort{})
	ch.Close()

	if err := ch.Send([]byte{1}); !errors.Is(err, ErrClosed) {
		t.Errorf("Send after close = %v, want ErrClosed", err)
	}
}
