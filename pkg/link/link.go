// Package link owns the serial channel to the base station: open
// parameters, write semantics and shutdown.
package link

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Open parameters for the STM32 virtual COM port. The USB CDC layer
// ignores the baud rate but the driver still wants one.
const (
	BaudRate    = 115200
	ReadTimeout = time.Second
)

// ErrClosed reports a write on an already-closed channel.
var ErrClosed = errors.New("serial channel closed")

// Porter is the minimal interface the channel needs from a serial
// port, so tests can inject a mock.
type Porter interface {
	io.Writer
	io.Closer
}

// Channel is an exclusively-owned open serial connection. Writes are
// fire-and-forget: no acknowledgement is awaited beyond the port's
// own timeout. Close is idempotent; the underlying port is closed
// exactly once no matter how many exit paths reach it.
type Channel struct {
	mu     sync.Mutex
	port   Porter
	closed bool
}

// Open opens the serial device at path with the base station's
// parameters: 115200 baud, 8N1, 1 second read timeout.
func Open(path string) (*Channel, error) {
	mode := &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := port.SetReadTimeout(ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", path, err)
	}

	return &Channel{port: port}, nil
}

// Wrap builds a channel over an already-open port.
func Wrap(port Porter) *Channel {
	return &Channel{port: port}
}

// Send writes one encoded frame. A failed or short write is reported
// but leaves the channel usable; each tick's write is independent and
// the caller decides whether to continue.
func (c *Channel) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	n, err := c.port.Write(frame)
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if n != len(frame) {
		return fmt.Errorf("write frame: short write (%d of %d bytes)", n, len(frame))
	}
	return nil
}

// Close releases the port. Further calls are no-ops.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.port.Close()
}

// Closed reports whether the channel has been shut down.
func (c *Channel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
