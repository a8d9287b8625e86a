// Package teleop drives the transmission loop: sample input, derive
// velocities, encode a frame, write it to the serial channel.
package teleop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lbarbosa/swarmpilot/pkg/drive"
	"github.com/lbarbosa/swarmpilot/pkg/frame"
	"github.com/lbarbosa/swarmpilot/pkg/input"
	"github.com/lbarbosa/swarmpilot/pkg/link"
)

// State is a snapshot of one control tick, published for display.
type State struct {
	RobotID   int
	Command   drive.WheelCommand
	Intent    input.Intent
	Timestamp time.Time
	Error     error
}

// Config holds configuration for the controller.
type Config struct {
	Channel  *link.Channel
	Source   input.Source
	Hz       int     // tick rate, default 50
	MaxSpeed float64 // full-scale wheel velocity, default 1.0
	NoClamp  bool    // keep the raw summed mix instead of limiting to ±MaxSpeed
}

// Controller owns the control loop. One goroutine runs the tick
// cycle; the UI observes it through the state and log channels.
type Controller struct {
	channel  *link.Channel
	source   input.Source
	hz       int
	maxSpeed float64
	noClamp  bool

	mu      sync.RWMutex
	robotID int
	running bool

	stateCh chan State
	logCh   chan string
}

// NewController creates a controller for an open channel and input
// source.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Channel == nil {
		return nil, fmt.Errorf("no serial channel")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("no input source")
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 50
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = drive.DefaultMaxSpeed
	}

	return &Controller{
		channel:  cfg.Channel,
		source:   cfg.Source,
		hz:       cfg.Hz,
		maxSpeed: cfg.MaxSpeed,
		noClamp:  cfg.NoClamp,
		stateCh:  make(chan State, 1),
		logCh:    make(chan string, 10),
	}, nil
}

// Close shuts the serial channel. Safe to call on every exit path;
// the channel closes its port exactly once.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	return c.channel.Close()
}

// States returns a channel that receives per-tick state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Hz returns the tick rate.
func (c *Controller) Hz() int {
	return c.hz
}

// RobotID returns the currently addressed robot.
func (c *Controller) RobotID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.robotID
}

func (c *Controller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start runs the control loop until the operator quits or ctx is
// cancelled. A write failure is not terminal: the tick logs it and
// the next one simply tries again.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.mu.Unlock()

	c.log("Teleoperation started at %d Hz, robot 0", c.hz)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log("Teleoperation stopped")
			return ctx.Err()
		case <-ticker.C:
			if quit := c.step(); quit {
				c.log("Teleoperation stopped")
				return nil
			}
		}
	}
}

// step runs one tick and reports whether the operator asked to quit.
func (c *Controller) step() bool {
	intent, err := c.source.Sample()
	if err != nil {
		c.log("Input error: %v", err)
		c.sendState(State{RobotID: c.RobotID(), Timestamp: time.Now(), Error: err})
		return false
	}

	if intent.Quit {
		return true
	}

	c.mu.Lock()
	for i := 0; i < intent.Cycles; i++ {
		c.robotID = drive.NextID(c.robotID)
	}
	id := c.robotID
	c.mu.Unlock()

	if intent.Cycles > 0 {
		c.log("Switched to robot %d", id)
	}

	cmd := drive.Mix(intent.Throttle, intent.Turn, c.maxSpeed)
	if !c.noClamp {
		cmd = cmd.Clamp(c.maxSpeed)
	}

	buf := frame.Encode(frame.Frame{
		RobotID: int32(id),
		Left:    float32(cmd.Left),
		Right:   float32(cmd.Right),
	})

	sendErr := c.channel.Send(buf)
	if sendErr != nil {
		c.log("Write error: %v", sendErr)
	}

	c.sendState(State{
		RobotID:   id,
		Command:   cmd,
		Intent:    intent,
		Timestamp: time.Now(),
		Error:     sendErr,
	})
	return false
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}
