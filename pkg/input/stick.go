package input

import (
	"fmt"

	"github.com/0xcafed00d/joystick"
)

// DeadZone is the axis magnitude below which a reading is treated as
// exactly zero, suppressing stick drift near center.
const DeadZone = 0.1

// axisFullScale is the nominal full deflection reported by the
// joystick driver.
const axisFullScale = 32767

// Default control layout: left stick drives, one face button cycles
// the robot id.
const (
	DefaultTurnAxis     = 0
	DefaultThrottleAxis = 1
	DefaultCycleButton  = 0
)

// Device is the subset of the joystick driver the Stick source needs.
type Device interface {
	Read() (joystick.State, error)
	Close()
}

// Stick is the gamepad intent source. It polls a snapshot of two
// analog axes and one button each tick; there is no event queue. The
// previous button state lives here so cycle requests fire on the
// false-to-true edge only.
type Stick struct {
	dev          Device
	name         string
	throttleAxis int
	turnAxis     int
	cycleButton  int
	lastButton   bool
}

// OpenStick opens gamepad number id via the OS joystick driver. A
// missing or unreadable device is fatal to setup; callers abort
// before entering the control loop.
func OpenStick(id int) (*Stick, error) {
	dev, err := joystick.Open(id)
	if err != nil {
		return nil, fmt.Errorf("open joystick %d: %w", id, err)
	}
	if dev.AxisCount() < 2 {
		dev.Close()
		return nil, fmt.Errorf("joystick %d: need 2 axes, have %d", id, dev.AxisCount())
	}
	return &Stick{
		dev:          dev,
		name:         dev.Name(),
		throttleAxis: DefaultThrottleAxis,
		turnAxis:     DefaultTurnAxis,
		cycleButton:  DefaultCycleButton,
	}, nil
}

// NewStick wraps an already-open device, for tests and alternate
// layouts.
func NewStick(dev Device, throttleAxis, turnAxis, cycleButton int) *Stick {
	return &Stick{
		dev:          dev,
		throttleAxis: throttleAxis,
		turnAxis:     turnAxis,
		cycleButton:  cycleButton,
	}
}

// Name reports the device name from the driver.
func (s *Stick) Name() string {
	return s.name
}

// Close releases the joystick device.
func (s *Stick) Close() error {
	s.dev.Close()
	return nil
}

// Sample polls the gamepad and normalizes the reading. The throttle
// axis is sign-inverted: pushing the stick forward reads negative raw
// but means positive throttle.
func (s *Stick) Sample() (Intent, error) {
	state, err := s.dev.Read()
	if err != nil {
		return Intent{}, fmt.Errorf("read joystick: %w", err)
	}

	var intent Intent
	if s.throttleAxis < len(state.AxisData) {
		intent.Throttle = applyDeadZone(-normalizeAxis(state.AxisData[s.throttleAxis]))
	}
	if s.turnAxis < len(state.AxisData) {
		intent.Turn = applyDeadZone(normalizeAxis(state.AxisData[s.turnAxis]))
	}

	button := state.Buttons&(1<<uint(s.cycleButton)) != 0
	if button && !s.lastButton {
		intent.Cycles = 1
	}
	s.lastButton = button

	return intent, nil
}

func normalizeAxis(raw int) float64 {
	v := float64(raw) / axisFullScale
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return v
}

func applyDeadZone(v float64) float64 {
	if v > -DeadZone && v < DeadZone {
		return 0
	}
	return v
}
