// Package drive converts normalized driving intent into differential
// wheel velocities and manages robot addressing.
package drive

import "math"

// NumRobots is the number of addressable robots on the radio link.
const NumRobots = 4

// DefaultMaxSpeed is the nominal full-scale wheel velocity. Velocities
// on the wire are fractions of the robot's rated maximum, so 1.0 means
// full speed. It is a scale, not a hard ceiling: combined intents can
// exceed it unless clamped.
const DefaultMaxSpeed = 1.0

// WheelCommand holds the target velocity for each wheel as a signed
// fraction of maximum rated speed.
type WheelCommand struct {
	Left  float64
	Right float64
}

// Mix derives wheel velocities from a normalized throttle and turn
// intent, both in [-1, 1]. Positive throttle drives forward, positive
// turn rotates clockwise (right wheel slows, left speeds up).
//
//	left  = (throttle + turn) * maxSpeed
//	right = (throttle - turn) * maxSpeed
func Mix(throttle, turn, maxSpeed float64) WheelCommand {
	return WheelCommand{
		Left:  (throttle + turn) * maxSpeed,
		Right: (throttle - turn) * maxSpeed,
	}
}

// Clamp limits both wheel velocities to [-limit, limit].
func (c WheelCommand) Clamp(limit float64) WheelCommand {
	return WheelCommand{
		Left:  math.Max(-limit, math.Min(limit, c.Left)),
		Right: math.Max(-limit, math.Min(limit, c.Right)),
	}
}

// NextID advances a robot id by one, wrapping after the last robot.
func NextID(id int) int {
	return (id + 1) % NumRobots
}
