// Package swarmpilot provides serial teleoperation for small
// differential-drive robots.
//
// It reads keyboard or joystick input, converts it into per-wheel
// velocities for one of four addressable robots, and streams fixed
// 12-byte drive frames to an STM32 radio base station over its USB
// virtual COM port.
//
// # Installation
//
//	go install github.com/lbarbosa/swarmpilot/cmd/swarmpilot@latest
//
// # Usage
//
// List connected serial devices and check the base station is seen:
//
//	swarmpilot ports
//
// Then drive with the keyboard (arrows or WASD, x cycles the robot id):
//
//	swarmpilot drive
//
// Or with a gamepad:
//
//	swarmpilot joystick
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/swarmpilot: CLI with ports, drive and joystick commands
//   - pkg/discover: USB serial device discovery
//   - pkg/frame: drive command wire format
//   - pkg/input: keyboard and gamepad intent sources
//   - pkg/drive: velocity mixing and robot addressing
//   - pkg/link: serial channel
//   - pkg/teleop: transmission loop
package swarmpilot
