package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Ports    PortsCommand    `command:"ports" description:"List serial devices and locate the base station"`
	Drive    DriveCommand    `command:"drive" description:"Drive robots with the keyboard"`
	Joystick JoystickCommand `command:"joystick" alias:"js" description:"Drive robots with a gamepad"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Swarmpilot - serial teleoperation for differential-drive robot swarms"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
