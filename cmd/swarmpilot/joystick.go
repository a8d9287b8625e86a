package main

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lbarbosa/swarmpilot/pkg/input"
	"github.com/lbarbosa/swarmpilot/pkg/link"
	"github.com/lbarbosa/swarmpilot/pkg/teleop"
)

type JoystickCommand struct {
	Port     string  `long:"port" description:"Serial device path (default: discover by USB id)"`
	Index    int     `long:"index" default:"0" description:"Joystick device number"`
	Hz       int     `long:"hz" default:"50" description:"Command rate"`
	MaxSpeed float64 `long:"max-speed" default:"1.0" description:"Full-scale wheel velocity"`
	NoClamp  bool    `long:"no-clamp" description:"Allow combined forward+turn to exceed max speed"`
}

func (c *JoystickCommand) Execute(args []string) error {
	// A missing gamepad is fatal before the loop starts.
	stick, err := input.OpenStick(c.Index)
	if err != nil {
		return err
	}
	defer stick.Close()
	fmt.Printf("Joystick '%s' connected.\n", stick.Name())

	path, err := resolvePort(c.Port)
	if err != nil {
		return err
	}

	channel, err := link.Open(path)
	if err != nil {
		return err
	}
	fmt.Printf("Connected to base station on %s\n", path)

	ctrl, err := teleop.NewController(teleop.Config{
		Channel:  channel,
		Source:   stick,
		Hz:       c.Hz,
		MaxSpeed: c.MaxSpeed,
		NoClamp:  c.NoClamp,
	})
	if err != nil {
		channel.Close()
		return err
	}
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ctrl.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Controller error: %v", err)
		}
	}()

	p := tea.NewProgram(newPilotModel("Swarmpilot Joystick", ctrl, nil), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
