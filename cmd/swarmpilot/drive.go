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

type DriveCommand struct {
	Port     string  `long:"port" description:"Serial device path (default: discover by USB id)"`
	Hz       int     `long:"hz" default:"50" description:"Command rate"`
	MaxSpeed float64 `long:"max-speed" default:"1.0" description:"Full-scale wheel velocity"`
	NoClamp  bool    `long:"no-clamp" description:"Allow combined intents to exceed max speed"`
}

func (c *DriveCommand) Execute(args []string) error {
	path, err := resolvePort(c.Port)
	if err != nil {
		return err
	}

	channel, err := link.Open(path)
	if err != nil {
		return err
	}
	fmt.Printf("Connected to base station on %s\n", path)

	keys := input.NewKeys(input.DefaultHoldWindow)

	ctrl, err := teleop.NewController(teleop.Config{
		Channel:  channel,
		Source:   keys,
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

	p := tea.NewProgram(newPilotModel("Swarmpilot Drive", ctrl, keys), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
