package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lbarbosa/swarmpilot/pkg/discover"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type PortsCommand struct{}

func (c *PortsCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Swarmpilot Ports"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━"))
	fmt.Println()

	ports, err := discover.List()
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		fmt.Println("No serial devices found.")
		return nil
	}

	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableCellStyle := lipgloss.NewStyle().Padding(0, 1)
	tableMatchStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)

	matched := false
	rows := make([][]string, 0, len(ports))
	matches := make([]bool, 0, len(ports))
	for _, p := range ports {
		vid, pid := p.VID, p.PID
		if !p.IsUSB {
			vid, pid = "-", "-"
		}
		note := ""
		if discover.Match(p) {
			note = "base station"
			matched = true
		}
		rows = append(rows, []string{p.Name, vid, pid, p.SerialNumber, note})
		matches = append(matches, note != "")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Device", "VID", "PID", "Serial", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row >= 0 && row < len(matches) && matches[row] {
				return tableMatchStyle
			}
			return tableCellStyle
		})

	fmt.Println(t.Render())
	fmt.Println()

	if matched {
		fmt.Println(successStyle.Render("Base station found."))
		fmt.Println("Start driving with: " + headerStyle.Render("swarmpilot drive"))
	} else {
		fmt.Println("No base station connected (looking for USB " +
			discover.VendorID + ":" + discover.ProductID + ").")
	}

	return nil
}

// resolvePort picks the serial device for the drive commands. An
// explicit --port wins; otherwise the base station is discovered by
// USB identity, with a short retry so a device plugged in late is
// still caught, and an interactive choice when several are connected.
func resolvePort(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	paths, err := discover.ResolveAll()
	if errors.Is(err, discover.ErrDeviceNotFound) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return discover.ResolveWithRetry(ctx, 5, time.Second)
	}
	if err != nil {
		return "", err
	}

	if len(paths) == 1 {
		return paths[0], nil
	}

	var options []huh.Option[string]
	for _, p := range paths {
		options = append(options, huh.NewOption(p, p))
	}

	var path string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Several base stations are connected").
				Description("Which one should send the commands?").
				Options(options...).
				Value(&path),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return path, nil
}
