// Package discover locates the base station's USB virtual COM port.
package discover

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.bug.st/serial/enumerator"
)

// USB identity of the STM32 virtual COM port on the base station.
const (
	VendorID  = "0483"
	ProductID = "5740"
)

// ErrDeviceNotFound reports that no connected serial device carries
// the base station's USB identity.
var ErrDeviceNotFound = errors.New("base station not found (STM32 VCP 0483:5740)")

// listPorts is swapped out in tests.
var listPorts = enumerator.GetDetailedPortsList

// List returns all enumerable serial ports, sorted by device path so
// repeated scans on one host see a stable order.
func List() ([]*enumerator.PortDetails, error) {
	ports, err := listPorts()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Name < ports[j].Name
	})
	return ports, nil
}

// Match reports whether a port carries the base station's USB vendor
// and product identity. Ports without USB metadata never match.
func Match(p *enumerator.PortDetails) bool {
	return p.IsUSB &&
		strings.EqualFold(p.VID, VendorID) &&
		strings.EqualFold(p.PID, ProductID)
}

// Resolve returns the device path of the first matching port. The
// sorted enumeration makes the choice deterministic when several base
// stations are plugged in; callers wanting a different one pass a
// port path explicitly.
func Resolve() (string, error) {
	ports, err := List()
	if err != nil {
		return "", err
	}
	for _, p := range ports {
		if Match(p) {
			return p.Name, nil
		}
	}
	return "", ErrDeviceNotFound
}

// ResolveAll returns the paths of every matching port, for interactive
// selection when more than one is connected.
func ResolveAll() ([]string, error) {
	ports, err := List()
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, p := range ports {
		if Match(p) {
			paths = append(paths, p.Name)
		}
	}
	if len(paths) == 0 {
		return nil, ErrDeviceNotFound
	}
	return paths, nil
}

// ResolveWithRetry retries Resolve up to attempts times, waiting delay
// between scans, so a base station plugged in moments after startup is
// still found. Enumeration failures other than a missing device abort
// immediately.
func ResolveWithRetry(ctx context.Context, attempts int, delay time.Duration) (string, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		path, err := Resolve()
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, ErrDeviceNotFound) {
			return "", err
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", lastErr
}
