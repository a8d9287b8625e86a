// Package input turns raw operator input into normalized driving
// intent.
//
// Two sources exist: Keys tracks discrete press/release events from a
// keyboard, Stick samples a gamepad's analog axes. Both produce the
// same Intent value, so the velocity mixing downstream is shared.
package input

// Intent is one tick's worth of normalized operator input.
//
// Throttle and Turn are in [-1, 1]: positive throttle drives forward,
// positive turn steers right. Cycles counts robot-id cycle requests
// registered since the previous sample (edge-triggered, so a held
// button contributes at most one). Quit reports that the operator
// asked to stop.
type Intent struct {
	Throttle float64
	Turn     float64
	Cycles   int
	Quit     bool
}

// Source yields one Intent snapshot per control tick.
type Source interface {
	Sample() (Intent, error)
}
