package input

import (
	"testing"
	"time"
)

// fakeClock drives Keys.now in tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestKeys(holdWindow time.Duration) (*Keys, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	k := NewKeys(holdWindow)
	k.now = clock.now
	return k, clock
}

func TestKeys_SingleIntents(t *testing.T) {
	tests := []struct {
		name           string
		key            Key
		throttle, turn float64
	}{
		{"forward", KeyForward, 1, 0},
		{"backward", KeyBackward, -1, 0},
		{"left", KeyLeft, 0, -0.5},
		{"right", KeyRight, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, _ := newTestKeys(DefaultHoldWindow)
			k.Press(tt.key)
			intent, err := k.Sample()
			if err != nil {
				t.Fatalf("Sample: %v", err)
			}
			if intent.Throttle != tt.throttle || intent.Turn != tt.turn {
				t.Errorf("got (%v, %v), want (%v, %v)",
					intent.Throttle, intent.Turn, tt.throttle, tt.turn)
			}
		})
	}
}

func TestKeys_CombinedIntents(t *testing.T) {
	k, _ := newTestKeys(DefaultHoldWindow)
	k.Press(KeyForward)
	k.Press(KeyLeft)

	intent, _ := k.Sample()
	if intent.Throttle != 1 || intent.Turn != -0.5 {
		t.Errorf("forward+left = (%v, %v), want (1, -0.5)", intent.Throttle, intent.Turn)
	}
}

func TestKeys_OpposingIntentsCancel(t *testing.T) {
	k, _ := newTestKeys(DefaultHoldWindow)
	k.Press(KeyForward)
	k.Press(KeyBackward)

	intent, _ := k.Sample()
	if intent.Throttle != 0 {
		t.Errorf("forward+backward throttle = %v, want 0", intent.Throttle)
	}
}

func TestKeys_ReleaseClearsIntent(t *testing.T) {
	k, _ := newTestKeys(0)
	k.Press(KeyForward)
	k.Release(KeyForward)

	intent, _ := k.Sample()
	if intent.Throttle != 0 {
		t.Errorf("throttle after release = %v, want 0", intent.Throttle)
	}
}

func TestKeys_HoldWindowExpiry(t *testing.T) {
	k, clock := newTestKeys(DefaultHoldWindow)
	k.Press(KeyForward)

	clock.advance(DefaultHoldWindow / 2)
	if intent, _ := k.Sample(); intent.Throttle != 1 {
		t.Fatal("intent dropped inside hold window")
	}

	clock.advance(DefaultHoldWindow)
	if intent, _ := k.Sample(); intent.Throttle != 0 {
		t.Error("intent survived past hold window without a repeat")
	}
}

func TestKeys_RepeatRefreshesHold(t *testing.T) {
	k, clock := newTestKeys(DefaultHoldWindow)
	k.Press(KeyForward)

	for i := 0; i < 5; i++ {
		clock.advance(DefaultHoldWindow / 2)
		k.Press(KeyForward) // auto-repeat
	}

	if intent, _ := k.Sample(); intent.Throttle != 1 {
		t.Error("refreshed key expired")
	}
}

func TestKeys_NoExpiryWhenDisabled(t *testing.T) {
	k, clock := newTestKeys(0)
	k.Press(KeyForward)
	clock.advance(time.Hour)

	if intent, _ := k.Sample(); intent.Throttle != 1 {
		t.Error("intent expired with hold window disabled")
	}
}

func TestKeys_CycleDebounce(t *testing.T) {
	k, clock := newTestKeys(DefaultHoldWindow)

	// Held key: auto-repeat fires Cycle rapidly, only the first counts.
	for i := 0; i < 4; i++ {
		k.Cycle()
		clock.advance(DefaultHoldWindow / 4)
	}

	intent, _ := k.Sample()
	if intent.Cycles != 1 {
		t.Errorf("held cycle key produced %d increments, want 1", intent.Cycles)
	}

	// Sample consumed the queue.
	intent, _ = k.Sample()
	if intent.Cycles != 0 {
		t.Errorf("cycles not consumed, got %d", intent.Cycles)
	}

	// A distinct later press counts again.
	clock.advance(2 * DefaultHoldWindow)
	k.Cycle()
	intent, _ = k.Sample()
	if intent.Cycles != 1 {
		t.Errorf("fresh cycle press produced %d increments, want 1", intent.Cycles)
	}
}

func TestKeys_Quit(t *testing.T) {
	k, _ := newTestKeys(DefaultHoldWindow)
	if intent, _ := k.Sample(); intent.Quit {
		t.Fatal("quit set before request")
	}
	k.Quit()
	if intent, _ := k.Sample(); !intent.Quit {
		t.Error("quit not reported")
	}
}

func TestKeys_Active(t *testing.T) {
	k, _ := newTestKeys(DefaultHoldWindow)
	k.Press(KeyForward)
	k.Press(KeyRight)

	held := k.Active()
	if !held[KeyForward] || !held[KeyRight] || held[KeyBackward] || held[KeyLeft] {
		t.Errorf("Active() = %v", held)
	}
}
