package scanclient

import (
	"sync"
	"time"
)

type State int

const (
	Idle State = iota
	InFlight
	CooledDown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case CooledDown:
		return "cooled-down"
	default:
		return "unknown"
	}
}

// Guard lets one scan through at a time. A camera keeps decoding the same
// QR code many times a second; after a scan finishes the guard stays closed
// for the cooldown so those repeats are dropped.
type Guard struct {
	mu       sync.Mutex
	state    State
	cooldown time.Duration
	timer    *time.Timer
}

func NewGuard(cooldown time.Duration) *Guard {
	return &Guard{cooldown: cooldown}
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Begin moves idle to in-flight and reports whether it did.
func (g *Guard) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Idle {
		return false
	}
	g.state = InFlight
	return true
}

// Finish ends the in-flight scan and starts the cooldown.
func (g *Guard) Finish() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != InFlight {
		return
	}
	if g.cooldown <= 0 {
		g.state = Idle
		return
	}
	g.state = CooledDown
	g.timer = time.AfterFunc(g.cooldown, g.expire)
}

// Reset returns to idle immediately, e.g. when the user taps "scan again".
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTimer()
	g.state = Idle
}

func (g *Guard) expire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == CooledDown {
		g.state = Idle
	}
	g.timer = nil
}

func (g *Guard) stopTimer() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
