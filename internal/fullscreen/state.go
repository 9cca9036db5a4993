// internal/fullscreen/state.go
package fullscreen

import "mapframe/internal/dom"

// State is the presentation of the target
type State int

const (
	Windowed State = iota
	Fullscreen
)

func (s State) String() string {
	if s == Fullscreen {
		return "fullscreen"
	}
	return "windowed"
}

// Machine tracks whether one target is fullscreen. It only moves when the
// host reports a change; requests sent on click do not touch it.
type Machine struct {
	target     *dom.Element
	fullscreen bool
}

// NewMachine starts in Windowed
func NewMachine(target *dom.Element) *Machine {
	return &Machine{target: target}
}

// Sync compares the host's current fullscreen element against the target and
// flips the state if they disagree. It reports whether a flip happened.
func (m *Machine) Sync(current *dom.Element) bool {
	match := current != nil && current == m.target
	if match == m.fullscreen {
		return false
	}
	m.fullscreen = match
	return true
}

// State returns the current state
func (m *Machine) State() State {
	if m.fullscreen {
		return Fullscreen
	}
	return Windowed
}

// IsFullscreen is State() == Fullscreen
func (m *Machine) IsFullscreen() bool {
	return m.fullscreen
}
