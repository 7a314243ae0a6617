// Package input turns per-tick controller snapshots into edits. It owns
// edge detection, the action priority order, the modal gestures (shift
// hold, hold-to-select, backspace repeat, caps latch, accent toggle),
// and the startup grace period.
package input

import "time"

// Buttons is a bitmask of the logical controller buttons the router
// consumes. Face buttons follow the grid's compass naming.
type Buttons uint32

const (
	BtnNorth Buttons = 1 << iota
	BtnEast
	BtnSouth
	BtnWest
	BtnUp
	BtnDown
	BtnLeft
	BtnRight
	BtnPagePrev // left shoulder
	BtnPageNext // right shoulder
	BtnSubmit   // right trigger
	BtnAccent   // selection-stick click
	BtnCancel   // options
)

// Snapshot is one tick of already-debounced controller state, delivered
// by the polling collaborator. Stick axes are 0-255 with 128 centered;
// the trigger level is 0-255.
type Snapshot struct {
	Buttons Buttons
	StickX  uint8
	StickY  uint8
	RStickX uint8
	RStickY uint8
	Trigger uint8
	Now     time.Time
}

// State tracks button history across ticks and derives press/release
// edges.
type State struct {
	current  Buttons
	previous Buttons
	pressed  Buttons
	released Buttons
}

// Update ingests one snapshot and recomputes edges.
func (s *State) Update(in Snapshot) {
	s.previous = s.current
	s.current = in.Buttons
	s.pressed = in.Buttons &^ s.previous
	s.released = s.previous &^ in.Buttons
}

// JustPressed reports a press edge this tick.
func (s *State) JustPressed(b Buttons) bool { return s.pressed&b != 0 }

// Held reports that the button is currently down.
func (s *State) Held(b Buttons) bool { return s.current&b != 0 }

// Released reports a release edge this tick.
func (s *State) Released(b Buttons) bool { return s.released&b != 0 }

// Action is one decoded per-tick intent.
type Action int

const (
	ActionNone Action = iota
	ActionFaceNorth
	ActionFaceEast
	ActionFaceWest
	ActionSubmit
	ActionCursorLeft
	ActionCursorRight
	ActionCursorHome
	ActionCursorEnd
	ActionPageNext
	ActionPagePrev
	ActionCancel
)

// action maps press edges to intents in priority order. The south face
// button is absent: it runs through the hold-to-select machine instead,
// and the analog shift trigger is handled separately.
func (s *State) action() Action {
	switch {
	case s.JustPressed(BtnCancel):
		return ActionCancel
	case s.JustPressed(BtnSubmit):
		return ActionSubmit
	case s.JustPressed(BtnNorth):
		return ActionFaceNorth
	case s.JustPressed(BtnEast):
		return ActionFaceEast
	case s.JustPressed(BtnWest):
		return ActionFaceWest
	case s.JustPressed(BtnUp):
		return ActionCursorHome
	case s.JustPressed(BtnDown):
		return ActionCursorEnd
	case s.JustPressed(BtnLeft):
		return ActionCursorLeft
	case s.JustPressed(BtnRight):
		return ActionCursorRight
	case s.JustPressed(BtnPageNext):
		return ActionPageNext
	case s.JustPressed(BtnPagePrev):
		return ActionPagePrev
	}
	return ActionNone
}
