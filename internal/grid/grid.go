// Package grid maps analog-stick zones and face buttons to characters and
// commands across three fixed 3x3 page layouts. It holds no session state
// beyond the currently selected cell, page, accent flag, and widget offset.
package grid

const (
	NumCells   = 9
	NumButtons = 4
	NumPages   = 3
	CenterCell = 4
)

// Button indices into a cell's four bindings.
const (
	ButtonNorth = iota
	ButtonEast
	ButtonSouth
	ButtonWest
)

// Widget footprint and placement, mirrored by the consumer renderer.
const (
	WidgetWidth  = 620
	WidgetHeight = 440
	ClampMargin  = 10
)

// TitleMax is the capacity of the title field, in UTF-16 code units.
const TitleMax = 48

// Stick thresholds for the three-way axis split.
const (
	zoneLow  = 78
	zoneHigh = 178
)

// State is the mutable grid state for one edit session.
type State struct {
	SelectedCell int
	Page         int
	AccentMode   bool
	OffsetX      int
	OffsetY      int
	Title        [TitleMax]uint16
}

// New returns a grid state with the center cell selected on the letters page.
func New() *State {
	return &State{SelectedCell: CenterCell}
}

// SetTitle copies up to TitleMax-1 code units of title text.
func (s *State) SetTitle(title []uint16) {
	s.Title = [TitleMax]uint16{}
	for i, c := range title {
		if i >= TitleMax-1 || c == 0 {
			break
		}
		s.Title[i] = c
	}
}

// SelectCell quantizes a stick position (0-255 per axis, 128 center) into
// one of the nine cells.
func (s *State) SelectCell(x, y uint8) {
	col := 1
	if x < zoneLow {
		col = 0
	} else if x > zoneHigh {
		col = 2
	}
	row := 1
	if y < zoneLow {
		row = 0
	} else if y > zoneHigh {
		row = 2
	}
	s.SelectedCell = row*3 + col
}

// Key returns the binding under the selected cell for a button on the
// current page.
func (s *State) Key(button int) Key {
	return Lookup(s.Page, s.SelectedCell, button)
}

// Shift toggles between the two letter-case pages. The symbols page is
// unaffected; leaving it takes a page toggle, not shift.
func (s *State) Shift() {
	switch s.Page {
	case 0:
		s.Page = 1
	case 1:
		s.Page = 0
	}
}

// ToggleSymbols switches between the symbols page and the letters page.
func (s *State) ToggleSymbols() {
	if s.Page == 2 {
		s.Page = 0
	} else {
		s.Page = 2
	}
}

// ToggleAccent flips the sticky accent flag.
func (s *State) ToggleAccent() {
	s.AccentMode = !s.AccentMode
}

// stickSpeed converts one reposition-stick axis into a pixel velocity.
// Dead zone around center, faster toward the extremes.
func stickSpeed(v uint8) int {
	switch {
	case v < 40:
		return -10
	case v < 108:
		return -4
	case v <= 148:
		return 0
	case v <= 216:
		return 4
	default:
		return 10
	}
}

// DefaultPlacement returns the widget's default top-left corner: centered
// horizontally, two thirds down the screen.
func DefaultPlacement(screenW, screenH int) (x, y int) {
	return (screenW - WidgetWidth) / 2, screenH*2/3 - WidgetHeight/2
}

// UpdatePosition applies the reposition stick to the widget offset and
// clamps the resulting screen position so the widget keeps ClampMargin
// pixels from every edge.
func (s *State) UpdatePosition(rx, ry uint8, screenW, screenH int) {
	dx := stickSpeed(rx)
	dy := stickSpeed(ry)
	if dx == 0 && dy == 0 {
		return
	}

	s.OffsetX += dx
	s.OffsetY += dy

	defX, defY := DefaultPlacement(screenW, screenH)
	bx := defX + s.OffsetX
	by := defY + s.OffsetY

	if bx < ClampMargin {
		s.OffsetX = ClampMargin - defX
	}
	if bx > screenW-WidgetWidth-ClampMargin {
		s.OffsetX = screenW - WidgetWidth - ClampMargin - defX
	}
	if by < ClampMargin {
		s.OffsetY = ClampMargin - defY
	}
	if by > screenH-WidgetHeight-ClampMargin {
		s.OffsetY = screenH - WidgetHeight - ClampMargin - defY
	}
}
