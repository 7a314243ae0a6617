package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsCentered(t *testing.T) {
	s := New()
	assert.Equal(t, CenterCell, s.SelectedCell)
	assert.Equal(t, 0, s.Page)
	assert.False(t, s.AccentMode)
}

func TestSelectCellZones(t *testing.T) {
	tests := []struct {
		name string
		x, y uint8
		want int
	}{
		{"center", 128, 128, 4},
		{"top left", 0, 0, 0},
		{"top right", 255, 0, 2},
		{"bottom left", 0, 255, 6},
		{"bottom right", 255, 255, 8},
		{"top middle", 128, 20, 1},
		{"left middle", 20, 128, 3},
		{"right middle", 235, 128, 5},
		{"bottom middle", 128, 235, 7},
		{"low boundary stays middle", 78, 128, 4},
		{"below low goes left", 77, 128, 3},
		{"high boundary stays middle", 178, 128, 4},
		{"above high goes right", 179, 128, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SelectCell(tt.x, tt.y)
			assert.Equal(t, tt.want, s.SelectedCell)
		})
	}
}

func TestLookupTotal(t *testing.T) {
	for page := 0; page < NumPages; page++ {
		for cell := 0; cell < NumCells; cell++ {
			for btn := 0; btn < NumButtons; btn++ {
				k := Lookup(page, cell, btn)
				assert.False(t, k.IsZero(), "page %d cell %d button %d is unbound", page, cell, btn)
			}
		}
	}
	assert.True(t, Lookup(-1, 0, 0).IsZero())
	assert.True(t, Lookup(3, 0, 0).IsZero())
	assert.True(t, Lookup(0, 9, 0).IsZero())
	assert.True(t, Lookup(0, 0, 4).IsZero())
}

func TestPageLayouts(t *testing.T) {
	assert.Equal(t, 'a', Lookup(0, 0, ButtonNorth).Char)
	assert.Equal(t, 'p', Lookup(0, 3, ButtonWest).Char)
	assert.Equal(t, 'A', Lookup(1, 0, ButtonNorth).Char)
	assert.Equal(t, '1', Lookup(2, 0, ButtonNorth).Char)

	// Page 1 is the uppercase variant of page 0, letter for letter.
	for cell := 0; cell < NumCells; cell++ {
		if cell == CenterCell {
			continue
		}
		for btn := 0; btn < NumButtons; btn++ {
			lower := Lookup(0, cell, btn)
			upper := Lookup(1, cell, btn)
			if lower.Char >= 'a' && lower.Char <= 'z' {
				assert.Equal(t, lower.Char-('a'-'A'), upper.Char)
			} else {
				assert.Equal(t, lower, upper)
			}
		}
	}
}

func TestCenterCellCommands(t *testing.T) {
	for page := 0; page < NumPages; page++ {
		assert.Equal(t, CmdSpace, Lookup(page, CenterCell, ButtonNorth).Command)
		assert.Equal(t, CmdExit, Lookup(page, CenterCell, ButtonEast).Command)
		assert.Equal(t, CmdSelectAll, Lookup(page, CenterCell, ButtonSouth).Command)
		assert.Equal(t, CmdBackspace, Lookup(page, CenterCell, ButtonWest).Command)
	}
}

func TestShiftedCenterKey(t *testing.T) {
	assert.Equal(t, CmdPaste, ShiftedCenterKey(ButtonNorth).Command)
	assert.Equal(t, CmdCapsLock, ShiftedCenterKey(ButtonEast).Command)
	assert.Equal(t, CmdCut, ShiftedCenterKey(ButtonSouth).Command)
	assert.Equal(t, CmdCopy, ShiftedCenterKey(ButtonWest).Command)
	assert.True(t, ShiftedCenterKey(-1).IsZero())
	assert.True(t, ShiftedCenterKey(4).IsZero())
}

func TestShiftTogglesLetterPagesOnly(t *testing.T) {
	s := New()
	s.Shift()
	assert.Equal(t, 1, s.Page)
	s.Shift()
	assert.Equal(t, 0, s.Page)

	s.Page = 2
	s.Shift()
	assert.Equal(t, 2, s.Page)
}

func TestToggleSymbols(t *testing.T) {
	s := New()
	s.ToggleSymbols()
	assert.Equal(t, 2, s.Page)
	s.ToggleSymbols()
	assert.Equal(t, 0, s.Page)

	s.Page = 1
	s.ToggleSymbols()
	assert.Equal(t, 2, s.Page)
	s.ToggleSymbols()
	assert.Equal(t, 0, s.Page)
}

func TestPageNames(t *testing.T) {
	assert.Equal(t, "abc", PageName(0))
	assert.Equal(t, "ABC", PageName(1))
	assert.Equal(t, "123", PageName(2))
	assert.Equal(t, "", PageName(3))
}

func TestMarkerRoundTrip(t *testing.T) {
	cmds := []Command{
		CmdSpace, CmdExit, CmdSelectAll, CmdBackspace,
		CmdAccent, CmdCut, CmdCopy, CmdPaste, CmdCapsLock,
	}
	for _, c := range cmds {
		m := c.Marker()
		require.NotZero(t, m)
		assert.Equal(t, c, CommandFromMarker(m))
	}
	assert.Equal(t, CmdNone, CommandFromMarker(0))
	assert.Equal(t, CmdNone, CommandFromMarker('a'))
}

func TestCellTable(t *testing.T) {
	tab := CellTable(0, false)
	assert.Equal(t, byte('a'), tab[0][ButtonNorth])
	assert.Equal(t, MarkerSpace, tab[CenterCell][ButtonNorth])
	assert.Equal(t, MarkerBackspace, tab[CenterCell][ButtonWest])
}

func TestCellTableShiftOverride(t *testing.T) {
	tab := CellTable(0, true)
	assert.Equal(t, MarkerPaste, tab[CenterCell][ButtonNorth])
	assert.Equal(t, MarkerCapsLock, tab[CenterCell][ButtonEast])
	assert.Equal(t, MarkerCut, tab[CenterCell][ButtonSouth])
	assert.Equal(t, MarkerCopy, tab[CenterCell][ButtonWest])
	// Other cells unaffected.
	assert.Equal(t, byte('a'), tab[0][ButtonNorth])

	// The page table itself must stay untouched.
	plain := CellTable(0, false)
	assert.Equal(t, MarkerSpace, plain[CenterCell][ButtonNorth])
}

func TestAccentLookup(t *testing.T) {
	tests := []struct {
		in   rune
		want rune
	}{
		{'a', 'á'}, {'e', 'é'}, {'i', 'í'}, {'o', 'ó'}, {'u', 'ú'}, {'n', 'ñ'},
		{'A', 'Á'}, {'E', 'É'}, {'I', 'Í'}, {'O', 'Ó'}, {'U', 'Ú'}, {'N', 'Ñ'},
		{'b', 0}, {'z', 0}, {' ', 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AccentLookup(tt.in), "accent of %q", tt.in)
	}
}

func TestStickSpeedCurve(t *testing.T) {
	tests := []struct {
		v    uint8
		want int
	}{
		{0, -10}, {39, -10}, {40, -4}, {107, -4},
		{108, 0}, {128, 0}, {148, 0},
		{149, 4}, {216, 4}, {217, 10}, {255, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stickSpeed(tt.v), "speed at %d", tt.v)
	}
}

func TestDefaultPlacement(t *testing.T) {
	x, y := DefaultPlacement(1920, 1080)
	assert.Equal(t, (1920-WidgetWidth)/2, x)
	assert.Equal(t, 1080*2/3-WidgetHeight/2, y)
}

func TestUpdatePositionClamps(t *testing.T) {
	s := New()
	// Drive hard left and up for many ticks.
	for i := 0; i < 200; i++ {
		s.UpdatePosition(0, 0, 1920, 1080)
	}
	defX, defY := DefaultPlacement(1920, 1080)
	assert.Equal(t, ClampMargin, defX+s.OffsetX)
	assert.Equal(t, ClampMargin, defY+s.OffsetY)

	// Then hard right and down.
	for i := 0; i < 400; i++ {
		s.UpdatePosition(255, 255, 1920, 1080)
	}
	assert.Equal(t, 1920-WidgetWidth-ClampMargin, defX+s.OffsetX)
	assert.Equal(t, 1080-WidgetHeight-ClampMargin, defY+s.OffsetY)
}

func TestUpdatePositionDeadZone(t *testing.T) {
	s := New()
	s.UpdatePosition(128, 128, 1920, 1080)
	assert.Equal(t, 0, s.OffsetX)
	assert.Equal(t, 0, s.OffsetY)
}

func TestSetTitle(t *testing.T) {
	s := New()
	title := make([]uint16, 0, 8)
	for _, r := range "hello" {
		title = append(title, uint16(r))
	}
	s.SetTitle(title)
	assert.Equal(t, uint16('h'), s.Title[0])
	assert.Equal(t, uint16('o'), s.Title[4])
	assert.Equal(t, uint16(0), s.Title[5])

	// Overlong titles truncate to leave a terminator.
	long := make([]uint16, TitleMax+10)
	for i := range long {
		long[i] = 'x'
	}
	s.SetTitle(long)
	assert.Equal(t, uint16(0), s.Title[TitleMax-1])
	assert.Equal(t, uint16('x'), s.Title[TitleMax-2])
}
