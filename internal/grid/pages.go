package grid

// Command identifies a non-character binding on the grid.
type Command int

const (
	CmdNone Command = iota
	CmdSpace
	CmdExit
	CmdSelectAll
	CmdBackspace
	CmdAccent
	CmdCut
	CmdCopy
	CmdPaste
	CmdCapsLock
)

// Marker bytes used in the shared record's cell table. Commands share the
// table's byte storage with literal characters, so each command is encoded
// as a reserved control byte that never appears as real input.
const (
	MarkerBackspace byte = 0x02
	MarkerSpace     byte = 0x03
	MarkerAccent    byte = 0x04
	MarkerSelectAll byte = 0x05
	MarkerExit      byte = 0x06
	MarkerCut       byte = 0x07
	MarkerCopy      byte = 0x08
	MarkerPaste     byte = 0x09
	MarkerCapsLock  byte = 0x0A
)

// Marker returns the wire byte for a command, 0 for CmdNone.
func (c Command) Marker() byte {
	switch c {
	case CmdBackspace:
		return MarkerBackspace
	case CmdSpace:
		return MarkerSpace
	case CmdAccent:
		return MarkerAccent
	case CmdSelectAll:
		return MarkerSelectAll
	case CmdExit:
		return MarkerExit
	case CmdCut:
		return MarkerCut
	case CmdCopy:
		return MarkerCopy
	case CmdPaste:
		return MarkerPaste
	case CmdCapsLock:
		return MarkerCapsLock
	}
	return 0
}

// CommandFromMarker is the inverse of Marker. Unknown bytes map to CmdNone.
func CommandFromMarker(b byte) Command {
	switch b {
	case MarkerBackspace:
		return CmdBackspace
	case MarkerSpace:
		return CmdSpace
	case MarkerAccent:
		return CmdAccent
	case MarkerSelectAll:
		return CmdSelectAll
	case MarkerExit:
		return CmdExit
	case MarkerCut:
		return CmdCut
	case MarkerCopy:
		return CmdCopy
	case MarkerPaste:
		return CmdPaste
	case MarkerCapsLock:
		return CmdCapsLock
	}
	return CmdNone
}

// Label returns the short display name for a command.
func (c Command) Label() string {
	switch c {
	case CmdBackspace:
		return "Del"
	case CmdSpace:
		return "Space"
	case CmdAccent:
		return "AC"
	case CmdSelectAll:
		return "Select"
	case CmdExit:
		return "Exit"
	case CmdCut:
		return "Cut"
	case CmdCopy:
		return "Copy"
	case CmdPaste:
		return "Paste"
	case CmdCapsLock:
		return "CAPS"
	}
	return "?"
}

// Key is one cell/button binding: a literal character or a command.
// The zero Key is a no-op.
type Key struct {
	Char    rune
	Command Command
}

func (k Key) IsCommand() bool { return k.Command != CmdNone }
func (k Key) IsZero() bool    { return k.Char == 0 && k.Command == CmdNone }

// Marker returns the wire byte for a key: the command marker for commands,
// the ASCII byte for characters ('?' for anything outside ASCII).
func (k Key) Marker() byte {
	if k.Command != CmdNone {
		return k.Command.Marker()
	}
	if k.Char > 0 && k.Char < 128 {
		return byte(k.Char)
	}
	if k.Char != 0 {
		return '?'
	}
	return 0
}

// Page is one 9-cell by 4-button layout.
type Page struct {
	Name  string
	Cells [NumCells][NumButtons]Key
}

func ch(r rune) Key     { return Key{Char: r} }
func cmd(c Command) Key { return Key{Command: c} }

func row(a, b, c, d Key) [NumButtons]Key {
	return [NumButtons]Key{a, b, c, d}
}

// centerCommands is the default center-cell layout, shared by every page.
var centerCommands = row(cmd(CmdSpace), cmd(CmdExit), cmd(CmdSelectAll), cmd(CmdBackspace))

// shiftedCenterCommands replaces the center cell while shift is held.
var shiftedCenterCommands = row(cmd(CmdPaste), cmd(CmdCapsLock), cmd(CmdCut), cmd(CmdCopy))

// pages holds the three fixed layouts. Pages 0 and 1 are case variants of
// the same cells; page 2 is symbols. Cell order is row-major with the
// analog stick: 0-2 up, 3-5 middle, 6-8 down. Button order per cell is
// north, east, south, west.
var pages = [NumPages]Page{
	{
		Name: "abc",
		Cells: [NumCells][NumButtons]Key{
			row(ch('a'), ch('b'), ch('c'), ch('d')),
			row(ch('e'), ch('f'), ch('g'), ch('h')),
			row(ch('i'), ch('j'), ch('k'), ch('l')),
			row(ch('m'), ch('n'), ch('o'), ch('p')),
			centerCommands,
			row(ch('q'), ch('r'), ch('s'), ch('t')),
			row(ch('u'), ch('v'), ch('w'), ch('x')),
			row(ch('y'), ch('z'), ch('.'), ch(',')),
			row(ch('!'), ch('?'), ch('\''), ch('-')),
		},
	},
	{
		Name: "ABC",
		Cells: [NumCells][NumButtons]Key{
			row(ch('A'), ch('B'), ch('C'), ch('D')),
			row(ch('E'), ch('F'), ch('G'), ch('H')),
			row(ch('I'), ch('J'), ch('K'), ch('L')),
			row(ch('M'), ch('N'), ch('O'), ch('P')),
			centerCommands,
			row(ch('Q'), ch('R'), ch('S'), ch('T')),
			row(ch('U'), ch('V'), ch('W'), ch('X')),
			row(ch('Y'), ch('Z'), ch('.'), ch(',')),
			row(ch('!'), ch('?'), ch('\''), ch('-')),
		},
	},
	{
		Name: "123",
		Cells: [NumCells][NumButtons]Key{
			row(ch('1'), ch('2'), ch('3'), ch('+')),
			row(ch('4'), ch('5'), ch('6'), ch('=')),
			row(ch('7'), ch('8'), ch('9'), ch('0')),
			row(ch('@'), ch('#'), ch('$'), ch('%')),
			centerCommands,
			row(ch('&'), ch('*'), ch('('), ch(')')),
			row(ch('_'), ch('/'), ch('\\'), ch('|')),
			row(ch('['), ch(']'), ch('{'), ch('}')),
			row(ch('<'), ch('>'), ch('"'), ch('~')),
		},
	},
}

// Lookup returns the binding for (page, cell, button). It is total:
// out-of-range indices return the zero Key.
func Lookup(page, cell, button int) Key {
	if page < 0 || page >= NumPages {
		return Key{}
	}
	if cell < 0 || cell >= NumCells {
		return Key{}
	}
	if button < 0 || button >= NumButtons {
		return Key{}
	}
	return pages[page].Cells[cell][button]
}

// PageName returns the label for a page ("abc", "ABC", "123").
func PageName(page int) string {
	if page < 0 || page >= NumPages {
		return ""
	}
	return pages[page].Name
}

// CellTable flattens a page into the shared record's 9x4 byte table.
// When shifted is true the center cell shows the clipboard commands
// instead of its default layout; the page table itself is never mutated.
func CellTable(page int, shifted bool) [NumCells][NumButtons]byte {
	var out [NumCells][NumButtons]byte
	if page < 0 || page >= NumPages {
		return out
	}
	for cell := 0; cell < NumCells; cell++ {
		for btn := 0; btn < NumButtons; btn++ {
			out[cell][btn] = pages[page].Cells[cell][btn].Marker()
		}
	}
	if shifted {
		for btn := 0; btn < NumButtons; btn++ {
			out[CenterCell][btn] = shiftedCenterCommands[btn].Marker()
		}
	}
	return out
}

// ShiftedCenterKey returns the center-cell binding for a button while the
// shift override is in effect.
func ShiftedCenterKey(button int) Key {
	if button < 0 || button >= NumButtons {
		return Key{}
	}
	return shiftedCenterCommands[button]
}

// AccentLookup maps an ASCII vowel (and n/N) to its accented code point.
// Everything else returns 0.
func AccentLookup(base rune) rune {
	switch base {
	case 'a':
		return 0x00E1 // á
	case 'e':
		return 0x00E9 // é
	case 'i':
		return 0x00ED // í
	case 'o':
		return 0x00F3 // ó
	case 'u':
		return 0x00FA // ú
	case 'n':
		return 0x00F1 // ñ
	case 'A':
		return 0x00C1 // Á
	case 'E':
		return 0x00C9 // É
	case 'I':
		return 0x00CD // Í
	case 'O':
		return 0x00D3 // Ó
	case 'U':
		return 0x00DA // Ú
	case 'N':
		return 0x00D1 // Ñ
	}
	return 0
}
