// Package session implements the text-edit session: a bounded UTF-16
// buffer with cursor, selection, clipboard, and two input front ends
// (direct insertion and charset cycling). All mutating operations are
// silent no-ops outside the Active state and on capacity exhaustion;
// the input model has no channel for surfacing mid-edit errors.
package session

import "time"

// State is the session lifecycle state.
type State int

const (
	Inactive State = iota
	Active
	Confirming
	Cancelled
)

// Result is the terminal outcome reported to the caller.
type Result int

const (
	ResultAborted Result = iota
	ResultAccepted
	ResultCancelled
)

// MaxLengthLimit caps the configurable buffer length.
const MaxLengthLimit = 256

// CycleConfig tunes the hold-to-repeat behavior of the cycling front end.
type CycleConfig struct {
	InitialDelay   time.Duration
	RepeatInterval time.Duration
	AccelThreshold time.Duration
	AccelInterval  time.Duration
}

// DefaultCycleConfig returns the stock repeat timings.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		InitialDelay:   400 * time.Millisecond,
		RepeatInterval: 150 * time.Millisecond,
		AccelThreshold: 1500 * time.Millisecond,
		AccelInterval:  50 * time.Millisecond,
	}
}

// Options configures a new session.
type Options struct {
	Category  Category
	MaxLength int      // clamped to [1, MaxLengthLimit]; 0 means the limit
	Prefill   []uint16 // initial buffer content, truncated to MaxLength
	Dest      []uint16 // caller-supplied destination filled on Submit
	Cycle     CycleConfig
}

// Session holds all state for one edit session. Exactly one session is
// live at a time; New allocates everything fresh, so nothing (clipboard,
// cycle cursor, selection) bleeds through from a previous session.
type Session struct {
	state  State
	buf    []uint16
	maxLen int
	cursor int

	selStart    int
	selEnd      int
	selectedAll bool

	clipboard []uint16

	charset     string
	cycleCursor int
	cycleCfg    CycleConfig
	lastCycle   time.Time
	holdStart   time.Time
	held        bool
	holdDir     int

	dest []uint16
}

// New creates an Active session. The charset is chosen from the category
// and fixed for the session's lifetime.
func New(opts Options) *Session {
	maxLen := opts.MaxLength
	if maxLen <= 0 || maxLen > MaxLengthLimit {
		maxLen = MaxLengthLimit
	}
	cfg := opts.Cycle
	if cfg == (CycleConfig{}) {
		cfg = DefaultCycleConfig()
	}

	s := &Session{
		state:     Active,
		buf:       make([]uint16, 0, maxLen),
		maxLen:    maxLen,
		clipboard: make([]uint16, 0, maxLen),
		charset:   CharsetFor(opts.Category),
		cycleCfg:  cfg,
		dest:      opts.Dest,
	}

	for _, c := range opts.Prefill {
		if c == 0 || len(s.buf) == s.maxLen {
			break
		}
		s.buf = append(s.buf, c)
	}
	s.cursor = len(s.buf)
	return s
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Len returns the current buffer length.
func (s *Session) Len() int { return len(s.buf) }

// MaxLen returns the configured maximum length.
func (s *Session) MaxLen() int { return s.maxLen }

// Cursor returns the text cursor position, 0..Len().
func (s *Session) Cursor() int { return s.cursor }

// Text returns a copy of the buffer contents.
func (s *Session) Text() []uint16 {
	out := make([]uint16, len(s.buf))
	copy(out, s.buf)
	return out
}

// String renders the buffer as a Go string.
func (s *Session) String() string {
	rs := make([]rune, len(s.buf))
	for i, c := range s.buf {
		rs[i] = rune(c)
	}
	return string(rs)
}

// Selection reports the active partial range and the select-all flag.
func (s *Session) Selection() (start, end int, all bool) {
	return s.selStart, s.selEnd, s.selectedAll
}

// HasSelection reports whether either selection form is active.
func (s *Session) HasSelection() bool {
	return s.selectedAll || s.selStart != s.selEnd
}

// clearAll empties the buffer and both selection forms.
func (s *Session) clearAll() {
	s.buf = s.buf[:0]
	s.cursor = 0
	s.selectedAll = false
	s.selStart, s.selEnd = 0, 0
}

// deleteSelected removes whichever selection form is active before an
// insertion or paste.
func (s *Session) deleteSelected() {
	if s.selectedAll {
		s.clearAll()
		return
	}
	if s.selStart != s.selEnd {
		s.DeleteSelection()
	}
}

// Insert places c at the cursor, deleting any active selection first.
// It reports false when the buffer is full after the implicit delete.
func (s *Session) Insert(c uint16) bool {
	if s.state != Active {
		return false
	}
	s.deleteSelected()
	if len(s.buf) >= s.maxLen {
		return false
	}
	pos := s.cursor
	if pos > len(s.buf) {
		pos = len(s.buf)
	}
	s.buf = append(s.buf, 0)
	copy(s.buf[pos+1:], s.buf[pos:])
	s.buf[pos] = c
	s.cursor = pos + 1
	return true
}

// InsertRune is Insert for characters arriving as runes. Code points
// beyond the 16-bit range are dropped.
func (s *Session) InsertRune(r rune) bool {
	if r <= 0 || r > 0xFFFF {
		return false
	}
	return s.Insert(uint16(r))
}

// Backspace deletes the selection if one is active, otherwise the
// character before the cursor.
func (s *Session) Backspace() bool {
	if s.state != Active {
		return false
	}
	if s.selectedAll {
		s.clearAll()
		return true
	}
	if s.selStart != s.selEnd {
		s.DeleteSelection()
		return true
	}
	if s.cursor == 0 || len(s.buf) == 0 {
		return false
	}
	pos := s.cursor - 1
	s.buf = append(s.buf[:pos], s.buf[pos+1:]...)
	s.cursor = pos
	return true
}

// Cursor movement. Each clears any selection as a side effect.

func (s *Session) MoveLeft() {
	if s.state != Active {
		return
	}
	s.ClearSelection()
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *Session) MoveRight() {
	if s.state != Active {
		return
	}
	s.ClearSelection()
	if s.cursor < len(s.buf) {
		s.cursor++
	}
}

func (s *Session) MoveHome() {
	if s.state != Active {
		return
	}
	s.ClearSelection()
	s.cursor = 0
}

func (s *Session) MoveEnd() {
	if s.state != Active {
		return
	}
	s.ClearSelection()
	s.cursor = len(s.buf)
}

// SetCursor clamps pos into [0, Len()] without touching the selection.
// The hold-to-select gesture uses it to walk the cursor while a range is
// being extended.
func (s *Session) SetCursor(pos int) {
	if s.state != Active {
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.buf) {
		pos = len(s.buf)
	}
	s.cursor = pos
}

// SetSelection normalizes start <= end, clamps both to the buffer, and
// clears select-all.
func (s *Session) SetSelection(start, end int) {
	if s.state != Active {
		return
	}
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(s.buf) {
		end = len(s.buf)
	}
	if start > len(s.buf) {
		start = len(s.buf)
	}
	s.selStart, s.selEnd = start, end
	s.selectedAll = false
}

// ClearSelection drops both selection forms.
func (s *Session) ClearSelection() {
	s.selStart, s.selEnd = 0, 0
	s.selectedAll = false
}

// SelectAll marks the whole buffer selected. The flag is a standing mode:
// it tracks the buffer extent at time of use rather than freezing a range.
// No-op on an empty buffer.
func (s *Session) SelectAll() {
	if s.state != Active || len(s.buf) == 0 {
		return
	}
	s.selectedAll = true
	s.selStart, s.selEnd = 0, len(s.buf)
	s.cursor = len(s.buf)
}

// DeleteSelection removes the partial range [selStart, selEnd) and places
// the cursor at the start of the removed span.
func (s *Session) DeleteSelection() {
	if s.state != Active {
		return
	}
	start, end := s.selStart, s.selEnd
	if start > end {
		start, end = end, start
	}
	if end > len(s.buf) {
		end = len(s.buf)
	}
	if start >= end {
		return
	}
	s.buf = append(s.buf[:start], s.buf[end:]...)
	s.cursor = start
	s.selStart, s.selEnd = 0, 0
	s.selectedAll = false
}

// Copy snapshots the active selection into the clipboard. Select-all
// copies the whole buffer. No-op when nothing is selected.
func (s *Session) Copy() {
	if s.state != Active {
		return
	}
	var start, end int
	switch {
	case s.selectedAll:
		start, end = 0, len(s.buf)
	case s.selStart != s.selEnd:
		start, end = s.selStart, s.selEnd
		if start > end {
			start, end = end, start
		}
	default:
		return
	}
	s.clipboard = append(s.clipboard[:0], s.buf[start:end]...)
}

// Cut copies then deletes the selection.
func (s *Session) Cut() {
	if s.state != Active {
		return
	}
	s.Copy()
	if len(s.clipboard) == 0 {
		return
	}
	if s.selectedAll {
		s.clearAll()
	} else {
		s.DeleteSelection()
	}
}

// Paste inserts the clipboard at the cursor, deleting any selection first
// and truncating to the remaining capacity.
func (s *Session) Paste() {
	if s.state != Active || len(s.clipboard) == 0 {
		return
	}
	s.deleteSelected()

	avail := s.maxLen - len(s.buf)
	n := len(s.clipboard)
	if n > avail {
		n = avail
	}
	if n == 0 {
		return
	}
	pos := s.cursor
	if pos > len(s.buf) {
		pos = len(s.buf)
	}
	s.buf = append(s.buf, make([]uint16, n)...)
	copy(s.buf[pos+n:], s.buf[pos:])
	copy(s.buf[pos:], s.clipboard[:n])
	s.cursor = pos + n
}

// ClipboardLen reports how many code units the clipboard holds.
func (s *Session) ClipboardLen() int { return len(s.clipboard) }

// Cycle advances the charset cursor by delta, wrapping in both directions.
func (s *Session) Cycle(delta int) {
	if s.state != Active || len(s.charset) == 0 {
		return
	}
	s.cycleCursor = wrapIndex(s.cycleCursor+delta, len(s.charset))
}

// ConfirmChar appends the character under the cycle cursor and resets the
// cursor to the charset start. It reports false at capacity or if the
// cycle cursor is out of range.
func (s *Session) ConfirmChar() bool {
	if s.state != Active {
		return false
	}
	if len(s.buf) >= s.maxLen {
		return false
	}
	if s.cycleCursor < 0 || s.cycleCursor >= len(s.charset) {
		return false
	}
	s.buf = append(s.buf, uint16(s.charset[s.cycleCursor]))
	s.cycleCursor = 0
	return true
}

// CurrentChar returns the character under the cycle cursor, 0 if none.
func (s *Session) CurrentChar() rune {
	if s.state != Active || s.cycleCursor >= len(s.charset) {
		return 0
	}
	return rune(s.charset[s.cycleCursor])
}

// Neighbors returns the characters on either side of the cycle cursor,
// for the renderer's peek strip.
func (s *Session) Neighbors() (prev, next rune) {
	if s.state != Active || len(s.charset) == 0 {
		return 0, 0
	}
	p := wrapIndex(s.cycleCursor-1, len(s.charset))
	n := wrapIndex(s.cycleCursor+1, len(s.charset))
	return rune(s.charset[p]), rune(s.charset[n])
}

// SetHold records that a cycle direction became held at now.
func (s *Session) SetHold(dir int, now time.Time) {
	s.held = true
	s.holdDir = dir
	s.holdStart = now
	s.lastCycle = now
}

// ClearHold ends any held cycle direction.
func (s *Session) ClearHold() {
	s.held = false
	s.holdDir = 0
}

// UpdateTiming drives hold-to-repeat cycling: after the initial delay it
// repeats at the configured interval, switching to the faster interval
// once held past the acceleration threshold. No effect unless a direction
// is held.
func (s *Session) UpdateTiming(now time.Time) {
	if s.state != Active || !s.held || s.holdDir == 0 {
		return
	}
	held := now.Sub(s.holdStart)
	if held < s.cycleCfg.InitialDelay {
		return
	}
	interval := s.cycleCfg.RepeatInterval
	if held > s.cycleCfg.AccelThreshold {
		interval = s.cycleCfg.AccelInterval
	}
	if now.Sub(s.lastCycle) < interval {
		return
	}
	s.Cycle(s.holdDir)
	s.lastCycle = now
}

// Submit copies the buffer into the caller-supplied destination and moves
// to Confirming. Only reachable from Active.
func (s *Session) Submit() {
	if s.state != Active {
		return
	}
	if s.dest != nil {
		n := copy(s.dest, s.buf)
		if n < len(s.dest) {
			s.dest[n] = 0
		}
	}
	s.state = Confirming
}

// Cancel abandons the session without copying anything out.
func (s *Session) Cancel() {
	if s.state != Active {
		return
	}
	s.state = Cancelled
}

// Result maps the terminal state to the outcome reported to the caller.
func (s *Session) Result() Result {
	switch s.state {
	case Confirming:
		return ResultAccepted
	case Cancelled:
		return ResultCancelled
	default:
		return ResultAborted
	}
}
