package input

import (
	"log/slog"
	"time"

	"gridtype/internal/grid"
	"gridtype/internal/session"
	"gridtype/internal/shm"
)

// Config holds the router's tunables.
type Config struct {
	// GracePeriod suppresses all actions after session start, so input
	// left over from whatever opened the text field is not acted on.
	GracePeriod time.Duration

	// Backspace hold-to-repeat.
	BackspaceDelay    time.Duration
	BackspaceInterval time.Duration

	// Analog shift thresholds. Release is strictly lower than engage so
	// a level hovering at the boundary does not chatter.
	ShiftEngage  uint8
	ShiftRelease uint8

	// Screen size for widget position clamping.
	ScreenW int
	ScreenH int
}

// DefaultConfig returns the stock router tunables.
func DefaultConfig() Config {
	return Config{
		GracePeriod:       300 * time.Millisecond,
		BackspaceDelay:    400 * time.Millisecond,
		BackspaceInterval: 60 * time.Millisecond,
		ShiftEngage:       60,
		ShiftRelease:      40,
		ScreenW:           1920,
		ScreenH:           1080,
	}
}

// Router drives the grid and session from controller snapshots, one tick
// at a time. It is single-threaded by contract: everything it touches is
// owned by the producer's edit loop.
type Router struct {
	cfg  Config
	log  *slog.Logger
	grid *grid.State
	sess *session.Session

	state State
	start time.Time

	// Analog shift.
	shiftActive bool
	savedPage   int
	prevTrigger uint8
	capsLatched bool

	// Hold-to-select on the south face button.
	selHeld   bool
	selMoved  bool
	selAnchor int

	// Backspace hold-to-repeat on the west face button.
	bsHeld  bool
	bsStart time.Time
	bsLast  time.Time
}

// New wires a router to a grid and session. The first snapshot's
// timestamp starts the grace period.
func New(cfg Config, g *grid.State, sess *session.Session, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		cfg:       cfg,
		log:       log,
		grid:      g,
		sess:      sess,
		savedPage: -1,
	}
}

// ShiftActive reports whether the analog shift hold is in effect.
func (r *Router) ShiftActive() bool { return r.shiftActive }

// CapsLatched reports the standing case lock.
func (r *Router) CapsLatched() bool { return r.capsLatched }

// centerOverride reports whether the center cell's commands are
// redirected to the clipboard set this tick.
func (r *Router) centerOverride() bool {
	return r.shiftActive && r.grid.SelectedCell == grid.CenterCell
}

// Tick processes one input snapshot and returns the session state after
// any transitions it caused.
func (r *Router) Tick(in Snapshot) session.State {
	if r.start.IsZero() {
		r.start = in.Now
	}

	// Edge bookkeeping, cell selection, and widget repositioning run
	// every tick, grace period included, so nothing jumps when the
	// grace window ends.
	r.state.Update(in)
	r.grid.SelectCell(in.StickX, in.StickY)
	r.grid.UpdatePosition(in.RStickX, in.RStickY, r.cfg.ScreenW, r.cfg.ScreenH)

	if r.sess.State() != session.Active {
		return r.sess.State()
	}

	if in.Now.Sub(r.start) < r.cfg.GracePeriod {
		// Keep the shift tracker seeded so the first post-grace tick
		// does not see a phantom threshold crossing.
		r.prevTrigger = in.Trigger
		return session.Active
	}

	r.updateShift(in.Trigger)

	if r.state.JustPressed(BtnAccent) {
		r.grid.ToggleAccent()
		r.log.Debug("accent mode", "on", r.grid.AccentMode)
	}

	r.updateHoldSelect(in)

	switch r.state.action() {
	case ActionCancel:
		r.sess.Cancel()
		r.log.Info("session cancelled")
	case ActionSubmit:
		r.sess.Submit()
		r.log.Info("session submitted", "chars", r.sess.Len())
	case ActionFaceNorth:
		r.dispatchKey(grid.ButtonNorth)
	case ActionFaceEast:
		r.dispatchKey(grid.ButtonEast)
	case ActionFaceWest:
		r.dispatchKey(grid.ButtonWest)
	case ActionCursorHome:
		r.moveOrExtend(0, true)
	case ActionCursorEnd:
		r.moveOrExtend(r.sess.Len(), true)
	case ActionCursorLeft:
		r.moveOrExtend(r.sess.Cursor()-1, false)
	case ActionCursorRight:
		r.moveOrExtend(r.sess.Cursor()+1, false)
	case ActionPageNext:
		r.grid.ToggleSymbols()
	case ActionPagePrev:
		r.grid.Shift()
	}

	r.updateBackspaceRepeat(in.Now)

	return r.sess.State()
}

// moveOrExtend either moves the cursor (clearing any selection) or, while
// the hold-to-select gesture is live, extends the selection from the
// anchor to the new cursor position.
func (r *Router) moveOrExtend(pos int, absolute bool) {
	if r.selHeld {
		r.selMoved = true
		r.sess.SetCursor(pos)
		r.sess.SetSelection(r.selAnchor, r.sess.Cursor())
		return
	}
	switch {
	case absolute && pos == 0:
		r.sess.MoveHome()
	case absolute:
		r.sess.MoveEnd()
	case pos < r.sess.Cursor():
		r.sess.MoveLeft()
	default:
		r.sess.MoveRight()
	}
}

// updateShift applies the analog trigger with hysteresis: crossing the
// engage threshold toggles the letter-case page and remembers the page to
// restore; dropping below the release threshold restores it, unless the
// caps latch made the shifted page permanent in between.
func (r *Router) updateShift(level uint8) {
	if level >= r.cfg.ShiftEngage && !r.shiftActive && r.prevTrigger < r.cfg.ShiftEngage {
		r.savedPage = r.grid.Page
		r.grid.Shift()
		r.shiftActive = true
	}
	if level < r.cfg.ShiftRelease && r.prevTrigger >= r.cfg.ShiftRelease {
		if r.shiftActive && r.savedPage >= 0 {
			r.grid.Page = r.savedPage
		}
		r.shiftActive = false
		r.savedPage = -1
	}
	r.prevTrigger = level
}

// updateHoldSelect runs the south button's press/hold/release machine.
// A tap types the button's binding; holding it while issuing cursor
// directions extends a selection from the anchor instead, and the
// release then types nothing.
func (r *Router) updateHoldSelect(in Snapshot) {
	if r.state.JustPressed(BtnSouth) {
		r.selHeld = true
		r.selMoved = false
		r.selAnchor = r.sess.Cursor()
	}
	if r.state.Released(BtnSouth) && r.selHeld {
		if !r.selMoved {
			r.dispatchKey(grid.ButtonSouth)
		}
		// Selection made during the hold stays active on release.
		r.selHeld = false
	}
}

// dispatchKey applies one face button through the grid lookup, honoring
// the shift-hold center override and the accent flag.
func (r *Router) dispatchKey(button int) {
	key := r.grid.Key(button)
	if r.centerOverride() {
		key = grid.ShiftedCenterKey(button)
	}
	if key.IsZero() {
		return
	}

	if key.IsCommand() {
		switch key.Command {
		case grid.CmdSpace:
			r.sess.Insert(' ')
		case grid.CmdExit:
			r.sess.Cancel()
			r.log.Info("session cancelled via grid")
		case grid.CmdSelectAll:
			r.sess.SelectAll()
		case grid.CmdBackspace:
			r.sess.Backspace()
		case grid.CmdAccent:
			r.grid.ToggleAccent()
		case grid.CmdCut:
			r.sess.Cut()
		case grid.CmdCopy:
			r.sess.Copy()
		case grid.CmdPaste:
			r.sess.Paste()
		case grid.CmdCapsLock:
			r.toggleCaps()
		}
		return
	}

	ch := key.Char
	if r.grid.AccentMode {
		if acc := grid.AccentLookup(ch); acc != 0 {
			ch = acc
		}
	}
	r.sess.InsertRune(ch)
}

// toggleCaps latches or releases the standing case lock. Latching keeps
// the currently shifted page when the trigger is released; unlatching
// returns to the lowercase page immediately, even if the trigger is
// still pulled.
func (r *Router) toggleCaps() {
	r.capsLatched = !r.capsLatched
	if !r.capsLatched && r.grid.Page != 2 {
		r.grid.Page = 0
	}
	r.shiftActive = false
	r.savedPage = -1
}

// updateBackspaceRepeat auto-repeats backspace while the west button is
// held on a cell whose west binding is the backspace command. It is
// independent of the hold-to-select machine; both may be held at once,
// they share only the tick timestamp.
func (r *Router) updateBackspaceRepeat(now time.Time) {
	held := r.state.Held(BtnWest) && r.grid.Key(grid.ButtonWest).Command == grid.CmdBackspace
	if !held {
		r.bsHeld = false
		return
	}
	if !r.bsHeld {
		r.bsHeld = true
		r.bsStart = now
		r.bsLast = now
		return
	}
	if now.Sub(r.bsStart) < r.cfg.BackspaceDelay {
		return
	}
	if now.Sub(r.bsLast) < r.cfg.BackspaceInterval {
		return
	}
	r.sess.Backspace()
	r.bsLast = now
}

// Fill writes the current grid and session state into a channel record.
// The same record serves any in-process renderer that wants direct field
// access without going through the channel.
func (r *Router) Fill(rec *shm.Record) {
	*rec = shm.Record{}
	if r.sess.State() != session.Active {
		return
	}
	rec.Active = 1
	rec.SelectedCell = int32(r.grid.SelectedCell)
	rec.Page = int32(r.grid.Page)
	if r.grid.AccentMode {
		rec.AccentMode = 1
	}
	if r.shiftActive {
		rec.ShiftActive = 1
	}
	rec.SetText(r.sess.Text())
	rec.Cursor = uint32(r.sess.Cursor())
	start, end, all := r.sess.Selection()
	rec.SelStart = uint32(start)
	rec.SelEnd = uint32(end)
	if all {
		rec.SelectedAll = 1
	}
	rec.OffsetX = int32(r.grid.OffsetX)
	rec.OffsetY = int32(r.grid.OffsetY)
	rec.SetPageName(grid.PageName(r.grid.Page))
	rec.SetTitle(r.grid.Title[:])
	rec.Cells = grid.CellTable(r.grid.Page, r.centerOverride())
}
