// Command gridtype-view renders the shared channel in a terminal. It is
// the consumer side: it attaches to the channel file, polls at roughly
// 30Hz, and draws the grid, the text field, and the modifier state of
// whatever producer is currently publishing.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridtype/internal/config"
	"gridtype/internal/grid"
	"gridtype/internal/logging"
	"gridtype/internal/shm"
)

const (
	pollInterval  = 33 * time.Millisecond
	attachRetry   = 100 * time.Millisecond
	attachTimeout = 30 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	logPath := flag.String("log", "", "log file (default: discard)")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "gridtype-view: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var logDest io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logDest = f
	}
	log := logging.New(logDest, cfg.Logging.Level, cfg.Logging.Format)

	reader, err := attach(cfg.Channel.Path, cfg.Channel.StaleTimeout())
	if err != nil {
		return err
	}
	defer reader.Close()
	log.Info("attached", "path", cfg.Channel.Path)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					close(quit)
					return
				}
			case nil:
				return
			}
		}
	}()

	view := newView(screen)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			log.Info("viewer stats", "reads_ok", view.readsOK, "reads_torn", view.readsTorn)
			return nil
		case now := <-ticker.C:
			rec, ok := reader.TryRead(now)
			if !ok {
				view.readsTorn++
				continue
			}
			view.readsOK++
			view.draw(&rec)
		}
	}
}

// attach retries until the producer has created the channel file, so the
// viewer can be started first.
func attach(path string, staleAfter time.Duration) (*shm.Reader, error) {
	deadline := time.Now().Add(attachTimeout)
	for {
		r, err := shm.Attach(path, staleAfter)
		if err == nil {
			return r, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("attach %s: %w", path, err)
		}
		time.Sleep(attachRetry)
	}
}

type view struct {
	screen    tcell.Screen
	readsOK   uint64
	readsTorn uint64
}

func newView(s tcell.Screen) *view {
	return &view{screen: s}
}

var (
	styleDefault  = tcell.StyleDefault
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleCursor   = tcell.StyleDefault.Underline(true)
	styleSel      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
)

func (v *view) draw(rec *shm.Record) {
	s := v.screen
	s.Clear()

	if rec.Active == 0 {
		v.puts(2, 1, styleDim, "no active session")
		v.puts(2, 3, styleDim, "waiting for a producer... (q to quit)")
		s.Show()
		return
	}

	v.puts(2, 1, styleTitle, rec.TitleString())
	v.drawTextBar(2, 3, rec)
	v.drawGrid(2, 5, rec)

	mods := ""
	if rec.ShiftActive != 0 {
		mods += "[shift] "
	}
	if rec.AccentMode != 0 {
		mods += "[accent] "
	}
	status := fmt.Sprintf("page %s  cell %d  %s", rec.PageNameString(), rec.SelectedCell, mods)
	v.puts(2, 15, styleDim, status)
	v.puts(2, 16, styleDim, fmt.Sprintf("offset %+d%+d  reads ok %d torn %d",
		rec.OffsetX, rec.OffsetY, v.readsOK, v.readsTorn))

	s.Show()
}

// drawTextBar renders the buffer with the cursor underlined and any
// selection highlighted. Select-all overrides the partial range.
func (v *view) drawTextBar(x, y int, rec *shm.Record) {
	n := int(rec.TextLen)
	if n > shm.MaxText {
		n = shm.MaxText
	}
	selStart, selEnd := int(rec.SelStart), int(rec.SelEnd)
	if rec.SelectedAll != 0 {
		selStart, selEnd = 0, n
	}
	for i := 0; i < n; i++ {
		st := styleDefault
		if i >= selStart && i < selEnd && selStart != selEnd {
			st = styleSel
		}
		if i == int(rec.Cursor) {
			st = st.Underline(true)
		}
		v.screen.SetContent(x+i, y, rune(rec.Text[i]), nil, st)
	}
	if int(rec.Cursor) == n {
		v.screen.SetContent(x+n, y, ' ', nil, styleCursor)
	}
}

// drawGrid renders the 3x3 cell table. Each cell shows its four bindings
// in a diamond, command markers replaced by their labels.
func (v *view) drawGrid(x, y int, rec *shm.Record) {
	const cellW, cellH = 14, 3
	for cell := 0; cell < shm.NumCells; cell++ {
		cx := x + (cell%3)*cellW
		cy := y + (cell/3)*cellH
		st := styleDefault
		if int(rec.SelectedCell) == cell {
			st = styleSelected
		}
		north := markerLabel(rec.Cells[cell][0])
		east := markerLabel(rec.Cells[cell][1])
		south := markerLabel(rec.Cells[cell][2])
		west := markerLabel(rec.Cells[cell][3])
		v.puts(cx, cy, st, fmt.Sprintf("  %-8s", north))
		v.puts(cx, cy+1, st, fmt.Sprintf("%-5s %-5s", west, east))
		v.puts(cx, cy+2, st, fmt.Sprintf("  %-8s", south))
	}
}

// markerLabel decodes one cell-table byte into display text.
func markerLabel(b byte) string {
	if cmd := grid.CommandFromMarker(b); cmd != grid.CmdNone {
		return cmd.Label()
	}
	if b == 0 {
		return ""
	}
	return string(rune(b))
}

func (v *view) puts(x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		v.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
