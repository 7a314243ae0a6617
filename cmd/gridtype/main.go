// Command gridtype runs one edit session against the grid typer and
// publishes its state over the shared channel for any attached viewer.
// The keyboard stands in for the controller; see keyboard.go for the
// mapping.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf16"

	"gridtype/internal/config"
	"gridtype/internal/grid"
	"gridtype/internal/input"
	"gridtype/internal/logging"
	"gridtype/internal/session"
	"gridtype/internal/shm"
)

const tickInterval = 16 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	title := flag.String("title", "Enter text", "prompt shown above the text field")
	category := flag.String("category", "default", "input category: default, number, url, mail")
	maxLen := flag.Int("max", 0, "maximum text length (0 = config value)")
	prefill := flag.String("prefill", "", "initial text field contents")
	flag.Parse()

	if err := run(*configPath, *title, *category, *maxLen, *prefill); err != nil {
		fmt.Fprintf(os.Stderr, "gridtype: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, title, category string, maxLen int, prefill string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	writer, err := shm.Create(cfg.Channel.Path)
	if err != nil {
		return fmt.Errorf("open channel %s: %w", cfg.Channel.Path, err)
	}
	defer writer.Close()
	log.Info("channel ready", "path", cfg.Channel.Path)

	if maxLen <= 0 {
		maxLen = cfg.Session.MaxLength
	}

	g := grid.New()
	g.SetTitle(utf16.Encode([]rune(title)))

	dest := make([]uint16, maxLen+1)
	sess := session.New(session.Options{
		Category:  parseCategory(category),
		MaxLength: maxLen,
		Prefill:   utf16.Encode([]rune(prefill)),
		Dest:      dest,
		Cycle: session.CycleConfig{
			InitialDelay:   time.Duration(cfg.Session.CycleDelayMs) * time.Millisecond,
			RepeatInterval: time.Duration(cfg.Session.CycleIntervalMs) * time.Millisecond,
			AccelThreshold: time.Duration(cfg.Session.CycleAccelMs) * time.Millisecond,
			AccelInterval:  time.Duration(cfg.Session.CycleAccelFastMs) * time.Millisecond,
		},
	})

	router := input.New(input.Config{
		GracePeriod:       cfg.Input.GracePeriod(),
		BackspaceDelay:    cfg.Input.BackspaceDelay(),
		BackspaceInterval: cfg.Input.BackspaceInterval(),
		ShiftEngage:       uint8(cfg.Input.ShiftEngage),
		ShiftRelease:      uint8(cfg.Input.ShiftRelease),
		ScreenW:           cfg.Input.ScreenWidth,
		ScreenH:           cfg.Input.ScreenHeight,
	}, g, sess, log)

	kb, err := NewKeyboard()
	if err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer kb.Restore()

	pad := newPadState()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var rec shm.Record
	state := session.Active
	for state == session.Active {
		select {
		case key, ok := <-kb.Keys():
			if !ok {
				sess.Cancel()
				state = sess.State()
				continue
			}
			pad.apply(key)
		case now := <-ticker.C:
			buttons, sx, sy, trigger := pad.snapshot()
			state = router.Tick(input.Snapshot{
				Buttons: buttons,
				StickX:  sx,
				StickY:  sy,
				RStickX: 128,
				RStickY: 128,
				Trigger: trigger,
				Now:     now,
			})
			router.Fill(&rec)
			writer.Publish(&rec)
			drawStatus(g, sess, router)
		}
	}

	writer.PublishInactive()
	kb.Restore()
	fmt.Print("\r\x1b[K")

	switch sess.Result() {
	case session.ResultAccepted:
		fmt.Printf("accepted: %q\n", decodeDest(dest))
	case session.ResultCancelled:
		fmt.Println("cancelled")
	default:
		fmt.Println("aborted")
	}
	return nil
}

func parseCategory(s string) session.Category {
	switch strings.ToLower(s) {
	case "number":
		return session.CategoryNumber
	case "url":
		return session.CategoryURL
	case "mail":
		return session.CategoryMail
	default:
		return session.CategoryDefault
	}
}

// decodeDest renders the null-terminated destination buffer as a string.
func decodeDest(dest []uint16) string {
	n := 0
	for n < len(dest) && dest[n] != 0 {
		n++
	}
	return string(utf16.Decode(dest[:n]))
}

// drawStatus repaints a one-line summary in place. The viewer is the
// real renderer; this is just enough to type blind against.
func drawStatus(g *grid.State, sess *session.Session, r *input.Router) {
	mods := ""
	if r.ShiftActive() {
		mods += " shift"
	}
	if r.CapsLatched() {
		mods += " caps"
	}
	if g.AccentMode {
		mods += " accent"
	}
	text := sess.String()
	cur := sess.Cursor()
	line := fmt.Sprintf("[%s] cell %d%s | %s│%s",
		grid.PageName(g.Page), g.SelectedCell, mods, text[:cursorByte(text, cur)], text[cursorByte(text, cur):])
	fmt.Printf("\r\x1b[K%s", line)
}

// cursorByte maps a code-unit cursor to a byte offset in the rendered
// string. The charsets are ASCII-dominated, so a rune walk suffices.
func cursorByte(s string, cursor int) int {
	i := 0
	for off := range s {
		if i == cursor {
			return off
		}
		i++
	}
	return len(s)
}
