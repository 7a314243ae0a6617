package main

import (
	"os"

	"golang.org/x/term"

	"gridtype/internal/input"
)

// Keyboard puts the terminal in raw mode and translates keypresses into
// synthetic controller snapshots, standing in for the pad-polling
// collaborator so the producer is runnable from a plain terminal.
type Keyboard struct {
	oldState *term.State
	keys     chan Key
}

// Key types.
const (
	KeyRune = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyHome
	KeyEnd
	KeyUnknown
)

type Key struct {
	Type int
	Rune rune
}

func NewKeyboard() (*Keyboard, error) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	k := &Keyboard{oldState: oldState, keys: make(chan Key, 16)}
	go k.readLoop()
	return k, nil
}

// Restore returns the terminal to its original state.
func (k *Keyboard) Restore() {
	if k.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), k.oldState)
	}
}

// Keys returns the channel of decoded keypresses.
func (k *Keyboard) Keys() <-chan Key { return k.keys }

func (k *Keyboard) readLoop() {
	buf := make([]byte, 6)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			close(k.keys)
			return
		}
		k.keys <- parseKey(buf[:n])
	}
}

func parseKey(buf []byte) Key {
	if len(buf) == 0 {
		return Key{Type: KeyUnknown}
	}

	// Single byte.
	if len(buf) == 1 {
		b := buf[0]
		switch {
		case b == 27:
			return Key{Type: KeyEscape}
		case b == 13:
			return Key{Type: KeyEnter}
		case b == 9:
			return Key{Type: KeyTab}
		case b == 127 || b == 8:
			return Key{Type: KeyBackspace}
		case b >= 32 && b < 127:
			return Key{Type: KeyRune, Rune: rune(b)}
		default:
			return Key{Type: KeyUnknown}
		}
	}

	// CSI escape sequences.
	if buf[0] == 27 && len(buf) >= 3 && buf[1] == '[' {
		switch buf[2] {
		case 'A':
			return Key{Type: KeyUp}
		case 'B':
			return Key{Type: KeyDown}
		case 'C':
			return Key{Type: KeyRight}
		case 'D':
			return Key{Type: KeyLeft}
		case 'H':
			return Key{Type: KeyHome}
		case 'F':
			return Key{Type: KeyEnd}
		}
		if len(buf) >= 4 && buf[3] == '~' {
			switch buf[2] {
			case '1':
				return Key{Type: KeyHome}
			case '4':
				return Key{Type: KeyEnd}
			}
		}
	}

	return Key{Type: KeyUnknown}
}

// Stick positions for the nine cells, row-major: low/mid/high per axis.
var cellStick = [9][2]uint8{
	{20, 20}, {128, 20}, {235, 20},
	{20, 128}, {128, 128}, {235, 128},
	{20, 235}, {128, 235}, {235, 235},
}

// padState accumulates the synthetic controller state between ticks.
// A keyboard has no key-up events, so face buttons pulse for a single
// tick and the shift trigger is a toggle.
type padState struct {
	stickX, stickY uint8
	trigger        uint8
	pulse          input.Buttons
}

func newPadState() *padState {
	return &padState{stickX: 128, stickY: 128}
}

// apply folds one keypress into the pad state.
//
//	1-9        select grid cell
//	i/l/k/j    north/east/south/west face buttons
//	arrows     text cursor (up=home, down=end)
//	tab        letters/symbols page toggle
//	f          shift trigger toggle (hold emulation)
//	'          accent toggle button
//	enter      submit, esc cancel
func (p *padState) apply(key Key) {
	switch key.Type {
	case KeyRune:
		switch key.Rune {
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			cell := int(key.Rune - '1')
			p.stickX = cellStick[cell][0]
			p.stickY = cellStick[cell][1]
		case 'i':
			p.pulse |= input.BtnNorth
		case 'l':
			p.pulse |= input.BtnEast
		case 'k':
			p.pulse |= input.BtnSouth
		case 'j':
			p.pulse |= input.BtnWest
		case 'f':
			if p.trigger == 0 {
				p.trigger = 255
			} else {
				p.trigger = 0
			}
		case '\'':
			p.pulse |= input.BtnAccent
		}
	case KeyTab:
		p.pulse |= input.BtnPageNext
	case KeyLeft:
		p.pulse |= input.BtnLeft
	case KeyRight:
		p.pulse |= input.BtnRight
	case KeyUp, KeyHome:
		p.pulse |= input.BtnUp
	case KeyDown, KeyEnd:
		p.pulse |= input.BtnDown
	case KeyBackspace:
		p.pulse |= input.BtnWest
	case KeyEnter:
		p.pulse |= input.BtnSubmit
	case KeyEscape:
		p.pulse |= input.BtnCancel
	}
}

// snapshot emits the state for one tick and clears the pulsed buttons so
// they read as released on the next tick.
func (p *padState) snapshot() (buttons input.Buttons, stickX, stickY, trigger uint8) {
	buttons = p.pulse
	p.pulse = 0
	return buttons, p.stickX, p.stickY, p.trigger
}
