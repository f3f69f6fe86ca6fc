package emulator

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/jroimartin/gocui"

	"github.com/tuboc/chip8vm/chip8"
)

// terminals only report key presses, so a key counts as held for this long
// after its last press (auto-repeat keeps extending it)
const terminalKeyHold = 150 * time.Millisecond

const (
	screenView = "screen"
	helpView   = "help"
)

type termInput struct {
	key   chip8.Key
	reset bool
}

// Terminal renders into a gocui view using half-block glyphs, two pixel
// rows per text line. gocui runs its main loop on its own goroutine and key
// handlers only queue input, which Poll applies to the keypad.
type Terminal struct {
	g     *gocui.Gui
	input chan termInput
	done  chan struct{}
	err   error

	held      map[chip8.Key]time.Time
	closeOnce sync.Once
}

func NewTerminal() (*Terminal, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("creating terminal ui: %w", err)
	}

	t := &Terminal{
		g:     g,
		input: make(chan termInput, 64),
		done:  make(chan struct{}),
		held:  make(map[chip8.Key]time.Time),
	}
	g.SetManagerFunc(t.layout)

	if err := t.bindKeys(); err != nil {
		g.Close()
		return nil, err
	}

	go func() {
		defer close(t.done)
		if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
			t.err = err
		}
	}()

	return t, nil
}

func (t *Terminal) bindKeys() error {
	for r, k := range Layout {
		press := func(*gocui.Gui, *gocui.View) error {
			t.send(termInput{key: k})
			return nil
		}
		if err := t.g.SetKeybinding("", r, gocui.ModNone, press); err != nil {
			return err
		}
		if upper := unicode.ToUpper(r); upper != r {
			if err := t.g.SetKeybinding("", upper, gocui.ModNone, press); err != nil {
				return err
			}
		}
	}

	if err := t.g.SetKeybinding("", gocui.KeyCtrlR, gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
		t.send(termInput{reset: true})
		return nil
	}); err != nil {
		return err
	}

	return t.g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
		return gocui.ErrQuit
	})
}

// send drops input rather than block the gocui loop when the emulator is
// not polling.
func (t *Terminal) send(in termInput) {
	select {
	case t.input <- in:
	default:
	}
}

func (t *Terminal) layout(g *gocui.Gui) error {
	if v, err := g.SetView(screenView, 0, 0, chip8.DisplayW+1, chip8.DisplayH/2+1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "CHIP-8"
	}

	if v, err := g.SetView(helpView, 0, chip8.DisplayH/2+2, chip8.DisplayW+1, chip8.DisplayH/2+4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		fmt.Fprint(v, "keys 1234 qwer asdf zxcv   ^R reset   ^C quit")
	}
	return nil
}

func (t *Terminal) Poll(keys *chip8.Keypad) Events {
	var ev Events

	select {
	case <-t.done:
		ev.Quit = true
		return ev
	default:
	}

	now := time.Now()
	t.drain(keys, now, &ev)
	releaseExpired(keys, t.held, now)
	return ev
}

func (t *Terminal) drain(keys *chip8.Keypad, now time.Time, ev *Events) {
	for {
		select {
		case in := <-t.input:
			if in.reset {
				ev.Reset = true
				continue
			}
			keys.SetPressed(in.key)
			t.held[in.key] = now.Add(terminalKeyHold)
		default:
			return
		}
	}
}

func releaseExpired(keys *chip8.Keypad, held map[chip8.Key]time.Time, now time.Time) {
	for k, until := range held {
		if now.After(until) {
			keys.SetReleased(k)
			delete(held, k)
		}
	}
}

func (t *Terminal) Render(d *chip8.Display) error {
	frame := halfBlocks(d)
	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(screenView)
		if err != nil {
			return err
		}
		v.Clear()
		fmt.Fprint(v, frame)
		return nil
	})
	return nil
}

// halfBlocks draws the display with one glyph per pair of pixel rows.
func halfBlocks(d *chip8.Display) string {
	var sb strings.Builder
	for y := 0; y < chip8.DisplayH; y += 2 {
		for x := 0; x < chip8.DisplayW; x++ {
			top, bottom := d.Get(x, y) == 1, d.Get(x, y+1) == 1
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		if y+2 < chip8.DisplayH {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Close stops the gocui main loop and restores the terminal.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		t.g.Update(func(*gocui.Gui) error {
			return gocui.ErrQuit
		})
		<-t.done
		t.g.Close()
	})
	return t.err
}
