package emulator

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/tuboc/chip8vm/chip8"
)

const DefaultScale = 10

var scanCode2Key = map[sdl.Scancode]chip8.Key{
	sdl.SCANCODE_1: chip8.Key1,
	sdl.SCANCODE_2: chip8.Key2,
	sdl.SCANCODE_3: chip8.Key3,
	sdl.SCANCODE_4: chip8.KeyC,
	sdl.SCANCODE_Q: chip8.Key4,
	sdl.SCANCODE_W: chip8.Key5,
	sdl.SCANCODE_E: chip8.Key6,
	sdl.SCANCODE_R: chip8.KeyD,
	sdl.SCANCODE_A: chip8.Key7,
	sdl.SCANCODE_S: chip8.Key8,
	sdl.SCANCODE_D: chip8.Key9,
	sdl.SCANCODE_F: chip8.KeyE,
	sdl.SCANCODE_Z: chip8.KeyA,
	sdl.SCANCODE_X: chip8.Key0,
	sdl.SCANCODE_C: chip8.KeyB,
	sdl.SCANCODE_V: chip8.KeyF,
}

// SDL renders into a window. It must be created and used on the main OS
// thread.
type SDL struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32
	focus    bool
}

func NewSDL(scale int) (*SDL, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl.Init: %w", err)
	}

	w := int32(chip8.DisplayW * scale)
	h := int32(chip8.DisplayH * scale)
	window, err := sdl.CreateWindow("CHIP-8", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("CreateWindow: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("CreateRenderer: %w", err)
	}

	return &SDL{window: window, renderer: renderer, scale: int32(scale), focus: true}, nil
}

func (s *SDL) Poll(keys *chip8.Keypad) Events {
	var ev Events
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			ev.Quit = true
		case *sdl.KeyboardEvent:
			k, mapped := scanCode2Key[e.Keysym.Scancode]
			switch e.Type {
			case sdl.KEYDOWN:
				if mapped {
					keys.SetPressed(k)
				} else if e.Keysym.Scancode == sdl.SCANCODE_F5 {
					ev.Reset = true
				} else if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					ev.Quit = true
				}
			case sdl.KEYUP:
				if mapped {
					keys.SetReleased(k)
				}
			}
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				s.focus = false
				// key up events are not delivered to an unfocused window
				keys.ReleaseAll()
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				s.focus = true
			}
		}
	}
	ev.Paused = !s.focus
	return ev
}

func (s *SDL) Render(d *chip8.Display) error {
	if err := s.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := s.renderer.Clear(); err != nil {
		return err
	}

	if err := s.renderer.SetDrawColor(0, 255, 0, 255); err != nil {
		return err
	}
	for y := int32(0); y < chip8.DisplayH; y++ {
		for x := int32(0); x < chip8.DisplayW; x++ {
			if d.Get(int(x), int(y)) == 0 {
				continue
			}
			rect := &sdl.Rect{X: x * s.scale, Y: y * s.scale, W: s.scale, H: s.scale}
			if err := s.renderer.FillRect(rect); err != nil {
				return err
			}
		}
	}

	s.renderer.Present()
	return nil
}

func (s *SDL) Close() error {
	defer sdl.Quit()
	if err := s.renderer.Destroy(); err != nil {
		return err
	}
	return s.window.Destroy()
}
