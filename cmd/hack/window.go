package main

import (
	"fmt"
	"image"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"hack.n2t.dev/internal/cpu"
	"hack.n2t.dev/internal/iosurface"
)

const windowScale = 2

// keyTable maps the pixelgl buttons the Hack keyboard cares about to their
// Hack keycodes, checked in order so the first one found held wins (the
// real keyboard cell can only ever hold one code at a time).
var keyTable = []struct {
	button pixelgl.Button
	code   iosurface.KeyCode
}{
	{pixelgl.KeyEnter, iosurface.KeyNewline},
	{pixelgl.KeyBackspace, iosurface.KeyBackspace},
	{pixelgl.KeyLeft, iosurface.KeyLeft},
	{pixelgl.KeyRight, iosurface.KeyRight},
	{pixelgl.KeyUp, iosurface.KeyUp},
	{pixelgl.KeyDown, iosurface.KeyDown},
	{pixelgl.KeyHome, iosurface.KeyHome},
	{pixelgl.KeyEnd, iosurface.KeyEnd},
	{pixelgl.KeyPageUp, iosurface.KeyPageUp},
	{pixelgl.KeyPageDown, iosurface.KeyPageDown},
	{pixelgl.KeyInsert, iosurface.KeyInsert},
	{pixelgl.KeyDelete, iosurface.KeyDelete},
	{pixelgl.KeyEscape, iosurface.KeyEsc},
	{pixelgl.KeyF1, iosurface.KeyF1},
	{pixelgl.KeyF2, iosurface.KeyF2},
	{pixelgl.KeyF3, iosurface.KeyF3},
	{pixelgl.KeyF4, iosurface.KeyF4},
	{pixelgl.KeyF5, iosurface.KeyF5},
	{pixelgl.KeyF6, iosurface.KeyF6},
	{pixelgl.KeyF7, iosurface.KeyF7},
	{pixelgl.KeyF8, iosurface.KeyF8},
	{pixelgl.KeyF9, iosurface.KeyF9},
	{pixelgl.KeyF10, iosurface.KeyF10},
	{pixelgl.KeyF11, iosurface.KeyF11},
	{pixelgl.KeyF12, iosurface.KeyF12},
}

// asciiKeyTable covers the printable keys; kept separate from keyTable since
// its code depends on the key itself rather than being a fixed constant.
var asciiKeyTable = []struct {
	button pixelgl.Button
	code   rune
}{
	{pixelgl.Key0, '0'}, {pixelgl.Key1, '1'}, {pixelgl.Key2, '2'}, {pixelgl.Key3, '3'},
	{pixelgl.Key4, '4'}, {pixelgl.Key5, '5'}, {pixelgl.Key6, '6'}, {pixelgl.Key7, '7'},
	{pixelgl.Key8, '8'}, {pixelgl.Key9, '9'}, {pixelgl.KeySpace, ' '},
	{pixelgl.KeyA, 'A'}, {pixelgl.KeyB, 'B'}, {pixelgl.KeyC, 'C'}, {pixelgl.KeyD, 'D'},
	{pixelgl.KeyE, 'E'}, {pixelgl.KeyF, 'F'}, {pixelgl.KeyG, 'G'}, {pixelgl.KeyH, 'H'},
	{pixelgl.KeyI, 'I'}, {pixelgl.KeyJ, 'J'}, {pixelgl.KeyK, 'K'}, {pixelgl.KeyL, 'L'},
	{pixelgl.KeyM, 'M'}, {pixelgl.KeyN, 'N'}, {pixelgl.KeyO, 'O'}, {pixelgl.KeyP, 'P'},
	{pixelgl.KeyQ, 'Q'}, {pixelgl.KeyR, 'R'}, {pixelgl.KeyS, 'S'}, {pixelgl.KeyT, 'T'},
	{pixelgl.KeyU, 'U'}, {pixelgl.KeyV, 'V'}, {pixelgl.KeyW, 'W'}, {pixelgl.KeyX, 'X'},
	{pixelgl.KeyY, 'Y'}, {pixelgl.KeyZ, 'Z'},
}

// runWindowed opens a pixelgl window showing the Hack screen region and
// steps the CPU once per frame until the window is closed, updating the
// keyboard cell from whatever key is currently held. It must run on the
// main OS thread, so it's dispatched through pixelgl.Run rather than called
// directly.
func runWindowed(machine *cpu.CPU) {
	pixelgl.Run(func() {
		cfg := pixelgl.WindowConfig{
			Title:  "Hack computer",
			Bounds: pixel.R(0, 0, iosurface.ScreenWidth*windowScale, iosurface.ScreenHeight*windowScale),
			VSync:  true,
		}
		window, err := pixelgl.NewWindow(cfg)
		if err != nil {
			fmt.Printf("ERROR: unable to open window: %s\n", err)
			return
		}

		for !window.Closed() {
			updateKeyboard(window, machine)

			if _, err := machine.Step(); err != nil {
				fmt.Printf("ERROR: %s\n", err)
				return
			}

			window.Clear(colornames.Black)
			drawFrame(window, machine)
			window.Update()
		}
	})
}

func drawFrame(window *pixelgl.Window, machine *cpu.CPU) {
	img := iosurface.DrawFramebuffer(&machine.Memory)
	sprite := spriteFromImage(img)
	matrix := pixel.IM.
		ScaledXY(pixel.ZV, pixel.V(windowScale, windowScale)).
		Moved(window.Bounds().Center())
	sprite.Draw(window, matrix)
}

func spriteFromImage(img *image.RGBA) *pixel.Sprite {
	pic := pixel.PictureDataFromImage(img)
	return pixel.NewSprite(pic, pic.Bounds())
}

func updateKeyboard(window *pixelgl.Window, machine *cpu.CPU) {
	for _, k := range keyTable {
		if window.Pressed(k.button) {
			iosurface.WriteKeyboard(&machine.Memory, k.code)
			return
		}
	}
	for _, k := range asciiKeyTable {
		if window.Pressed(k.button) {
			iosurface.WriteKeyboard(&machine.Memory, iosurface.KeyCode(k.code))
			return
		}
	}
	iosurface.WriteKeyboard(&machine.Memory, 0)
}
