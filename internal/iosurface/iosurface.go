// Package iosurface implements the Hack computer's memory-mapped I/O
// contract: the 256x512 monochrome screen region starting at 0x4000 and the
// single keyboard cell at 0x6000.
package iosurface

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"

	"hack.n2t.dev/internal/word"
)

// ScreenStart and KeyboardCell are the fixed memory addresses of the I/O
// region, matching internal/asm's predefined SCREEN/KBD symbols.
const (
	ScreenStart  uint16 = 0x4000
	KeyboardCell uint16 = 0x6000

	ScreenWidth  = 512
	ScreenHeight = 256

	wordsPerRow = ScreenWidth / 16
)

// KeyCode is a Hack keyboard scancode: ASCII for printable keys, plus the
// fixed control-key range the architecture reserves above it.
type KeyCode uint16

const (
	KeyNewline   KeyCode = 128
	KeyBackspace KeyCode = 129
	KeyLeft      KeyCode = 130
	KeyUp        KeyCode = 131
	KeyRight     KeyCode = 132
	KeyDown      KeyCode = 133
	KeyHome      KeyCode = 134
	KeyEnd       KeyCode = 135
	KeyPageUp    KeyCode = 136
	KeyPageDown  KeyCode = 137
	KeyInsert    KeyCode = 138
	KeyDelete    KeyCode = 139
	KeyEsc       KeyCode = 140
	KeyF1        KeyCode = 141
	KeyF2        KeyCode = 142
	KeyF3        KeyCode = 143
	KeyF4        KeyCode = 144
	KeyF5        KeyCode = 145
	KeyF6        KeyCode = 146
	KeyF7        KeyCode = 147
	KeyF8        KeyCode = 148
	KeyF9        KeyCode = 149
	KeyF10       KeyCode = 150
	KeyF11       KeyCode = 151
	KeyF12       KeyCode = 152
)

var (
	screenOn  = color.Black // the Hack screen draws a set bit black
	screenOff = colornames.White
)

// DrawFramebuffer renders the 256x512 screen region of mem into an
// image.RGBA, one pixel per bit. Each screen word is mapped "backwards":
// bit 0 (the MSB) is the leftmost pixel of the word's 16-pixel span.
func DrawFramebuffer(mem *[1 << 15]word.Word) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))

	for row := 0; row < ScreenHeight; row++ {
		for w := 0; w < wordsPerRow; w++ {
			loc := int(ScreenStart) + row*wordsPerRow + w
			word := mem[loc]
			for b := uint(0); b < 16; b++ {
				col := int(b) + w*16
				px := screenOff
				if word.Bit(b) {
					px = screenOn
				}
				img.SetRGBA(col, row, toRGBA(px))
			}
		}
	}

	return img
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// WriteKeyboard stores code (0 for no key pressed) into the keyboard cell.
func WriteKeyboard(mem *[1 << 15]word.Word, code KeyCode) {
	mem[KeyboardCell] = word.Word(int16(code))
}

// ReadKeyboard returns the keycode currently held in the keyboard cell.
func ReadKeyboard(mem *[1 << 15]word.Word) KeyCode {
	return KeyCode(uint16(mem[KeyboardCell]))
}
