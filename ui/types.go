// Package ui draws the heads-up display, the tactical menu and the popups
// over the playfield.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Shade       rl.Color // Dims the playfield behind popups
	Text        rl.Color
	Muted       rl.Color
	Accent      rl.Color
	Golden      rl.Color
	Flash       rl.Color // Opponent panel while they pop
	Selected    rl.Color

	Padding   int32
	FontSize  int32
	LabelSize int32
	TitleSize int32
	BigSize   int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 25, G: 30, B: 45, A: 230},
		PanelBorder: rl.Color{R: 90, G: 100, B: 130, A: 255},
		Shade:       rl.Color{R: 0, G: 0, B: 0, A: 120},
		Text:        rl.White,
		Muted:       rl.LightGray,
		Accent:      rl.Color{R: 255, G: 105, B: 180, A: 255},
		Golden:      rl.Color{R: 255, G: 215, B: 0, A: 255},
		Flash:       rl.Color{R: 255, G: 230, B: 90, A: 240},
		Selected:    rl.Color{R: 80, G: 200, B: 120, A: 255},
		Padding:     16,
		FontSize:    24,
		LabelSize:   30,
		TitleSize:   48,
		BigSize:     72,
	}
}
