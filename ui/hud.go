package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/game"
)

const introBanner = "SKOL, WARRIOR!"

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	title    string
}

// NewHUD creates a new HUD renderer.
func NewHUD(title string) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		title:    title,
	}
}

// Draw renders the HUD for a w by h screen. hue drives the rainbow text.
func (h *HUD) Draw(data game.HUD, w, ht int32, hue float32) {
	r := h.renderer
	th := r.Theme
	cx := w / 2

	r.DrawRainbow(h.title, cx, th.Padding, th.TitleSize, hue, 255)

	// Score block, top left below the corner hot zone
	x := th.Padding
	y := th.Padding*2 + th.TitleSize
	rl.DrawText(fmt.Sprintf("Streak: %d", data.Streak), x, y, th.LabelSize, th.Text)
	y += th.LabelSize + 4
	rl.DrawText(fmt.Sprintf("Best: %d", data.MaxStreak), x, y, th.FontSize, th.Muted)
	y += th.FontSize + 4
	rl.DrawText(fmt.Sprintf("BPM: %d", data.BPM), x, y, th.FontSize, th.Muted)

	if data.BattleActive {
		timer := fmt.Sprintf("%d:%02d", data.SecondsLeft/60, data.SecondsLeft%60)
		col := th.Text
		if data.SecondsLeft <= 10 {
			col = rl.Red
		}
		r.DrawOutlined(timer, cx, th.Padding*2+th.TitleSize, th.BigSize, col)
	}

	if data.Linked {
		h.drawOpponent(data, w)
	}

	if data.Combo != "" {
		col := th.Accent
		if data.Bonus {
			r.DrawRainbow(data.Combo, cx, ht*35/100, th.BigSize, hue*2, 255)
		} else {
			r.DrawOutlined(data.Combo, cx, ht*35/100, th.BigSize, col)
		}
	}
	if data.Bonus {
		r.DrawOutlined("BONUS!", cx, ht*35/100+th.BigSize+8, th.LabelSize, th.Golden)
	}

	if data.Intro > 0 {
		c := th.Golden
		c.A = data.Intro
		r.DrawOutlined(introBanner, cx, ht/2-th.BigSize/2, th.BigSize, c)
	}

	if data.Notice != "" {
		width := rl.MeasureText(data.Notice, th.FontSize) + th.Padding*2
		height := th.FontSize + th.Padding
		y := ht - height - th.Padding*2
		r.DrawPanel(cx-width/2, y, width, height)
		r.DrawCentered(data.Notice, cx, y+th.Padding/2, th.FontSize, th.Text)
	}
}

// drawOpponent renders the peer's panel top right. It lights up while the
// peer is popping.
func (h *HUD) drawOpponent(data game.HUD, w int32) {
	r := h.renderer
	th := r.Theme
	width := int32(260)
	height := th.FontSize*2 + th.Padding*2
	x := w - width - th.Padding
	y := th.Padding*2 + th.TitleSize

	text := th.Text
	if data.Opponent.FlashTicks > 0 {
		rl.DrawRectangle(x, y, width, height, th.Flash)
		text = rl.Black
	} else {
		r.DrawPanel(x, y, width, height)
	}
	rl.DrawText(data.Opponent.Name, x+th.Padding, y+th.Padding/2, th.FontSize, text)
	rl.DrawText("Best: "+data.Opponent.Best, x+th.Padding, y+th.Padding/2+th.FontSize+4, th.FontSize, text)
}
