package main

import (
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/game"
	"github.com/pthm-cable/balloonwar/renderer"
	"github.com/pthm-cable/balloonwar/ui"
)

// hueSpeed is how far rainbow text and debris turn per second, in degrees.
const hueSpeed = 120

// view composes one frame from the game state.
type view struct {
	background *renderer.BackgroundRenderer
	balloons   *renderer.BalloonRenderer
	particles  *renderer.ParticleRenderer
	hud        *ui.HUD
	menu       *ui.MenuPanel
	overlays   *ui.Overlays
}

func newView(cfg *config.Config, seed int64) *view {
	return &view{
		background: renderer.NewBackgroundRenderer(seed),
		balloons:   renderer.NewBalloonRenderer(),
		particles:  renderer.NewParticleRenderer(),
		hud:        ui.NewHUD(cfg.Screen.Title),
		menu:       ui.NewMenuPanel(),
		overlays:   ui.NewOverlays(),
	}
}

func (v *view) draw(g *game.Game, now time.Time, t float32) {
	vp := g.Viewport()
	w, h := int32(vp.W), int32(vp.H)
	hue := float32(math.Mod(float64(t*hueSpeed), 360))

	rl.ClearBackground(rl.RayWhite)
	v.background.Draw(t, w, h)

	dx, dy := g.Shake().Offset()
	v.balloons.Draw(g.Pool(), g.BalloonColor, t, dx, dy)
	v.particles.Draw(g.Pool(), hue, dx, dy)

	v.hud.Draw(g.HUD(now), w, h, hue)
	v.menu.Draw(g.Menu(), g.Settings(), w, h)

	if res, open := g.Results(); open {
		v.overlays.DrawResults(res, w, h)
	}
	if g.ManualOpen() {
		v.overlays.DrawManual(game.Manual, w, h)
	}
}
