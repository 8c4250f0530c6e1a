// Sound preview tool: plot and audition the synthesized effects.
//
// Usage: go run ./cmd/soundpreview
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/audio"
	"github.com/pthm-cable/balloonwar/game"
	"github.com/pthm-cable/balloonwar/platform"
)

const (
	windowWidth  = 1000
	windowHeight = 600
	plotHeight   = 360
	panelY       = plotHeight + 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Sound Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	rl.InitAudioDevice()
	defer rl.CloseAudioDevice()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seed := int64(1)
	bank := platform.NewSoundBank(8, seed, logger)
	defer bank.Close()

	selected := 0
	volume := float32(0.8)
	loop := false
	var pcm []int16
	ids := make(map[string]game.EffectID)
	stream := game.NoStream

	regenerate := func() {
		name := audio.Builtins[selected]
		var err error
		pcm, err = audio.Synthesize(name, rand.New(rand.NewSource(seed)))
		if err != nil {
			pcm = nil
			return
		}
		if _, ok := ids[name]; !ok {
			if id, err := bank.LoadBuiltin(name); err == nil {
				ids[name] = id
			}
		}
	}
	regenerate()

	for !rl.WindowShouldClose() {
		bank.Update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawWaveform(pcm, 10, 10, windowWidth-20, plotHeight)
		rl.DrawText(fmt.Sprintf("%s: %d samples, %.2f s, seed %d",
			audio.Builtins[selected], len(pcm), float32(len(pcm))/audio.SampleRate, seed),
			10, plotHeight+10, 16, rl.DarkGray)

		// Control panel
		x := float32(10)
		for i, name := range audio.Builtins {
			label := name
			if i == selected {
				label = "> " + name
			}
			if gui.Button(rl.Rectangle{X: x, Y: panelY, Width: 140, Height: 30}, label) {
				selected = i
				regenerate()
			}
			x += 150
		}

		if gui.Button(rl.Rectangle{X: 10, Y: panelY + 50, Width: 140, Height: 30}, "Play") {
			bank.StopStream(stream)
			stream = bank.PlayEffect(ids[audio.Builtins[selected]], volume, loop)
		}
		if gui.Button(rl.Rectangle{X: 160, Y: panelY + 50, Width: 140, Height: 30}, "Stop") {
			bank.StopStream(stream)
			stream = game.NoStream
		}
		if gui.Button(rl.Rectangle{X: 310, Y: panelY + 50, Width: 140, Height: 30}, toggleText(loop, "Loop: ON", "Loop: OFF")) {
			loop = !loop
		}

		rl.DrawText("Volume", 10, panelY+100, 14, rl.Gray)
		volume = gui.SliderBar(
			rl.Rectangle{X: 80, Y: panelY + 98, Width: 300, Height: 20},
			"0", "1",
			volume, 0, 1,
		)

		rl.EndDrawing()
	}
}

// drawWaveform plots min/max per column so long buffers stay readable.
func drawWaveform(pcm []int16, x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, rl.Color{R: 30, G: 30, B: 40, A: 255})
	mid := y + h/2
	rl.DrawLine(x, mid, x+w, mid, rl.Gray)
	if len(pcm) == 0 {
		return
	}

	perCol := max(len(pcm)/int(w), 1)
	scale := float32(h/2) / 32768
	for col := int32(0); col < w; col++ {
		start := int(col) * perCol
		if start >= len(pcm) {
			break
		}
		end := min(start+perCol, len(pcm))
		lo, hi := pcm[start], pcm[start]
		for _, s := range pcm[start:end] {
			lo = min(lo, s)
			hi = max(hi, s)
		}
		rl.DrawLine(x+col, mid-int32(float32(hi)*scale), x+col, mid-int32(float32(lo)*scale), rl.SkyBlue)
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
