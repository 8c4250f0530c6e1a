package platform

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/balloonwar/config"
	"github.com/pthm-cable/balloonwar/game"
)

// LogHaptics stands in for a vibration motor by logging each pulse.
type LogHaptics struct {
	Logger *slog.Logger
}

// Vibrate logs the pulse at debug level.
func (h LogHaptics) Vibrate(d time.Duration, intensity uint8) {
	h.Logger.Debug("vibrate", "ms", d.Milliseconds(), "intensity", intensity)
}

// Desktop offers the device features a desktop window has. There is no
// camera and no app pinning; sound picks come from the configured paths.
type Desktop struct {
	audio  config.AudioConfig
	logger *slog.Logger
}

// NewDesktop creates the desktop platform.
func NewDesktop(cfg *config.Config, logger *slog.Logger) *Desktop {
	return &Desktop{audio: cfg.Audio, logger: logger}
}

// ToggleCamera fails when asked to turn the camera on. Turning it off
// always succeeds.
func (d *Desktop) ToggleCamera(on bool) error {
	if !on {
		return nil
	}
	return fmt.Errorf("camera preview: %w", game.ErrUnavailable)
}

// PinApp always fails: a desktop window cannot lock the device.
func (d *Desktop) PinApp() error {
	return fmt.Errorf("pinning app: %w", game.ErrUnavailable)
}

// PickSound returns the configured file for the slot.
func (d *Desktop) PickSound(slot game.SoundSlot) (string, error) {
	path := d.audio.CustomPop
	if slot == game.SlotFart {
		path = d.audio.CustomFart
	}
	if path == "" {
		return "", fmt.Errorf("no %s sound configured: %w", slot, game.ErrUnavailable)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("checking %s sound: %w", slot, err)
	}
	d.logger.Info("sound_picked", "slot", slot.String(), "path", path)
	return path, nil
}
