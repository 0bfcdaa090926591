package engine

import (
	"github.com/spaghettifunk/kinema/engine/overlay"
	"github.com/spaghettifunk/kinema/engine/video"
)

// Player is the application side of the engine: it supplies decoded
// frames and augments the HUD, the engine drives the window and the
// renderer.
type Player struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnNextFrame       NextFrame
	FnOverlay         Overlay
	FnOnResize        OnResize
}

type Initialize func() error

// NextFrame returns the next decoded frame to present, or nil when no
// new frame is due yet.
type NextFrame func(deltaTime float64) (*video.Frame, error)

// Overlay lets the player add to the HUD the engine already composes.
type Overlay func(b *overlay.Builder) error

type OnResize func(width uint32, height uint32) error

type Shutdown func() error
