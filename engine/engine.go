package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/kinema/engine/config"
	"github.com/spaghettifunk/kinema/engine/core"
	"github.com/spaghettifunk/kinema/engine/overlay"
	"github.com/spaghettifunk/kinema/engine/platform"
	"github.com/spaghettifunk/kinema/engine/renderer"
	"github.com/spaghettifunk/kinema/engine/renderer/gl"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	player       *Player
	isRunning    bool

	platform *platform.Platform
	renderer *renderer.Renderer
	cfg      atomic.Pointer[config.Config]
	watcher  *config.Watcher

	clock    *core.Clock
	lastTime float64
}

func New(p *Player) (*Engine, error) {
	if p == nil || p.ApplicationConfig == nil {
		return nil, fmt.Errorf("engine requires a player with an application config")
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		player:       p,
		clock:        core.NewClock(),
	}, nil
}

// Initialize brings up config, window, GL context and renderer, in that
// order. The GL context must end up current on the calling thread.
func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	app := e.player.ApplicationConfig

	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	e.cfg.Store(cfg)
	core.SetLogLevel(cfg.Logging.Level)

	if app.ConfigPath != "" {
		w, err := config.Watch(app.ConfigPath, func(next *config.Config) {
			e.cfg.Store(next)
			core.SetLogLevel(next.Logging.Level)
		})
		if err != nil {
			core.LogWarn("engine: config watch disabled: %v", err)
		} else {
			e.watcher = w
		}
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	p, err := platform.New()
	if err != nil {
		return err
	}
	e.platform = p

	width := app.StartWidth
	height := app.StartHeight
	if width == 0 || height == 0 {
		width, height = cfg.Window.Width, cfg.Window.Height
	}
	if err := p.Startup(app.Name, app.StartPosX, app.StartPosY, width, height,
		cfg.Renderer.VSync); err != nil {
		return err
	}

	g, err := gl.NewOpenGL()
	if err != nil {
		return err
	}
	fbW, fbH := p.FramebufferSize()
	r, err := renderer.New(g, fbW, fbH, cfg.Renderer.FrameQueueSize, cfg.Renderer.GLDebug)
	if err != nil {
		return err
	}
	e.renderer = r
	p.SetResizeHandler(func(w, h uint32) {
		r.Resized(w, h)
		if e.player.FnOnResize != nil {
			if err := e.player.FnOnResize(w, h); err != nil {
				core.LogWarn("engine: resize handler: %v", err)
			}
		}
	})

	if e.player.FnInitialize != nil {
		if err := e.player.FnInitialize(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until the window closes or Shutdown is
// called.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning = true
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning && !e.platform.ShouldClose() {
		e.platform.PumpMessages()

		e.clock.Update()
		now := e.clock.Elapsed()
		delta := now - e.lastTime
		e.lastTime = now

		if err := e.frame(delta); err != nil {
			return err
		}

		e.platform.SwapBuffers()
		core.MetricsUpdate(delta)
	}

	e.isRunning = false
	return nil
}

func (e *Engine) frame(delta float64) error {
	if e.player.FnNextFrame != nil {
		frame, err := e.player.FnNextFrame(delta)
		if err != nil {
			return err
		}
		if frame != nil {
			if err := e.renderer.QueueFrame(frame); err != nil {
				core.LogVerbose("engine: frame dropped: %v", err)
			}
		}
	}

	var dd *overlay.DrawData
	if e.cfg.Load().Renderer.OverlayEnabled {
		b := e.renderer.OverlayBuilder()
		e.composeHUD(b)
		if e.player.FnOverlay != nil {
			if err := e.player.FnOverlay(b); err != nil {
				core.LogWarn("engine: overlay callback: %v", err)
			}
		}
		dd = b.Build()
	}

	return e.renderer.DrawFrame(dd)
}

func (e *Engine) composeHUD(b *overlay.Builder) {
	fps, frameMS := core.MetricsFrame()
	uploaded, dropped := core.MetricsCounters()

	b.AddRect(8, 8, 240, 60, [4]uint8{0, 0, 0, 160})
	white := [4]uint8{255, 255, 255, 255}
	b.AddText(14, 12, white, fmt.Sprintf("fps: %.0f  frame: %.2f ms", fps, frameMS))
	b.AddText(14, 28, white, fmt.Sprintf("frames: %d up, %d dropped", uploaded, dropped))
}

// Shutdown stops the loop and tears everything down in reverse
// initialization order.
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.watcher != nil {
		e.watcher.Close()
	}
	if e.renderer != nil {
		e.renderer.Shutdown()
	}
	if e.platform != nil {
		return e.platform.Shutdown()
	}
	return nil
}
