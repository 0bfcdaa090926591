// Package config loads the player configuration from a TOML file and
// can watch it for edits while the player runs.
package config

import (
	"os"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/kinema/engine/core"
)

type WindowConfig struct {
	Title  string `toml:"title"`
	X      uint32 `toml:"x"`
	Y      uint32 `toml:"y"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type RendererConfig struct {
	VSync          bool `toml:"vsync"`
	GLDebug        bool `toml:"gl_debug"`
	OverlayEnabled bool `toml:"overlay_enabled"`
	FrameQueueSize int  `toml:"frame_queue_size"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Logging  LoggingConfig  `toml:"logging"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "kinema",
			X:      40,
			Y:      40,
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			VSync:          true,
			OverlayEnabled: true,
			FrameQueueSize: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error;
// the defaults are returned and the fact logged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogInfo("config: %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watcher re-reads the config file when it changes on disk.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	done     chan struct{}
}

// Watch invokes onChange with the freshly loaded config after every
// write to path. Decode errors keep the previous config and are only
// logged; a half-saved file must not kill playback.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(path); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}

	go func() {
		for {
			select {
			case event, ok := <-fsWatch.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					core.LogWarn("config: reload of %s failed: %v", path, err)
					continue
				}
				core.LogInfo("config: reloaded %s", path)
				onChange(cfg)
			case err, ok := <-fsWatch.Errors:
				if !ok {
					return
				}
				core.LogWarn("config: watcher error: %v", err)
			case <-w.done:
				return
			}
		}
	}()

	return w, nil
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsnotify.Close()
}
