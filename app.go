// app.go
package main

import (
	"context"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"mapframe/internal/config"
	"mapframe/internal/eventhub"
	"mapframe/internal/fullscreen"
	"mapframe/internal/logging"
	"mapframe/internal/watcher"
)

// App struct contains the core application state
type App struct {
	ctx      context.Context
	desktop  bool
	mu       sync.RWMutex
	config   *config.Config
	settings config.Settings
	logger   *logging.Logger

	eventHub *eventhub.EventHub
	view     *mapView
	host     fullscreen.Host
	control  *fullscreen.Control
	watcher  *watcher.Watcher
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts (Wails callback)
func (a *App) startup(ctx context.Context) {
	a.desktop = true
	cfg, err := config.Load()
	if err != nil {
		runtime.LogError(ctx, "Failed to load config: "+err.Error())
		return
	}
	a.startupWith(ctx, cfg)

	a.eventHub.SetBroadcaster(&wailsEventEmitter{ctx: ctx})
	a.attachFullscreen(newWindowHost(ctx))
}

// Startup is the exported version for standalone server. The caller attaches
// a fullscreen host once the page has connected.
func (a *App) Startup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.startupWith(ctx, cfg)
	return nil
}

// startupWith contains the common startup logic
func (a *App) startupWith(ctx context.Context, cfg *config.Config) {
	a.ctx = ctx
	a.config = cfg

	settings, err := cfg.LoadSettings()
	a.settings = settings
	a.logger = logging.New(settings.Log.Level, cfg.LogDir)
	if err != nil {
		a.logError("Failed to load settings, using defaults", err)
	}

	a.eventHub = eventhub.New(ctx)
	a.view = newMapView(settings.Viewport.Container)

	w, err := watcher.New(cfg.SettingsPath, 200*time.Millisecond, a.onSettingsChanged)
	if err != nil {
		a.logError("Failed to watch settings", err)
	} else if err := w.Start(); err != nil {
		a.logError("Failed to start settings watcher", err)
		w.Close()
	} else {
		a.watcher = w
	}

	a.logInfo("mapframe started successfully")
}

// shutdown is called when the app is shutting down (Wails callback)
func (a *App) shutdown(ctx context.Context) {
	a.Shutdown(ctx)
}

// Shutdown detaches the control and stops the settings watcher
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Close()
	}

	a.mu.Lock()
	if a.control != nil {
		a.control.OnDetach()
		a.control = nil
	}
	a.mu.Unlock()

	a.logInfo("mapframe shutdown complete")
}

// attachFullscreen attaches the fullscreen control to the map using host
func (a *App) attachFullscreen(host fullscreen.Host) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.host = host
	a.attachControlLocked()
}

// attachControlLocked (re)builds the control from the current settings. mu must be held.
func (a *App) attachControlLocked() {
	if a.control != nil {
		a.control.OnDetach()
	}

	a.control = fullscreen.New(a.host, a.settings.Fullscreen,
		fullscreen.WithLogger(a.logger.Logger),
		fullscreen.OnChange(a.publishChange),
	)
	a.view.mount(a.control.OnAttach(a.view))

	a.eventHub.EmitFullscreenAvailability(eventhub.FullscreenAvailabilityEvent{
		Supported: a.control.Variant() != "",
		Variant:   a.control.Variant(),
	})
}

func (a *App) publishChange(ch fullscreen.Change) {
	label := "Enter fullscreen"
	if ch.State == fullscreen.Fullscreen {
		label = "Exit fullscreen"
	}
	target := ""
	if ch.Target != nil {
		target = ch.Target.String()
	}
	a.eventHub.EmitFullscreenChanged(eventhub.FullscreenChangedEvent{
		Fullscreen: ch.State == fullscreen.Fullscreen,
		Target:     target,
		Variant:    ch.Variant,
		Label:      label,
	})
}

// onSettingsChanged re-targets the control when the fullscreen source changes.
// The new target takes effect as a fresh attach cycle.
func (a *App) onSettingsChanged(path string) {
	settings, err := config.ReadSettings(path)
	if err != nil {
		a.logError("Ignoring invalid settings", err)
		return
	}

	a.mu.Lock()
	changed := settings.Fullscreen != a.settings.Fullscreen
	a.settings.Fullscreen = settings.Fullscreen
	if changed && a.host != nil {
		a.attachControlLocked()
	}
	a.mu.Unlock()

	if changed {
		a.logger.Info("fullscreen source changed", "source", settings.Fullscreen.Source)
	}
	a.eventHub.EmitConfigReloaded(path)
}

func (a *App) logInfo(msg string) {
	if a.logger != nil {
		a.logger.Info(msg)
	}
	if a.desktop {
		runtime.LogInfo(a.ctx, msg)
	}
}

func (a *App) logError(msg string, err error) {
	if a.logger != nil {
		a.logger.Error(msg, "error", err)
	}
	if a.desktop {
		runtime.LogError(a.ctx, msg+": "+err.Error())
	}
}

// wailsEventEmitter adapts Wails runtime events to eventhub.Broadcaster
type wailsEventEmitter struct {
	ctx context.Context
}

func (e *wailsEventEmitter) BroadcastEvent(eventName string, data interface{}) {
	runtime.EventsEmit(e.ctx, eventName, data)
}

// SetEventHubBroadcaster 设置 EventHub 的广播器（用于 WebSocket 模式）
func (a *App) SetEventHubBroadcaster(broadcaster eventhub.Broadcaster) {
	if a.eventHub != nil {
		a.eventHub.SetBroadcaster(broadcaster)
	}
}
