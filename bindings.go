// bindings.go
package main

import (
	"bytes"

	"mapframe/internal/fullscreen"
)

// ===== Fullscreen Bindings =====

// FullscreenInfo is the control state as the frontend sees it
type FullscreenInfo struct {
	Supported  bool   `json:"supported"`
	Fullscreen bool   `json:"fullscreen"`
	Variant    string `json:"variant"`
	Target     string `json:"target"`
	Source     string `json:"source"`
}

// ClickFullscreen presses the fullscreen button. The state changes later,
// when the window or page reports the transition.
func (a *App) ClickFullscreen() {
	a.mu.RLock()
	ctrl := a.control
	a.mu.RUnlock()

	if ctrl != nil {
		ctrl.Click()
	}
}

// FullscreenState returns the control's current state
func (a *App) FullscreenState() FullscreenInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()

	info := FullscreenInfo{Source: a.settings.Fullscreen.Source}
	if a.control == nil {
		return info
	}
	info.Variant = a.control.Variant()
	info.Supported = info.Variant != ""
	info.Fullscreen = a.control.State() == fullscreen.Fullscreen
	if t := a.control.Target(); t != nil {
		info.Target = t.String()
	}
	return info
}

// SetFullscreenSource saves a new source selector. The settings watcher
// picks it up and re-attaches the control.
func (a *App) SetFullscreenSource(source string) error {
	a.mu.RLock()
	settings := a.settings
	cfg := a.config
	a.mu.RUnlock()

	settings.Fullscreen.Source = source
	return cfg.SaveSettings(settings)
}

// ViewportContainer returns the id of the map container. The page adopts it
// so commands addressed to "#<id>" find the same element on both sides.
func (a *App) ViewportContainer() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.view == nil {
		return ""
	}
	return a.view.container.ID()
}

// RenderControls returns the Go-side markup of the map and its controls
func (a *App) RenderControls() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var buf bytes.Buffer
	if err := a.view.doc.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// IsFullscreen returns true if the window is in fullscreen mode
func (a *App) IsFullscreen() bool {
	if !a.desktop {
		return false
	}
	return isWindowFullscreen(a.ctx)
}

// Greet returns a greeting for the given name (keep for testing)
func (a *App) Greet(name string) string {
	return "Hello " + name + ", Welcome to mapframe!"
}
