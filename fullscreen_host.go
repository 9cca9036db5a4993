package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"mapframe/internal/dom"
	"mapframe/internal/fullscreen"
)

// windowHost is the desktop fullscreen.Host. The webview window is the only
// thing that can actually go fullscreen, so it offers just the standard
// names and reports the requested target as current while the window is
// fullscreen.
//
// Change notifications are Wails events named "fullscreenchange". The
// frontend emits one on every window resize (which covers Escape and the
// green traffic light), and the host emits one after each request.
//
// requested is cleared when exit is requested, so a control attached while
// the window is already fullscreen starts Windowed and its first click
// adopts the window (enter is a no-op on a fullscreen window).
type windowHost struct {
	ctx context.Context

	enter        func(context.Context)
	exit         func(context.Context)
	isFullscreen func(context.Context) bool
	emit         func(context.Context, string)

	mu        sync.Mutex
	requested *dom.Element
	cancels   map[*fullscreen.Listener]func()
}

func newWindowHost(ctx context.Context) *windowHost {
	return &windowHost{
		ctx:          ctx,
		enter:        enterWindowFullscreen,
		exit:         exitWindowFullscreen,
		isFullscreen: isWindowFullscreen,
		emit: func(ctx context.Context, name string) {
			runtime.EventsEmit(ctx, name)
		},
		cancels: make(map[*fullscreen.Listener]func()),
	}
}

func (h *windowHost) Enabled(flag string) bool {
	return h.ctx != nil && flag == "fullscreenEnabled"
}

func (h *windowHost) Invoke(method string, target *dom.Element) error {
	switch method {
	case "requestFullscreen":
		h.mu.Lock()
		h.requested = target
		h.mu.Unlock()
		h.enter(h.ctx)
	case "exitFullscreen":
		h.mu.Lock()
		h.requested = nil
		h.mu.Unlock()
		h.exit(h.ctx)
	default:
		return fmt.Errorf("%w: %s", fullscreen.ErrUnsupported, method)
	}

	// the window transition is asynchronous; notify on another turn
	go h.emit(h.ctx, "fullscreenchange")
	return nil
}

func (h *windowHost) Element(property string) *dom.Element {
	if property != "fullscreenElement" || !h.isFullscreen(h.ctx) {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.requested
}

func (h *windowHost) AddEventListener(event string, l *fullscreen.Listener) {
	cancel := runtime.EventsOn(h.ctx, event, func(...interface{}) {
		l.Handle()
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancels[l] = cancel
}

func (h *windowHost) RemoveEventListener(event string, l *fullscreen.Listener) {
	h.mu.Lock()
	cancel, ok := h.cancels[l]
	delete(h.cancels, l)
	h.mu.Unlock()

	if ok {
		cancel()
	}
}
