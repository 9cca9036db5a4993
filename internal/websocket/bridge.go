// internal/websocket/bridge.go
package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"mapframe/internal/dom"
	"mapframe/internal/fullscreen"
)

// ErrNoPage is returned when no page has said hello yet, or it went away
var ErrNoPage = errors.New("no page connected")

// Bridge 把浏览器页面当作 fullscreen.Host：
// 能力标志来自页面的 hello，命令通过 WebSocket 下发，页面上报的全屏事件再分发给监听器。
type Bridge struct {
	doc    *dom.Document
	logger *slog.Logger

	mu        sync.Mutex
	client    *Client
	flags     map[string]bool
	current   map[string]*dom.Element
	listeners map[string][]*fullscreen.Listener
	ready     chan struct{}
	once      sync.Once
}

// NewBridge creates a bridge resolving element selectors against doc.
// A nil logger falls back to slog.Default().
func NewBridge(doc *dom.Document, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		doc:       doc,
		logger:    logger,
		current:   make(map[string]*dom.Element),
		listeners: make(map[string][]*fullscreen.Listener),
		ready:     make(chan struct{}),
	}
}

// Ready is closed once the first page has reported its capabilities
func (b *Bridge) Ready() <-chan struct{} {
	return b.ready
}

// Enabled implements fullscreen.Host. Flags are fixed by the first hello.
func (b *Bridge) Enabled(flag string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flags[flag]
}

// Invoke implements fullscreen.Host
func (b *Bridge) Invoke(method string, target *dom.Element) error {
	if !knownMethod(method) {
		return fmt.Errorf("%w: %s", fullscreen.ErrUnsupported, method)
	}

	b.mu.Lock()
	client := b.client
	b.mu.Unlock()

	if client == nil {
		return ErrNoPage
	}
	sel := ""
	if target != nil {
		sel = selectorFor(target)
		if sel == "" {
			return fmt.Errorf("element %s has no addressable selector", target)
		}
	}
	return client.SendCommand(method, sel)
}

// Element implements fullscreen.Host
func (b *Bridge) Element(property string) *dom.Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current[property]
}

// AddEventListener implements fullscreen.Host
func (b *Bridge) AddEventListener(event string, l *fullscreen.Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[event] = append(b.listeners[event], l)
}

// RemoveEventListener implements fullscreen.Host; unknown listeners are ignored
func (b *Bridge) RemoveEventListener(event string, l *fullscreen.Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ls := b.listeners[event]
	for i, x := range ls {
		if x == l {
			b.listeners[event] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// handleHello binds the first page to the bridge
func (b *Bridge) handleHello(client *Client, hello *Hello) {
	b.mu.Lock()
	if b.client != nil {
		b.mu.Unlock()
		b.logger.Warn("ignoring hello, bridge already bound", "client", client.ID, "bound", b.client.ID)
		return
	}
	b.client = client
	if b.flags == nil {
		b.flags = make(map[string]bool, len(hello.Capabilities))
		for k, v := range hello.Capabilities {
			b.flags[k] = v
		}
	}
	for prop, sel := range hello.Elements {
		b.current[prop] = b.resolve(sel)
	}
	b.mu.Unlock()

	b.once.Do(func() { close(b.ready) })
}

// handleEvent records the page's current element and notifies listeners in
// arrival order. It runs on the client's read goroutine.
func (b *Bridge) handleEvent(client *Client, ev *WSEvent) {
	v, ok := variantForEvent(ev.Type)
	if !ok {
		return
	}

	var p ElementPayload
	if len(ev.Raw) > 0 {
		if err := json.Unmarshal(ev.Raw, &p); err != nil {
			b.logger.Warn("invalid fullscreen event payload", "event", ev.Type, "error", err)
			return
		}
	}

	b.mu.Lock()
	if b.client != client {
		b.mu.Unlock()
		return
	}
	b.current[v.Element] = b.resolve(p.Element)
	ls := append([]*fullscreen.Listener(nil), b.listeners[ev.Type]...)
	b.mu.Unlock()

	for _, l := range ls {
		l.Handle()
	}
}

// disconnect unbinds client. A later page may say hello again but the
// capability flags stay as first reported.
func (b *Bridge) disconnect(client *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.client == client {
		b.client = nil
	}
}

// resolve maps a page selector back to the shared document. Only the forms
// selectorFor produces are accepted; anything else (an anonymous element on
// the page) resolves to nil so it can never equal a control's target.
func (b *Bridge) resolve(sel string) *dom.Element {
	switch {
	case sel == "":
		return nil
	case sel == "html" || sel == "body":
		return b.doc.QuerySelector(sel)
	case strings.HasPrefix(sel, "#") && len(sel) > 1:
		return b.doc.GetElementByID(sel[1:])
	}
	b.logger.Debug("page element has no shared selector", "selector", sel)
	return nil
}

func variantForEvent(event string) (fullscreen.Variant, bool) {
	for _, v := range fullscreen.Variants {
		if v.Event == event {
			return v, true
		}
	}
	return fullscreen.Variant{}, false
}

func knownMethod(method string) bool {
	for _, v := range fullscreen.Variants {
		if method == v.Request || method == v.Exit {
			return true
		}
	}
	return false
}

// selectorFor addresses e on the page: by id, else by tag for the singletons
func selectorFor(e *dom.Element) string {
	if id := e.ID(); id != "" {
		return "#" + id
	}
	switch e.Tag() {
	case "html", "body":
		return e.Tag()
	}
	return ""
}
