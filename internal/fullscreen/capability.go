// internal/fullscreen/capability.go
package fullscreen

import (
	"errors"
	"log/slog"

	"mapframe/internal/dom"
)

// ErrUnsupported is returned by a Host asked to run a method it does not have
var ErrUnsupported = errors.New("fullscreen: method not supported by host")

// Listener is a change-notification handler. Hosts identify registrations by
// pointer, so removal must pass the same *Listener that was added.
type Listener struct {
	Handle func()
}

// Host is the environment the control runs in: a desktop window, a browser
// page on the other end of a socket, or a fake in tests.
type Host interface {
	// Enabled reports a capability flag such as "fullscreenEnabled"
	Enabled(flag string) bool
	// Invoke runs a request/exit method. target is nil for exit methods.
	Invoke(method string, target *dom.Element) error
	// Element reads a current-fullscreen-element property
	Element(property string) *dom.Element
	AddEventListener(event string, l *Listener)
	RemoveEventListener(event string, l *Listener)
}

// Variant is one family of fullscreen names a host may expose
type Variant struct {
	Name    string
	Flag    string
	Request string
	Exit    string
	Element string
	Event   string
}

// Variants in resolution priority order
var Variants = []Variant{
	{
		Name:    "standard",
		Flag:    "fullscreenEnabled",
		Request: "requestFullscreen",
		Exit:    "exitFullscreen",
		Element: "fullscreenElement",
		Event:   "fullscreenchange",
	},
	{
		Name:    "webkit",
		Flag:    "webkitFullscreenEnabled",
		Request: "webkitRequestFullscreen",
		Exit:    "webkitExitFullscreen",
		Element: "webkitFullscreenElement",
		Event:   "webkitfullscreenchange",
	},
	{
		Name:    "moz",
		Flag:    "mozFullScreenEnabled",
		Request: "mozRequestFullScreen",
		Exit:    "mozCancelFullScreen",
		Element: "mozFullScreenElement",
		Event:   "mozfullscreenchange",
	},
	{
		Name:    "ms",
		Flag:    "msFullscreenEnabled",
		Request: "msRequestFullscreen",
		Exit:    "msExitFullscreen",
		Element: "msFullscreenElement",
		Event:   "MSFullscreenChange",
	},
}

// Profile is the resolved, immutable view of a host's fullscreen support
type Profile struct {
	host    Host
	variant *Variant
	logger  *slog.Logger
}

// Resolve probes host once and picks the first enabled variant
func Resolve(host Host, logger *slog.Logger) *Profile {
	p := &Profile{host: host, logger: logger}
	if host == nil {
		return p
	}
	for i := range Variants {
		if host.Enabled(Variants[i].Flag) {
			v := Variants[i]
			p.variant = &v
			break
		}
	}
	return p
}

// Supported reports whether resolution found a variant
func (p *Profile) Supported() bool {
	return p != nil && p.variant != nil
}

// Name returns the variant name, or "" when unsupported
func (p *Profile) Name() string {
	if !p.Supported() {
		return ""
	}
	return p.variant.Name
}

// Event returns the change-notification event name, or "" when unsupported
func (p *Profile) Event() string {
	if !p.Supported() {
		return ""
	}
	return p.variant.Event
}

// Enter asks the host to make target fullscreen. The outcome is only visible
// through the change event; the return value says whether a request was sent.
func (p *Profile) Enter(target *dom.Element) bool {
	if !p.Supported() || p.variant.Request == "" || target == nil {
		return false
	}
	return p.invoke(p.variant.Request, target)
}

// Exit asks the host to leave fullscreen, whatever element is current
func (p *Profile) Exit() bool {
	if !p.Supported() || p.variant.Exit == "" {
		return false
	}
	return p.invoke(p.variant.Exit, nil)
}

// Current returns the element the host considers fullscreen, or nil
func (p *Profile) Current() *dom.Element {
	if !p.Supported() || p.variant.Element == "" {
		return nil
	}
	return p.host.Element(p.variant.Element)
}

func (p *Profile) invoke(method string, target *dom.Element) bool {
	if err := p.host.Invoke(method, target); err != nil {
		if p.logger != nil {
			p.logger.Debug("fullscreen request ignored", "method", method, "error", err)
		}
		return false
	}
	return true
}
