// internal/fullscreen/control.go
package fullscreen

import (
	"log/slog"
	"sync"

	"mapframe/internal/dom"
	"mapframe/internal/logging"
)

const (
	classRoot   = "mapframe-ctrl mapframe-ctrl-group"
	classEnter  = "mapframe-ctrl-fullscreen"
	classShrink = "mapframe-ctrl-shrink"
	classIcon   = "mapframe-ctrl-icon"

	labelEnter = "Enter fullscreen"
	labelExit  = "Exit fullscreen"

	unsupportedWarning = "This device does not support fullscreen mode."
)

// Options configures a Control
type Options struct {
	// Source selects the element to make fullscreen. Empty or unmatched
	// selectors fall back to the viewport container.
	Source string `yaml:"source" json:"source"`
}

// Viewport is the map view a control is attached to
type Viewport interface {
	Document() *dom.Document
	Container() *dom.Element
}

// Change is published after every state flip
type Change struct {
	State   State
	Target  *dom.Element
	Variant string
}

// Option customizes New
type Option func(*Control)

// WithLogger sets the logger used for the unsupported warning and ignored requests
func WithLogger(lg *slog.Logger) Option {
	return func(c *Control) {
		c.logger = lg
	}
}

// OnChange registers fn to run after each state flip
func OnChange(fn func(Change)) Option {
	return func(c *Control) {
		c.onChange = append(c.onChange, fn)
	}
}

// Control is the fullscreen toggle button
type Control struct {
	host     Host
	opts     Options
	logger   *slog.Logger
	onChange []func(Change)

	mu       sync.Mutex
	viewport Viewport
	root     *dom.Element
	button   *dom.Element
	target   *dom.Element
	profile  *Profile
	machine  *Machine
	listener *Listener
	event    string
}

// New creates a detached control
func New(host Host, opts Options, options ...Option) *Control {
	c := &Control{
		host:   host,
		opts:   opts,
		logger: logging.Discard(),
	}
	for _, o := range options {
		o(c)
	}
	c.machine = NewMachine(nil)
	return c
}

// OnAttach builds the control for v and returns its root for the caller to mount
func (c *Control) OnAttach(v Viewport) *dom.Element {
	c.OnDetach()

	c.mu.Lock()
	defer c.mu.Unlock()

	doc := v.Document()
	c.viewport = v
	c.target = c.resolveTarget(v)
	c.machine = NewMachine(c.target)
	c.root = doc.Create("div", classRoot, nil)
	c.profile = Resolve(c.host, c.logger)

	if !c.profile.Supported() {
		c.root.SetHidden(true)
		logging.WarnOnce(c.logger, unsupportedWarning)
		return c.root
	}

	c.button = doc.Create("button", classEnter, c.root)
	c.button.SetAttribute("type", "button")
	icon := doc.Create("span", classIcon, c.button)
	icon.SetAttribute("aria-hidden", "true")
	c.updateButton()
	c.button.OnClick(c.handleClick)

	c.listener = &Listener{Handle: c.handleChange}
	c.event = c.profile.Event()
	c.host.AddEventListener(c.event, c.listener)

	c.logger.Debug("fullscreen control attached",
		"variant", c.profile.Name(), "target", c.target.String())
	return c.root
}

// OnDetach unmounts the control and drops its subscription. It is safe to
// call at any time, including without a prior attach.
func (c *Control) OnDetach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root != nil {
		c.root.Remove()
	}
	if c.listener != nil && c.host != nil {
		c.host.RemoveEventListener(c.event, c.listener)
	}
	c.viewport = nil
	c.root = nil
	c.button = nil
	c.target = nil
	c.profile = nil
	c.listener = nil
	c.event = ""
}

// resolveTarget returns the Source match, else the viewport container
func (c *Control) resolveTarget(v Viewport) *dom.Element {
	if c.opts.Source != "" {
		if el := v.Document().QuerySelector(c.opts.Source); el != nil {
			return el
		}
	}
	return v.Container()
}

// Click behaves like a user pressing the button
func (c *Control) Click() {
	c.mu.Lock()
	btn := c.button
	c.mu.Unlock()

	if btn != nil {
		btn.Click()
	}
}

func (c *Control) handleClick() {
	c.mu.Lock()
	profile, target := c.profile, c.target
	fullscreen := c.machine.IsFullscreen()
	c.mu.Unlock()

	if !profile.Supported() {
		return
	}
	if fullscreen {
		profile.Exit()
	} else {
		profile.Enter(target)
	}
}

// handleChange runs on every change notification from the host
func (c *Control) handleChange() {
	c.mu.Lock()
	if c.profile == nil {
		c.mu.Unlock()
		return
	}
	if !c.machine.Sync(c.profile.Current()) {
		c.mu.Unlock()
		return
	}
	c.updateButton()
	change := Change{
		State:   c.machine.State(),
		Target:  c.target,
		Variant: c.profile.Name(),
	}
	c.mu.Unlock()

	c.logger.Info("fullscreen state changed", "state", change.State.String(), "variant", change.Variant)
	for _, fn := range c.onChange {
		fn(change)
	}
}

// updateButton must be called with mu held
func (c *Control) updateButton() {
	if c.button == nil {
		return
	}
	label := labelEnter
	if c.machine.IsFullscreen() {
		label = labelExit
		c.button.RemoveClass(classEnter)
		c.button.AddClass(classShrink)
	} else {
		c.button.RemoveClass(classShrink)
		c.button.AddClass(classEnter)
	}
	c.button.SetAttribute("title", label)
	c.button.SetAttribute("aria-label", label)
}

// State returns the current fullscreen state
func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.State()
}

// Target returns the element this attach cycle toggles, or nil when detached
func (c *Control) Target() *dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Button returns the toggle button, or nil when detached or unsupported
func (c *Control) Button() *dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.button
}

// Root returns the mounted container, or nil when detached
func (c *Control) Root() *dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root
}

// Variant returns the resolved capability variant name, "" when unsupported
func (c *Control) Variant() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Name()
}
