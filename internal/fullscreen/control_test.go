package fullscreen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapframe/internal/dom"
)

// fakeHost simulates a page: flags are fixed, requests are recorded, and the
// test decides when change events fire and what the current element is.
type fakeHost struct {
	flags     map[string]bool
	calls     []call
	current   map[string]*dom.Element
	listeners map[string][]*Listener
	removed   int
}

type call struct {
	method string
	target *dom.Element
}

func newFakeHost(flags ...string) *fakeHost {
	h := &fakeHost{
		flags:     make(map[string]bool),
		current:   make(map[string]*dom.Element),
		listeners: make(map[string][]*Listener),
	}
	for _, f := range flags {
		h.flags[f] = true
	}
	return h
}

func (h *fakeHost) Enabled(flag string) bool { return h.flags[flag] }

func (h *fakeHost) Invoke(method string, target *dom.Element) error {
	h.calls = append(h.calls, call{method, target})
	return nil
}

func (h *fakeHost) Element(property string) *dom.Element { return h.current[property] }

func (h *fakeHost) AddEventListener(event string, l *Listener) {
	h.listeners[event] = append(h.listeners[event], l)
}

func (h *fakeHost) RemoveEventListener(event string, l *Listener) {
	ls := h.listeners[event]
	for i, x := range ls {
		if x == l {
			h.listeners[event] = append(ls[:i], ls[i+1:]...)
			h.removed++
			return
		}
	}
}

// fire sets the current element for v and dispatches v's change event
func (h *fakeHost) fire(v Variant, current *dom.Element) {
	h.current[v.Element] = current
	for _, l := range append([]*Listener{}, h.listeners[v.Event]...) {
		l.Handle()
	}
}

func (h *fakeHost) listenerCount() int {
	n := 0
	for _, ls := range h.listeners {
		n += len(ls)
	}
	return n
}

type testViewport struct {
	doc       *dom.Document
	container *dom.Element
}

func newTestViewport() *testViewport {
	doc := dom.NewDocument()
	c := doc.Create("div", "map", doc.Body())
	c.SetAttribute("id", "map")
	return &testViewport{doc: doc, container: c}
}

func (v *testViewport) Document() *dom.Document { return v.doc }
func (v *testViewport) Container() *dom.Element { return v.container }

func TestControl_StandardScenario(t *testing.T) {
	host := newFakeHost("fullscreenEnabled")
	vp := newTestViewport()

	var changes []Change
	c := New(host, Options{}, OnChange(func(ch Change) { changes = append(changes, ch) }))
	root := c.OnAttach(vp)
	require.NotNil(t, root)
	assert.False(t, root.Hidden())
	assert.Equal(t, "standard", c.Variant())
	assert.Same(t, vp.container, c.Target())

	btn := c.Button()
	require.NotNil(t, btn)
	assert.Equal(t, "button", btn.Attribute("type"))
	assert.Equal(t, labelEnter, btn.Attribute("aria-label"))
	assert.True(t, btn.HasClass(classEnter))

	std := Variants[0]

	c.Click()
	require.Len(t, host.calls, 1)
	assert.Equal(t, call{"requestFullscreen", vp.container}, host.calls[0])
	assert.Equal(t, Windowed, c.State(), "state must not change before the host reports it")

	host.fire(std, vp.container)
	assert.Equal(t, Fullscreen, c.State())
	assert.True(t, btn.HasClass(classShrink))
	assert.False(t, btn.HasClass(classEnter))
	assert.Equal(t, labelExit, btn.Attribute("title"))

	c.Click()
	require.Len(t, host.calls, 2)
	assert.Equal(t, call{"exitFullscreen", nil}, host.calls[1])

	host.fire(std, nil)
	assert.Equal(t, Windowed, c.State())
	assert.True(t, btn.HasClass(classEnter))
	assert.False(t, btn.HasClass(classShrink))

	require.Len(t, changes, 2)
	assert.Equal(t, Fullscreen, changes[0].State)
	assert.Equal(t, Windowed, changes[1].State)
	assert.Equal(t, "standard", changes[1].Variant)
}

func TestControl_VendorVariantRouting(t *testing.T) {
	host := newFakeHost("msFullscreenEnabled")
	vp := newTestViewport()

	c := New(host, Options{Source: "body"})
	c.OnAttach(vp)

	ms := Variants[3]
	assert.Equal(t, "ms", c.Variant())
	assert.Same(t, vp.doc.Body(), c.Target())
	assert.Len(t, host.listeners[ms.Event], 1)

	c.Click()
	host.fire(ms, vp.doc.Body())
	c.Click()
	host.fire(ms, nil)

	require.Len(t, host.calls, 2)
	assert.Equal(t, "msRequestFullscreen", host.calls[0].method)
	assert.Same(t, vp.doc.Body(), host.calls[0].target)
	assert.Equal(t, "msExitFullscreen", host.calls[1].method)
	assert.Equal(t, Windowed, c.State())
}

func TestControl_IdempotentChange(t *testing.T) {
	host := newFakeHost("webkitFullscreenEnabled")
	vp := newTestViewport()

	flips := 0
	c := New(host, Options{}, OnChange(func(Change) { flips++ }))
	c.OnAttach(vp)
	wk := Variants[1]

	host.fire(wk, vp.container)
	classes := c.Button().Classes()
	host.fire(wk, vp.container)

	assert.Equal(t, Fullscreen, c.State())
	assert.Equal(t, classes, c.Button().Classes())
	assert.Equal(t, 1, flips)
}

func TestControl_ExternalExitAndForeignElement(t *testing.T) {
	host := newFakeHost("fullscreenEnabled")
	vp := newTestViewport()
	other := vp.doc.Create("div", "legend", vp.doc.Body())

	c := New(host, Options{})
	c.OnAttach(vp)
	std := Variants[0]

	steps := []*dom.Element{vp.container, nil, other, vp.container, other, nil}
	for _, cur := range steps {
		host.fire(std, cur)
		assert.Equal(t, cur == vp.container, c.State() == Fullscreen)
	}
}

func TestControl_MissingSourceFallsBack(t *testing.T) {
	host := newFakeHost("fullscreenEnabled")
	vp := newTestViewport()

	c := New(host, Options{Source: "#missing"})
	c.OnAttach(vp)

	assert.Same(t, vp.container, c.Target())
}

func TestControl_Unsupported(t *testing.T) {
	host := newFakeHost()
	vp := newTestViewport()

	c := New(host, Options{})
	root := c.OnAttach(vp)

	require.NotNil(t, root)
	assert.True(t, root.Hidden())
	assert.Nil(t, c.Button())
	assert.Equal(t, "", c.Variant())
	assert.Zero(t, host.listenerCount())

	c.Click()
	assert.Empty(t, host.calls)

	assert.NotPanics(t, c.OnDetach)
	assert.Zero(t, host.removed)
}

func TestControl_DetachRemovesExactListener(t *testing.T) {
	host := newFakeHost("mozFullScreenEnabled")
	vp := newTestViewport()

	c := New(host, Options{})
	root := c.OnAttach(vp)
	vp.container.AppendChild(root)
	require.Equal(t, 1, host.listenerCount())

	c.OnDetach()
	assert.Equal(t, 1, host.removed)
	assert.Zero(t, host.listenerCount())
	assert.Nil(t, root.Parent())
	assert.Nil(t, c.Target())

	// a late notification after detach is never observed
	host.fire(Variants[2], vp.container)
	assert.Equal(t, Windowed, c.State())

	assert.NotPanics(t, c.OnDetach)
	assert.Equal(t, 1, host.removed)
}

func TestControl_DetachWithoutAttach(t *testing.T) {
	host := newFakeHost("fullscreenEnabled")
	c := New(host, Options{})

	assert.NotPanics(t, c.OnDetach)
	assert.NotPanics(t, c.Click)
	assert.Zero(t, host.removed)
}

func TestControl_ReattachStartsWindowed(t *testing.T) {
	host := newFakeHost("fullscreenEnabled")
	vp := newTestViewport()

	c := New(host, Options{})
	c.OnAttach(vp)
	host.fire(Variants[0], vp.container)
	require.Equal(t, Fullscreen, c.State())

	c.OnDetach()
	host.current = map[string]*dom.Element{}
	c.OnAttach(vp)
	assert.Equal(t, Windowed, c.State())
	assert.Equal(t, 1, host.listenerCount())
}
