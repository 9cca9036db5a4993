package fullscreen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"mapframe/internal/dom"
)

func TestResolve_SupportedIffAnyFlag(t *testing.T) {
	flags := []string{}
	for _, v := range Variants {
		flags = append(flags, v.Flag)
	}

	// every subset of the four flags
	for mask := 0; mask < 1<<len(flags); mask++ {
		var set []string
		for i, f := range flags {
			if mask&(1<<i) != 0 {
				set = append(set, f)
			}
		}
		p := Resolve(newFakeHost(set...), nil)
		assert.Equal(t, len(set) > 0, p.Supported(), "flags %v", set)
	}
}

func TestResolve_Priority(t *testing.T) {
	p := Resolve(newFakeHost("mozFullScreenEnabled", "webkitFullscreenEnabled"), nil)
	assert.Equal(t, "webkit", p.Name())
	assert.Equal(t, "webkitfullscreenchange", p.Event())

	p = Resolve(newFakeHost("msFullscreenEnabled", "fullscreenEnabled"), nil)
	assert.Equal(t, "standard", p.Name())
}

func TestResolve_NilHost(t *testing.T) {
	p := Resolve(nil, nil)
	assert.False(t, p.Supported())
	assert.False(t, p.Enter(nil))
	assert.False(t, p.Exit())
	assert.Nil(t, p.Current())
	assert.Equal(t, "", p.Event())
}

func TestProfile_ResolvedOnce(t *testing.T) {
	h := newFakeHost("fullscreenEnabled")
	p := Resolve(h, nil)

	delete(h.flags, "fullscreenEnabled")
	h.flags["msFullscreenEnabled"] = true

	assert.Equal(t, "standard", p.Name())
	assert.True(t, p.Exit())
	assert.Equal(t, "exitFullscreen", h.calls[0].method)
}

type failingHost struct{ *fakeHost }

func (failingHost) Invoke(string, *dom.Element) error { return errors.New("not allowed") }

func TestProfile_HostErrorDeclines(t *testing.T) {
	doc := dom.NewDocument()
	p := Resolve(failingHost{newFakeHost("fullscreenEnabled")}, nil)

	assert.NotPanics(t, func() {
		assert.False(t, p.Enter(doc.Body()))
		assert.False(t, p.Exit())
	})
}

func TestProfile_MissingMethodDeclines(t *testing.T) {
	h := newFakeHost("fullscreenEnabled")
	p := Resolve(h, nil)
	p.variant.Request = ""

	assert.False(t, p.Enter(dom.NewDocument().Body()))
	assert.Empty(t, h.calls)
}

func TestMachine_Sync(t *testing.T) {
	doc := dom.NewDocument()
	target := doc.Body()
	m := NewMachine(target)

	assert.Equal(t, Windowed, m.State())
	assert.False(t, m.Sync(nil))
	assert.True(t, m.Sync(target))
	assert.False(t, m.Sync(target))
	assert.Equal(t, "fullscreen", m.State().String())
	assert.True(t, m.Sync(doc.Create("div", "", nil)))
	assert.Equal(t, Windowed, m.State())
}
