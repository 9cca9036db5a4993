// internal/dom/dom.go
package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is the Go-side mirror of the page the controls live in.
// Every node has exactly one *Element wrapper, so two *Element values
// are equal iff they refer to the same node.
//
// tree guards the node tree and every node's attributes; mu guards only the
// wrapper map and is always taken after tree.
type Document struct {
	root *html.Node
	tree sync.RWMutex

	mu       sync.Mutex
	elements map[*html.Node]*Element
}

// NewDocument creates an empty <html><head></head><body></body></html> document
func NewDocument() *Document {
	doc, err := Parse(strings.NewReader("<html><head></head><body></body></html>"))
	if err != nil {
		// 固定的 markup，不会失败
		panic(err)
	}
	return doc
}

// Parse builds a Document from markup
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
	}, nil
}

// wrap returns the canonical wrapper for n
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.elements[n] = e
	return e
}

// QuerySelector returns the first element matching sel, or nil. An empty or
// invalid selector matches nothing.
func (d *Document) QuerySelector(sel string) *Element {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return nil
	}
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil
	}

	d.tree.RLock()
	defer d.tree.RUnlock()
	return d.wrap(s.MatchFirst(d.root))
}

// GetElementByID returns the element with the given id attribute
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	d.tree.RLock()
	defer d.tree.RUnlock()

	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return d.wrap(found)
}

// Body returns the <body> element
func (d *Document) Body() *Element {
	return d.QuerySelector("body")
}

// Create makes a new element with the given class list and appends it to
// parent when parent is non-nil.
func (d *Document) Create(tag, className string, parent *Element) *Element {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if className != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: className}}
	}
	e := d.wrap(n)
	if parent != nil {
		parent.AppendChild(e)
	}
	return e
}

// Render writes the document as HTML
func (d *Document) Render(w io.Writer) error {
	d.tree.RLock()
	defer d.tree.RUnlock()
	return html.Render(w, d.root)
}

// Element wraps a single element node
type Element struct {
	doc  *Document
	node *html.Node

	mu      sync.Mutex
	onClick []func()
}

// Tag returns the element's tag name
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the element's id attribute
func (e *Element) ID() string {
	return e.Attribute("id")
}

// Attribute returns the value of key, or "" when it is not set
func (e *Element) Attribute(key string) string {
	e.doc.tree.RLock()
	defer e.doc.tree.RUnlock()
	return attr(e.node, key)
}

// SetAttribute sets key to val, replacing any previous value
func (e *Element) SetAttribute(key, val string) {
	e.doc.tree.Lock()
	defer e.doc.tree.Unlock()
	setAttr(e.node, key, val)
}

// RemoveAttribute deletes key
func (e *Element) RemoveAttribute(key string) {
	e.doc.tree.Lock()
	defer e.doc.tree.Unlock()

	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	e.node.Attr = attrs
}

// Classes returns the class list in order
func (e *Element) Classes() []string {
	return strings.Fields(e.Attribute("class"))
}

// HasClass reports whether the class list contains name
func (e *Element) HasClass(name string) bool {
	return hasClass(e.Classes(), name)
}

// AddClass appends name to the class list if absent
func (e *Element) AddClass(name string) {
	e.doc.tree.Lock()
	defer e.doc.tree.Unlock()

	classes := strings.Fields(attr(e.node, "class"))
	if hasClass(classes, name) {
		return
	}
	setAttr(e.node, "class", strings.Join(append(classes, name), " "))
}

// RemoveClass drops name from the class list
func (e *Element) RemoveClass(name string) {
	e.doc.tree.Lock()
	defer e.doc.tree.Unlock()

	var keep []string
	for _, c := range strings.Fields(attr(e.node, "class")) {
		if c != name {
			keep = append(keep, c)
		}
	}
	setAttr(e.node, "class", strings.Join(keep, " "))
}

// SetHidden toggles display:none on the element
func (e *Element) SetHidden(hidden bool) {
	if hidden {
		e.SetAttribute("style", "display:none")
	} else {
		e.RemoveAttribute("style")
	}
}

// Hidden reports whether SetHidden(true) is in effect
func (e *Element) Hidden() bool {
	return e.Attribute("style") == "display:none"
}

// Parent returns the parent element, or nil for detached elements and the root
func (e *Element) Parent() *Element {
	e.doc.tree.RLock()
	defer e.doc.tree.RUnlock()

	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// AppendChild moves child under e
func (e *Element) AppendChild(child *Element) {
	e.doc.tree.Lock()
	defer e.doc.tree.Unlock()

	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Remove detaches e from its parent. Removing a detached element is a no-op.
func (e *Element) Remove() {
	e.doc.tree.Lock()
	defer e.doc.tree.Unlock()

	if e.node.Parent == nil {
		return
	}
	e.node.Parent.RemoveChild(e.node)
}

// Contains reports whether other is e or one of its descendants
func (e *Element) Contains(other *Element) bool {
	e.doc.tree.RLock()
	defer e.doc.tree.RUnlock()

	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// OnClick registers fn to run on every Click
func (e *Element) OnClick(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onClick = append(e.onClick, fn)
}

// Click runs the registered click handlers in registration order
func (e *Element) Click() {
	e.mu.Lock()
	handlers := append([]func(){}, e.onClick...)
	e.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	if id := e.ID(); id != "" {
		return e.node.Data + "#" + id
	}
	if cls := e.Classes(); len(cls) > 0 {
		return e.node.Data + "." + cls[0]
	}
	return e.node.Data
}

func hasClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
