package main

import (
	"mapframe/internal/dom"
)

// mapView is the Go-side model of the page: a map container plus the corner
// control slot that controls are mounted into.
type mapView struct {
	doc       *dom.Document
	container *dom.Element
	corner    *dom.Element
}

func newMapView(containerID string) *mapView {
	doc := dom.NewDocument()
	container := doc.Create("div", "mapframe-map", doc.Body())
	container.SetAttribute("id", containerID)
	corner := doc.Create("div", "mapframe-ctrl-top-right", container)

	return &mapView{
		doc:       doc,
		container: container,
		corner:    corner,
	}
}

func (v *mapView) Document() *dom.Document { return v.doc }

func (v *mapView) Container() *dom.Element { return v.container }

// mount places a control root in the top-right corner
func (v *mapView) mount(root *dom.Element) {
	if root != nil {
		v.corner.AppendChild(root)
	}
}
