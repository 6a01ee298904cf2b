package panels

import (
	"fmt"

	"dxf-sketcher/internal/app"
	"dxf-sketcher/internal/entity"
	"dxf-sketcher/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// EntitiesPanel lists the drawing entities and supports selection,
// per-entity visibility and deletion.
type EntitiesPanel struct {
	state     *app.State
	canvas    *canvas.SketchCanvas
	container fyne.CanvasObject

	list     *widget.List
	entities []entity.Entity
	detail   *widget.Label
}

// NewEntitiesPanel creates a new entities panel.
func NewEntitiesPanel(state *app.State, cvs *canvas.SketchCanvas) *EntitiesPanel {
	ep := &EntitiesPanel{
		state:  state,
		canvas: cvs,
	}

	ep.list = widget.NewList(
		func() int { return len(ep.entities) },
		func() fyne.CanvasObject { return widget.NewLabel("entity") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id >= len(ep.entities) {
				return
			}
			e := ep.entities[id]
			label := fmt.Sprintf("%s  %s", e.Type, e.ID)
			if !e.Visible {
				label += "  (hidden)"
			}
			item.(*widget.Label).SetText(label)
		},
	)
	ep.list.OnSelected = func(id widget.ListItemID) {
		if id >= len(ep.entities) {
			return
		}
		e := ep.entities[id]
		ep.state.Select(e.ID)
		ep.showDetail(e)
	}

	ep.detail = widget.NewLabel("")
	ep.detail.Wrapping = fyne.TextWrapWord

	hideButton := widget.NewButton("Show/Hide", func() {
		if e, ok := ep.selected(); ok {
			ep.state.SetEntityVisible(e.ID, !e.Visible)
		}
	})
	deleteButton := widget.NewButton("Delete", func() {
		if e, ok := ep.selected(); ok {
			ep.state.RemoveEntity(e.ID)
		}
	})
	zoomButton := widget.NewButton("Go To", func() {
		if e, ok := ep.selected(); ok {
			ep.canvas.CenterOn(e.Bounds().Center())
		}
	})

	ep.container = container.NewBorder(
		nil,
		container.NewVBox(ep.detail, container.NewHBox(hideButton, deleteButton, zoomButton)),
		nil, nil,
		ep.list,
	)

	ep.reload()
	state.On(app.EventEntitiesChanged, func(interface{}) {
		ep.reload()
	})

	return ep
}

// Container returns the panel container.
func (ep *EntitiesPanel) Container() fyne.CanvasObject {
	return ep.container
}

func (ep *EntitiesPanel) reload() {
	ep.entities = ep.state.Entities()
	ep.list.Refresh()
}

func (ep *EntitiesPanel) selected() (entity.Entity, bool) {
	id := ep.state.SelectedID
	if id == "" {
		return entity.Entity{}, false
	}
	return ep.state.Entity(id)
}

func (ep *EntitiesPanel) showDetail(e entity.Entity) {
	switch e.Type {
	case entity.TypeLine:
		ep.detail.SetText(fmt.Sprintf("Line (%.2f, %.2f) to (%.2f, %.2f)",
			e.Start.X, e.Start.Y, e.End.X, e.End.Y))
	case entity.TypePolyline:
		kind := "open"
		if e.Closed {
			kind = "closed"
		}
		ep.detail.SetText(fmt.Sprintf("Polyline, %d vertices, %s", len(e.Vertices), kind))
	case entity.TypeCircle:
		ep.detail.SetText(fmt.Sprintf("Circle at (%.2f, %.2f), r=%.2f",
			e.Center.X, e.Center.Y, e.Radius))
	case entity.TypeArc:
		ep.detail.SetText(fmt.Sprintf("Arc at (%.2f, %.2f), r=%.2f, %.1f to %.1f rad",
			e.Center.X, e.Center.Y, e.Radius, e.StartAngle, e.EndAngle))
	}
}
