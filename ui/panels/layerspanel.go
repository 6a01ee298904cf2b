package panels

import (
	"dxf-sketcher/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LayersPanel lists the drawing layers with visibility toggles. Hiding a
// layer removes its entities from rendering and from snapping.
type LayersPanel struct {
	state     *app.State
	container fyne.CanvasObject
	box       *fyne.Container
}

// NewLayersPanel creates a new layers panel.
func NewLayersPanel(state *app.State) *LayersPanel {
	lp := &LayersPanel{
		state: state,
		box:   container.NewVBox(),
	}
	lp.container = container.NewVScroll(lp.box)

	lp.rebuild()
	state.On(app.EventEntitiesChanged, func(interface{}) {
		lp.rebuild()
	})

	return lp
}

// Container returns the panel container.
func (lp *LayersPanel) Container() fyne.CanvasObject {
	return lp.container
}

// rebuild regenerates the layer checkboxes from the current drawing.
func (lp *LayersPanel) rebuild() {
	lp.box.Objects = nil

	layers := lp.state.Layers()
	if len(layers) == 0 {
		lp.box.Add(widget.NewLabel("No layers"))
		lp.box.Refresh()
		return
	}

	for _, layer := range layers {
		name := layer.Name
		display := name
		if display == "" {
			display = "(default)"
		}
		check := widget.NewCheck(display, func(visible bool) {
			lp.state.SetLayerVisible(name, visible)
		})
		check.Checked = layer.Visible
		lp.box.Add(check)
	}
	lp.box.Refresh()
}
