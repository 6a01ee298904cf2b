// Package panels provides UI panels for the application.
package panels

import (
	"dxf-sketcher/internal/app"
	"dxf-sketcher/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.SketchCanvas
	container *container.AppTabs

	// Tab content
	snapPanel     *SnapPanel
	layersPanel   *LayersPanel
	entitiesPanel *EntitiesPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.SketchCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.snapPanel = NewSnapPanel(state)
	sp.layersPanel = NewLayersPanel(state)
	sp.entitiesPanel = NewEntitiesPanel(state, cvs)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Snap", sp.snapPanel.Container()),
		container.NewTabItem("Layers", sp.layersPanel.Container()),
		container.NewTabItem("Entities", sp.entitiesPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}
