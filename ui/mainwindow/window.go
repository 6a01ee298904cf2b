// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"dxf-sketcher/internal/app"
	"dxf-sketcher/internal/version"
	"dxf-sketcher/ui/canvas"
	"dxf-sketcher/ui/panels"
	"dxf-sketcher/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir    = "lastDirectory"
	prefKeyLastSketch = "lastSketch"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.SketchCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	tools *toolController
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("DXF Sketcher")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreLastSketch()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewSketchCanvas()
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.statusBar = widget.NewLabel("Ready")
	mw.tools = newToolController(mw)

	mw.canvas.OnCursorMove(mw.tools.cursorMoved)
	mw.canvas.OnLeftClick(mw.tools.leftClick)
	mw.canvas.OnRightClick(mw.tools.rightClick)
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.updateStatus(fmt.Sprintf("Zoom %.0f%%", zoom*100))
	})

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil, nil, nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1200, 800))
}

// createToolbar creates the toolbar with drawing tools and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	selectBtn := widget.NewButton("Select", func() { mw.tools.setTool(toolSelect) })
	lineBtn := widget.NewButton("Line", func() { mw.tools.setTool(toolLine) })
	polyBtn := widget.NewButton("Polyline", func() { mw.tools.setTool(toolPolyline) })
	circleBtn := widget.NewButton("Circle", func() { mw.tools.setTool(toolCircle) })
	arcBtn := widget.NewButton("Arc", func() { mw.tools.setTool(toolArc) })

	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToEntities)
	actualBtn := widget.NewButton("1:1", func() { mw.canvas.SetZoom(1.0) })

	return container.NewHBox(
		selectBtn, lineBtn, polyBtn, circleBtn, arcBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn, zoomInBtn, fitBtn, actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Sketch", mw.onNewSketch),
		fyne.NewMenuItem("Open Sketch...", mw.onOpenSketch),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Sketch", mw.onSaveSketch),
		fyne.NewMenuItem("Save Sketch As...", mw.onSaveSketchAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Delete Selected", mw.onDeleteSelected),
		fyne.NewMenuItem("Cancel Operation", func() { mw.tools.cancel() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit Drawing", mw.canvas.FitToEntities),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
	)

	drawMenu := fyne.NewMenu("Draw",
		fyne.NewMenuItem("Line", func() { mw.tools.setTool(toolLine) }),
		fyne.NewMenuItem("Polyline", func() { mw.tools.setTool(toolPolyline) }),
		fyne.NewMenuItem("Circle", func() { mw.tools.setTool(toolCircle) }),
		fyne.NewMenuItem("Arc", func() { mw.tools.setTool(toolArc) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, drawMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventSketchLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("DXF Sketcher - " + filepath.Base(path))
			mw.updateStatus("Sketch loaded: " + path)
		}
		mw.syncCanvas()
		mw.canvas.FitToEntities()
	})

	mw.state.On(app.EventSketchSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("DXF Sketcher - " + filepath.Base(path))
			mw.updateStatus("Sketch saved: " + path)
		}
	})

	mw.state.On(app.EventEntitiesChanged, func(interface{}) {
		mw.syncCanvas()
	})

	mw.state.On(app.EventSelectionChanged, func(interface{}) {
		mw.canvas.SetSelected(mw.state.SelectedID)
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// syncCanvas pushes the current entity snapshot to the canvas.
func (mw *MainWindow) syncCanvas() {
	mw.canvas.SetEntities(mw.state.Entities())
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Could not save preferences: " + err.Error())
	}
}

// restoreLastSketch reopens the sketch from the previous session.
func (mw *MainWindow) restoreLastSketch() {
	path := mw.prefs.String(prefKeyLastSketch)
	if path == "" {
		return
	}
	if err := mw.state.LoadSketch(path); err != nil {
		mw.updateStatus("Could not restore sketch: " + err.Error())
		return
	}
	mw.state.SetModified(false)
}

// Menu action handlers

func (mw *MainWindow) onNewSketch() {
	mw.tools.cancel()
	mw.state.NewSketch()
	mw.SetTitle("DXF Sketcher - untitled")
	mw.syncCanvas()
}

func (mw *MainWindow) onOpenSketch() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadSketch(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefKeyLastSketch, path)
		_ = mw.prefs.Save()
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".sketch"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveSketch() {
	if mw.state.SketchPath == "" {
		mw.onSaveSketchAs()
		return
	}
	if err := mw.state.SaveSketch(mw.state.SketchPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveSketchAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".sketch" {
			path += ".sketch"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveSketch(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefKeyLastSketch, path)
		_ = mw.prefs.Save()
	}, mw.Window)
	fd.SetFileName("drawing.sketch")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onDeleteSelected() {
	if mw.state.SelectedID == "" {
		mw.updateStatus("Nothing selected")
		return
	}
	mw.state.RemoveEntity(mw.state.SelectedID)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About DXF Sketcher",
		fmt.Sprintf("DXF Sketcher v%s\n\n"+
			"A 2D sketching tool with CAD-style object snapping.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
