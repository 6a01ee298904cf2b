package panels

import (
	"fmt"

	"dxf-sketcher/internal/app"
	"dxf-sketcher/internal/snap"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SnapPanel exposes the snap configuration: one checkbox per feature
// type, the global tolerance slider and the engine counters.
type SnapPanel struct {
	state     *app.State
	container fyne.CanvasObject

	checks         map[snap.FeatureType]*widget.Check
	toleranceLabel *widget.Label
	statsLabel     *widget.Label
}

// NewSnapPanel creates a new snap configuration panel.
func NewSnapPanel(state *app.State) *SnapPanel {
	sp := &SnapPanel{
		state:  state,
		checks: make(map[snap.FeatureType]*widget.Check),
	}

	settings := state.Snapper().Settings()

	var checkItems []fyne.CanvasObject
	for _, ft := range snap.AllFeatureTypes() {
		ft := ft
		check := widget.NewCheck(ft.String(), func(enabled bool) {
			sp.state.ToggleSnapFeature(ft, enabled)
		})
		check.Checked = settings.IsEnabled(ft)
		sp.checks[ft] = check
		checkItems = append(checkItems, check)
	}

	sp.toleranceLabel = widget.NewLabel(fmt.Sprintf("Tolerance: %.0f px", settings.PixelTolerance))
	toleranceSlider := widget.NewSlider(2, 40)
	toleranceSlider.Step = 1
	toleranceSlider.Value = settings.PixelTolerance
	toleranceSlider.OnChanged = func(v float64) {
		sp.state.SetSnapTolerance(v)
		sp.toleranceLabel.SetText(fmt.Sprintf("Tolerance: %.0f px", v))
	}

	sp.statsLabel = widget.NewLabel("")
	sp.statsLabel.Wrapping = fyne.TextWrapWord
	statsButton := widget.NewButton("Refresh Counters", sp.refreshStats)

	allButton := widget.NewButton("All", func() { sp.setAll(true) })
	noneButton := widget.NewButton("None", func() { sp.setAll(false) })

	sp.container = container.NewVScroll(container.NewVBox(
		widget.NewLabel("Snap Types"),
		container.NewVBox(checkItems...),
		container.NewHBox(allButton, noneButton),
		widget.NewSeparator(),
		sp.toleranceLabel,
		toleranceSlider,
		widget.NewSeparator(),
		statsButton,
		sp.statsLabel,
	))

	state.On(app.EventSnapSettingsChanged, func(interface{}) {
		sp.syncChecks()
	})

	return sp
}

// Container returns the panel container.
func (sp *SnapPanel) Container() fyne.CanvasObject {
	return sp.container
}

// syncChecks re-reads enablement from the live settings, e.g. after a
// sketch load replaced them.
func (sp *SnapPanel) syncChecks() {
	settings := sp.state.Snapper().Settings()
	for ft, check := range sp.checks {
		enabled := settings.IsEnabled(ft)
		if check.Checked != enabled {
			check.Checked = enabled
			check.Refresh()
		}
	}
}

func (sp *SnapPanel) setAll(enabled bool) {
	for _, ft := range snap.AllFeatureTypes() {
		sp.state.ToggleSnapFeature(ft, enabled)
	}
	sp.syncChecks()
}

// refreshStats updates the per-engine counter display.
func (sp *SnapPanel) refreshStats() {
	stats := sp.state.Snapper().Stats()
	text := ""
	for _, ft := range snap.AllFeatureTypes() {
		s, ok := stats[ft]
		if !ok {
			continue
		}
		text += fmt.Sprintf("%s: %d pts, %d queries, %d hits\n",
			ft, s.IndexedPoints, s.Queries, s.Candidates)
	}
	if text == "" {
		text = "No engines enabled"
	}
	sp.statsLabel.SetText(text)
}
