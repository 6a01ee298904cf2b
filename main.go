// Package main provides the entry point for the DXF Sketcher application.
package main

import (
	"log"
	"os"
	"time"

	"dxf-sketcher/internal/app"
	"dxf-sketcher/internal/version"
	"dxf-sketcher/ui/mainwindow"
	"dxf-sketcher/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "DXF Sketcher"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("io.dxfsketcher.app")
	fyneApp.Settings().SetTheme(&app.SketcherTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.SetTitle(appTitle)

	// Handle command line arguments
	if len(os.Args) > 1 {
		sketchPath := os.Args[1]
		if err := appState.LoadSketch(sketchPath); err != nil {
			log.Printf("Failed to load sketch %s: %v", sketchPath, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win)
	})

	reloader.Start()
}
