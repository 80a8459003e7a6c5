// Package main provides the entry point for the Clip Viewer application.
package main

import (
	"log"
	"os"
	"time"

	"clipview/internal/app"
	"clipview/internal/version"
	"clipview/ui/mainwindow"
	"clipview/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appTitle = "Clip Viewer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("clipview")
	fyneApp.Settings().SetTheme(&app.ClipViewTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// A scene path on the command line wins over the remembered scene.
	if len(os.Args) > 1 {
		if err := win.OpenScene(os.Args[1]); err != nil {
			log.Printf("Failed to load scene %s: %v", os.Args[1], err)
		}
	} else {
		win.RestoreLastScene()
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}
	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	var watch func()
	watch = func() {
		reloader.Watch(func() {
			log.Println("Hot reload: newer binary detected")
			win.OfferRestart(func() {
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, func() {
				reloader.ResetBaseline()
				watch()
			})
		})
	}
	watch()
}
