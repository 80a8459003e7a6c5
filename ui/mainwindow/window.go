// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"clipview/internal/app"
	"clipview/internal/version"
	"clipview/ui/canvas"
	"clipview/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const baseTitle = "Clip Viewer"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.ClipCanvas

	coordLabel *widget.Label
	zoomLabel  *widget.Label
	statusBar  *widget.Label

	showGridItem *fyne.MenuItem
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(baseTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()

	mw.state.OnChange(func() {
		mw.canvas.Refresh()
		mw.updateTitle()
	})

	width := float32(p.Float(prefs.KeyWindowWidth, 1000))
	height := float32(p.Float(prefs.KeyWindowHeight, 700))
	win.Resize(fyne.NewSize(width, height))
	win.SetCloseIntercept(func() {
		mw.savePrefs()
		fyneApp.Quit()
	})

	// The remembered fit is applied once the canvas gets its first layout.
	mw.canvas.FitToContent()
	mw.updateTitle()
	return mw
}

// setupUI creates the main layout: toolbar, canvas, status bar.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewClipCanvas(mw.state)
	mw.canvas.SetShowGrid(mw.prefs.Bool(prefs.KeyShowGrid, true))

	mw.coordLabel = widget.NewLabel("")
	mw.zoomLabel = widget.NewLabel("100%")
	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnCoordinate(func(wx, wy float64) {
		mw.coordLabel.SetText(fmt.Sprintf("%.1f, %.1f", wx, wy))
	})
	mw.canvas.OnViewChange(func() {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", mw.canvas.Zoom()*100))
	})

	toolbar := mw.createToolbar()
	status := container.NewHBox(
		mw.statusBar,
		widget.NewSeparator(),
		mw.coordLabel,
		widget.NewSeparator(),
		mw.zoomLabel,
	)

	content := container.NewBorder(
		toolbar,                     // top
		container.NewPadded(status), // bottom
		nil,                         // left
		nil,                         // right
		mw.canvas,                   // center
	)
	mw.SetContent(content)
}

// createToolbar creates the toolbar with view controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToContent)
	actualBtn := widget.NewButton("1:1", mw.canvas.ActualSize)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Scene", mw.onNewScene),
		fyne.NewMenuItem("Open Scene...", mw.onOpenScene),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Scene", mw.onSaveScene),
		fyne.NewMenuItem("Save Scene As...", mw.onSaveSceneAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.savePrefs()
			mw.app.Quit()
		}),
	)

	mw.showGridItem = fyne.NewMenuItem(gridLabel(mw.canvas.ShowGrid()), mw.onToggleGrid)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Content", mw.canvas.FitToContent),
		fyne.NewMenuItem("Actual Size", mw.canvas.ActualSize),
		fyne.NewMenuItemSeparator(),
		mw.showGridItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

func gridLabel(shown bool) string {
	if shown {
		return "✓ Show Grid"
	}
	return "  Show Grid"
}

// RestoreLastScene reopens the scene from the previous session, if any.
func (mw *MainWindow) RestoreLastScene() {
	path := mw.prefs.String(prefs.KeyLastScene)
	if path == "" {
		return
	}
	if err := mw.OpenScene(path); err != nil {
		mw.updateStatus("Could not reopen " + filepath.Base(path))
	}
}

// OpenScene loads a scene file and frames its content.
func (mw *MainWindow) OpenScene(path string) error {
	if err := mw.state.LoadScene(path); err != nil {
		return err
	}
	mw.prefs.SetString(prefs.KeyLastScene, path)
	mw.canvas.FitToContent()
	mw.updateTitle()
	mw.updateStatus("Opened " + filepath.Base(path))
	return nil
}

// OfferRestart asks whether to restart into a newly built binary.
func (mw *MainWindow) OfferRestart(restart, decline func()) {
	dialog.ShowConfirm("New Build",
		"A newer binary is available. Restart now?",
		func(ok bool) {
			if ok {
				restart()
			} else {
				decline()
			}
		}, mw.Window)
}

func (mw *MainWindow) updateTitle() {
	title := baseTitle
	if mw.state.ScenePath != "" {
		title += " - " + filepath.Base(mw.state.ScenePath)
	}
	if mw.state.Modified {
		title += " *"
	}
	mw.SetTitle(title)
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) savePrefs() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetBool(prefs.KeyShowGrid, mw.canvas.ShowGrid())
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Could not save preferences")
	}
}

// lastDir returns the directory of the last opened scene, for file dialogs.
func (mw *MainWindow) lastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastScene)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(path)))
	if err != nil {
		return nil
	}
	return listable
}

// Menu action handlers

func (mw *MainWindow) onNewScene() {
	mw.state.ScenePath = ""
	mw.state.SetScene(app.DefaultScene())
	mw.state.Modified = false
	mw.canvas.FitToContent()
	mw.updateTitle()
	mw.updateStatus("New scene")
}

func (mw *MainWindow) onOpenScene() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		if err := mw.OpenScene(reader.URI().Path()); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveScene() {
	if mw.state.ScenePath == "" {
		mw.onSaveSceneAs()
		return
	}
	if err := mw.state.SaveScene(mw.state.ScenePath); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateTitle()
	mw.updateStatus("Saved " + filepath.Base(mw.state.ScenePath))
}

func (mw *MainWindow) onSaveSceneAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".json" {
			path += ".json"
		}
		if err := mw.state.SaveScene(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastScene, path)
		mw.updateTitle()
		mw.updateStatus("Saved " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("scene.json")
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onToggleGrid() {
	mw.canvas.SetShowGrid(!mw.canvas.ShowGrid())
	mw.showGridItem.Label = gridLabel(mw.canvas.ShowGrid())
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Clip Viewer",
		fmt.Sprintf("Clip Viewer v%s\n\n"+
			"An interactive polygon clipping viewer.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
