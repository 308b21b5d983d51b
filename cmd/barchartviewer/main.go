package main

import (
	"flag"
	"fmt"
	"image"
	png "image/png"
	"os"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/ScrollBarChart/cmd/barchartviewer/uihelpers"
	"github.com/iafilius/ScrollBarChart/src/applog"
	"github.com/iafilius/ScrollBarChart/src/chartdomain"
	"github.com/iafilius/ScrollBarChart/src/dataset"
	"github.com/iafilius/ScrollBarChart/src/layout"
	"github.com/iafilius/ScrollBarChart/src/render"
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string

	points       []chartdomain.DataPoint
	visibleLimit int
	xTitle       string
	yTitle       string
	scrollToEnd  bool

	// widgets
	fileLabel   *widget.Label
	limitLabel  *widget.Label
	statusLabel *widget.Label
	axisCanvas  *canvas.Image
	plotCanvas  *canvas.Image
	plotScroll  *container.Scroll

	// last rendered composite, for export
	lastAxis image.Image
	lastPlot image.Image
}

var logger = applog.For("viewer")

func main() {
	var (
		fileFlag      string
		exportDir     string
		formatFlag    string
		logLevel      string
		visibleLimit  int
		viewportWidth float64
		xTitle        string
		yTitle        string
	)
	flag.StringVar(&fileFlag, "file", "", "Dataset to open (.json, .jsonc, .jsonl, .yaml); empty uses the built-in sample")
	flag.StringVar(&exportDir, "export", "", "Render headlessly into this directory and exit")
	flag.StringVar(&formatFlag, "format", "png", "Pane format for -export (png|svg)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.IntVar(&visibleLimit, "visible-limit", 6, "Points shown before the plot scrolls")
	flag.Float64Var(&viewportWidth, "viewport-width", 390, "Plot viewport width used by -export")
	flag.StringVar(&xTitle, "x-label", "Date", "X axis title")
	flag.StringVar(&yTitle, "y-label", "Value", "Y axis title")
	flag.Parse()
	applog.SetLevel(logLevel)

	if exportDir != "" {
		format, err := render.ParseFormat(formatFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		cfg := layout.DefaultConfig()
		cfg.VisibleLimit = visibleLimit
		cfg.ViewportWidth = viewportWidth
		if err := RunExportMode(fileFlag, exportDir, cfg, xTitle, yTitle, format); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.scrollbarchart.viewer")
	w := a.NewWindow("Bar Chart")
	w.Resize(fyne.NewSize(480, 360))

	state := &uiState{
		app:          a,
		window:       w,
		filePath:     fileFlag,
		visibleLimit: visibleLimit,
		xTitle:       xTitle,
		yTitle:       yTitle,
	}
	loadPrefs(state, fileFlag != "")

	state.fileLabel = widget.NewLabel(uihelpers.TruncatePath(displayPath(state.filePath), 40))
	state.limitLabel = widget.NewLabel(fmt.Sprintf("%d", state.visibleLimit))
	state.statusLabel = widget.NewLabel("")
	decL := widget.NewButton("-", func() { setVisibleLimit(state, state.visibleLimit-1) })
	incL := widget.NewButton("+", func() { setVisibleLimit(state, state.visibleLimit+1) })
	endChk := widget.NewCheck("Scroll to latest", func(b bool) {
		state.scrollToEnd = b
		savePrefs(state)
		applyScroll(state)
	})
	endChk.SetChecked(state.scrollToEnd)

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewButton("Reload", func() { loadAll(state) }),
		widget.NewLabel("Visible:"), decL, state.limitLabel, incL,
		endChk,
		widget.NewLabel("File:"), state.fileLabel,
	)

	state.axisCanvas = canvas.NewImageFromImage(render.Blank(56, 260))
	state.axisCanvas.FillMode = canvas.ImageFillStretch
	state.plotCanvas = canvas.NewImageFromImage(render.Blank(390, 260))
	state.plotCanvas.FillMode = canvas.ImageFillStretch
	state.plotScroll = container.NewHScroll(state.plotCanvas)

	// axis gutter stays put on the left; only the plot scrolls
	chartRow := container.NewBorder(nil, nil, state.axisCanvas, nil, state.plotScroll)
	content := container.NewBorder(top, nil, nil, nil,
		container.NewPadded(container.NewVBox(chartRow, state.statusLabel)))
	w.SetContent(content)

	// Re-layout on window resize so a non-scrolling plot keeps filling the viewport
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() { redrawChart(state) })
					}
				}
			}
		}()
	}

	buildMenus(state)
	loadAll(state)
	w.ShowAndRun()
}

func displayPath(p string) string {
	if p == "" {
		return "(sample)"
	}
	return p
}

// chartConfig derives the layout constants for the current window. Once the
// scroller has been laid out its own width is the viewport; before that the
// width is estimated from the window.
func chartConfig(state *uiState) layout.Config {
	cfg := layout.DefaultConfig()
	cfg.VisibleLimit = state.visibleLimit
	var scrollW, winW float32
	if state.plotScroll != nil {
		scrollW = state.plotScroll.Size().Width
	}
	if state.window != nil && state.window.Canvas() != nil {
		winW = state.window.Canvas().Size().Width
	}
	if scrollW > 0 || winW > 0 {
		cfg.ViewportWidth = uihelpers.ViewportWidth(scrollW, winW, cfg.AxisWidth, theme.Padding())
	}
	return cfg
}

func setVisibleLimit(state *uiState, n int) {
	n = uihelpers.ClampVisibleLimit(n)
	if n == state.visibleLimit {
		return
	}
	state.visibleLimit = n
	state.limitLabel.SetText(fmt.Sprintf("%d", n))
	savePrefs(state)
	redrawChart(state)
}

// redrawChart renders both panes from the current points. The axis pane keeps its
// width; the plot pane is either the viewport width or n*pitch inside the scroller.
func redrawChart(state *uiState) {
	defer logger.TimeTrack(time.Now(), "redraw")
	c := render.New(state.points, chartConfig(state))
	c.XTitle, c.YTitle = state.xTitle, state.yTitle
	l := c.Layout()
	axisImg, plotImg, err := c.Images()
	if err != nil {
		logger.Errorf("render error: %v; showing blank fallback", err)
		axisImg = render.Blank(int(l.Axis.Width), int(l.Height))
		plotImg = render.Blank(int(l.ContentWidth), int(l.Height))
	}
	state.lastAxis, state.lastPlot = axisImg, plotImg
	if state.axisCanvas != nil {
		state.axisCanvas.Image = axisImg
		state.axisCanvas.SetMinSize(fyne.NewSize(float32(l.Axis.Width), float32(l.Height)))
		state.axisCanvas.Refresh()
	}
	if state.plotCanvas != nil {
		state.plotCanvas.Image = plotImg
		state.plotCanvas.SetMinSize(fyne.NewSize(float32(l.ContentWidth), float32(l.Height)))
		state.plotCanvas.Refresh()
	}
	if state.plotScroll != nil {
		// a fitted plot never scrolls; keep the offset at the origin
		if !l.Scrollable {
			state.plotScroll.Offset = fyne.NewPos(0, 0)
		}
		state.plotScroll.Refresh()
	}
	applyScroll(state)
	if state.statusLabel != nil {
		mode := "fits viewport"
		if l.Scrollable {
			mode = fmt.Sprintf("scrolls, %.0f wide", l.ContentWidth)
		}
		state.statusLabel.SetText(fmt.Sprintf("%d points · max %s · stride %s · %s",
			l.Count, chartdomain.FormatValue(l.Domain.Max), chartdomain.FormatValue(l.Domain.StrideLength), mode))
	}
}

// applyScroll reveals the last bar when "Scroll to latest" is on.
func applyScroll(state *uiState) {
	if state.plotScroll == nil || !state.scrollToEnd || len(state.points) == 0 {
		return
	}
	l := render.New(state.points, chartConfig(state)).Layout()
	if !l.Scrollable {
		return
	}
	last := l.Bars[len(l.Bars)-1]
	slot := l.ContentWidth / float64(l.Count)
	off := uihelpers.OffsetToReveal(float64(state.plotScroll.Offset.X),
		last.CenterX-slot/2, last.CenterX+slot/2, l.ContentWidth, l.Config.ViewportWidth)
	state.plotScroll.Offset = fyne.NewPos(float32(off), 0)
	state.plotScroll.Refresh()
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() {
			state.filePath = f
			savePrefs(state)
			loadAll(state)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Open Sample", func() {
			state.filePath = ""
			savePrefs(state)
			loadAll(state)
		}),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Axis…", func() { exportPNG(state, state.lastAxis, "axis.png") }),
		fyne.NewMenuItem("Export Plot…", func() { exportPNG(state, state.lastPlot, "plot.png") }),
		fyne.NewMenuItem("Export Chart…", func() {
			exportPNG(state, render.Compose(state.lastAxis, state.lastPlot, state.xTitle, state.yTitle), "chart.png")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openFileDialog(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { loadAll(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
		}
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		addRecentFile(state, state.filePath)
		buildMenus(state)
		savePrefs(state)
		loadAll(state)
	}, state.window)
	d.Show()
}

// loadAll (re)reads the dataset and redraws. An empty path loads the sample.
func loadAll(state *uiState) {
	if state.filePath == "" {
		state.points = dataset.Sample()
	} else {
		pts, err := dataset.Load(state.filePath)
		if err != nil {
			logger.Errorf("load %s: %v", state.filePath, err)
			if state.window != nil {
				dialog.ShowError(err, state.window)
			}
			return
		}
		state.points = pts
	}
	if state.fileLabel != nil {
		state.fileLabel.SetText(uihelpers.TruncatePath(displayPath(state.filePath), 40))
	}
	logger.Infof("loaded %d points from %s", len(state.points), displayPath(state.filePath))
	redrawChart(state)
}

func exportPNG(state *uiState, img image.Image, defaultName string) {
	if state == nil || state.window == nil {
		return
	}
	if img == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	state.app.Preferences().SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetInt("visibleLimit", state.visibleLimit)
	prefs.SetBool("scrollToEnd", state.scrollToEnd)
}

// loadPrefs restores persisted settings. A file given on the command line wins
// over the remembered one.
func loadPrefs(state *uiState, fileFromFlag bool) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if !fileFromFlag {
		state.filePath = prefs.StringWithFallback("lastFile", state.filePath)
	}
	state.visibleLimit = uihelpers.ClampVisibleLimit(prefs.IntWithFallback("visibleLimit", state.visibleLimit))
	state.scrollToEnd = prefs.BoolWithFallback("scrollToEnd", state.scrollToEnd)
}
