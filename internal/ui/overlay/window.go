// Package overlay shows the small undecorated notice raised when the
// countdown finishes while the main window is hidden.
package overlay

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"tempo/internal/core/clock"
	"tempo/internal/ui/animation"
)

const (
	noticeWidth  = float32(280)
	noticeHeight = float32(150)
)

var (
	backgroundColor = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xee}
	accentColor     = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	textColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window manages the completion notice.
type Window struct {
	window     fyne.Window
	title      *canvas.Text
	readout    *canvas.Text
	dismiss    *widget.Button
	engine     *animation.Engine
	cancelCtx  context.CancelFunc
	onDismiss  func()
	onOpenMain func()
}

// New creates the notice window, hidden.
func New(app fyne.App) *Window {
	window := app.NewWindow("Tempo")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	title := canvas.NewText("Time's up", textColor)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 21

	readout := canvas.NewText(clock.HMS(0), accentColor)
	readout.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	readout.TextSize = 28

	notice := &Window{
		window:  window,
		title:   title,
		readout: readout,
	}
	notice.dismiss = widget.NewButton("Dismiss", notice.handleDismiss)
	open := widget.NewButton("Open Tempo", notice.handleOpen)

	background := canvas.NewRectangle(backgroundColor)
	body := container.NewVBox(
		container.NewCenter(title),
		container.NewCenter(readout),
		container.NewGridWithColumns(2, open, notice.dismiss),
	)
	window.SetContent(container.NewStack(background, container.NewPadded(body)))

	notice.engine = animation.New(animation.DefaultConfig(), func(visible bool) {
		fyne.Do(func() {
			notice.setReadoutVisible(visible)
		})
	})
	return notice
}

// SetOnDismiss sets the handler run when the notice is dismissed, typically
// silencing the alarm.
func (notice *Window) SetOnDismiss(handler func()) {
	notice.onDismiss = handler
}

// SetOnOpenMain sets the handler run by the "Open Tempo" button.
func (notice *Window) SetOnOpenMain(handler func()) {
	notice.onOpenMain = handler
}

// Show raises the notice and starts blinking the readout.
func (notice *Window) Show() {
	notice.stopEngine()
	ctx, cancel := context.WithCancel(context.Background())
	notice.cancelCtx = cancel

	notice.window.Resize(fyne.NewSize(noticeWidth, noticeHeight))
	notice.window.CenterOnScreen()
	notice.window.Show()
	notice.window.RequestFocus()
	notice.engine.StartBlink(ctx)
}

// Hide closes the notice and stops the blink.
func (notice *Window) Hide() {
	notice.stopEngine()
	notice.window.Hide()
}

func (notice *Window) handleDismiss() {
	notice.Hide()
	if notice.onDismiss != nil {
		notice.onDismiss()
	}
}

func (notice *Window) handleOpen() {
	notice.handleDismiss()
	if notice.onOpenMain != nil {
		notice.onOpenMain()
	}
}

func (notice *Window) setReadoutVisible(visible bool) {
	if visible {
		notice.readout.Color = accentColor
	} else {
		notice.readout.Color = color.Transparent
	}
	notice.readout.Refresh()
}

func (notice *Window) stopEngine() {
	if notice.cancelCtx != nil {
		notice.cancelCtx()
		notice.cancelCtx = nil
	}
	notice.engine.Stop()
}
