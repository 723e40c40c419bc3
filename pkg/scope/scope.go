// Package scope provides the Fyne widget displaying the waveform and
// forwarding pointer events to the interaction controller.
package scope

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goiegm/pkg/interact"
	"github.com/itohio/goiegm/pkg/measure"
)

// popupOffset places the popup to the right of the click.
const popupOffset = 10

// Widget is a custom Fyne widget that draws the multi-channel display.
// All calls must happen on the Fyne goroutine.
type Widget struct {
	widget.BaseWidget

	ctrl  *interact.Controller
	popup *widget.PopUp
	text  *widget.Label
}

var (
	_ desktop.Mouseable = (*Widget)(nil)
	_ desktop.Hoverable = (*Widget)(nil)
)

// New creates a widget bound to ctrl. The widget refreshes itself whenever
// the controller asks for a redraw.
func New(ctrl *interact.Controller) *Widget {
	s := &Widget{ctrl: ctrl}
	s.ExtendBaseWidget(s)
	ctrl.OnRedraw(s.Refresh)
	return s
}

// CreateRenderer creates the widget renderer.
func (s *Widget) CreateRenderer() fyne.WidgetRenderer {
	r := &scopeRenderer{
		scope:      s,
		background: canvas.NewRectangle(backgroundColor),
	}
	r.Refresh()
	return r
}

// MouseDown starts a press on the primary button.
func (s *Widget) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.ctrl.PointerDown(pos(ev))
}

// MouseUp finishes a press. A short press is handled as a click by the
// controller, so the widget does not implement fyne.Tappable.
func (s *Widget) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.ctrl.PointerUp(pos(ev))
}

func (s *Widget) MouseIn(*desktop.MouseEvent) {}

// MouseMoved feeds pointer movement to an active drag.
func (s *Widget) MouseMoved(ev *desktop.MouseEvent) {
	s.ctrl.PointerMove(pos(ev))
}

// MouseOut cancels a press whose release will happen outside the widget.
func (s *Widget) MouseOut() {
	s.ctrl.PointerCancel()
}

// ShowMeasurement shows the measurement summary in a popup next to the
// click. An empty result hides the popup.
func (s *Widget) ShowMeasurement(res measure.Result, x, y float64) {
	if res.Empty() {
		s.HidePopup()
		return
	}

	c := fyne.CurrentApp().Driver().CanvasForObject(s)
	if c == nil {
		return
	}

	if s.popup == nil || s.popup.Canvas != c {
		s.text = widget.NewLabel("")
		closeBtn := widget.NewButtonWithIcon("", theme.CancelIcon(), s.HidePopup)
		content := container.NewBorder(container.NewHBox(layout.NewSpacer(), closeBtn), nil, nil, nil, s.text)
		s.popup = widget.NewPopUp(content, c)
	}

	s.text.SetText(res.Summary())
	s.popup.ShowAtRelativePosition(fyne.NewPos(float32(x)+popupOffset, float32(y)), s)
}

// HidePopup dismisses the measurement popup.
func (s *Widget) HidePopup() {
	if s.popup != nil {
		s.popup.Hide()
	}
}

// PopupVisible reports whether the measurement popup is shown.
func (s *Widget) PopupVisible() bool {
	return s.popup != nil && s.popup.Visible()
}

// PopupText returns the text shown in the measurement popup.
func (s *Widget) PopupText() string {
	if s.text == nil {
		return ""
	}
	return s.text.Text
}

func pos(ev *desktop.MouseEvent) (float64, float64) {
	return float64(ev.Position.X), float64(ev.Position.Y)
}
