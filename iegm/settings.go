package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goiegm/pkg/config"
	"github.com/itohio/goiegm/pkg/interact"
	"github.com/itohio/goiegm/pkg/signal"
)

// showSettingsDialog displays the signal and interaction settings.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSignalTab(state),
		createInteractionTab(state),
	)

	d := dialog.NewCustom("Settings", "Close", tabs, state.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// createSignalTab edits the waveform parameters. Changes apply on the next
// regeneration of the channels.
func createSignalTab(state *appState) *container.TabItem {
	generatorSelect := widget.NewSelect([]string{"sine", "ecg"}, nil)
	generatorSelect.SetSelected(state.cfg.Signal.Generator)

	amplitudeEntry := widget.NewEntry()
	amplitudeEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Signal.Amplitude))

	periodEntry := widget.NewEntry()
	periodEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Signal.Period))

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Signal.Noise))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Generator", Widget: generatorSelect},
			{Text: "Amplitude (px)", Widget: amplitudeEntry},
			{Text: "Half period (ms)", Widget: periodEntry},
			{Text: "Noise (px)", Widget: noiseEntry},
		},
		OnSubmit: func() {
			next := state.cfg.Signal
			if generatorSelect.Selected != "" {
				next.Generator = generatorSelect.Selected
			}
			applyFloat(amplitudeEntry.Text, &next.Amplitude)
			applyFloat(periodEntry.Text, &next.Period)
			applyFloat(noiseEntry.Text, &next.Noise)

			if err := applySignal(state, next); err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			saveConfig(state)
		},
	}

	return container.NewTabItem("Signal", form)
}

// createInteractionTab edits the press-and-drag gesture parameters.
func createInteractionTab(state *appState) *container.TabItem {
	holdEntry := widget.NewEntry()
	holdEntry.SetText(state.cfg.Interaction.HoldDelay.String())

	settleEntry := widget.NewEntry()
	settleEntry.SetText(state.cfg.Interaction.SettleDelay.String())

	dragScaleEntry := widget.NewEntry()
	dragScaleEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Interaction.DragScale))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Hold delay", Widget: holdEntry},
			{Text: "Settle delay", Widget: settleEntry},
			{Text: "Drag scale (px per unit)", Widget: dragScaleEntry},
		},
		OnSubmit: func() {
			next := state.cfg.Interaction
			if d, err := time.ParseDuration(holdEntry.Text); err == nil {
				next.HoldDelay = d
			}
			if d, err := time.ParseDuration(settleEntry.Text); err == nil {
				next.SettleDelay = d
			}
			applyFloat(dragScaleEntry.Text, &next.DragScale)

			if err := applyInteraction(state, next); err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			saveConfig(state)
		},
	}

	return container.NewTabItem("Interaction", form)
}

// applySignal validates next, swaps the generator and scrolls once so the
// new waveform is shown.
func applySignal(state *appState, next config.SignalConfig) error {
	candidate := *state.cfg
	candidate.Signal = next
	if err := candidate.Validate(); err != nil {
		return err
	}

	gen, err := signal.FromConfig(&next, state.rnd)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	state.cfg.Signal = next
	state.store.SetGenerator(gen)
	state.ctrl.Advance()
	return nil
}

// applyInteraction validates next and hands it to the controller.
func applyInteraction(state *appState, next config.InteractionConfig) error {
	candidate := *state.cfg
	candidate.Interaction = next
	if err := candidate.Validate(); err != nil {
		return err
	}

	state.cfg.Interaction = next
	state.ctrl.SetOptions(interact.OptionsFromConfig(state.cfg))
	return nil
}

func applyFloat(text string, dst *float64) {
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		*dst = v
	}
}
