package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goiegm/pkg/config"
	"github.com/itohio/goiegm/pkg/interact"
	"github.com/itohio/goiegm/pkg/measure"
	"github.com/itohio/goiegm/pkg/scope"
	"github.com/itohio/goiegm/pkg/signal"
)

func main() {
	var (
		configFlag      = flag.String("config", "config.yaml", "Configuration file path")
		channelsFlag    = flag.Int("channels", 0, "Number of channels (0 = use config)")
		generatorFlag   = flag.String("generator", "", "Signal generator: sine or ecg (overrides config)")
		snapshotFlag    = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
		writeConfigFlag = flag.Bool("write-config", false, "Save the effective configuration and exit")
		seedFlag        = flag.Uint64("seed", 0, "Random seed for signal noise (0 = random)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded from %s", *configFlag)

	if *channelsFlag > 0 {
		cfg.Display.Channels = *channelsFlag
	}
	if *generatorFlag != "" {
		cfg.Signal.Generator = *generatorFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var rnd *rand.Rand
	if *seedFlag != 0 {
		rnd = rand.New(rand.NewPCG(*seedFlag, *seedFlag))
	}

	if *writeConfigFlag {
		if err := cfg.Save(*configFlag); err != nil {
			log.Fatalf("Failed to save configuration: %v", err)
		}
		log.Printf("Configuration written to %s", *configFlag)
		return
	}

	if *snapshotFlag != "" {
		if err := writeSnapshot(cfg, *snapshotFlag, rnd); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		return
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.goiegm")

	window := application.NewWindow("IEGM Viewer")
	window.Resize(fyne.NewSize(float32(cfg.Display.Width)+260, 800))
	window.CenterOnScreen()

	// Timer callbacks run on the Fyne goroutine like every other event
	store, ctrl, err := newDisplay(cfg, interact.TimeScheduler{Dispatch: fyne.Do}, rnd)
	if err != nil {
		log.Fatalf("Failed to create display: %v", err)
	}
	log.Printf("Displaying %d channels of %s signal", store.Channels(), cfg.Signal.Generator)

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		window:     window,
		rnd:        rnd,
		store:      store,
		ctrl:       ctrl,
	}

	scopeWidget := scope.New(ctrl)
	scroll := container.NewScroll(scopeWidget)

	// The scroll container only re-measures its content on refresh
	lastHeight := ctrl.Layout().Height()
	ctrl.OnRedraw(func() {
		if h := ctrl.Layout().Height(); h != lastHeight {
			lastHeight = h
			scroll.Refresh()
		}
	})

	info := widget.NewLabel(infoPlaceholder)
	clickInfo := widget.NewLabel("")
	ctrl.OnResult(func(res measure.Result) {
		info.SetText(infoText(res))
	})
	ctrl.OnMeasure(func(res measure.Result, x, y float64) {
		if res.Empty() {
			clickInfo.SetText("")
		}
		scopeWidget.ShowMeasurement(res, x, y)
	})
	ctrl.OnRange(func(res measure.RangeResult) {
		clickInfo.SetText(res.Summary())
	})

	toolbar := createToolbar(state)
	side := container.NewVBox(
		widget.NewLabelWithStyle("Measurement", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		info,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Click info", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		clickInfo,
	)

	window.SetContent(container.NewBorder(toolbar, nil, nil, side, scroll))

	stop := startAnimation(cfg.Signal.AnimateInterval, fyne.Do, ctrl.Advance)
	window.SetOnClosed(stop)

	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string
	window     fyne.Window
	rnd        *rand.Rand // Nil when no seed was given
	store      *signal.Store
	ctrl       *interact.Controller
}

// createToolbar creates the channel selector, Clear and Settings buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	channelSelect := widget.NewSelect(channelOptions(state.cfg.Display.ChannelChoices), nil)
	channelSelect.Selected = strconv.Itoa(state.cfg.Display.Channels)
	channelSelect.OnChanged = func(selected string) {
		n, err := strconv.Atoi(selected)
		if err != nil {
			return
		}
		if err := state.ctrl.SetChannelCount(n); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		state.cfg.Display.Channels = n
	}

	clearBtn := widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), state.ctrl.Clear)

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	return container.NewBorder(
		nil,
		nil,
		container.NewHBox(widget.NewLabel("Channels"), channelSelect, clearBtn),
		settingsBtn,
		nil,
	)
}

func saveConfig(state *appState) {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
	}
}
