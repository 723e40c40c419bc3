package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/itohio/goiegm/pkg/config"
	"github.com/itohio/goiegm/pkg/interact"
	"github.com/itohio/goiegm/pkg/layout"
	"github.com/itohio/goiegm/pkg/measure"
	"github.com/itohio/goiegm/pkg/raster"
	"github.com/itohio/goiegm/pkg/signal"
)

const infoPlaceholder = "Click on the chart to place a cursor"

// newDisplay builds the signal store, layout and controller described by cfg.
func newDisplay(cfg *config.Config, sched interact.Scheduler, rnd *rand.Rand) (*signal.Store, *interact.Controller, error) {
	gen, err := signal.FromConfig(&cfg.Signal, rnd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}

	store := signal.NewStore(gen, cfg.Display.TotalTime, cfg.Signal.Speed, cfg.Display.ChannelPrefix)
	if err := store.Regenerate(cfg.Display.Channels); err != nil {
		return nil, nil, fmt.Errorf("failed to generate channels: %w", err)
	}

	lay := layout.New(layout.GeometryFromConfig(&cfg.Display), cfg.Display.Channels)
	return store, interact.New(store, lay, sched, interact.OptionsFromConfig(cfg)), nil
}

// writeSnapshot renders the initial frame into a PNG file.
func writeSnapshot(cfg *config.Config, filename string, rnd *rand.Rand) error {
	_, ctrl, err := newDisplay(cfg, interact.TimeScheduler{}, rnd)
	if err != nil {
		return err
	}
	if err := raster.SnapshotFile(filename, ctrl.Frame()); err != nil {
		return err
	}
	log.Printf("Snapshot written to %s", filename)
	return nil
}

// channelOptions formats channel count choices for the selector.
func channelOptions(choices []int) []string {
	options := make([]string, 0, len(choices))
	for _, n := range choices {
		options = append(options, strconv.Itoa(n))
	}
	return options
}

func infoText(res measure.Result) string {
	if res.Empty() {
		return infoPlaceholder
	}
	return res.Summary()
}

// startAnimation calls advance through dispatch every interval until the
// returned stop function is called. A non-positive interval disables it.
func startAnimation(interval time.Duration, dispatch func(func()), advance func()) (stop func()) {
	if interval <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				dispatch(advance)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
