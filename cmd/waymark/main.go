// Command waymark runs the navigation-assistance demo: a simulated world
// scanned, filtered and cycled through the same core a real screen-reader
// integration would drive.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/gdamore/tcell/v2"

	"waymark/announce"
	"waymark/config"
	"waymark/core"
	"waymark/cycle"
	"waymark/engine"
	"waymark/entity"
	"waymark/events"
	"waymark/filter"
	"waymark/input"
	"waymark/scanner"
	"waymark/status"
	"waymark/world"
)

var (
	configFlag  = flag.String("config", "", "Path to TOML configuration")
	seedFlag    = flag.Int64("seed", 0, "Simulation seed, 0 uses the clock")
	verboseFlag = flag.Bool("verbose", false, "Log to stderr (interleaves with the UI)")
)

func main() {
	// Panic recovery: restore the terminal before the stack trace prints
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nwaymark crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var scanLog, filterLog, announceLog *logger.Logger
	if *verboseFlag {
		scanLog = logger.NewLogger(coloransi.Color(coloransi.ColorTeal, coloransi.Black, "scanner"))
		filterLog = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.Black, "filter"))
		announceLog = logger.NewLogger(coloransi.Color(coloransi.ColorLimeGreen, coloransi.Black, "announce"))
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "terminal init:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "terminal init:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	core.SetCrashHandler(func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\nwaymark crashed: %v\n", r)
		fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
		os.Exit(1)
	})

	// Audio
	var cues *announce.CuePlayer
	if cfg.Audio {
		cues = announce.NewCuePlayer()
		if err := cues.Initialize(); err != nil {
			// No audio device is not fatal; run silent
			cues = nil
		} else {
			defer cues.Cleanup()
		}
	}

	phrases, err := announce.LoadPhrases(cfg.PhrasesPath)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Key bindings: defaults plus sparse TOML overrides
	table := input.DefaultTable()
	if cfg.KeymapPath != "" {
		data, err := os.ReadFile(cfg.KeymapPath)
		if err != nil {
			screen.Fini()
			fmt.Fprintln(os.Stderr, "keymap read:", err)
			os.Exit(1)
		}
		override, err := input.LoadKeyConfig(data)
		if err != nil {
			screen.Fini()
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		table = input.Merge(table, override)
	}
	dispatcher := input.NewDispatcher(table)

	// Core wiring
	reg := status.NewRegistry()
	queue := events.NewQueue()
	sim := newSimWorld(seed, cfg.QuantizeStep)

	categoryFilter := filter.NewCategoryFilter()
	pipe := filter.NewPipeline(filterLog,
		filter.NewExclusionFilter(entity.CategoryNone),
		categoryFilter,
		filter.NewTransitionFilter(),
		filter.NewReachabilityFilter(cfg.Reachability.MinTicks, cfg.Reachability.DirtyDistance),
	)
	applyFilterConfig(pipe, cfg)

	rotator := cycle.NewRotator(cfg.CategoryOrder())
	scan := scanner.New(sim, pipe, categoryFilter, rotator, scanLog, reg, cfg.RescanTicks)

	view := newView(screen)
	speaker := announce.NewSpeaker(view, cues, phrases, announceLog, reg)

	state := input.State{}
	paused := false
	cuesMuted := false

	clock := engine.NewClock()
	ticker := engine.NewTicker(cfg.TickInterval(), clock, queue, scan, speaker, engine.Hooks{
		Move: sim.MovePlayer,
		Quit: func() {
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		},
		ToggleAudio: func() bool {
			if cues == nil {
				return false
			}
			cuesMuted = !cuesMuted
			cues.SetMuted(cuesMuted)
			return !cuesMuted
		},
		AfterStep: func() {
			view.Render(scan)
		},
	}, scanLog, reg)

	// Seed the first scan before the loop starts ticking
	queue.Push(events.Event{Type: events.TypeRescanRequested, Cause: events.CauseInput, When: time.Now()})
	ticker.Start()
	defer ticker.Stop()

	// Input loop on the main goroutine; everything it learns crosses to the
	// tick through the queue
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			return

		case *tcell.EventResize:
			screen.Sync()

		case *tcell.EventKey:
			// Simulation controls outside the binding table
			switch ev.Key() {
			case tcell.KeyF2:
				state.InBattle = !state.InBattle
				view.SetState(state)
				continue
			case tcell.KeyF3:
				state.InStatusNav = !state.InStatusNav
				view.SetState(state)
				continue
			case tcell.KeyF5:
				sim.NextFloor()
				queue.Push(events.Event{Type: events.TypeMapChanged, When: time.Now()})
				continue
			case tcell.KeyEscape:
				if paused {
					ticker.Resume()
				} else {
					ticker.Pause()
				}
				paused = !paused
				view.SetPaused(paused)
				continue
			}

			if act := dispatcher.Dispatch(ev, state); act != input.ActionNone {
				queue.Push(events.Event{Type: events.TypeAction, Code: int(act), When: time.Now()})
			}
		}
	}
}

// applyFilterConfig sets startup enabled states from the config
func applyFilterConfig(pipe *filter.Pipeline, cfg config.Config) {
	if cfg.Reachability.Enabled {
		pipe.Enable(filter.NameReachability, world.Snapshot{})
	}
	for name, enabled := range cfg.Filters {
		if enabled {
			pipe.Enable(name, world.Snapshot{})
		} else {
			pipe.Disable(name)
		}
	}
}
