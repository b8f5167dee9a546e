package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"snake-arcade/audio"
	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/store"
	"snake-arcade/game/timer"
	"snake-arcade/ui"
	"snake-arcade/ui/tui"
)

const (
	windowWidth  = 960
	windowHeight = 760
	windowTitle  = "Snake"
	storeFile    = "store.json"
	soundVolume  = 0.5
)

// cliOptions holds the command line. Empty values leave the config untouched.
type cliOptions struct {
	configPath string
	frontend   string
	difficulty string
	dataDir    string
	debug      bool
	mute       bool
}

func newFlagSet(opts *cliOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("snake", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "snake.toml", "Path to the TOML config file")
	fs.StringVar(&opts.frontend, "frontend", "", "Frontend: raylib or terminal")
	fs.StringVar(&opts.difficulty, "difficulty", "", "Starting difficulty: easy, normal or hard")
	fs.StringVar(&opts.dataDir, "data", "", "Directory for the best score store")
	fs.BoolVar(&opts.debug, "debug", false, "Write debug logs to logs/snake.log")
	fs.BoolVar(&opts.mute, "mute", false, "Disable sound")
	return fs
}

func (o cliOptions) apply(cfg *config.Config) {
	if o.frontend != "" {
		cfg.Frontend = o.frontend
	}
	if o.difficulty != "" {
		cfg.Difficulty = o.difficulty
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.mute {
		cfg.Mute = true
	}
}

func main() {
	var opts cliOptions
	newFlagSet(&opts).Parse(os.Args[1:])

	logFile, log := setupLogging(logDir, opts.debug)

	err := run(opts, log)
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

func run(opts cliOptions, log zerolog.Logger) (err error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := store.OpenFile(filepath.Join(cfg.DataDir, storeFile))
	if err != nil {
		return err
	}

	var closers []func() error
	closers = append(closers, st.Close)
	defer func() {
		var result *multierror.Error
		if err != nil {
			result = multierror.Append(result, err)
		}
		for i := len(closers) - 1; i >= 0; i-- {
			if cerr := closers[i](); cerr != nil {
				result = multierror.Append(result, cerr)
			}
		}
		err = result.ErrorOrNil()
	}()

	var sounds game.Sounds
	if !cfg.Mute {
		sm := audio.NewSoundManager(soundVolume, log)
		if serr := sm.Initialize(); serr != nil {
			log.Warn().Err(serr).Msg("audio unavailable, playing silently")
		} else {
			sounds = sm
			closers = append(closers, sm.Close)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events := make(chan game.Event, 64)
	gameOpts := game.Options{
		Rules:      cfg.Rules(),
		Difficulty: cfg.StartDifficulty(),
		Store:      st,
		Scheduler:  timer.NewLoop(16),
		Sounds:     sounds,
		Logger:     log,
	}

	log.Info().
		Str("frontend", cfg.Frontend).
		Stringer("difficulty", gameOpts.Difficulty).
		Int("grid", cfg.GridSize).
		Str("store", st.Path()).
		Msg("starting")

	switch cfg.Frontend {
	case config.FrontendTerminal:
		err = runTerminal(ctx, cfg, gameOpts, events, log)
	default:
		err = runRaylib(ctx, cfg, gameOpts, events, log)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// runRaylib keeps the window on the calling (main) goroutine and the game
// loop on another
func runRaylib(ctx context.Context, cfg *config.Config, opts game.Options, events chan game.Event, log zerolog.Logger) error {
	renderer := ui.NewRenderer(cfg.Palette(), events, log)
	opts.Renderer = renderer
	g := game.NewGame(opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- g.Run(ctx, events)
		cancel()
	}()

	if err := renderer.Run(ctx, windowWidth, windowHeight, windowTitle); err != nil {
		cancel()
		<-errc
		return err
	}
	cancel()
	return <-errc
}

func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options, events chan game.Event, log zerolog.Logger) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nsnake crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	front := tui.New(screen, cfg.Palette(), log)
	opts.Renderer = front
	g := game.NewGame(opts)

	go front.Listen(ctx, events)
	err = g.Run(ctx, events)
	screen.Fini()

	for _, line := range g.Frame().SessionLines() {
		fmt.Println(line)
	}
	fmt.Printf("Best score: %d\n", g.BestScore())
	return err
}
