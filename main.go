package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/leonelquinteros/gotext"

	"delving/pkg/engine/input"
	"delving/pkg/engine/logging"
	"delving/pkg/engine/terminal"
	"delving/pkg/engine/world"
	"delving/pkg/game/biome"
	"delving/pkg/game/config"
	"delving/pkg/game/devtools"
	"delving/pkg/game/gameplay"
	"delving/pkg/game/metrics"
	"delving/pkg/game/renderer"
	"delving/pkg/game/renderer/tui"
	"delving/pkg/game/replay"
	"delving/pkg/game/spawn"
)

type options struct {
	configPath  string
	depth       int
	seed        int64
	width       int
	height      int
	count       int
	history     bool
	record      string
	play        string
	dump        string
	html        string
	fov         bool
	metricsAddr string
	logLevel    string
	noColor     bool
	devMap      bool
	explore     bool
	delay       time.Duration
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to a YAML config file (defaults to $DELVING_CONFIG)")
	flag.IntVar(&o.depth, "depth", 1, "dungeon depth to generate")
	flag.Int64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.IntVar(&o.width, "width", 80, "map width")
	flag.IntVar(&o.height, "height", 50, "map height")
	flag.IntVar(&o.count, "count", 1, "number of levels to generate, one seed after another")
	flag.BoolVar(&o.history, "history", false, "record a snapshot after every builder stage")
	flag.StringVar(&o.record, "record", "", "write the build history to this file")
	flag.StringVar(&o.play, "play", "", "play back a recorded build history and exit")
	flag.StringVar(&o.dump, "dump", "", "write a debug dump of the level to this file")
	flag.StringVar(&o.html, "html", "", "write an HTML screenshot of the level to this file")
	flag.BoolVar(&o.fov, "fov", false, "only show what is visible from the start")
	flag.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flag.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.BoolVar(&o.noColor, "no-color", false, "disable coloured output")
	flag.BoolVar(&o.devMap, "devmap", false, "draw the developer tile showcase and exit")
	flag.BoolVar(&o.explore, "explore", false, "walk the generated levels interactively")
	flag.DurationVar(&o.delay, "delay", 150*time.Millisecond, "time between frames when playing history")
	flag.Parse()
	return o
}

// applyFlags lets flags given on the command line win over the config file
func applyFlags(cfg *config.Config, o options) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			cfg.Generation.Depth = o.depth
		case "seed":
			cfg.Generation.Seed = o.seed
		case "width":
			cfg.Generation.Width = o.width
		case "height":
			cfg.Generation.Height = o.height
		case "history":
			cfg.Generation.RecordHistory = o.history
		case "record":
			cfg.Output.HistoryFile = o.record
		case "dump":
			cfg.Output.DumpFile = o.dump
		case "metrics-addr":
			cfg.Metrics.Addr = o.metricsAddr
		case "log-level":
			cfg.Logging.Level = o.logLevel
		case "no-color":
			cfg.Logging.Color = !o.noColor
		}
	})
	if cfg.Output.HistoryFile != "" {
		cfg.Generation.RecordHistory = true
	}
}

func initLogging(cfg *config.Config) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	colored := cfg.Logging.Color && terminal.IsTerminal(os.Stderr)
	logging.SetDefault(logging.New(os.Stderr, level, colored))
}

func initRenderer(cfg *config.Config) {
	if cfg.Logging.Color && terminal.IsTerminal(os.Stdout) {
		renderer.SetRenderer(tui.New())
		return
	}
	renderer.SetRenderer(renderer.Plain{})
}

func main() {
	o := parseFlags()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	applyFlags(cfg, o)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	initLogging(cfg)
	gotext.Configure(cfg.Locale.Dir, cfg.Locale.Lang, "default")
	initRenderer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case o.play != "":
		err = playRecording(ctx, o.play, o.delay)
	case o.devMap:
		m, spawns := devtools.DevMap()
		err = renderer.Render(os.Stdout, m, renderer.Options{Spawns: spawns, ShowAll: true})
	case o.explore:
		err = explore(ctx, cfg)
	default:
		err = generate(ctx, cfg, o)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("%v", err)
		os.Exit(1)
	}
}

func playRecording(ctx context.Context, path string, delay time.Duration) error {
	rec, err := replay.Load(path)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s (depth %d, seed %d)", rec.Name, rec.Depth, rec.Seed)
	return renderer.PlayHistory(ctx, os.Stdout, title, rec.Frames, delay)
}

func explore(ctx context.Context, cfg *config.Config) error {
	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := gameplay.BuildGame(cfg.Generation.Depth, seed, cfg.FOV.Radius, biome.Options{
		Width:  cfg.Generation.Width,
		Height: cfg.Generation.Height,
	})
	if err != nil {
		return err
	}
	return gameplay.Run(ctx, g, input.NewKeyReader(os.Stdin), os.Stdout)
}

func generate(ctx context.Context, cfg *config.Config, o options) error {
	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := biome.Options{
		Width:         cfg.Generation.Width,
		Height:        cfg.Generation.Height,
		RecordHistory: cfg.Generation.RecordHistory,
	}

	var stageMetrics *metrics.StageMetrics
	if cfg.Metrics.Addr != "" {
		stageMetrics = metrics.New()
		opts.Observer = stageMetrics
		go func() {
			if err := stageMetrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logging.Error("metrics server: %v", err)
			}
		}()
	}

	count := max(o.count, 1)
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		levelSeed := seed + int64(i)
		level, err := biome.Generate(cfg.Generation.Depth, levelSeed, opts)
		if stageMetrics != nil {
			stageMetrics.LevelFinished(strconv.Itoa(cfg.Generation.Depth), err)
		}
		if err != nil {
			if count == 1 {
				return err
			}
			logging.Warn("seed %d: %v", levelSeed, err)
			continue
		}

		if count > 1 {
			printSummary(level)
			continue
		}
		if err := show(cfg, o, level); err != nil {
			return err
		}
	}

	if stageMetrics != nil {
		logging.Info("generation finished; serving metrics until interrupted")
		<-ctx.Done()
	}
	return nil
}

func printSummary(level *biome.Level) {
	fmt.Printf("%s  seed=%-20d depth=%-3d walkable=%-5d spawns=%-4d attempts=%d\n",
		level.ID, level.Seed, level.Depth, level.Map.CountWalkable(), len(level.Spawns), level.Attempts)
}

// show draws a single level and writes whichever outputs were asked for
func show(cfg *config.Config, o options, level *biome.Level) error {
	fmt.Println(renderer.StyleText(fmt.Sprintf("%s (depth %d, seed %d)", level.Name, level.Depth, level.Seed), renderer.StyleStatus))

	view := level.Map
	renderOpts := renderer.Options{Player: &level.Start, Spawns: level.Spawns, ShowAll: true}
	if o.fov {
		view = level.Map.Clone()
		view.UpdateVisibility(level.Start, cfg.FOV.Radius, world.FieldOfView)
		renderOpts.ShowAll = false
	}
	if err := renderer.Render(os.Stdout, view, renderOpts); err != nil {
		return err
	}

	rec := &spawn.Recorder{}
	if err := level.SpawnEntities(rec); err != nil {
		return err
	}
	for _, c := range rec.Counts() {
		fmt.Printf("  %s %-22s %d\n", renderer.StyleText(renderer.SpawnIcon(c.Tag), renderer.StyleItem), c.Tag, c.Count)
	}

	if path := cfg.Output.HistoryFile; path != "" {
		if err := replay.Save(path, replay.FromLevel(level)); err != nil {
			return fmt.Errorf("recording history: %w", err)
		}
		logging.Info("wrote %d frames to %s", len(level.History), path)
	}
	if path := cfg.Output.DumpFile; path != "" {
		abs, err := devtools.DumpLevelToFile(path, level, cfg.FOV.Radius)
		if err != nil {
			return fmt.Errorf("dumping level: %w", err)
		}
		logging.Info("level dump written to %s", abs)
	}
	if o.html != "" {
		if err := devtools.SaveScreenshotHTML(o.html, level); err != nil {
			return fmt.Errorf("saving screenshot: %w", err)
		}
	}
	return nil
}
