package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/game"
	"github.com/pthm-cable/antfarm/termview"
)

func main() {
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Optional .env supplies defaults for the flags below
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	// CLI flags
	configPath := flag.String("config", os.Getenv("ANTFARM_CONFIG"), "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", os.Getenv("ANTFARM_OUTPUT"), "Output directory for CSV logs and config snapshot")
	headless := flag.Bool("headless", false, "Run without graphics")
	term := flag.Bool("term", false, "Run in the terminal")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	frameDT := flag.Float64("frame-dt", 1.0/60, "Wall-clock seconds per frame in headless and terminal mode")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Seed:      *seed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *headless:
		runHeadless(ctx, g, *frameDT, *maxTicks)
	case *term:
		if err := runTerminal(ctx, g, *frameDT); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("terminal host failed", "error", err)
			os.Exit(1)
		}
	default:
		runWindow(g, cfg, *maxTicks)
	}
}

// runHeadless drives the game with a fixed frame delta until maxTicks or a signal.
func runHeadless(ctx context.Context, g *game.Game, frameDT float64, maxTicks int64) {
	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"frame_dt", frameDT,
		"time_scale", g.TimeScale(),
		"max_ticks", maxTicks,
	)

	g.Start()
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", g.Tick())
			return
		default:
		}

		g.Update(frameDT)

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "stock", g.Stock(), "ants", g.AntCount())
			return
		}
	}
}

// runTerminal hands the game to the tcell host.
func runTerminal(ctx context.Context, g *game.Game, frameDT float64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// Logs would scribble over the screen
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	return termview.Run(ctx, screen, g, time.Duration(frameDT*float64(time.Second)))
}
