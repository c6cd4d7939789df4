// Command termfolio renders the portfolio in a terminal. It shares the theme
// preference database with the web server.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/figure"
	"github.com/Zachkp/portfolio/internal/haptics"
	"github.com/Zachkp/portfolio/internal/scene"
	"github.com/Zachkp/portfolio/internal/storage"
	"github.com/Zachkp/portfolio/internal/theme"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open preferences database: ", err)
	}
	defer db.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("Failed to create screen: ", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("Failed to initialize screen: ", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Logging to stderr would scribble over the screen.
	log.SetOutput(io.Discard)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	themes, _ := theme.NewStore(ctx, storage.Preference{DB: db, Key: storage.ThemeKey})

	click := haptics.NewClick()
	sc := scene.New(ctx, themes, scene.Options{
		Motion:  cfg.Motion,
		Haptics: haptics.Multi{haptics.Bell{Screen: screen}, click},
	})
	defer sc.Close()

	a := newApp(screen, sc)

	// A terminal cell is about cellW pixels wide.
	width, _ := screen.Size()
	load := sc.LoadFigure(ctx, figure.Loader{Delay: cfg.FigureDelay, Policy: cfg.Figure},
		figure.DetectCapability(int(float64(width)*cellW)))
	a.loading = load

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := sc.Run(gctx, cfg.FrameRate); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		a.run(gctx)
		return nil
	})

	err = g.Wait()
	load.Cancel()
	screen.Fini()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("termfolio: ", err)
	}
}
