package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
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
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open preferences database: ", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	themes, err := theme.NewStore(ctx, storage.Preference{DB: db, Key: storage.ThemeKey})
	if err != nil {
		log.Printf("Could not read theme preference, using %s: %v", themes.Current(), err)
	}

	sc := scene.New(ctx, themes, scene.Options{
		Motion: cfg.Motion,
		// browsers vibrate themselves when a pull response says toggled
		Haptics: haptics.Nop{},
		Verbose: !cfg.Production(),
	})
	defer sc.Close()

	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(&server{scene: sc, themes: themes, policy: cfg.Figure, done: ctx.Done()}),
	}

	g.Go(func() error {
		log.Printf("Portfolio listening on :%s (theme %s)", cfg.Port, themes.Current())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return ignoreCancel(sc.Run(ctx, cfg.FrameRate))
	})

	// The server animates the figure for every browser wide enough to show it;
	// each browser still makes its own capability call.
	g.Go(func() error {
		loader := figure.Loader{Delay: cfg.FigureDelay, Policy: cfg.Figure}
		h := sc.LoadFigure(ctx, loader, figure.DetectCapability(cfg.Figure.MinViewportWidth))
		switch err := h.Wait(); {
		case err == nil:
			log.Println("Figure loaded")
		case errors.Is(err, figure.ErrUnsupported):
			log.Println("Figure disabled: host below capability threshold")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
