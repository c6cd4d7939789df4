// Package config reads settings from the environment (.env is loaded by the
// binaries through godotenv) and an optional YAML motion tuning file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/figure"
	"github.com/Zachkp/portfolio/internal/motion"
)

type Config struct {
	Port        string
	Env         string
	DBPath      string
	FrameRate   int
	FigureDelay time.Duration
	Figure      figure.Policy
	Motion      Motion
}

// Motion is the spring and pull-switch tuning.
type Motion struct {
	FigureSpring     motion.SpringConfig `yaml:"figure_spring"`
	RotationSpring   motion.SpringConfig `yaml:"rotation_spring"`
	DragSpring       motion.SpringConfig `yaml:"drag_spring"`
	ReleaseSpring    motion.SpringConfig `yaml:"release_spring"`
	MaxPull          float64             `yaml:"max_pull"`
	TriggerThreshold float64             `yaml:"trigger_threshold"`
}

// DefaultMotion is the tuning the page ships with.
func DefaultMotion() Motion {
	return Motion{
		FigureSpring:     motion.FigureSpring,
		RotationSpring:   motion.RotationSpring,
		DragSpring:       motion.DragSpring,
		ReleaseSpring:    motion.ReleaseSpring,
		MaxPull:          motion.MaxPull,
		TriggerThreshold: motion.TriggerThreshold,
	}
}

// Production reports whether developer diagnostics should stay quiet.
func (c Config) Production() bool { return c.Env == "production" }

// Load reads the environment and, if MOTION_CONFIG is set, the tuning file.
func Load() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		Env:         getenv("APP_ENV", "development"),
		DBPath:      getenv("DB_PATH", "data/portfolio.db"),
		FrameRate:   60,
		FigureDelay: 1500 * time.Millisecond,
		Figure:      figure.DefaultPolicy,
		Motion:      DefaultMotion(),
	}

	var err error
	if cfg.FrameRate, err = intEnv("FRAME_RATE", cfg.FrameRate); err != nil {
		return cfg, err
	}
	if cfg.Figure.MinViewportWidth, err = intEnv("FIGURE_MIN_WIDTH", cfg.Figure.MinViewportWidth); err != nil {
		return cfg, err
	}
	if cfg.Figure.MinCPUs, err = intEnv("FIGURE_MIN_CPUS", cfg.Figure.MinCPUs); err != nil {
		return cfg, err
	}
	if v := os.Getenv("FIGURE_DELAY"); v != "" {
		if cfg.FigureDelay, err = time.ParseDuration(v); err != nil {
			return cfg, fmt.Errorf("FIGURE_DELAY: %w", err)
		}
	}

	if path := os.Getenv("MOTION_CONFIG"); path != "" {
		if cfg.Motion, err = LoadMotion(path); err != nil {
			return cfg, err
		}
	}

	return cfg, cfg.Validate()
}

// LoadMotion reads a YAML tuning file. Keys left out keep their defaults.
func LoadMotion(path string) (Motion, error) {
	m := DefaultMotion()
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read motion config: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse motion config %s: %w", path, err)
	}
	return m, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.FrameRate <= 0 || c.FrameRate > 240 {
		errs = append(errs, fmt.Errorf("frame rate %d out of range (1-240)", c.FrameRate))
	}
	if c.FigureDelay < 0 {
		errs = append(errs, errors.New("figure delay must not be negative"))
	}
	springs := map[string]motion.SpringConfig{
		"figure_spring":   c.Motion.FigureSpring,
		"rotation_spring": c.Motion.RotationSpring,
		"drag_spring":     c.Motion.DragSpring,
		"release_spring":  c.Motion.ReleaseSpring,
	}
	for name, s := range springs {
		if s.Stiffness <= 0 || s.Damping <= 0 || !s.Stable() {
			errs = append(errs, fmt.Errorf("%s {%v, %v} does not settle", name, s.Stiffness, s.Damping))
		}
	}
	if c.Motion.MaxPull <= 0 {
		errs = append(errs, errors.New("max_pull must be positive"))
	}
	if c.Motion.TriggerThreshold < 0 || c.Motion.TriggerThreshold >= c.Motion.MaxPull {
		errs = append(errs, errors.New("trigger_threshold must lie below max_pull"))
	}
	return errors.Join(errs...)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
