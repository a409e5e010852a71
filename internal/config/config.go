package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/swiperefresh/internal/anim"
	"github.com/five82/swiperefresh/internal/refresh"
)

// Config is everything the demo reads from config.toml.
type Config struct {
	Refresh refresh.Config
	Demo    Demo
	LogFile string
}

// Demo holds settings for the terminal host and its feed.
type Demo struct {
	Theme         string
	RowHeight     int // offset units per terminal row
	IndicatorRows int
	PageSize      int
	MaxPages      int
	Latency       time.Duration
	FailEvery     int
	AutoLoad      bool
	FeedURL       string // empty uses the in-memory generator
}

const (
	defaultConfigPath    = "~/.config/swiperefresh/config.toml"
	defaultTheme         = "Nightfox"
	defaultRowHeight     = 16
	defaultIndicatorRows = 3
	defaultPageSize      = 20
	defaultMaxPages      = 3
	defaultLatency       = 800 * time.Millisecond
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Refresh: refresh.DefaultConfig(),
		Demo: Demo{
			Theme:         defaultTheme,
			RowHeight:     defaultRowHeight,
			IndicatorRows: defaultIndicatorRows,
			PageSize:      defaultPageSize,
			MaxPages:      defaultMaxPages,
			Latency:       defaultLatency,
		},
	}
}

type rawRefresh struct {
	HeaderScrollMode    string   `toml:"header_scroll_mode"`
	FooterScrollMode    string   `toml:"footer_scroll_mode"`
	RefreshEnabled      *bool    `toml:"refresh_enabled"`
	LoadMoreEnabled     *bool    `toml:"load_more_enabled"`
	RefreshTriggerRate  *float64 `toml:"refresh_trigger_rate"`
	LoadMoreTriggerRate *float64 `toml:"load_more_trigger_rate"`
	HeaderMaxOffsetRate *float64 `toml:"header_max_offset_rate"`
	FooterMaxOffsetRate *float64 `toml:"footer_max_offset_rate"`
	DragMultiplier      *float64 `toml:"drag_multiplier"`
	FinishDelayMillis   *int64   `toml:"finish_delay_ms"`
	VibrationEnabled    *bool    `toml:"vibration_enabled"`
	VibrationMillis     *int     `toml:"vibration_ms"`
	AlwaysScrollable    *bool    `toml:"always_scrollable"`
	AnimationMillis     *int64   `toml:"animation_ms"`
	Easing              string   `toml:"easing"`
}

type rawDemo struct {
	Theme         string `toml:"theme"`
	RowHeight     int    `toml:"row_height"`
	IndicatorRows int    `toml:"indicator_rows"`
	PageSize      int    `toml:"page_size"`
	MaxPages      int    `toml:"max_pages"`
	LatencyMillis *int64 `toml:"latency_ms"`
	FailEvery     int    `toml:"fail_every"`
	AutoLoad      bool   `toml:"auto_load"`
	FeedURL       string `toml:"feed_url"`
}

// Load locates and parses the config, falling back to defaults when missing.
// Engine values outside their legal ranges are rejected.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogFile string     `toml:"log_file"`
		Refresh rawRefresh `toml:"refresh"`
		Demo    rawDemo    `toml:"demo"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := applyRefresh(&cfg.Refresh, raw.Refresh); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Refresh.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	applyDemo(&cfg.Demo, raw.Demo)

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	return cfg, nil
}

func applyRefresh(dst *refresh.Config, raw rawRefresh) error {
	var err error
	if dst.HeaderScrollMode, err = refresh.ParseScrollMode(raw.HeaderScrollMode); err != nil {
		return fmt.Errorf("header_scroll_mode: %w", err)
	}
	if dst.FooterScrollMode, err = refresh.ParseScrollMode(raw.FooterScrollMode); err != nil {
		return fmt.Errorf("footer_scroll_mode: %w", err)
	}
	if name := strings.TrimSpace(raw.Easing); name != "" {
		easing := anim.ByName(strings.ToLower(name))
		if easing == nil {
			return fmt.Errorf("easing: unknown curve %q", name)
		}
		dst.Easing = easing
	}

	setBool(&dst.RefreshEnabled, raw.RefreshEnabled)
	setBool(&dst.LoadMoreEnabled, raw.LoadMoreEnabled)
	setBool(&dst.VibrationEnabled, raw.VibrationEnabled)
	setBool(&dst.AlwaysScrollable, raw.AlwaysScrollable)
	setFloat(&dst.RefreshTriggerRate, raw.RefreshTriggerRate)
	setFloat(&dst.LoadMoreTriggerRate, raw.LoadMoreTriggerRate)
	setFloat(&dst.HeaderMaxOffsetRate, raw.HeaderMaxOffsetRate)
	setFloat(&dst.FooterMaxOffsetRate, raw.FooterMaxOffsetRate)
	setFloat(&dst.DragMultiplier, raw.DragMultiplier)
	if err := setMillis(&dst.FinishDelay, raw.FinishDelayMillis); err != nil {
		return fmt.Errorf("finish_delay_ms: %w", err)
	}
	if err := setMillis(&dst.AnimationDuration, raw.AnimationMillis); err != nil {
		return fmt.Errorf("animation_ms: %w", err)
	}
	if raw.VibrationMillis != nil {
		dst.VibrationMillis = *raw.VibrationMillis
	}
	return nil
}

func applyDemo(dst *Demo, raw rawDemo) {
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		dst.Theme = theme
	}
	if raw.RowHeight > 0 {
		dst.RowHeight = raw.RowHeight
	}
	if raw.IndicatorRows > 0 {
		dst.IndicatorRows = raw.IndicatorRows
	}
	if raw.PageSize > 0 {
		dst.PageSize = raw.PageSize
	}
	if raw.MaxPages > 0 {
		dst.MaxPages = raw.MaxPages
	}
	if raw.LatencyMillis != nil && *raw.LatencyMillis >= 0 {
		dst.Latency = time.Duration(*raw.LatencyMillis) * time.Millisecond
	}
	if raw.FailEvery > 0 {
		dst.FailEvery = raw.FailEvery
	}
	dst.AutoLoad = raw.AutoLoad
	dst.FeedURL = strings.TrimSpace(raw.FeedURL)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

func setMillis(dst *time.Duration, v *int64) error {
	if v == nil {
		return nil
	}
	if *v > maxMillis || *v < -maxMillis {
		return fmt.Errorf("%d out of range", *v)
	}
	*dst = time.Duration(*v) * time.Millisecond
	return nil
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
