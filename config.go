package strata

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tsawler/strata/layout"
)

// Environment variables read by ConfigFromEnv
const (
	EnvGapMultiplier     = "STRATA_GAP_MULTIPLIER"
	EnvBaselineTolerance = "STRATA_BASELINE_TOLERANCE"
	EnvCaptionGap        = "STRATA_CAPTION_GAP"
	EnvMinListItems      = "STRATA_MIN_LIST_ITEMS"
	EnvBulletGlyphs      = "STRATA_BULLET_GLYPHS"
)

// ConfigFromEnv returns base with the thresholds set in the environment
// applied. Unset variables leave base unchanged; a malformed value is an
// error naming the variable.
func ConfigFromEnv(base layout.AnalyzerConfig) (layout.AnalyzerConfig, error) {
	config := base

	floats := []struct {
		name   string
		target *float64
	}{
		{EnvGapMultiplier, &config.LevelConfig.GapMultiplier},
		{EnvBaselineTolerance, &config.LineConfig.BaselineTolerance},
		{EnvCaptionGap, &config.CaptionConfig.MaxGapRatio},
	}
	for _, f := range floats {
		v, ok := os.LookupEnv(f.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return base, fmt.Errorf("invalid %s %q: want a non-negative number", f.name, v)
		}
		*f.target = parsed
	}

	if v, ok := os.LookupEnv(EnvMinListItems); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return base, fmt.Errorf("invalid %s %q: want a positive integer", EnvMinListItems, v)
		}
		config.ListConfig.MinItems = parsed
	}

	if v, ok := os.LookupEnv(EnvBulletGlyphs); ok && v != "" {
		config.BulletGlyphs = v
	}
	return config, nil
}
