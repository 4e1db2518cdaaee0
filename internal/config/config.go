package config

import (
	"fmt"
	"time"

	"github.com/sukalov/lyricplayer/internal/player"
	"github.com/sukalov/lyricplayer/internal/utils"
)

const DefaultLinePause = 300 * time.Millisecond

const (
	envCharDelay  = "LYRICS_CHAR_DELAY"
	envIntroPause = "LYRICS_INTRO_PAUSE"
	envLinePause  = "LYRICS_LINE_PAUSE"
	envTitle      = "LYRICS_TITLE"
)

type Config struct {
	Timing player.Timing
	// LinePause applies to lines that come without their own pause, such
	// as lyrics fetched from a web page.
	LinePause time.Duration
	// Title replaces the song's own banner when set.
	Title string

	RedisEnabled bool
	DBEnabled    bool
	LogChannel   bool
}

// Load reads the optional LYRICS_* variables (and .env) on top of the
// defaults.
func Load() (Config, error) {
	cfg := Config{
		Timing:    player.DefaultTiming(),
		LinePause: DefaultLinePause,
	}

	env := utils.LookupEnv([]string{
		envCharDelay, envIntroPause, envLinePause, envTitle,
		"REDIS_URL", "REDIS_PASSWORD",
		"TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN",
		"LOG_BOT_TOKEN", "LOG_CHANNEL_ID",
	})

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{envCharDelay, &cfg.Timing.CharDelay},
		{envIntroPause, &cfg.Timing.IntroPause},
		{envLinePause, &cfg.LinePause},
	}
	for _, d := range durations {
		value, ok := env[d.key]
		if !ok {
			continue
		}
		parsed, err := utils.ParseSeconds(value)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	cfg.Title = env[envTitle]

	integrations := []struct {
		enabled *bool
		keys    [2]string
	}{
		{&cfg.RedisEnabled, [2]string{"REDIS_URL", "REDIS_PASSWORD"}},
		{&cfg.DBEnabled, [2]string{"TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN"}},
		{&cfg.LogChannel, [2]string{"LOG_BOT_TOKEN", "LOG_CHANNEL_ID"}},
	}
	for _, pair := range integrations {
		_, first := env[pair.keys[0]]
		_, second := env[pair.keys[1]]
		if first != second {
			set, missing := pair.keys[0], pair.keys[1]
			if second {
				set, missing = missing, set
			}
			return Config{}, fmt.Errorf("%s is set but %s is missing", set, missing)
		}
		*pair.enabled = first
	}

	return cfg, nil
}
