package main

import (
	"strconv"
	"strings"
)

const (
	envSampleRate = "FILTDESIGN_SAMPLE_RATE"
	envPoints     = "FILTDESIGN_POINTS"
	envLogLevel   = "FILTDESIGN_LOG_LEVEL"
)

type envDefaults struct {
	SampleRate float64
	Points     int
	LogLevel   string
}

// loadEnvDefaults reads flag defaults from the environment. Unset or
// unparsable values keep the built-in default.
func loadEnvDefaults(getenv func(string) string) envDefaults {
	d := envDefaults{SampleRate: 48000, Points: 512, LogLevel: "warn"}

	if v, err := strconv.ParseFloat(strings.TrimSpace(getenv(envSampleRate)), 64); err == nil && v > 0 {
		d.SampleRate = v
	}

	if v, err := strconv.Atoi(strings.TrimSpace(getenv(envPoints))); err == nil && v >= 2 {
		d.Points = v
	}

	if v := strings.ToLower(strings.TrimSpace(getenv(envLogLevel))); v != "" {
		if _, err := ResolveLogLevel(v); err == nil {
			d.LogLevel = v
		}
	}

	return d
}
