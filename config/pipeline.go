package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultMaxRetries     = 5
	defaultInitialDelayMs = 3000
	defaultSceneDelayMs   = 1500
	defaultSplitDelayMs   = 500
)

type PipelineConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	// SceneDelay is the pause between scenes during batch media synthesis,
	// a throttle against burst rate limiting.
	SceneDelay time.Duration
	// SplitDelay is the pause between sub-scenes during a scene split.
	SplitDelay time.Duration
}

func GetPipelineConfig() (*PipelineConfig, error) {
	maxRetries, err := envOrDefaultInt("PIPELINE_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, err
	}
	initialDelayMs, err := envOrDefaultInt("PIPELINE_INITIAL_DELAY_MS", defaultInitialDelayMs)
	if err != nil {
		return nil, err
	}
	sceneDelayMs, err := envOrDefaultInt("PIPELINE_SCENE_DELAY_MS", defaultSceneDelayMs)
	if err != nil {
		return nil, err
	}
	splitDelayMs, err := envOrDefaultInt("PIPELINE_SPLIT_DELAY_MS", defaultSplitDelayMs)
	if err != nil {
		return nil, err
	}

	return &PipelineConfig{
		MaxRetries:   maxRetries,
		InitialDelay: time.Duration(initialDelayMs) * time.Millisecond,
		SceneDelay:   time.Duration(sceneDelayMs) * time.Millisecond,
		SplitDelay:   time.Duration(splitDelayMs) * time.Millisecond,
	}, nil
}

func envOrDefaultInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return value, nil
}
