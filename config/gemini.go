package config

import (
	"fmt"
	"os"
)

const (
	defaultGeminiApiUrl  = "https://generativelanguage.googleapis.com/v1beta"
	defaultTextModel     = "gemini-2.5-flash"
	defaultImageModel    = "gemini-2.5-flash-image"
	defaultSpeechModel   = "gemini-2.5-flash-preview-tts"
	defaultHarmThreshold = "BLOCK_NONE"
)

type GeminiConfig struct {
	ApiUrl      string
	ApiKey      string
	TextModel   string
	ImageModel  string
	SpeechModel string
	// HarmThreshold applies to every harm-category filter. The default is
	// the most permissive threshold, a deliberate content-policy choice for
	// creative fiction generation.
	HarmThreshold string
}

func GetGeminiConfig() (*GeminiConfig, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	return &GeminiConfig{
		ApiUrl:        envOrDefault("GEMINI_API_URL", defaultGeminiApiUrl),
		ApiKey:        apiKey,
		TextModel:     envOrDefault("GEMINI_TEXT_MODEL", defaultTextModel),
		ImageModel:    envOrDefault("GEMINI_IMAGE_MODEL", defaultImageModel),
		SpeechModel:   envOrDefault("GEMINI_SPEECH_MODEL", defaultSpeechModel),
		HarmThreshold: envOrDefault("GEMINI_HARM_THRESHOLD", defaultHarmThreshold),
	}, nil
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
