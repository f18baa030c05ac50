package outbound

import "context"

type GenerateSpeechRequest struct {
	Text string
	// Voice is the human-readable voice label; the adapter derives the
	// remote voice identifier from its first token.
	Voice string
}

// SpeechGeneratorPort synthesizes narration and returns it as a WAV data URI.
type SpeechGeneratorPort interface {
	Generate(ctx context.Context, req GenerateSpeechRequest) (string, error)
}
