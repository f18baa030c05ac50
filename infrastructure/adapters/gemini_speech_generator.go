package adapters

import (
	"context"
	"encoding/json"
	"strings"

	"story-production-api/application/ports/outbound"
	"story-production-api/config"
	"story-production-api/domain"
	"story-production-api/wavcodec"
)

type geminiSpeechGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiSpeechGenerator(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig, logger outbound.LoggerPort) outbound.SpeechGeneratorPort {
	return &geminiSpeechGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

// Generate synthesizes the narration and returns a WAV data URI. The speech
// capability returns raw 24kHz mono 16-bit PCM; the container is built by
// wavcodec.
func (g *geminiSpeechGenerator) Generate(ctx context.Context, req outbound.GenerateSpeechRequest) (string, error) {
	// Voice labels read "Kore (Female, Soothing)"; the remote identifier is
	// the first token.
	voiceName := req.Voice
	if fields := strings.Fields(req.Voice); len(fields) > 0 {
		voiceName = fields[0]
	}

	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Text}}},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: voiceName},
				},
			},
		},
	}

	httpReq, err := newGeminiHTTPRequest(ctx, g.geminiConfig, g.geminiConfig.SpeechModel, body)
	if err != nil {
		g.logger.Error(err, "Failed to create the speech synthesis request")
		return "", err
	}

	rawRes, err := g.FetchContent(httpReq)
	if err != nil {
		g.logger.Error(err, "Failed to fetch the speech synthesis response")
		return "", err
	}

	var res geminiResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		g.logger.Error(err, "Failed to unmarshal the speech synthesis response")
		return "", domain.NewRemoteError(domain.KindMalformedOutput, "generate_speech",
			"failed to unmarshal the response", err)
	}

	base64PCM := g.extractAudioPayload(res)
	if base64PCM == "" {
		return "", domain.NewRemoteError(domain.KindFatal, "generate_speech",
			"no audio generated", nil)
	}

	audioURL, err := wavcodec.DataURIFromBase64PCM(base64PCM)
	if err != nil {
		return "", domain.NewRemoteError(domain.KindMalformedOutput, "generate_speech",
			"invalid audio payload", err)
	}

	return audioURL, nil
}

func (g *geminiSpeechGenerator) extractAudioPayload(res geminiResponse) string {
	if len(res.Candidates) == 0 {
		return ""
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return part.InlineData.Data
		}
	}
	return ""
}
