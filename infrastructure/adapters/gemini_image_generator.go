package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"story-production-api/application/ports/outbound"
	"story-production-api/config"
	"story-production-api/domain"
)

type geminiImageGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiImageGenerator(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig, logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &geminiImageGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

// Generate requests one image for the visual prompt and returns it as a data
// URI tagged with the reported MIME type.
func (g *geminiImageGenerator) Generate(ctx context.Context, req outbound.GenerateImageRequest) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: &generationConfig{
			ImageConfig: &imageConfig{AspectRatio: req.AspectRatio},
		},
		SafetySettings: permissiveSafetySettings(g.geminiConfig.HarmThreshold),
	}

	httpReq, err := newGeminiHTTPRequest(ctx, g.geminiConfig, g.geminiConfig.ImageModel, body)
	if err != nil {
		g.logger.Error(err, "Failed to create the image generation request")
		return "", err
	}

	rawRes, err := g.FetchContent(httpReq)
	if err != nil {
		g.logger.Error(err, "Failed to fetch the image generation response")
		return "", err
	}

	var res geminiResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		g.logger.Error(err, "Failed to unmarshal the image generation response")
		return "", domain.NewRemoteError(domain.KindMalformedOutput, "generate_image",
			"failed to unmarshal the response", err)
	}

	if len(res.Candidates) == 0 {
		return "", domain.NewRemoteError(domain.KindRefused, "generate_image",
			"no image generated (no candidates)", nil)
	}

	for _, part := range res.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return fmt.Sprintf("data:%s;base64,%s", part.InlineData.MimeType, part.InlineData.Data), nil
		}
	}

	return "", domain.NewRemoteError(domain.KindFatal, "generate_image",
		"no image data found in response", nil)
}
