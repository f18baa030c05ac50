package adapters

import (
	"context"
	"encoding/json"

	"story-production-api/application/ports/outbound"
	"story-production-api/config"
	"story-production-api/domain"
)

type geminiTextGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiTextGenerator(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig, logger outbound.LoggerPort) outbound.TextGeneratorPort {
	return &geminiTextGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

func (g *geminiTextGenerator) Generate(ctx context.Context, req outbound.GenerateTextRequest) (*outbound.TextResult, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Prompt}}},
		},
		SafetySettings: permissiveSafetySettings(g.geminiConfig.HarmThreshold),
	}

	if req.JSONResponse || req.ResponseSchema != nil {
		body.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.ResponseSchema,
		}
	}

	httpReq, err := newGeminiHTTPRequest(ctx, g.geminiConfig, g.geminiConfig.TextModel, body)
	if err != nil {
		g.logger.Error(err, "Failed to create the text generation request")
		return nil, err
	}

	rawRes, err := g.FetchContent(httpReq)
	if err != nil {
		g.logger.Error(err, "Failed to fetch the text generation response")
		return nil, err
	}

	var res geminiResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		g.logger.Error(err, "Failed to unmarshal the text generation response")
		return nil, domain.NewRemoteError(domain.KindMalformedOutput, "generate_text",
			"failed to unmarshal the response", err)
	}

	return &outbound.TextResult{
		Text:         res.firstText(),
		FinishReason: res.finishReason(),
	}, nil
}
