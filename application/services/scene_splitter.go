package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"story-production-api/application/ports/inbound"
	"story-production-api/application/ports/outbound"
	"story-production-api/backoff"
	"story-production-api/domain"
)

const splitPromptTemplate = `You are a professional film editor.

TASK:
Split the following SINGLE scene into 2 or 3 smaller, granular scenes to improve pacing.

RULES:
1. Do NOT add new plot points or characters. Just distribute the existing text into multiple parts.
2. Adjust the wording slightly if needed for flow, but keep the original meaning 100%% intact.
3. Generate a NEW specific visual prompt for each new part based on the original visual prompt, but focusing on the specific action or emotion of that split part.
4. Keep the art style consistent: "%s".
5. Maintain character consistency details found in the original prompt.

ORIGINAL NARRATION:
"%s"

ORIGINAL VISUAL PROMPT:
"%s"`

type splitPart struct {
	Narration    string `json:"narration"`
	VisualPrompt string `json:"visualPrompt"`
}

type sceneSplitter struct {
	logger        outbound.LoggerPort
	textGenerator outbound.TextGeneratorPort
	synthesizer   inbound.SceneMediaSynthesizerPort
	retry         backoff.Config
	// subSceneDelay paces sequential media synthesis across sub-scenes.
	subSceneDelay time.Duration
}

func NewSceneSplitter(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort,
	synthesizer inbound.SceneMediaSynthesizerPort, retry backoff.Config, subSceneDelay time.Duration) inbound.SceneSplitterPort {
	return &sceneSplitter{
		logger:        logger,
		textGenerator: textGenerator,
		synthesizer:   synthesizer,
		retry:         retry,
		subSceneDelay: subSceneDelay,
	}
}

// Split obtains 2-3 replacement scenes for one scene and synthesizes media
// for each, sequentially. Unlike script generation there is no prose-JSON
// fallback: a failure here propagates to the caller as-is.
func (s *sceneSplitter) Split(ctx context.Context, params inbound.SplitSceneParams) ([]domain.StorySegment, error) {
	artStyle := params.ArtStyle
	if artStyle == "" {
		artStyle = "Cinematic"
	}
	prompt := fmt.Sprintf(splitPromptTemplate, artStyle, params.Scene.Narration, params.Scene.VisualPrompt)

	parts, err := backoff.Execute(ctx, s.logger, s.retry, func() ([]splitPart, error) {
		result, err := s.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
			Prompt:         prompt,
			ResponseSchema: splitResponseSchema(),
		})
		if err != nil {
			return nil, err
		}
		if result.Text == "" {
			return nil, domain.NewRemoteError(domain.KindRefused, "split_scene", "failed to split scene", nil)
		}

		var parts []splitPart
		if err := json.Unmarshal([]byte(result.Text), &parts); err != nil {
			return nil, domain.NewRemoteError(domain.KindMalformedOutput, "split_scene",
				"failed to parse split JSON", err)
		}
		if len(parts) == 0 {
			return nil, domain.NewRemoteError(domain.KindMalformedOutput, "split_scene",
				"split produced no scenes", nil)
		}
		return parts, nil
	})
	if err != nil {
		return nil, err
	}

	scenes := make([]domain.StorySegment, 0, len(parts))
	for i, part := range parts {
		if i > 0 && s.subSceneDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.subSceneDelay):
			}
		}

		// Sub-scene identifiers derive from the original scene, unique
		// within the production.
		scene := domain.StorySegment{
			ID:           fmt.Sprintf("%s-split-%d", params.Scene.ID, i),
			Narration:    part.Narration,
			VisualPrompt: part.VisualPrompt,
		}

		media, err := s.synthesizer.Resolve(ctx, inbound.ResolveMediaParams{
			Scene:       scene,
			AspectRatio: params.AspectRatio,
			Voice:       params.Voice,
		})
		if err != nil {
			return nil, err
		}
		scene.ImageData = media.ImageData
		scene.AudioURL = media.AudioURL

		scenes = append(scenes, scene)
	}

	return scenes, nil
}

func splitResponseSchema() *outbound.Schema {
	return &outbound.Schema{
		Type: "ARRAY",
		Items: &outbound.Schema{
			Type: "OBJECT",
			Properties: map[string]outbound.Schema{
				"narration":    {Type: "STRING"},
				"visualPrompt": {Type: "STRING"},
			},
			Required: []string{"narration", "visualPrompt"},
		},
	}
}
