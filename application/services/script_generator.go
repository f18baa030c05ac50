package services

import (
	"context"
	"encoding/json"
	"fmt"

	"story-production-api/application/ports/inbound"
	"story-production-api/application/ports/outbound"
	"story-production-api/backoff"
	"story-production-api/domain"
)

const scriptPromptTemplate = `You are an expert storyteller and visual director.

TASK:
1. Rewrite the following raw story to be "%s". Make it engaging, coherent, and suitable for a short video format.
2. FIRST, identify the main character(s) and define a consistent, detailed visual description for them including clothing, hair color, facial features, and accessories (e.g., "A young cyber-hacker with neon green hair...").
3. Split the rewritten story into 5 to 8 distinct visual scenes.
4. For each scene, provide the "narration" text (the story part) and a "visualPrompt" for an image generator.

CRITICAL CONSISTENCY RULE:
You MUST include the FULL visual description of the main character defined in step 2 in EVERY single "visualPrompt". Do not assume the image generator knows who "the character" is.

ART STYLE:
The "visualPrompt" should describe the scene in the style of "%s".

TIMING:
Keep "narration" concise enough to be read in about 5-8 seconds per scene.

RAW STORY:
%s`

const rawJSONInstruction = "\n\nIMPORTANT: Return the result as valid JSON matching the structure: { title: string, scenes: [{ narration: string, visualPrompt: string }] }"

type scriptPayload struct {
	Title  string `json:"title"`
	Scenes []struct {
		Narration    string `json:"narration"`
		VisualPrompt string `json:"visualPrompt"`
	} `json:"scenes"`
}

// generationStrategy is one way of obtaining the script from the remote
// model. Strategies are tried in order until one yields text.
type generationStrategy interface {
	Name() string
	Generate(ctx context.Context, basePrompt string) (*outbound.TextResult, error)
}

// structuredSchemaStrategy requests a strictly-typed structured response.
type structuredSchemaStrategy struct {
	textGenerator outbound.TextGeneratorPort
}

func (s *structuredSchemaStrategy) Name() string {
	return "structured_schema"
}

func (s *structuredSchemaStrategy) Generate(ctx context.Context, basePrompt string) (*outbound.TextResult, error) {
	result, err := s.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt:         basePrompt,
		ResponseSchema: scriptResponseSchema(),
	})
	if err != nil {
		return nil, err
	}
	if result.Text == "" {
		return nil, domain.NewRemoteError(domain.KindRefused, "generate_script",
			fmt.Sprintf("model returned an empty response, finish reason: %s", result.FinishReason), nil)
	}
	return result, nil
}

// rawJSONStrategy relaxes validation: the shape is described only in prose
// inside the prompt. This bypasses strict-schema issues that often produce
// empty responses on creative tasks.
type rawJSONStrategy struct {
	textGenerator outbound.TextGeneratorPort
}

func (s *rawJSONStrategy) Name() string {
	return "raw_json"
}

func (s *rawJSONStrategy) Generate(ctx context.Context, basePrompt string) (*outbound.TextResult, error) {
	result, err := s.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt:       basePrompt + rawJSONInstruction,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}
	if result.Text == "" {
		return nil, domain.NewRemoteError(domain.KindRefused, "generate_script",
			fmt.Sprintf("model returned an empty response, finish reason: %s", result.FinishReason), nil)
	}
	return result, nil
}

func scriptResponseSchema() *outbound.Schema {
	return &outbound.Schema{
		Type: "OBJECT",
		Properties: map[string]outbound.Schema{
			"title": {Type: "STRING", Description: "A catchy title for the story"},
			"scenes": {
				Type: "ARRAY",
				Items: &outbound.Schema{
					Type: "OBJECT",
					Properties: map[string]outbound.Schema{
						"narration":    {Type: "STRING", Description: "The text to be displayed for this scene"},
						"visualPrompt": {Type: "STRING", Description: "Detailed image generation prompt for this scene"},
					},
					Required: []string{"narration", "visualPrompt"},
				},
			},
		},
		Required: []string{"title", "scenes"},
	}
}

type scriptGenerator struct {
	logger     outbound.LoggerPort
	strategies []generationStrategy
	retry      backoff.Config
}

func NewScriptGenerator(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort, retry backoff.Config) inbound.ScriptGeneratorPort {
	return &scriptGenerator{
		logger: logger,
		strategies: []generationStrategy{
			&structuredSchemaStrategy{textGenerator: textGenerator},
			&rawJSONStrategy{textGenerator: textGenerator},
		},
		retry: retry,
	}
}

// Generate runs the ordered strategy list as a single retryable unit: a
// strategy failure cascades into the next strategy within the same attempt,
// and the whole cascade is retried on retryable errors.
func (s *scriptGenerator) Generate(ctx context.Context, params inbound.GenerateScriptParams) (*domain.StoryData, error) {
	basePrompt := fmt.Sprintf(scriptPromptTemplate, params.WritingStyle, params.ArtStyle, params.RawStory)

	story, err := backoff.Execute(ctx, s.logger, s.retry, func() (*domain.StoryData, error) {
		var lastErr error
		for _, strategy := range s.strategies {
			result, err := strategy.Generate(ctx, basePrompt)
			if err == nil {
				var story *domain.StoryData
				story, err = s.parseScript(result.Text)
				if err == nil {
					return story, nil
				}
			}
			s.logger.WarnWithFields("generation strategy failed", map[string]interface{}{
				"strategy": strategy.Name(),
				"error":    err.Error(),
			})
			lastErr = err
		}
		return nil, lastErr
	})
	if err != nil {
		return nil, err
	}

	// Fresh generations get sequential scene identifiers. These are not
	// stable across later edits.
	for i := range story.Scenes {
		story.Scenes[i].ID = fmt.Sprintf("scene-%d", i)
	}

	return story, nil
}

func (s *scriptGenerator) parseScript(text string) (*domain.StoryData, error) {
	var payload scriptPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, domain.NewRemoteError(domain.KindMalformedOutput, "generate_script",
			"failed to parse script JSON", err)
	}
	if len(payload.Scenes) == 0 {
		return nil, domain.NewRemoteError(domain.KindMalformedOutput, "generate_script",
			"script contains no scenes", nil)
	}

	story := &domain.StoryData{
		Title:  payload.Title,
		Scenes: make([]domain.StorySegment, 0, len(payload.Scenes)),
	}
	for _, scene := range payload.Scenes {
		story.Scenes = append(story.Scenes, domain.StorySegment{
			Narration:    scene.Narration,
			VisualPrompt: scene.VisualPrompt,
		})
	}

	return story, nil
}
