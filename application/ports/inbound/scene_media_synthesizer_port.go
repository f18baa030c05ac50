package inbound

import (
	"context"

	"story-production-api/domain"
)

type ResolveMediaParams struct {
	Scene       domain.StorySegment
	AspectRatio string
	Voice       string
}

// SceneMediaSynthesizerPort attaches generated media to a scene. Resolve
// issues the image and speech calls concurrently and fails if either fails;
// the caller decides the fallback policy.
type SceneMediaSynthesizerPort interface {
	Resolve(ctx context.Context, params ResolveMediaParams) (domain.SceneMedia, error)
	GenerateImage(ctx context.Context, visualPrompt string, aspectRatio string) (string, error)
	GenerateSpeech(ctx context.Context, narration string, voice string) (string, error)
}
