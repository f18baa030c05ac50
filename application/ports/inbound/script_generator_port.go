package inbound

import (
	"context"

	"story-production-api/domain"
)

type GenerateScriptParams struct {
	RawStory     string
	WritingStyle string
	ArtStyle     string
}

// ScriptGeneratorPort turns a raw story into a titled, ordered scene list.
// It returns either a fully-parsed production draft or an error, never a
// partial result.
type ScriptGeneratorPort interface {
	Generate(ctx context.Context, params GenerateScriptParams) (*domain.StoryData, error)
}
