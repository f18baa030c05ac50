package inbound

import (
	"context"

	"story-production-api/domain"
)

type SplitSceneParams struct {
	Scene       domain.StorySegment
	ArtStyle    string
	AspectRatio string
	Voice       string
}

// SceneSplitterPort subdivides one scene into 2-3 smaller scenes with their
// own media, preserving the original narrative content. The caller splices
// the result into the production.
type SceneSplitterPort interface {
	Split(ctx context.Context, params SplitSceneParams) ([]domain.StorySegment, error)
}
