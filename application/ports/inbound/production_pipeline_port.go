package inbound

import (
	"context"

	"story-production-api/domain"
)

type StartProductionParams struct {
	Prompt          string
	WritingStyle    string
	ArtStyle        string
	AspectRatio     string
	TransitionStyle string
	Voice           string
	CaptionPosition string
	FontSize        string
}

// ProductionPipelinePort runs the full story-production pipeline: script
// generation, then per-scene media synthesis with graceful per-scene
// degradation. Events report monotonically increasing progress; a
// pipeline-fatal failure arrives on the error channel instead of a
// completion event.
type ProductionPipelinePort interface {
	Generate(ctx context.Context, params StartProductionParams) (<-chan domain.ProductionEvent, <-chan error)
}
