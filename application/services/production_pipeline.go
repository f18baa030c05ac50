package services

import (
	"context"
	"sync/atomic"
	"time"

	"story-production-api/application/ports/inbound"
	"story-production-api/application/ports/outbound"
	"story-production-api/domain"
)

const scriptProgress = 5

type productionPipeline struct {
	logger          outbound.LoggerPort
	workerPool      outbound.TaskDispatcher
	scriptGenerator inbound.ScriptGeneratorPort
	synthesizer     inbound.SceneMediaSynthesizerPort
	sceneDelay      time.Duration
	running         atomic.Bool
}

func NewProductionPipeline(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	scriptGenerator inbound.ScriptGeneratorPort, synthesizer inbound.SceneMediaSynthesizerPort,
	sceneDelay time.Duration) inbound.ProductionPipelinePort {
	return &productionPipeline{
		logger:          logger,
		workerPool:      workerPool,
		scriptGenerator: scriptGenerator,
		synthesizer:     synthesizer,
		sceneDelay:      sceneDelay,
	}
}

// Generate runs script generation and then per-scene media synthesis.
// Script-stage failures abort the whole run and surface on the error channel.
// Per-scene media failures are absorbed: the scene keeps its place with a
// deterministic placeholder image and no audio, and the batch advances.
func (p *productionPipeline) Generate(ctx context.Context, params inbound.StartProductionParams) (<-chan domain.ProductionEvent, <-chan error) {
	out := make(chan domain.ProductionEvent)
	errCh := make(chan error, 1)

	// One pipeline run at a time per engine instance.
	if !p.running.CompareAndSwap(false, true) {
		errCh <- domain.ErrGenerationInFlight
		close(out)
		close(errCh)
		return out, errCh
	}

	err := p.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer p.running.Store(false)

		p.run(ctx, params, out, errCh)
	})
	if err != nil {
		p.running.Store(false)
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (p *productionPipeline) run(ctx context.Context, params inbound.StartProductionParams,
	out chan<- domain.ProductionEvent, errCh chan<- error) {

	if !p.emit(ctx, out, domain.ProductionEvent{
		Type:     domain.ProgressEventType,
		Progress: scriptProgress,
		Status:   "Drafting script and storyboard...",
	}) {
		return
	}

	draft, err := p.scriptGenerator.Generate(ctx, inbound.GenerateScriptParams{
		RawStory:     params.Prompt,
		WritingStyle: params.WritingStyle,
		ArtStyle:     params.ArtStyle,
	})
	if err != nil {
		p.logger.Error(err, "script generation failed, aborting production run")
		errCh <- err
		return
	}

	story := *draft
	story.AspectRatio = params.AspectRatio
	story.TransitionStyle = params.TransitionStyle
	story.Voice = params.Voice
	story.CaptionPosition = params.CaptionPosition
	story.FontSize = params.FontSize
	story.WritingStyle = params.WritingStyle
	story.ArtStyle = params.ArtStyle
	story.OriginalPrompt = params.Prompt
	story = story.Stamped()

	scriptCopy := story
	if !p.emit(ctx, out, domain.ProductionEvent{
		Type:     domain.ScriptReadyEventType,
		Progress: scriptProgress,
		Status:   "Script ready",
		Story:    &scriptCopy,
	}) {
		return
	}

	totalScenes := len(story.Scenes)
	for i := 0; i < totalScenes; i++ {
		if i > 0 && p.sceneDelay > 0 {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case <-time.After(p.sceneDelay):
			}
		}

		scene := story.Scenes[i]
		media, err := p.synthesizer.Resolve(ctx, inbound.ResolveMediaParams{
			Scene:       scene,
			AspectRatio: params.AspectRatio,
			Voice:       params.Voice,
		})
		if err != nil {
			// Degraded, not fatal: the scene keeps its place with a
			// placeholder image and no audio.
			p.logger.WarnWithFields("media synthesis failed, using placeholder", map[string]interface{}{
				"scene_id": scene.ID,
				"error":    err.Error(),
			})
			media = domain.SceneMedia{ImageData: domain.PlaceholderImage(scene.ID)}
		}
		story = story.WithSceneMedia(i, media)

		resolved := story.Scenes[i]
		progress := scriptProgress + int(float64(i+1)/float64(totalScenes)*90)
		if !p.emit(ctx, out, domain.ProductionEvent{
			Type:       domain.SceneResolvedEventType,
			Progress:   progress,
			Status:     "Production in progress",
			SceneIndex: i,
			Scene:      &resolved,
		}) {
			return
		}
	}

	story = story.Stamped()
	p.emit(ctx, out, domain.ProductionEvent{
		Type:     domain.CompletedEventType,
		Progress: 100,
		Status:   "Finalizing production...",
		Story:    &story,
	})
}

func (p *productionPipeline) emit(ctx context.Context, out chan<- domain.ProductionEvent, event domain.ProductionEvent) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- event:
		return true
	}
}
