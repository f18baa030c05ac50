package mock_generator

import (
	"context"
	"time"

	"story-production-api/application/ports/outbound"
	"story-production-api/channel_utils"
	"story-production-api/domain"
)

type mediaUpdate struct {
	sceneIndex int
	kind       string
	data       string
}

// Runner replays canned fixtures as a full production run, so the event
// stream can be exercised without any generative backends configured.
type Runner struct {
	logger        outbound.LoggerPort
	workerPool    outbound.TaskDispatcher
	fixtureReader FixtureReader
}

func NewRunner(workerPool outbound.TaskDispatcher, fixtureReader FixtureReader, logger outbound.LoggerPort) *Runner {
	return &Runner{
		logger:        logger,
		workerPool:    workerPool,
		fixtureReader: fixtureReader,
	}
}

func (r *Runner) Run(ctx context.Context, prompt string) (<-chan domain.ProductionEvent, <-chan error) {
	out := make(chan domain.ProductionEvent)
	errCh := make(chan error, 1)

	err := r.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		r.run(ctx, prompt, out, errCh)
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (r *Runner) run(ctx context.Context, prompt string, out chan<- domain.ProductionEvent, errCh chan<- error) {
	script, err := r.fixtureReader.ReadScript("mock/script.json")
	if err != nil {
		r.logger.Error(err, "failed to read mock script")
		errCh <- err
		return
	}

	story := domain.StoryData{
		Title:          script.Title,
		OriginalPrompt: prompt,
	}
	for _, scene := range script.Scenes {
		story.Scenes = append(story.Scenes, domain.StorySegment{
			ID:           scene.ID,
			Narration:    scene.Narration,
			VisualPrompt: scene.VisualPrompt,
		})
	}
	story = story.Stamped()

	if !r.emit(ctx, out, domain.ProductionEvent{
		Type:     domain.ProgressEventType,
		Progress: 5,
		Status:   "Drafting script and storyboard...",
	}) {
		return
	}

	scriptCopy := story
	if !r.emit(ctx, out, domain.ProductionEvent{
		Type:     domain.ScriptReadyEventType,
		Progress: 5,
		Status:   "Script ready",
		Story:    &scriptCopy,
	}) {
		return
	}

	mediaCh, err := r.createMediaStream(ctx)
	if err != nil {
		r.logger.Error(err, "failed to stream mock media")
		errCh <- err
		return
	}

	// A scene is resolved once both its media kinds arrived.
	totalScenes := len(story.Scenes)
	arrived := make(map[int]int)
	resolvedScenes := 0
	for update := range mediaCh {
		if update.sceneIndex < 0 || update.sceneIndex >= totalScenes {
			continue
		}
		switch update.kind {
		case "image":
			story = story.WithSceneImage(update.sceneIndex, update.data)
		case "audio":
			story = story.WithSceneAudio(update.sceneIndex, update.data)
		}
		arrived[update.sceneIndex]++
		if arrived[update.sceneIndex] < 2 {
			continue
		}

		resolvedScenes++
		resolved := story.Scenes[update.sceneIndex]
		if !r.emit(ctx, out, domain.ProductionEvent{
			Type:       domain.SceneResolvedEventType,
			Progress:   5 + int(float64(resolvedScenes)/float64(totalScenes)*90),
			Status:     "Production in progress",
			SceneIndex: update.sceneIndex,
			Scene:      &resolved,
		}) {
			return
		}
	}

	story = story.Stamped()
	r.emit(ctx, out, domain.ProductionEvent{
		Type:     domain.CompletedEventType,
		Progress: 100,
		Status:   "Finalizing production...",
		Story:    &story,
	})
}

func (r *Runner) createMediaStream(ctx context.Context) (<-chan mediaUpdate, error) {
	imageCh, err := r.streamMediaFromFile(ctx, "mock/image.json", "image")
	if err != nil {
		return nil, err
	}
	audioCh, err := r.streamMediaFromFile(ctx, "mock/audio.json", "audio")
	if err != nil {
		return nil, err
	}

	return channel_utils.MergeChannels(r.workerPool, imageCh, audioCh)
}

func (r *Runner) streamMediaFromFile(ctx context.Context, fileName string, kind string) (<-chan mediaUpdate, error) {
	media, err := r.fixtureReader.ReadMedia(fileName)
	if err != nil {
		return nil, err
	}

	out := make(chan mediaUpdate)
	err = r.workerPool.Submit(func() {
		defer close(out)
		for _, m := range media {
			select {
			case <-ctx.Done():
				return
			default:
				time.Sleep(time.Duration(m.Delay) * time.Millisecond)
				out <- mediaUpdate{
					sceneIndex: m.SceneIndex,
					kind:       kind,
					data:       m.Data,
				}
			}
		}
	})

	return out, err
}

func (r *Runner) emit(ctx context.Context, out chan<- domain.ProductionEvent, event domain.ProductionEvent) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- event:
		return true
	}
}
