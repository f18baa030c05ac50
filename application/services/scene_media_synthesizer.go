package services

import (
	"context"
	"fmt"

	"story-production-api/application/ports/inbound"
	"story-production-api/application/ports/outbound"
	"story-production-api/backoff"
	"story-production-api/channel_utils"
	"story-production-api/domain"
)

type mediaKind string

const (
	imageMediaKind mediaKind = "image"
	audioMediaKind mediaKind = "audio"
)

type mediaOutcome struct {
	kind mediaKind
	data string
	err  error
}

type sceneMediaSynthesizer struct {
	logger          outbound.LoggerPort
	imageGenerator  outbound.ImageGeneratorPort
	speechGenerator outbound.SpeechGeneratorPort
	workerPool      outbound.TaskDispatcher
	retry           backoff.Config
}

func NewSceneMediaSynthesizer(logger outbound.LoggerPort, imageGenerator outbound.ImageGeneratorPort,
	speechGenerator outbound.SpeechGeneratorPort, workerPool outbound.TaskDispatcher,
	retry backoff.Config) inbound.SceneMediaSynthesizerPort {
	return &sceneMediaSynthesizer{
		logger:          logger,
		imageGenerator:  imageGenerator,
		speechGenerator: speechGenerator,
		workerPool:      workerPool,
		retry:           retry,
	}
}

// Resolve issues the image and speech calls for one scene as two concurrently
// in-flight operations and joins them before returning. Each call carries its
// own retry budget. If either side fails the scene is not media-resolved and
// the error is returned for the caller's fallback policy.
func (s *sceneMediaSynthesizer) Resolve(ctx context.Context, params inbound.ResolveMediaParams) (domain.SceneMedia, error) {
	imageCh := make(chan mediaOutcome, 1)
	audioCh := make(chan mediaOutcome, 1)

	err := s.workerPool.Submit(func() {
		defer close(imageCh)
		data, err := s.GenerateImage(ctx, params.Scene.VisualPrompt, params.AspectRatio)
		imageCh <- mediaOutcome{kind: imageMediaKind, data: data, err: err}
	})
	if err != nil {
		return domain.SceneMedia{}, err
	}

	err = s.workerPool.Submit(func() {
		defer close(audioCh)
		data, err := s.GenerateSpeech(ctx, params.Scene.Narration, params.Voice)
		audioCh <- mediaOutcome{kind: audioMediaKind, data: data, err: err}
	})
	if err != nil {
		return domain.SceneMedia{}, err
	}

	merged, err := channel_utils.MergeChannels(s.workerPool, (<-chan mediaOutcome)(imageCh), (<-chan mediaOutcome)(audioCh))
	if err != nil {
		return domain.SceneMedia{}, err
	}

	var media domain.SceneMedia
	var firstErr error
	for outcome := range merged {
		if outcome.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s synthesis failed for scene %s: %w", outcome.kind, params.Scene.ID, outcome.err)
			}
			continue
		}
		switch outcome.kind {
		case imageMediaKind:
			media.ImageData = outcome.data
		case audioMediaKind:
			media.AudioURL = outcome.data
		}
	}

	if firstErr != nil {
		return domain.SceneMedia{}, firstErr
	}
	return media, nil
}

func (s *sceneMediaSynthesizer) GenerateImage(ctx context.Context, visualPrompt string, aspectRatio string) (string, error) {
	return backoff.Execute(ctx, s.logger, s.retry, func() (string, error) {
		return s.imageGenerator.Generate(ctx, outbound.GenerateImageRequest{
			Prompt:      visualPrompt,
			AspectRatio: aspectRatio,
		})
	})
}

func (s *sceneMediaSynthesizer) GenerateSpeech(ctx context.Context, narration string, voice string) (string, error) {
	return backoff.Execute(ctx, s.logger, s.retry, func() (string, error) {
		return s.speechGenerator.Generate(ctx, outbound.GenerateSpeechRequest{
			Text:  narration,
			Voice: voice,
		})
	})
}
