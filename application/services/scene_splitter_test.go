package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"story-production-api/application/ports/inbound"
	"story-production-api/application/ports/outbound"
	"story-production-api/domain"
	"story-production-api/infrastructure/adapters"
)

type stubSynthesizer struct {
	resolved []domain.StorySegment
	failFor  string
}

func (s *stubSynthesizer) Resolve(_ context.Context, params inbound.ResolveMediaParams) (domain.SceneMedia, error) {
	if s.failFor != "" && params.Scene.ID == s.failFor {
		return domain.SceneMedia{}, fmt.Errorf("image synthesis failed for scene %s: no candidates", params.Scene.ID)
	}
	s.resolved = append(s.resolved, params.Scene)
	return domain.SceneMedia{
		ImageData: "data:image/png;base64,aW1n-" + params.Scene.ID,
		AudioURL:  "data:audio/wav;base64,YXVkaW8=",
	}, nil
}

func (s *stubSynthesizer) GenerateImage(context.Context, string, string) (string, error) {
	return "data:image/png;base64,aW1n", nil
}

func (s *stubSynthesizer) GenerateSpeech(context.Context, string, string) (string, error) {
	return "data:audio/wav;base64,YXVkaW8=", nil
}

const splitResponse = `[
	{"narration":"A.","visualPrompt":"A weathered sailor with a grey beard and a red knit cap, squinting at the horizon"},
	{"narration":"B.","visualPrompt":"A weathered sailor with a grey beard and a red knit cap, gripping the wheel"},
	{"narration":"C.","visualPrompt":"A weathered sailor with a grey beard and a red knit cap, smiling in the rain"}]`

func TestSceneSplitter_SplitPreservesNarrationContent(t *testing.T) {
	logger := adapters.NewZerologWrapper()
	textGen := &stubTextGenerator{
		responses: []func(outbound.GenerateTextRequest) (*outbound.TextResult, error){
			func(req outbound.GenerateTextRequest) (*outbound.TextResult, error) {
				if req.ResponseSchema == nil {
					t.Fatal("scene splitting must request a structured schema")
				}
				if req.ResponseSchema.Type != "ARRAY" {
					t.Fatalf("expected an array schema, got %q", req.ResponseSchema.Type)
				}
				return &outbound.TextResult{Text: splitResponse}, nil
			},
		},
	}
	synthesizer := &stubSynthesizer{}

	splitter := NewSceneSplitter(logger, textGen, synthesizer, fastRetry(), 0)

	original := domain.StorySegment{
		ID:           "scene-2",
		Narration:    "A. B. C.",
		VisualPrompt: "A weathered sailor with a grey beard and a red knit cap, at sea",
	}

	scenes, err := splitter.Split(context.Background(), inbound.SplitSceneParams{
		Scene:       original,
		ArtStyle:    domain.ArtCinematic,
		AspectRatio: domain.AspectLandscape,
		Voice:       domain.VoiceCharon,
	})
	if err != nil {
		t.Fatal("expected the split to succeed:", err)
	}

	if len(scenes) != 3 {
		t.Fatalf("expected 3 sub-scenes, got %d", len(scenes))
	}

	var rejoined []string
	for i, scene := range scenes {
		wantID := fmt.Sprintf("scene-2-split-%d", i)
		if scene.ID != wantID {
			t.Fatalf("expected sub-scene id %q, got %q", wantID, scene.ID)
		}
		if scene.ImageData == "" || scene.AudioURL == "" {
			t.Fatalf("sub-scene %s is missing media", scene.ID)
		}
		rejoined = append(rejoined, scene.Narration)
	}
	if strings.Join(rejoined, " ") != original.Narration {
		t.Fatalf("rejoined narration %q does not reproduce the original %q",
			strings.Join(rejoined, " "), original.Narration)
	}
}

func TestSceneSplitter_MediaFailurePropagates(t *testing.T) {
	logger := adapters.NewZerologWrapper()
	textGen := &stubTextGenerator{
		responses: []func(outbound.GenerateTextRequest) (*outbound.TextResult, error){
			func(outbound.GenerateTextRequest) (*outbound.TextResult, error) {
				return &outbound.TextResult{Text: splitResponse}, nil
			},
		},
	}
	synthesizer := &stubSynthesizer{failFor: "scene-2-split-1"}

	splitter := NewSceneSplitter(logger, textGen, synthesizer, fastRetry(), 0)

	// Unlike batch generation there is no placeholder fallback here: a
	// sub-scene media failure fails the whole split.
	_, err := splitter.Split(context.Background(), inbound.SplitSceneParams{
		Scene: domain.StorySegment{
			ID:           "scene-2",
			Narration:    "A. B. C.",
			VisualPrompt: "A weathered sailor at sea",
		},
		ArtStyle:    domain.ArtCinematic,
		AspectRatio: domain.AspectLandscape,
		Voice:       domain.VoiceCharon,
	})
	if err == nil {
		t.Fatal("expected a sub-scene media failure to propagate")
	}
}

func TestSceneSplitter_EmptyResponseFails(t *testing.T) {
	logger := adapters.NewZerologWrapper()

	empty := func(outbound.GenerateTextRequest) (*outbound.TextResult, error) {
		return &outbound.TextResult{Text: ""}, nil
	}
	// Refusals are retried; the stub stays empty for the whole budget.
	textGen := &stubTextGenerator{
		responses: []func(outbound.GenerateTextRequest) (*outbound.TextResult, error){
			empty, empty, empty, empty,
		},
	}

	splitter := NewSceneSplitter(logger, textGen, &stubSynthesizer{}, fastRetry(), 0)

	_, err := splitter.Split(context.Background(), inbound.SplitSceneParams{
		Scene: domain.StorySegment{ID: "scene-0", Narration: "A.", VisualPrompt: "A sailor"},
	})
	if err == nil {
		t.Fatal("expected an error when the model returns no text")
	}
	if !strings.Contains(err.Error(), "failed to split scene") {
		t.Fatalf("unexpected error %v", err)
	}
}
