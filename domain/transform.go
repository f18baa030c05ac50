package domain

import (
	"time"

	"github.com/google/uuid"
)

// Production mutations are expressed as pure transformations producing a new
// snapshot. The pipeline owns the production during a run, the editor
// afterwards; there is never more than one writer at a time.

func (s StoryData) cloneScenes() []StorySegment {
	scenes := make([]StorySegment, len(s.Scenes))
	copy(scenes, s.Scenes)
	return scenes
}

// WithNarration replaces the narration of the scene at index. Editing the
// narration invalidates any previously synthesized audio.
func (s StoryData) WithNarration(index int, narration string) StoryData {
	if index < 0 || index >= len(s.Scenes) {
		return s
	}
	scenes := s.cloneScenes()
	if scenes[index].Narration != narration {
		scenes[index].AudioURL = ""
	}
	scenes[index].Narration = narration
	s.Scenes = scenes
	return s
}

func (s StoryData) WithVisualPrompt(index int, prompt string) StoryData {
	if index < 0 || index >= len(s.Scenes) {
		return s
	}
	scenes := s.cloneScenes()
	scenes[index].VisualPrompt = prompt
	s.Scenes = scenes
	return s
}

func (s StoryData) WithSceneImage(index int, imageData string) StoryData {
	if index < 0 || index >= len(s.Scenes) {
		return s
	}
	scenes := s.cloneScenes()
	scenes[index].ImageData = imageData
	s.Scenes = scenes
	return s
}

func (s StoryData) WithSceneAudio(index int, audioURL string) StoryData {
	if index < 0 || index >= len(s.Scenes) {
		return s
	}
	scenes := s.cloneScenes()
	scenes[index].AudioURL = audioURL
	s.Scenes = scenes
	return s
}

func (s StoryData) WithSceneMedia(index int, media SceneMedia) StoryData {
	if index < 0 || index >= len(s.Scenes) {
		return s
	}
	scenes := s.cloneScenes()
	scenes[index].ImageData = media.ImageData
	scenes[index].AudioURL = media.AudioURL
	s.Scenes = scenes
	return s
}

// WithSceneAdded appends an empty scene with a fresh identifier. Identifiers
// are never reused after deletion.
func (s StoryData) WithSceneAdded() StoryData {
	scenes := s.cloneScenes()
	scenes = append(scenes, StorySegment{
		ID:           "scene-" + uuid.NewString(),
		Narration:    "New scene narration...",
		VisualPrompt: "Describe the visual for this scene...",
	})
	s.Scenes = scenes
	return s
}

func (s StoryData) WithSceneDeleted(index int) StoryData {
	if index < 0 || index >= len(s.Scenes) {
		return s
	}
	scenes := s.cloneScenes()
	s.Scenes = append(scenes[:index], scenes[index+1:]...)
	return s
}

// WithScenesReordered replaces the scene order wholesale.
func (s StoryData) WithScenesReordered(scenes []StorySegment) StoryData {
	reordered := make([]StorySegment, len(scenes))
	copy(reordered, scenes)
	s.Scenes = reordered
	return s
}

// WithSceneSplit splices the replacement scenes into the position of the
// original scene, preserving the surrounding order.
func (s StoryData) WithSceneSplit(index int, parts []StorySegment) StoryData {
	if index < 0 || index >= len(s.Scenes) || len(parts) == 0 {
		return s
	}
	scenes := make([]StorySegment, 0, len(s.Scenes)-1+len(parts))
	scenes = append(scenes, s.Scenes[:index]...)
	scenes = append(scenes, parts...)
	scenes = append(scenes, s.Scenes[index+1:]...)
	s.Scenes = scenes
	return s
}

// Stamped marks the production as saved now, in epoch milliseconds.
func (s StoryData) Stamped() StoryData {
	s.LastSaved = time.Now().UnixMilli()
	return s
}
