package dto

import "story-production-api/domain"

type SplitSceneRequest struct {
	Story      domain.StoryData `json:"story" binding:"required"`
	SceneIndex *int             `json:"sceneIndex" binding:"required"`
}

type SplitSceneResponse struct {
	Story domain.StoryData `json:"story"`
}

type RegenerateImageRequest struct {
	VisualPrompt string `json:"visualPrompt" binding:"required"`
	ArtStyle     string `json:"artStyle"`
	AspectRatio  string `json:"aspectRatio"`
}

type RegenerateImageResponse struct {
	ImageData string `json:"imageData"`
}

type RegenerateAudioRequest struct {
	Narration string `json:"narration" binding:"required"`
	Voice     string `json:"voice"`
}

type RegenerateAudioResponse struct {
	AudioURL string `json:"audioUrl"`
}
