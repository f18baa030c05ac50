package domain

import "fmt"

// StorySegment is one narration+visual unit of a production. ImageData and
// AudioURL are best-effort enrichments: a segment with only Narration and
// VisualPrompt is still valid for playback.
type StorySegment struct {
	ID           string  `json:"id"`
	Narration    string  `json:"narration"`
	VisualPrompt string  `json:"visualPrompt"`
	ImageData    string  `json:"imageData,omitempty"`
	AudioURL     string  `json:"audioUrl,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
}

// StoryData is a full production: title, ordered scenes and the presentation
// settings captured at generation time. It marshals to the project content
// document persisted by the cloud store, so the JSON shape must stay stable.
type StoryData struct {
	Title           string         `json:"title"`
	Scenes          []StorySegment `json:"scenes"`
	AspectRatio     string         `json:"aspectRatio,omitempty"`
	TransitionStyle string         `json:"transitionStyle,omitempty"`
	Voice           string         `json:"voice,omitempty"`
	CaptionPosition string         `json:"captionPosition,omitempty"`
	FontSize        string         `json:"fontSize,omitempty"`
	WritingStyle    string         `json:"writingStyle,omitempty"`
	ArtStyle        string         `json:"artStyle,omitempty"`
	LastSaved       int64          `json:"lastSaved,omitempty"`
	OriginalPrompt  string         `json:"originalPrompt,omitempty"`
}

// SceneMedia holds the resolved media for one scene.
type SceneMedia struct {
	ImageData string
	AudioURL  string
}

type ProductionEventType string

const (
	ProgressEventType      ProductionEventType = "progress"
	ScriptReadyEventType   ProductionEventType = "script_ready"
	SceneResolvedEventType ProductionEventType = "scene_resolved"
	CompletedEventType     ProductionEventType = "completed"
)

// ProductionEvent is emitted by the pipeline while a production run is in
// flight and streamed to the client as a server-sent event.
type ProductionEvent struct {
	Type       ProductionEventType `json:"type"`
	Progress   int                 `json:"progress"`
	Status     string              `json:"status,omitempty"`
	SceneIndex int                 `json:"sceneIndex,omitempty"`
	Scene      *StorySegment       `json:"scene,omitempty"`
	Story      *StoryData          `json:"story,omitempty"`
}

// PlaceholderImage returns the deterministic fallback image URL for a scene
// whose media synthesis failed. Seeded by the scene ID so the substitute is
// stable across reloads.
func PlaceholderImage(sceneID string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/1280/720", sceneID)
}
