package dto

type GenerateProductionRequest struct {
	Prompt          string `json:"prompt" binding:"required"`
	WritingStyle    string `json:"writingStyle"`
	ArtStyle        string `json:"artStyle"`
	AspectRatio     string `json:"aspectRatio"`
	TransitionStyle string `json:"transitionStyle"`
	Voice           string `json:"voice"`
	CaptionPosition string `json:"captionPosition"`
	FontSize        string `json:"fontSize"`
}
