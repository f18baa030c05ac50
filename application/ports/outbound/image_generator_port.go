package outbound

import "context"

type GenerateImageRequest struct {
	Prompt      string
	AspectRatio string
}

// ImageGeneratorPort produces a base64 image data URI for a visual prompt.
type ImageGeneratorPort interface {
	Generate(ctx context.Context, req GenerateImageRequest) (string, error)
}
