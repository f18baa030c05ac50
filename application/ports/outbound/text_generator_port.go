package outbound

import "context"

// Schema describes a structured-output shape for a text generation request,
// mirroring the remote capability's typed schema vocabulary (OBJECT, ARRAY,
// STRING, ...).
type Schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Items       *Schema           `json:"items,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

type GenerateTextRequest struct {
	Prompt string
	// JSONResponse requests an application/json response without schema
	// enforcement.
	JSONResponse bool
	// ResponseSchema, when set, requests a strictly-typed structured
	// response. Implies JSON output.
	ResponseSchema *Schema
}

type TextResult struct {
	Text         string
	FinishReason string
}

type TextGeneratorPort interface {
	Generate(ctx context.Context, req GenerateTextRequest) (*TextResult, error)
}
