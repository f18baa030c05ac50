package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"story-production-api/application/ports/outbound"
	"story-production-api/config"
	"story-production-api/domain"
)

func testGeminiConfig(url string) *config.GeminiConfig {
	return &config.GeminiConfig{
		ApiUrl:        url,
		ApiKey:        "test-key",
		TextModel:     "text-model",
		ImageModel:    "image-model",
		SpeechModel:   "speech-model",
		HarmThreshold: "BLOCK_NONE",
	}
}

func textResponse(text string, finishReason string) string {
	res := geminiResponse{
		Candidates: []geminiCandidate{
			{
				Content:      geminiContent{Parts: []geminiPart{{Text: text}}},
				FinishReason: finishReason,
			},
		},
	}
	payload, _ := json.Marshal(res)
	return string(payload)
}

func inlineDataResponse(mimeType string, data string) string {
	res := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{InlineData: &inlineData{MimeType: mimeType, Data: data}}}}},
		},
	}
	payload, _ := json.Marshal(res)
	return string(payload)
}

func TestGeminiTextGenerator_SendsSchemaAndKey(t *testing.T) {
	logger := NewZerologWrapper()

	var gotPath, gotKey, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(textResponse(`{"title":"T"}`, "STOP")))
	}))
	defer server.Close()

	generator := NewGeminiTextGenerator(NewContentFetcher(logger), testGeminiConfig(server.URL), logger)

	result, err := generator.Generate(context.Background(), outbound.GenerateTextRequest{
		Prompt: "Write a story.",
		ResponseSchema: &outbound.Schema{
			Type: "OBJECT",
			Properties: map[string]outbound.Schema{
				"title": {Type: "STRING"},
			},
			Required: []string{"title"},
		},
	})
	if err != nil {
		t.Fatal("generate failed:", err)
	}
	if result.Text != `{"title":"T"}` || result.FinishReason != "STOP" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if gotPath != "/models/text-model:generateContent" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header: %s", gotKey)
	}
	for _, fragment := range []string{`"responseMimeType":"application/json"`, `"responseSchema"`, `"safetySettings"`, "BLOCK_NONE"} {
		if !strings.Contains(gotBody, fragment) {
			t.Fatalf("request body is missing %s: %s", fragment, gotBody)
		}
	}
}

func TestGeminiImageGenerator_ReturnsDataURI(t *testing.T) {
	logger := NewZerologWrapper()

	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(inlineDataResponse("image/png", "aW1hZ2U=")))
	}))
	defer server.Close()

	generator := NewGeminiImageGenerator(NewContentFetcher(logger), testGeminiConfig(server.URL), logger)

	uri, err := generator.Generate(context.Background(), outbound.GenerateImageRequest{Prompt: "a glowing seed", AspectRatio: "16:9"})
	if err != nil {
		t.Fatal("generate failed:", err)
	}
	if uri != "data:image/png;base64,aW1hZ2U=" {
		t.Fatalf("unexpected data URI: %s", uri)
	}
	if !strings.Contains(gotBody, `"aspectRatio":"16:9"`) {
		t.Fatalf("request body is missing the aspect ratio: %s", gotBody)
	}
}

func TestGeminiImageGenerator_RateLimitedIsRetryable(t *testing.T) {
	logger := NewZerologWrapper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	generator := NewGeminiImageGenerator(NewContentFetcher(logger), testGeminiConfig(server.URL), logger)

	_, err := generator.Generate(context.Background(), outbound.GenerateImageRequest{Prompt: "p", AspectRatio: "1:1"})
	if err == nil {
		t.Fatal("expected an error")
	}
	var remoteErr *domain.RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Kind != domain.KindRateLimited {
		t.Fatalf("expected a rate-limited remote error, got %v", err)
	}
	if !domain.IsRetryable(err) {
		t.Fatal("rate limiting must be retryable")
	}
}

func TestGeminiImageGenerator_NoCandidatesIsRefused(t *testing.T) {
	logger := NewZerologWrapper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	generator := NewGeminiImageGenerator(NewContentFetcher(logger), testGeminiConfig(server.URL), logger)

	_, err := generator.Generate(context.Background(), outbound.GenerateImageRequest{Prompt: "p", AspectRatio: "1:1"})
	var remoteErr *domain.RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Kind != domain.KindRefused {
		t.Fatalf("expected a refused remote error, got %v", err)
	}
}

func TestGeminiSpeechGenerator_WrapsPCMInWav(t *testing.T) {
	logger := NewZerologWrapper()

	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(inlineDataResponse("audio/L16;codec=pcm;rate=24000", base64.StdEncoding.EncodeToString(pcm))))
	}))
	defer server.Close()

	generator := NewGeminiSpeechGenerator(NewContentFetcher(logger), testGeminiConfig(server.URL), logger)

	uri, err := generator.Generate(context.Background(), outbound.GenerateSpeechRequest{Text: "Once upon a time.", Voice: "Kore (Female, Soothing)"})
	if err != nil {
		t.Fatal("generate failed:", err)
	}
	if !strings.HasPrefix(uri, "data:audio/wav;base64,") {
		t.Fatalf("expected a WAV data URI, got %s", uri)
	}

	wav, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:audio/wav;base64,"))
	if err != nil {
		t.Fatal("payload is not valid base64:", err)
	}
	if string(wav[:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("payload is not a RIFF/WAVE container")
	}
	if len(wav) != 44+len(pcm) {
		t.Fatalf("expected %d container bytes, got %d", 44+len(pcm), len(wav))
	}

	// The remote voice identifier is the label's first token.
	if !strings.Contains(gotBody, `"voiceName":"Kore"`) {
		t.Fatalf("request body carries the wrong voice: %s", gotBody)
	}
	if !strings.Contains(gotBody, `"responseModalities":["AUDIO"]`) {
		t.Fatalf("request body is missing the audio modality: %s", gotBody)
	}
}

func TestGeminiSpeechGenerator_NoAudioIsFatal(t *testing.T) {
	logger := NewZerologWrapper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(textResponse("no audio here", "STOP")))
	}))
	defer server.Close()

	generator := NewGeminiSpeechGenerator(NewContentFetcher(logger), testGeminiConfig(server.URL), logger)

	_, err := generator.Generate(context.Background(), outbound.GenerateSpeechRequest{Text: "text", Voice: "Kore"})
	var remoteErr *domain.RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Kind != domain.KindFatal {
		t.Fatalf("expected a fatal remote error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no audio generated") {
		t.Fatalf("unexpected error message: %v", err)
	}
}
