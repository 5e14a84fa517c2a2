package grading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGrader grades produce images with Google's Gemini vision API. It is
// the fallback when Bedrock is unavailable.
type GeminiGrader struct {
	client  *genai.Client
	modelID string
}

// NewGeminiGrader creates a Gemini-backed grader.
func NewGeminiGrader(ctx context.Context, apiKey, modelID string) (*GeminiGrader, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("grading: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("grading: create gemini client: %w", err)
	}

	return &GeminiGrader{client: client, modelID: modelID}, nil
}

var _ Grader = (*GeminiGrader)(nil)

func (g *GeminiGrader) Grade(ctx context.Context, image []byte) (*Result, error) {
	if len(image) == 0 {
		return nil, errors.New("grading: image is empty")
	}

	model := g.client.GenerativeModel(g.modelID)
	resp, err := model.GenerateContent(ctx,
		genai.Text(gradePrompt),
		genai.ImageData("jpeg", image),
	)
	if err != nil {
		return nil, fmt.Errorf("grading: gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("grading: gemini returned no candidates")
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	if builder.Len() == 0 {
		return nil, errors.New("grading: gemini response contained no text parts")
	}

	return parseResult(builder.String())
}

// Close releases the underlying API client.
func (g *GeminiGrader) Close() error {
	return g.client.Close()
}
