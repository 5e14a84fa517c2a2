package grading

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type bedrockInvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockGrader grades produce images with a Claude vision model on Bedrock.
type BedrockGrader struct {
	api     bedrockInvokeModelAPI
	modelID string
}

// NewBedrockGrader creates a Bedrock-backed grader.
func NewBedrockGrader(api bedrockInvokeModelAPI, modelID string) *BedrockGrader {
	if api == nil {
		panic("grading: bedrock runtime client cannot be nil")
	}
	return &BedrockGrader{api: api, modelID: modelID}
}

var _ Grader = (*BedrockGrader)(nil)

type anthropicContentBlock struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Grade submits the image and prompt to the vision model and parses the
// structured grade out of the reply.
func (g *BedrockGrader) Grade(ctx context.Context, image []byte) (*Result, error) {
	if strings.TrimSpace(g.modelID) == "" {
		return nil, errors.New("grading: bedrock model id is required")
	}
	if len(image) == 0 {
		return nil, errors.New("grading: image is empty")
	}

	payload, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        1024,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicContentBlock{
					{
						Type: "image",
						Source: &anthropicImageSource{
							Type:      "base64",
							MediaType: "image/jpeg",
							Data:      base64.StdEncoding.EncodeToString(image),
						},
					},
					{
						Type: "text",
						Text: gradePrompt,
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("grading: marshal request: %w", err)
	}

	out, err := g.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("grading: bedrock invoke: %w", err)
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(out.Body, &decoded); err != nil {
		return nil, fmt.Errorf("grading: decode bedrock response: %w", err)
	}

	var builder strings.Builder
	for _, block := range decoded.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}
	if builder.Len() == 0 {
		return nil, errors.New("grading: bedrock response contained no text content")
	}

	return parseResult(builder.String())
}
