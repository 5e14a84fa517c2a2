// Package grading scores produce photos with a vision model and returns a
// structured market grade the WhatsApp flow can present to the farmer.
package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Grades assigned by the vision model.
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
)

// QualityFactors describes the visual assessment behind a grade.
type QualityFactors struct {
	Color      string `json:"color"`
	Surface    string `json:"surface"`
	Uniformity string `json:"uniformity"`
}

// Result is the structured grading output for one produce image.
type Result struct {
	CropType       string         `json:"crop_type"`
	Grade          string         `json:"grade"`
	Confidence     float64        `json:"confidence"`
	ShelfLifeDays  int            `json:"shelf_life_days"`
	QualityFactors QualityFactors `json:"quality_factors"`
	PriceRangeMin  float64        `json:"price_range_min"`
	PriceRangeMax  float64        `json:"price_range_max"`
	HindiSummary   string         `json:"hindi_summary"`
}

// Grader grades a JPEG produce image.
type Grader interface {
	Grade(ctx context.Context, image []byte) (*Result, error)
}

// gradePrompt instructs the vision model. The response contract (field names,
// grade letters) is part of the observable behavior and must not drift.
const gradePrompt = `You are an expert agricultural quality inspector in India analyzing produce for market grading.

Analyze this produce image and return ONLY a valid JSON response (no markdown, no code blocks) with this exact structure:

{
  "crop_type": "name of the crop in English (e.g., Tomato, Onion, Potato)",
  "grade": "A" or "B" or "C",
  "confidence": 85,
  "shelf_life_days": 5,
  "quality_factors": {
    "color": "description of color quality",
    "surface": "description of surface condition",
    "uniformity": "description of size/shape consistency"
  },
  "price_range_min": 14,
  "price_range_max": 16,
  "hindi_summary": "One friendly sentence in Hindi explaining the grade to the farmer"
}

Grading criteria:
- Grade A (Premium): 90%+ quality, vibrant color, no visible defects, uniform size, firm texture. Price: Market rate + 15-20%
- Grade B (Standard): 70-89% quality, good color, minor surface marks acceptable, mostly uniform. Price: Market rate ± 5%
- Grade C (Economy): Below 70% quality, acceptable for processing, visible defects, size variation. Price: Market rate - 15-25%

Be realistic and honest. Most produce is Grade B. Only exceptional produce is Grade A.`

var codeFencePattern = regexp.MustCompile("```(?:json)?\n?")

// parseResult decodes a model reply into a Result, tolerating markdown code
// fences around the JSON.
func parseResult(text string) (*Result, error) {
	cleaned := strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
	if cleaned == "" {
		return nil, errors.New("grading: model returned no content")
	}

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("grading: parse model response: %w", err)
	}

	result.Grade = strings.ToUpper(strings.TrimSpace(result.Grade))
	if result.CropType == "" || result.HindiSummary == "" {
		return nil, errors.New("grading: model response missing required fields")
	}
	switch result.Grade {
	case GradeA, GradeB, GradeC:
	default:
		return nil, fmt.Errorf("grading: model returned unknown grade %q", result.Grade)
	}

	return &result, nil
}
