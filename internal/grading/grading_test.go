package grading

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmfast/platform/pkg/logging"
)

const sampleReply = `{
  "crop_type": "Tomato",
  "grade": "B",
  "confidence": 82,
  "shelf_life_days": 5,
  "quality_factors": {
    "color": "good red color",
    "surface": "minor surface marks",
    "uniformity": "mostly uniform"
  },
  "price_range_min": 14,
  "price_range_max": 16,
  "hindi_summary": "आपके टमाटर अच्छी क्वालिटी के हैं।"
}`

func TestParseResult(t *testing.T) {
	result, err := parseResult(sampleReply)
	require.NoError(t, err)

	assert.Equal(t, "Tomato", result.CropType)
	assert.Equal(t, GradeB, result.Grade)
	assert.Equal(t, 5, result.ShelfLifeDays)
	assert.Equal(t, float64(14), result.PriceRangeMin)
	assert.Equal(t, "good red color", result.QualityFactors.Color)
}

func TestParseResult_CodeFences(t *testing.T) {
	fenced := "```json\n" + sampleReply + "\n```"
	result, err := parseResult(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Tomato", result.CropType)
}

func TestParseResult_LowercaseGrade(t *testing.T) {
	result, err := parseResult(`{"crop_type":"Onion","grade":"a","hindi_summary":"ठीक है"}`)
	require.NoError(t, err)
	assert.Equal(t, GradeA, result.Grade)
}

func TestParseResult_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"not json":       "sorry, I cannot grade this image",
		"missing fields": `{"grade":"A"}`,
		"unknown grade":  `{"crop_type":"Tomato","grade":"D","hindi_summary":"x"}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseResult(input)
			assert.Error(t, err)
		})
	}
}

type stubGrader struct {
	result *Result
	err    error
	calls  int
}

func (s *stubGrader) Grade(ctx context.Context, image []byte) (*Result, error) {
	s.calls++
	return s.result, s.err
}

func TestFallbackGrader_PrimarySucceeds(t *testing.T) {
	primary := &stubGrader{result: &Result{CropType: "Tomato", Grade: GradeA}}
	fallback := &stubGrader{result: &Result{CropType: "Onion", Grade: GradeB}}

	g := NewFallbackGrader(primary, fallback, logging.Default())
	result, err := g.Grade(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "Tomato", result.CropType)
	assert.Zero(t, fallback.calls)
}

func TestFallbackGrader_FallsBack(t *testing.T) {
	primary := &stubGrader{err: errors.New("bedrock down")}
	fallback := &stubGrader{result: &Result{CropType: "Onion", Grade: GradeB}}

	g := NewFallbackGrader(primary, fallback, logging.Default())
	result, err := g.Grade(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "Onion", result.CropType)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestFallbackGrader_BothFail(t *testing.T) {
	primary := &stubGrader{err: errors.New("bedrock down")}
	fallback := &stubGrader{err: errors.New("gemini down")}

	g := NewFallbackGrader(primary, fallback, logging.Default())
	_, err := g.Grade(context.Background(), []byte("img"))
	assert.EqualError(t, err, "gemini down")
}

func TestFallbackGrader_NoFallback(t *testing.T) {
	primary := &stubGrader{err: errors.New("bedrock down")}

	g := NewFallbackGrader(primary, nil, logging.Default())
	_, err := g.Grade(context.Background(), []byte("img"))
	assert.EqualError(t, err, "bedrock down")
}
