package mandi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedService() *Service {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewServiceAt(func() time.Time { return at })
}

func TestQuintalToKg(t *testing.T) {
	assert.Equal(t, 12.0, QuintalToKg(1200))
	assert.Equal(t, 25.5, QuintalToKg(2550))
	assert.Equal(t, 0.0, QuintalToKg(0))
}

func TestPricesFilters(t *testing.T) {
	svc := fixedService()

	all := svc.Prices("", "")
	require.NotEmpty(t, all)
	for _, p := range all {
		assert.Equal(t, "2025-06-01", p.Date, "default view is today only")
	}

	tomatoes := svc.Prices("tomato", "")
	require.Len(t, tomatoes, 5)
	for _, p := range tomatoes {
		assert.Equal(t, "Tomato", p.Commodity)
	}

	maharashtra := svc.Prices("Tomato", "maharashtra")
	require.Len(t, maharashtra, 2)

	assert.Equal(t, all, svc.Prices("all", "all"))
	assert.Empty(t, svc.Prices("Durian", ""))
}

func TestCommoditiesAndStatesAreSortedDistinct(t *testing.T) {
	svc := fixedService()

	commodities := svc.Commodities()
	assert.Contains(t, commodities, "Tomato")
	assert.Contains(t, commodities, "Wheat")
	assert.IsIncreasing(t, commodities)

	states := svc.States()
	assert.Contains(t, states, "Maharashtra")
	assert.IsIncreasing(t, states)
}

func TestTrendCoversSevenDays(t *testing.T) {
	svc := fixedService()

	points := svc.Trend("Tomato")
	require.Len(t, points, 7)
	assert.Equal(t, "2025-05-26", points[0].Date)
	assert.Equal(t, "2025-06-01", points[6].Date)
	for _, p := range points {
		assert.Greater(t, p.ModalPrice, 0.0)
		assert.Less(t, p.MinPrice, p.MaxPrice)
	}

	assert.Nil(t, svc.Trend("Durian"))
}

func TestSummaries(t *testing.T) {
	svc := fixedService()

	summaries := svc.Summaries()
	require.NotEmpty(t, summaries)

	byName := make(map[string]Summary)
	for _, s := range summaries {
		byName[s.Commodity] = s
	}

	tomato, ok := byName["Tomato"]
	require.True(t, ok)
	assert.Equal(t, 5, tomato.MarketsReporting)
	assert.Equal(t, 1240.0, tomato.AvgModalPrice)
	assert.Equal(t, QuintalToKg(1240), tomato.PricePerKg)
	// Yesterday's single Pune quote was 1300, today's average is lower.
	assert.Equal(t, TrendDown, tomato.Trend)

	wheat, ok := byName["Wheat"]
	require.True(t, ok)
	assert.Equal(t, TrendStable, wheat.Trend)

	// Commodities without yesterday data stay stable.
	mango, ok := byName["Mango"]
	require.True(t, ok)
	assert.Equal(t, TrendStable, mango.Trend)
	assert.Zero(t, mango.TrendPct)
}
