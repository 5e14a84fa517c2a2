// Package mandi serves wholesale market (mandi) price data for common
// commodities. Prices are curated from typical Agmarknet ranges and quoted in
// rupees per quintal; helpers convert to per-kg figures for farmer-facing
// surfaces.
package mandi

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Price is one market's daily quote for a commodity.
type Price struct {
	Commodity  string  `json:"commodity"`
	State      string  `json:"state"`
	District   string  `json:"district"`
	Market     string  `json:"market"`
	Variety    string  `json:"variety"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	ModalPrice float64 `json:"modal_price"`
	Date       string  `json:"date"`
}

// TrendPoint is one day in a commodity's price history.
type TrendPoint struct {
	Date       string  `json:"date"`
	ModalPrice float64 `json:"modal_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}

// Summary aggregates a commodity's quotes across reporting markets.
type Summary struct {
	Commodity        string  `json:"commodity"`
	AvgModalPrice    float64 `json:"avg_modal_price"`
	AvgMinPrice      float64 `json:"avg_min_price"`
	AvgMaxPrice      float64 `json:"avg_max_price"`
	PricePerKg       float64 `json:"price_per_kg"`
	Trend            string  `json:"trend"`
	TrendPct         float64 `json:"trend_pct"`
	MarketsReporting int     `json:"markets_reporting"`
}

// Trend directions.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// QuintalToKg converts a per-quintal price to per-kg, rounded to one decimal.
func QuintalToKg(pricePerQuintal float64) float64 {
	return math.Round(pricePerQuintal/100*10) / 10
}

// Service answers mandi price queries against the curated dataset.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: func() time.Time { return time.Now().UTC() }}
}

// NewServiceAt pins the service clock, used in tests.
func NewServiceAt(now func() time.Time) *Service {
	return &Service{now: now}
}

func (s *Service) dateString(daysAgo int) string {
	return s.now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
}

// Prices returns today's quotes, optionally filtered by commodity and state.
// The filters are case-insensitive; "all" or empty means no filter.
func (s *Service) Prices(commodity, state string) []Price {
	today := s.dateString(0)
	out := make([]Price, 0, len(curatedPrices))
	for _, p := range s.dataset() {
		if p.Date != today {
			continue
		}
		if commodity != "" && commodity != "all" && !strings.EqualFold(p.Commodity, commodity) {
			continue
		}
		if state != "" && state != "all" && !strings.EqualFold(p.State, state) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Commodities returns the distinct commodity names, sorted.
func (s *Service) Commodities() []string {
	return s.distinct(func(p Price) string { return p.Commodity })
}

// States returns the distinct reporting states, sorted.
func (s *Service) States() []string {
	return s.distinct(func(p Price) string { return p.State })
}

func (s *Service) distinct(key func(Price) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range s.dataset() {
		k := key(p)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Trend returns a 7-day price history for a commodity. History beyond
// yesterday is synthesized around the current modal price with a bounded
// day-of-week fluctuation.
func (s *Service) Trend(commodity string) []TrendPoint {
	var base float64
	for _, p := range s.dataset() {
		if strings.EqualFold(p.Commodity, commodity) {
			base = p.ModalPrice
			break
		}
	}
	if base == 0 {
		return nil
	}

	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		variation := 1 + math.Sin(float64(i)*1.2)*0.05
		modal := math.Round(base * variation)
		points = append(points, TrendPoint{
			Date:       s.dateString(i),
			ModalPrice: modal,
			MinPrice:   math.Round(modal * 0.7),
			MaxPrice:   math.Round(modal * 1.4),
		})
	}
	return points
}

// Summaries aggregates today's quotes per commodity and computes the
// day-over-day trend where yesterday's data exists.
func (s *Service) Summaries() []Summary {
	today := s.dateString(0)
	yesterday := s.dateString(1)

	type bucket struct {
		todayModal, todayMin, todayMax float64
		todayCount                     int
		yesterdayModal                 float64
		yesterdayCount                 int
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, p := range s.dataset() {
		b, ok := buckets[p.Commodity]
		if !ok {
			b = &bucket{}
			buckets[p.Commodity] = b
			order = append(order, p.Commodity)
		}
		switch p.Date {
		case today:
			b.todayModal += p.ModalPrice
			b.todayMin += p.MinPrice
			b.todayMax += p.MaxPrice
			b.todayCount++
		case yesterday:
			b.yesterdayModal += p.ModalPrice
			b.yesterdayCount++
		}
	}

	out := make([]Summary, 0, len(order))
	for _, commodity := range order {
		b := buckets[commodity]
		if b.todayCount == 0 {
			continue
		}
		avgModal := math.Round(b.todayModal / float64(b.todayCount))
		summary := Summary{
			Commodity:        commodity,
			AvgModalPrice:    avgModal,
			AvgMinPrice:      math.Round(b.todayMin / float64(b.todayCount)),
			AvgMaxPrice:      math.Round(b.todayMax / float64(b.todayCount)),
			PricePerKg:       QuintalToKg(avgModal),
			Trend:            TrendStable,
			MarketsReporting: b.todayCount,
		}
		if b.yesterdayCount > 0 {
			yesterdayAvg := math.Round(b.yesterdayModal / float64(b.yesterdayCount))
			summary.TrendPct = math.Round((avgModal-yesterdayAvg)/yesterdayAvg*100*10) / 10
			if summary.TrendPct > 1 {
				summary.Trend = TrendUp
			} else if summary.TrendPct < -1 {
				summary.Trend = TrendDown
			}
		}
		out = append(out, summary)
	}
	return out
}

// dataset stamps the curated rows with live dates: the main block is today's
// report, the trailing block is yesterday's for trend computation.
func (s *Service) dataset() []Price {
	today := s.dateString(0)
	yesterday := s.dateString(1)
	out := make([]Price, len(curatedPrices))
	copy(out, curatedPrices)
	for i := range out {
		if out[i].Date == "yesterday" {
			out[i].Date = yesterday
		} else {
			out[i].Date = today
		}
	}
	return out
}
