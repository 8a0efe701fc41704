package salary

import (
	"context"
	"testing"

	"github.com/jobdeck/jobdeck/internal/currency"
	"github.com/jobdeck/jobdeck/internal/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYorkProfile(t *testing.T) location.Profile {
	t.Helper()
	return location.NewResolver(nil).Resolve(context.Background(), "New York")
}

func TestScoreLevels(t *testing.T) {
	profile := newYorkProfile(t)

	assert.Equal(t, LevelStruggling, Score(5000, profile).ComfortLevel)
	assert.Equal(t, LevelLuxurious, Score(5000000, profile).ComfortLevel)
}

func TestScoreMonotonic(t *testing.T) {
	profile := newYorkProfile(t)

	prev := -1.0
	for _, net := range []float64{0, 1000, 20000, 60000, 150000, 1000000, 10000000} {
		score := Score(net, profile).ComfortScore
		assert.Greater(t, score, prev, "score must grow with net income (net=%v)", net)
		prev = score
	}
}

func TestScoreBounds(t *testing.T) {
	profile := newYorkProfile(t)

	assert.GreaterOrEqual(t, Score(0, profile).ComfortScore, 0.0)
	assert.Less(t, Score(1e12, profile).ComfortScore, 100.0)
}

// The screening pipeline, end to end, with no network and no AI.
func newTestAnalyzer() *Analyzer {
	resolver := location.NewResolver(nil)
	// URLs are never hit for USD-to-USD analyses
	converter := currency.NewConverter("http://127.0.0.1:0", "http://127.0.0.1:0")
	return NewAnalyzer(resolver, converter)
}

func TestAnalyzeMissingSalaryReturnsNil(t *testing.T) {
	a := newTestAnalyzer()
	assert.Nil(t, a.Analyze(context.Background(), "", "New York"))
	assert.Nil(t, a.Analyze(context.Background(), "competitive pay", "New York"))
}

func TestAnalyzeBoundaryDollar(t *testing.T) {
	a := newTestAnalyzer()

	analysis := a.Analyze(context.Background(), "$1", "New York")
	require.NotNil(t, analysis)
	assert.Less(t, analysis.Comfort.ComfortScore, 1.0)
	assert.Equal(t, LevelStruggling, analysis.Comfort.ComfortLevel)
}

func TestAnalyzeBoundaryTenMillion(t *testing.T) {
	a := newTestAnalyzer()

	analysis := a.Analyze(context.Background(), "$10,000,000", "New York")
	require.NotNil(t, analysis)
	assert.Greater(t, analysis.Comfort.ComfortScore, 95.0)
	assert.Equal(t, LevelLuxurious, analysis.Comfort.ComfortLevel)
}

func TestAnalyzeTypicalSalary(t *testing.T) {
	a := newTestAnalyzer()

	analysis := a.Analyze(context.Background(), "$120,000 - $150,000", "New York")
	require.NotNil(t, analysis)

	assert.Equal(t, 135000.0, analysis.GrossAnnualUSD)
	assert.Less(t, analysis.NetAnnualUSD, analysis.GrossAnnualUSD)
	assert.Greater(t, analysis.NetAnnualUSD, 0.0)
	assert.Equal(t, 1.0, analysis.Confidence)

	b := analysis.Budget
	monthly := analysis.NetAnnualUSD / 12
	assert.InDelta(t, monthly, b.Housing+b.Essentials+b.Discretionary+b.Savings, 0.01)
	assert.NotEmpty(t, b.HousingDisplay)
}

func TestAnalyzeUnknownLocationDegradesConfidence(t *testing.T) {
	a := newTestAnalyzer()

	analysis := a.Analyze(context.Background(), "$90,000", "Atlantis")
	require.NotNil(t, analysis)
	assert.Equal(t, "Remote", analysis.Location.City)
	assert.Equal(t, 0.3, analysis.Confidence)
}

func TestProgressiveTax(t *testing.T) {
	brackets := []location.TaxBracket{
		{UpTo: 10000, Rate: 0},
		{UpTo: 30000, Rate: 0.10},
		{Rate: 0.20},
	}

	assert.Equal(t, 0.0, ProgressiveTax(8000, brackets))
	assert.Equal(t, 2000.0, ProgressiveTax(30000, brackets))
	assert.Equal(t, 2000.0+4000.0, ProgressiveTax(50000, brackets))
}
