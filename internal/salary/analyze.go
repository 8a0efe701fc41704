package salary

import (
	"context"
	"log"

	"github.com/jobdeck/jobdeck/internal/currency"
	"github.com/jobdeck/jobdeck/internal/location"
)

// Analysis is the quick, deterministic screening of a salary string against
// a location: no AI call, bracket arithmetic only.
type Analysis struct {
	Figure         Figure           `json:"figure"`
	Location       location.Profile `json:"location"`
	GrossAnnualUSD float64          `json:"grossAnnualUsd"`
	NetAnnualUSD   float64          `json:"netAnnualUsd"`
	EffectiveRate  float64          `json:"effectiveRate"`
	Comfort        ComfortResult    `json:"comfort"`
	Budget         Budget           `json:"budget"`
	Confidence     float64          `json:"confidence"`
	GrossDisplay   string           `json:"grossDisplay"`
	NetDisplay     string           `json:"netDisplay"`
}

// Analyzer runs the deterministic salary screening pipeline:
// parse -> resolve location -> normalize to USD -> estimate net -> score.
type Analyzer struct {
	resolver  *location.Resolver
	converter *currency.Converter
}

func NewAnalyzer(resolver *location.Resolver, converter *currency.Converter) *Analyzer {
	return &Analyzer{resolver: resolver, converter: converter}
}

// Analyze returns nil when the salary text carries no parseable figure;
// a missing salary is handled gracefully, not as an error.
func (a *Analyzer) Analyze(ctx context.Context, salaryText, locationText string) *Analysis {
	fig := Parse(salaryText)
	if fig == nil {
		log.Printf("📊 No parseable salary in %q, skipping analysis", salaryText)
		return nil
	}

	profile := a.resolver.Resolve(ctx, locationText)
	confidence := profile.Confidence

	grossAnnual := fig.Annualized()

	grossUSD := grossAnnual
	if fig.Currency != "USD" {
		conv := a.converter.Convert(ctx, grossAnnual, fig.Currency, "USD")
		if conv != nil {
			grossUSD = conv.Converted
		} else {
			// Conversion unavailable: keep the raw amount and flag the
			// degraded answer instead of failing the whole analysis.
			confidence *= 0.5
		}
	}

	// Net estimate runs on the location's own brackets, so tax the amount in
	// the local currency and convert the result.
	netLocal, _, effectiveRate := EstimateNet(grossAnnual, a.resolveTaxProfile(fig, profile))
	netUSD := grossUSD
	if grossAnnual > 0 {
		netUSD = grossUSD * (netLocal / grossAnnual)
	}

	comfort := Score(netUSD, profile)

	return &Analysis{
		Figure:         *fig,
		Location:       profile,
		GrossAnnualUSD: grossUSD,
		NetAnnualUSD:   netUSD,
		EffectiveRate:  effectiveRate,
		Comfort:        comfort,
		Budget:         MonthlyBudget(netUSD/12, profile),
		Confidence:     confidence,
		GrossDisplay:   currency.Format(grossUSD, "USD"),
		NetDisplay:     currency.Format(netUSD, "USD"),
	}
}

// resolveTaxProfile guards against taxing a salary quoted in one currency
// with brackets denominated in another: when they disagree, fall back to the
// salary currency's country profile if we know it.
func (a *Analyzer) resolveTaxProfile(fig *Figure, profile location.Profile) location.Profile {
	if fig.Currency == profile.Currency {
		return profile
	}
	if alt := location.ByCurrency(fig.Currency); alt != nil {
		return *alt
	}
	return profile
}
