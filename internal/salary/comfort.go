package salary

import (
	"github.com/jobdeck/jobdeck/internal/currency"
	"github.com/jobdeck/jobdeck/internal/location"
)

// Comfort levels, lowest to highest.
const (
	LevelStruggling  = "struggling"
	LevelTight       = "tight"
	LevelComfortable = "comfortable"
	LevelThriving    = "thriving"
	LevelLuxurious   = "luxurious"
)

// baselineMonthlyUSD is the monthly cost of living for a single person at
// cost-of-living index 100 (New York), excluding rent extremes.
const baselineMonthlyUSD = 4000.0

// ComfortResult classifies how far a net income stretches at a location.
type ComfortResult struct {
	ComfortScore float64 `json:"comfortScore"`
	ComfortLevel string  `json:"comfortLevel"`
}

// Score derives a 0-100 comfort score and a five-tier label from annual net
// income (USD) against the location's cost-of-living index. Deterministic,
// no external calls. Monotonic in net income.
func Score(netAnnualUSD float64, profile location.Profile) ComfortResult {
	if netAnnualUSD < 0 {
		netAnnualUSD = 0
	}

	monthlyCost := profile.CostOfLivingIndex / 100 * baselineMonthlyUSD
	if monthlyCost <= 0 {
		monthlyCost = baselineMonthlyUSD
	}

	ratio := (netAnnualUSD / 12) / monthlyCost

	// Saturating curve: ratio 1 (income just covers costs) ~ 33,
	// ratio 2 ~ 50, ratio 10 ~ 83, asymptote 100.
	score := 100 * ratio / (ratio + 2)

	return ComfortResult{ComfortScore: score, ComfortLevel: levelFor(score)}
}

func levelFor(score float64) string {
	switch {
	case score < 20:
		return LevelStruggling
	case score < 40:
		return LevelTight
	case score < 60:
		return LevelComfortable
	case score < 80:
		return LevelThriving
	default:
		return LevelLuxurious
	}
}

// Budget splits a monthly net income into recommended envelopes, scaled by
// the location's rent index.
type Budget struct {
	Housing       float64 `json:"housing"`
	Essentials    float64 `json:"essentials"`
	Discretionary float64 `json:"discretionary"`
	Savings       float64 `json:"savings"`

	HousingDisplay       string `json:"housingDisplay"`
	EssentialsDisplay    string `json:"essentialsDisplay"`
	DiscretionaryDisplay string `json:"discretionaryDisplay"`
	SavingsDisplay       string `json:"savingsDisplay"`
}

// MonthlyBudget derives a budget from monthly net income (USD). Housing share
// grows with the rent index (25% at index 20, capped at 45% at index 100+).
func MonthlyBudget(monthlyNetUSD float64, profile location.Profile) Budget {
	housingShare := 0.25 + 0.20*(profile.RentIndex/100)
	if housingShare > 0.45 {
		housingShare = 0.45
	}

	housing := monthlyNetUSD * housingShare
	essentials := monthlyNetUSD * 0.30
	savings := monthlyNetUSD * 0.15
	discretionary := monthlyNetUSD - housing - essentials - savings

	return Budget{
		Housing:              housing,
		Essentials:           essentials,
		Discretionary:        discretionary,
		Savings:              savings,
		HousingDisplay:       currency.Format(housing, "USD"),
		EssentialsDisplay:    currency.Format(essentials, "USD"),
		DiscretionaryDisplay: currency.Format(discretionary, "USD"),
		SavingsDisplay:       currency.Format(savings, "USD"),
	}
}
