package salary

import "github.com/jobdeck/jobdeck/internal/location"

// Deterministic bracket arithmetic. The AI model remains the source of truth
// for the full gross->net breakdown; these estimates bound the prompts and
// back the quick screening path in AnalyzeSalary.

// ProgressiveTax applies marginal brackets to an annual gross amount.
func ProgressiveTax(gross float64, brackets []location.TaxBracket) float64 {
	var tax, prev float64
	for _, b := range brackets {
		upper := b.UpTo
		if upper == 0 || upper > gross {
			upper = gross
		}
		if upper <= prev {
			continue
		}
		tax += (upper - prev) * b.Rate
		prev = upper
		if prev >= gross {
			break
		}
	}
	return tax
}

// SocialTotal sums the employee-side social charges on gross.
func SocialTotal(gross float64, charges []location.SocialCharge) float64 {
	var total float64
	for _, c := range charges {
		total += gross * c.Rate
	}
	return total
}

// EstimateNet computes a deterministic gross->net estimate: income tax on
// gross less a 10% standard allowance, plus social charges on full gross.
func EstimateNet(gross float64, profile location.Profile) (net, totalTax, effectiveRate float64) {
	taxable := gross * 0.9
	incomeTax := ProgressiveTax(taxable, profile.TaxBrackets)
	social := SocialTotal(gross, profile.SocialCharges)

	totalTax = incomeTax + social
	net = gross - totalTax
	if gross > 0 {
		effectiveRate = totalTax / gross * 100
	}
	return net, totalTax, effectiveRate
}

// GuardrailRange is the effective-rate window embedded into the net-income
// prompt. The model's answer is validated against its own internal
// consistency, not against this window; the window only anchors the prompt.
func GuardrailRange(gross float64, profile location.Profile) (lo, hi float64) {
	_, _, rate := EstimateNet(gross, profile)
	lo = rate - 6
	if lo < 0 {
		lo = 0
	}
	hi = rate + 6
	if hi > 60 {
		hi = 60
	}
	return lo, hi
}
