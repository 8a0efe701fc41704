package salary

import (
	"regexp"
	"strconv"
	"strings"
)

// Figure is a salary parsed from free text. Min == Max means a fixed salary.
type Figure struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Currency  string  `json:"currency"`
	Frequency string  `json:"frequency"` // yearly | monthly | hourly
}

var amountRe = regexp.MustCompile(`(?i)([0-9][0-9,]*(?:\.[0-9]+)?)\s*([km])?`)

var currencyCodes = map[string]string{
	"usd": "USD", "eur": "EUR", "gbp": "GBP", "jpy": "JPY",
	"inr": "INR", "krw": "KRW", "cad": "CAD", "aud": "AUD", "chf": "CHF",
}

// Parse turns heterogeneous salary strings into a structured figure.
// Handles ranges ("$100k - $150k"), single figures ("€45,000"), currency
// symbols and codes, k/m suffixes, and hourly/monthly markers. Returns nil
// when the text carries no parseable amount; callers treat that as "no
// salary available", not as an error.
func Parse(text string) *Figure {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	fig := &Figure{Currency: detectCurrency(text), Frequency: detectFrequency(text)}

	var amounts []float64
	for _, m := range amountRe.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "k":
			v *= 1_000
		case "m":
			v *= 1_000_000
		}
		amounts = append(amounts, v)
	}
	if len(amounts) == 0 {
		return nil
	}

	fig.Min = amounts[0]
	fig.Max = amounts[0]
	if len(amounts) > 1 && amounts[1] >= amounts[0] {
		fig.Max = amounts[1]
	}
	return fig
}

// Midpoint is the representative single figure for a parsed salary.
func (f *Figure) Midpoint() float64 {
	return (f.Min + f.Max) / 2
}

// Annualized converts the midpoint to a yearly amount.
func (f *Figure) Annualized() float64 {
	mid := f.Midpoint()
	switch f.Frequency {
	case "hourly":
		return mid * 40 * 52
	case "monthly":
		return mid * 12
	default:
		return mid
	}
}

func detectCurrency(text string) string {
	switch {
	case strings.Contains(text, "€"):
		return "EUR"
	case strings.Contains(text, "£"):
		return "GBP"
	case strings.Contains(text, "₹"):
		return "INR"
	case strings.Contains(text, "₩"):
		return "KRW"
	case strings.Contains(text, "¥"):
		return "JPY"
	}
	lower := strings.ToLower(text)
	for code, canonical := range currencyCodes {
		if strings.Contains(lower, code) {
			return canonical
		}
	}
	return "USD"
}

func detectFrequency(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "/hr"), strings.Contains(lower, "/hour"),
		strings.Contains(lower, "per hour"), strings.Contains(lower, "hourly"):
		return "hourly"
	case strings.Contains(lower, "/mo"), strings.Contains(lower, "/month"),
		strings.Contains(lower, "per month"), strings.Contains(lower, "monthly"):
		return "monthly"
	default:
		return "yearly"
	}
}
