package location

import (
	"context"
	"log"
	"strings"
)

// TaxBracket is a marginal rate applied up to UpTo. UpTo == 0 means the
// bracket is unbounded.
type TaxBracket struct {
	UpTo float64 `json:"up_to"`
	Rate float64 `json:"rate"`
}

// SocialCharge is a flat employee-side contribution (social security,
// pension, health) expressed as a rate on gross.
type SocialCharge struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// Profile describes a resolved location: cost of living, rents and the tax
// system that applies there. Confidence reflects how the profile was found
// (1.0 exact city, 0.7 country fallback, 0.3 remote/unknown default).
type Profile struct {
	City              string         `json:"city"`
	Country           string         `json:"country"`
	Currency          string         `json:"currency"`
	CostOfLivingIndex float64        `json:"cost_of_living_index"`
	RentIndex         float64        `json:"rent_index"`
	TaxBrackets       []TaxBracket   `json:"tax_brackets"`
	SocialCharges     []SocialCharge `json:"social_charges"`
	Confidence        float64        `json:"confidence"`

	// TaxDataVerbatim, when set by an external tax lookup, supersedes the
	// static brackets and is embedded verbatim into the AI prompt.
	TaxDataVerbatim string `json:"tax_data_verbatim,omitempty"`
}

// TaxLookup supplies real tax-bracket data for a country from an external
// retrieval service. Optional; a nil lookup means static tables only.
type TaxLookup interface {
	Lookup(ctx context.Context, country string) (string, error)
}

// Resolver maps free-text location strings to profiles.
type Resolver struct {
	taxLookup TaxLookup
}

func NewResolver(taxLookup TaxLookup) *Resolver {
	return &Resolver{taxLookup: taxLookup}
}

// Resolve returns a best-effort profile for a free-text location string.
// Resolution order: exact city match, country-level fallback, remote/unknown
// default. Never fails; unknown input degrades confidence instead.
func (r *Resolver) Resolve(ctx context.Context, raw string) Profile {
	profile := r.resolveStatic(raw)

	if r.taxLookup != nil && profile.Country != "" {
		data, err := r.taxLookup.Lookup(ctx, profile.Country)
		if err != nil {
			log.Printf("🗺️  Tax lookup failed for %s, using static table: %v", profile.Country, err)
		} else if data != "" {
			profile.TaxDataVerbatim = data
		}
	}
	return profile
}

func (r *Resolver) resolveStatic(raw string) Profile {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" || normalized == "remote" {
		return remoteProfile()
	}

	// "Nancy, France" -> city="nancy", rest used for country matching
	parts := strings.Split(normalized, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if p, ok := cities[parts[0]]; ok {
		p.Confidence = 1.0
		return p
	}

	// Country fallback: any segment naming a known country
	for _, part := range parts {
		if c, ok := countries[part]; ok {
			p := c
			p.City = titleCase(parts[0])
			p.Confidence = 0.7
			return p
		}
	}

	// Last resort: whole string as a country name ("france", "united states")
	if c, ok := countries[normalized]; ok {
		p := c
		p.Confidence = 0.7
		return p
	}

	return remoteProfile()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func remoteProfile() Profile {
	return Profile{
		City:              "Remote",
		Country:           "Unknown",
		Currency:          "USD",
		CostOfLivingIndex: 70,
		RentIndex:         40,
		TaxBrackets:       countries["united states"].TaxBrackets,
		SocialCharges:     countries["united states"].SocialCharges,
		Confidence:        0.3,
	}
}
