package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExactCity(t *testing.T) {
	r := NewResolver(nil)

	p := r.Resolve(context.Background(), "Nancy, France")
	assert.Equal(t, "Nancy", p.City)
	assert.Equal(t, "France", p.Country)
	assert.Equal(t, "EUR", p.Currency)
	assert.Equal(t, 1.0, p.Confidence)
	require.NotEmpty(t, p.TaxBrackets)
	require.NotEmpty(t, p.SocialCharges)
}

func TestResolveCaseInsensitive(t *testing.T) {
	r := NewResolver(nil)

	p := r.Resolve(context.Background(), "  NEW YORK  ")
	assert.Equal(t, "New York", p.City)
	assert.Equal(t, 1.0, p.Confidence)
}

func TestResolveCountryFallback(t *testing.T) {
	r := NewResolver(nil)

	p := r.Resolve(context.Background(), "Lille, France")
	assert.Equal(t, "Lille", p.City)
	assert.Equal(t, "France", p.Country)
	assert.Equal(t, 0.7, p.Confidence)
}

func TestResolveBareCountry(t *testing.T) {
	r := NewResolver(nil)

	p := r.Resolve(context.Background(), "Germany")
	assert.Equal(t, "Germany", p.Country)
	assert.Equal(t, 0.7, p.Confidence)
}

func TestResolveUnknownDefaultsToRemote(t *testing.T) {
	r := NewResolver(nil)

	for _, input := range []string{"", "remote", "Atlantis", "somewhere nice"} {
		p := r.Resolve(context.Background(), input)
		assert.Equal(t, "Remote", p.City, "input %q", input)
		assert.Equal(t, 0.3, p.Confidence, "input %q", input)
		assert.NotEmpty(t, p.TaxBrackets, "the default still carries usable brackets")
	}
}

type fakeLookup struct {
	data string
	err  error
}

func (f fakeLookup) Lookup(context.Context, string) (string, error) {
	return f.data, f.err
}

func TestResolveTaxLookupSupersedes(t *testing.T) {
	r := NewResolver(fakeLookup{data: "2024 official brackets"})

	p := r.Resolve(context.Background(), "Paris, France")
	assert.Equal(t, "2024 official brackets", p.TaxDataVerbatim)
}

func TestResolveTaxLookupFailureFallsBack(t *testing.T) {
	r := NewResolver(fakeLookup{err: errors.New("rag unavailable")})

	p := r.Resolve(context.Background(), "Paris, France")
	assert.Empty(t, p.TaxDataVerbatim)
	assert.NotEmpty(t, p.TaxBrackets)
}

func TestByCurrency(t *testing.T) {
	p := ByCurrency("EUR")
	require.NotNil(t, p)
	assert.Equal(t, "France", p.Country)

	assert.Nil(t, ByCurrency("XXX"))
}
