package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	fig := Parse("$100k - $150k")
	require.NotNil(t, fig)
	assert.Equal(t, 100000.0, fig.Min)
	assert.Equal(t, 150000.0, fig.Max)
	assert.Equal(t, "USD", fig.Currency)
	assert.Equal(t, "yearly", fig.Frequency)
	assert.Equal(t, 125000.0, fig.Midpoint())
}

func TestParseSingleFigureEuro(t *testing.T) {
	fig := Parse("€45,000")
	require.NotNil(t, fig)
	assert.Equal(t, 45000.0, fig.Min)
	assert.Equal(t, 45000.0, fig.Max)
	assert.Equal(t, "EUR", fig.Currency)
}

func TestParseCurrencyCode(t *testing.T) {
	fig := Parse("45000 EUR per year")
	require.NotNil(t, fig)
	assert.Equal(t, "EUR", fig.Currency)
	assert.Equal(t, 45000.0, fig.Annualized())
}

func TestParseHourly(t *testing.T) {
	fig := Parse("$25/hour")
	require.NotNil(t, fig)
	assert.Equal(t, "hourly", fig.Frequency)
	assert.Equal(t, 25.0*40*52, fig.Annualized())
}

func TestParseMonthly(t *testing.T) {
	fig := Parse("£3,000 per month")
	require.NotNil(t, fig)
	assert.Equal(t, "GBP", fig.Currency)
	assert.Equal(t, 36000.0, fig.Annualized())
}

func TestParseMillionSuffix(t *testing.T) {
	fig := Parse("$1.5m")
	require.NotNil(t, fig)
	assert.Equal(t, 1500000.0, fig.Min)
}

func TestParseNoAmount(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("competitive"))
	assert.Nil(t, Parse("DOE"))
}

func TestParseIgnoresDescendingSecondNumber(t *testing.T) {
	// "paid 80k, was 100k" style noise must not produce an inverted range
	fig := Parse("$150k - $100k")
	require.NotNil(t, fig)
	assert.Equal(t, fig.Min, fig.Max)
	assert.Equal(t, 150000.0, fig.Min)
}
