package salary

import (
	"context"
	"testing"

	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter returns a canned LLM response.
type fakeCompleter struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func validResult() *NetIncomeResult {
	return &NetIncomeResult{
		Gross: GrossIncome{Annual: 45000, Monthly: 3750, Currency: "EUR"},
		Taxes: Taxes{
			Federal: FederalTax{
				Amount: 18000,
				Breakdown: FederalBreakdown{
					IncomeTax:      5400,
					SocialSecurity: 10800,
					Medicare:       1800,
				},
			},
			TotalTaxes:    18000,
			EffectiveRate: 40.0,
		},
		NetIncome:  NetIncome{Annual: 27000, Monthly: 2250},
		Confidence: 0.85,
	}
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, Validate(validResult()))
}

func TestValidateRejectsZeroFederal(t *testing.T) {
	r := validResult()
	r.Taxes.Federal.Amount = 0
	r.Taxes.Federal.Breakdown = FederalBreakdown{}

	err := Validate(r)
	require.Error(t, err)
	assert.Equal(t, "Federal tax amount cannot be 0 when total taxes > 0", err.Error())

	var valErr *apperr.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestValidateRejectsBreakdownMismatch(t *testing.T) {
	r := validResult()
	r.Taxes.Federal.Breakdown.IncomeTax = 2000 // sum now 14600, amount 18000

	err := Validate(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "breakdown")
}

func TestValidateAllowsRoundingSlack(t *testing.T) {
	r := validResult()
	r.Taxes.Federal.Breakdown.Medicare += 0.8 // within the ±1 unit tolerance
	require.NoError(t, Validate(r))
}

func TestValidateRejectsEffectiveRateMismatch(t *testing.T) {
	r := validResult()
	r.Taxes.EffectiveRate = 25.0 // implied rate is 40%

	err := Validate(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Effective rate")
}

func TestValidateRejectsComponentMismatch(t *testing.T) {
	r := validResult()
	r.Taxes.State = 5000 // federal+state no longer equals totalTaxes

	err := Validate(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "totalTaxes")
}

const nancyResponse = `{
  "gross": {"annual": 45000, "monthly": 3750, "currency": "EUR"},
  "taxes": {
    "federal": {
      "amount": 18000,
      "breakdown": {"incomeTax": 5400, "socialSecurity": 10800, "medicare": 1800}
    },
    "state": 0,
    "local": 0,
    "totalTaxes": 18000,
    "effectiveRate": 40.0
  },
  "deductions": 0,
  "netIncome": {"annual": 27000, "monthly": 2250},
  "confidence": 0.85
}`

func TestCalculateNancyFrance(t *testing.T) {
	llm := &fakeCompleter{response: nancyResponse}
	calc := NewCalculator(llm, location.NewResolver(nil))

	result, err := calc.Calculate(context.Background(), CalcRequest{
		GrossSalary: 45000,
		Location:    "Nancy, France",
		Currency:    "EUR",
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Taxes.EffectiveRate, 38.0)
	assert.LessOrEqual(t, result.Taxes.EffectiveRate, 42.0)
	assert.Less(t, result.NetIncome.Annual, 30000.0)
	assert.Greater(t, result.Taxes.Federal.Breakdown.SocialSecurity, 10000.0)

	// The prompt embeds the resolved tax data and the guardrail clause.
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Nancy, France")
	assert.Contains(t, llm.prompts[0], "effective rate MUST be between")
	assert.Contains(t, llm.prompts[0], "social charges")
}

func TestCalculateStripsCodeFences(t *testing.T) {
	llm := &fakeCompleter{response: "```json\n" + nancyResponse + "\n```"}
	calc := NewCalculator(llm, location.NewResolver(nil))

	result, err := calc.Calculate(context.Background(), CalcRequest{
		GrossSalary: 45000,
		Location:    "Nancy, France",
	})
	require.NoError(t, err)
	assert.Equal(t, 27000.0, result.NetIncome.Annual)
}

func TestCalculateRejectsInvalidResponse(t *testing.T) {
	llm := &fakeCompleter{response: `{"gross": {"annual": 45000}, "taxes": {"federal": {"amount": 0}, "totalTaxes": 18000, "effectiveRate": 40}, "netIncome": {"annual": 27000}}`}
	calc := NewCalculator(llm, location.NewResolver(nil))

	_, err := calc.Calculate(context.Background(), CalcRequest{GrossSalary: 45000, Location: "Nancy, France"})
	require.Error(t, err)
	assert.Equal(t, "Federal tax amount cannot be 0 when total taxes > 0", err.Error())
}

func TestCalculateRejectsProse(t *testing.T) {
	llm := &fakeCompleter{response: "I cannot compute that."}
	calc := NewCalculator(llm, location.NewResolver(nil))

	_, err := calc.Calculate(context.Background(), CalcRequest{GrossSalary: 45000, Location: "Paris"})
	require.Error(t, err)

	var upErr *apperr.UpstreamError
	assert.ErrorAs(t, err, &upErr)
}

func TestCalculateWithoutLLM(t *testing.T) {
	calc := NewCalculator(nil, location.NewResolver(nil))

	_, err := calc.Calculate(context.Background(), CalcRequest{GrossSalary: 45000, Location: "Paris"})
	require.Error(t, err)

	var cfgErr *apperr.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestVerbatimTaxDataSupersedesStaticTable(t *testing.T) {
	llm := &fakeCompleter{response: nancyResponse}
	calc := NewCalculator(llm, location.NewResolver(staticLookup("VERBATIM TAX TABLE v2024")))

	_, err := calc.Calculate(context.Background(), CalcRequest{GrossSalary: 45000, Location: "Nancy, France"})
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[0], "VERBATIM TAX TABLE v2024")
	assert.NotContains(t, llm.prompts[0], "Income tax brackets")
}

type staticLookup string

func (s staticLookup) Lookup(context.Context, string) (string, error) {
	return string(s), nil
}
