package salary

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/jobdeck/jobdeck/internal/aiutil"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/location"
)

// Completer is the minimal surface of the LLM service the calculator needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type GrossIncome struct {
	Annual   float64 `json:"annual"`
	Monthly  float64 `json:"monthly"`
	Currency string  `json:"currency"`
}

type FederalBreakdown struct {
	IncomeTax      float64 `json:"incomeTax"`
	SocialSecurity float64 `json:"socialSecurity"`
	Medicare       float64 `json:"medicare"`
}

type FederalTax struct {
	Amount    float64          `json:"amount"`
	Breakdown FederalBreakdown `json:"breakdown"`
}

type Taxes struct {
	Federal       FederalTax `json:"federal"`
	State         float64    `json:"state"`
	Local         float64    `json:"local"`
	TotalTaxes    float64    `json:"totalTaxes"`
	EffectiveRate float64    `json:"effectiveRate"`
}

type NetIncome struct {
	Annual  float64 `json:"annual"`
	Monthly float64 `json:"monthly"`
}

// NetIncomeResult is the validated gross->net breakdown for one request.
type NetIncomeResult struct {
	Gross      GrossIncome `json:"gross"`
	Taxes      Taxes       `json:"taxes"`
	Deductions float64     `json:"deductions"`
	NetIncome  NetIncome   `json:"netIncome"`
	Confidence float64     `json:"confidence"`
}

// CalcRequest carries one net-income calculation.
type CalcRequest struct {
	GrossSalary float64
	Location    string
	WorkMode    string
	Currency    string
	UserID      uint
}

// Calculator produces a gross->net breakdown by prompting the completion
// model with resolved tax data and validating the JSON it returns. A
// response that fails an invariant is rejected, never patched: the source of
// truth is an unreliable external model, so the caller must retry or surface
// the failure.
type Calculator struct {
	llm      Completer
	resolver *location.Resolver
}

func NewCalculator(llm Completer, resolver *location.Resolver) *Calculator {
	return &Calculator{llm: llm, resolver: resolver}
}

func (c *Calculator) Calculate(ctx context.Context, req CalcRequest) (*NetIncomeResult, error) {
	if c.llm == nil {
		return nil, &apperr.ConfigurationError{
			Setting: "GEMINI_API_KEY",
			Hint:    "set GEMINI_API_KEY to enable net-income calculation",
		}
	}

	profile := c.resolver.Resolve(ctx, req.Location)
	currency := req.Currency
	if currency == "" {
		currency = profile.Currency
	}

	prompt := buildNetIncomePrompt(req.GrossSalary, currency, req.WorkMode, profile)

	log.Printf("💰 Calculating net income: gross=%.0f %s location=%q", req.GrossSalary, currency, req.Location)
	raw, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, &apperr.UpstreamError{Provider: "llm", Err: err}
	}

	obj, err := aiutil.ExtractJSONObject(raw)
	if err != nil {
		return nil, &apperr.UpstreamError{Provider: "llm", Err: err}
	}
	if err := aiutil.RequireFields(obj,
		"gross.annual", "taxes.federal.amount", "taxes.totalTaxes",
		"taxes.effectiveRate", "netIncome.annual",
	); err != nil {
		return nil, &apperr.ValidationError{Message: err.Error()}
	}

	var result NetIncomeResult
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return nil, &apperr.UpstreamError{Provider: "llm", Err: fmt.Errorf("decode net-income JSON: %w", err)}
	}

	if err := Validate(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// sumTolerance is the rounding slack allowed when breakdown components are
// summed, in currency units.
const sumTolerance = 1.0

// rateTolerance is the slack allowed between the reported effective rate and
// totalTaxes/gross, in percentage points.
const rateTolerance = 0.5

// Validate enforces the numeric invariants a usable breakdown must satisfy.
// Violations reject the calculation outright.
func Validate(r *NetIncomeResult) error {
	if r.Gross.Annual <= 0 {
		return &apperr.ValidationError{Message: "Gross annual income must be positive"}
	}

	if r.Taxes.TotalTaxes > 0 && r.Taxes.Federal.Amount == 0 {
		return &apperr.ValidationError{Message: "Federal tax amount cannot be 0 when total taxes > 0"}
	}

	b := r.Taxes.Federal.Breakdown
	breakdownSum := b.IncomeTax + b.SocialSecurity + b.Medicare
	if math.Abs(breakdownSum-r.Taxes.Federal.Amount) > sumTolerance {
		return &apperr.ValidationError{Message: fmt.Sprintf(
			"Federal breakdown components sum to %.2f but federal amount is %.2f", breakdownSum, r.Taxes.Federal.Amount)}
	}

	componentSum := r.Taxes.Federal.Amount + r.Taxes.State + r.Taxes.Local
	if math.Abs(componentSum-r.Taxes.TotalTaxes) > sumTolerance {
		return &apperr.ValidationError{Message: fmt.Sprintf(
			"Tax components sum to %.2f but totalTaxes is %.2f", componentSum, r.Taxes.TotalTaxes)}
	}

	impliedRate := r.Taxes.TotalTaxes / r.Gross.Annual * 100
	if math.Abs(impliedRate-r.Taxes.EffectiveRate) > rateTolerance {
		return &apperr.ValidationError{Message: fmt.Sprintf(
			"Effective rate %.2f%% does not match totalTaxes/gross (%.2f%%)", r.Taxes.EffectiveRate, impliedRate)}
	}

	if r.Confidence < 0 || r.Confidence > 1 {
		return &apperr.ValidationError{Message: "Confidence must be between 0 and 1"}
	}
	return nil
}

func buildNetIncomePrompt(gross float64, currency, workMode string, profile location.Profile) string {
	lo, hi := GuardrailRange(gross, profile)

	var taxData string
	if profile.TaxDataVerbatim != "" {
		// External tax lookup supersedes the static tables.
		taxData = profile.TaxDataVerbatim
	} else {
		taxData = renderTaxData(profile)
	}

	if workMode == "" {
		workMode = "onsite"
	}

	return fmt.Sprintf(`You are a payroll and income-tax expert. Calculate the net (take-home) income for the following situation.

### SITUATION:
- Gross annual salary: %.2f %s
- Location: %s, %s
- Work mode: %s

### TAX DATA (use exactly this data, do not substitute your own):
%s

### NUMERIC GUARDRAILS:
- The effective rate MUST be between %.1f%% and %.1f%%.
- taxes.federal.breakdown components MUST sum exactly to taxes.federal.amount.
- taxes.federal.amount + taxes.state + taxes.local MUST equal taxes.totalTaxes.
- taxes.effectiveRate MUST equal taxes.totalTaxes / gross.annual * 100.

### OUTPUT SCHEMA (return ONLY the JSON object, no markdown, no prose):
{
  "gross": {"annual": number, "monthly": number, "currency": "%s"},
  "taxes": {
    "federal": {
      "amount": number,
      "breakdown": {"incomeTax": number, "socialSecurity": number, "medicare": number}
    },
    "state": number,
    "local": number,
    "totalTaxes": number,
    "effectiveRate": number
  },
  "deductions": number,
  "netIncome": {"annual": number, "monthly": number},
  "confidence": number between 0 and 1
}`,
		gross, currency, profile.City, profile.Country, workMode,
		taxData, lo, hi, currency)
}

func renderTaxData(profile location.Profile) string {
	var sb strings.Builder
	sb.WriteString("Income tax brackets (annual, " + profile.Currency + "):\n")
	var prev float64
	for _, b := range profile.TaxBrackets {
		if b.UpTo == 0 {
			fmt.Fprintf(&sb, "- above %.0f: %.1f%%\n", prev, b.Rate*100)
		} else {
			fmt.Fprintf(&sb, "- %.0f to %.0f: %.1f%%\n", prev, b.UpTo, b.Rate*100)
		}
		prev = b.UpTo
	}
	sb.WriteString("Employee social charges on gross:\n")
	for _, c := range profile.SocialCharges {
		fmt.Fprintf(&sb, "- %s: %.2f%%\n", c.Name, c.Rate*100)
	}
	return sb.String()
}
