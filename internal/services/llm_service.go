package services

import (
	"context"
	"fmt"
	"log"

	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the completion client. A missing API key is a
// ConfigurationError: the caller decides whether to run degraded (AI
// endpoints answer 503) or abort.
func NewLLMService(ctx context.Context, cfg config.Config) (*LLMService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, &apperr.ConfigurationError{
			Setting: "GEMINI_API_KEY",
			Hint:    "set GEMINI_API_KEY to enable AI features",
		}
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, &apperr.UpstreamError{Provider: "gemini", Err: err}
	}

	return &LLMService{Client: llm}, nil
}

// Complete sends a single prompt and returns the raw completion text.
func (s *LLMService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	return resp, nil
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company_name": "Name of the company (e.g., Google, StartupInc)",
    "role_title": "Job title (e.g., Senior Backend Engineer)",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements.",
    "tech_stack": ["Array", "of", "technologies", "mentioned", "e.g., Go, React, AWS"],
    "salary_range": "The salary string if explicitly mentioned (e.g., '$100k - $150k'), otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractJobDetails takes raw posting HTML (from the browser extension) and
// returns the structured JSON the model produced.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (string, error) {
	content := CleanJobHTML(rawHTML)
	if len(content) > 20000 {
		content = content[:20000]
	}
	log.Printf("🤖 Extracting job details (%d chars after cleanup)", len(content))

	return s.Complete(ctx, fmt.Sprintf(jobExtractionPrompt, content))
}
