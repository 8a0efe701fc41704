package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jobdeck/jobdeck/internal/aiutil"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/salary"
	"github.com/jobdeck/jobdeck/internal/search"
	"github.com/jobdeck/jobdeck/internal/tasks"
)

// Cached-blob field names for the intelligence features.
const (
	matchScoreField      = "matchScore"
	companyResearchField = "companyResearch"
	competitiveField     = "competitiveAnalysis"
	requirementsField    = "requirementCategories"
)

// IntelligenceService runs the prompt-driven enrichment features: match
// scoring, company research, competitive analysis and requirements
// categorization. Every feature shares the same contract: 24h per-job cache
// in the ExtractedData blob, bypassed by forceRefresh, strict validation of
// the model's JSON before it is stored.
type IntelligenceService struct {
	jobs   JobStore
	llm    salary.Completer
	search *search.Client
	broker *tasks.Broker

	now func() time.Time
}

func NewIntelligenceService(jobs JobStore, llm salary.Completer, searchClient *search.Client, broker *tasks.Broker) *IntelligenceService {
	return &IntelligenceService{jobs: jobs, llm: llm, search: searchClient, broker: broker, now: time.Now}
}

// promptSpec describes one feature's prompt and the response fields that
// must be present for the answer to be stored.
type promptSpec struct {
	prompt   string
	required []string
}

// run executes one feature: serve the cached result when it is fresh and was
// computed under the same key, otherwise prompt the model, validate, store.
// A recomputation publishes its progress under a task ID that is returned to
// the caller; a cache hit returns an empty ID.
func (s *IntelligenceService) run(ctx context.Context, userID, jobID uint, field, key string, forceRefresh bool, build func(job *models.Job) (promptSpec, error)) (json.RawMessage, bool, string, error) {
	if s.llm == nil {
		return nil, false, "", &apperr.ConfigurationError{
			Setting: "GEMINI_API_KEY",
			Hint:    "set GEMINI_API_KEY to enable AI features",
		}
	}

	job, err := s.jobs.GetJob(userID, jobID)
	if err != nil {
		return nil, false, "", err
	}

	if cacheValid(job.ExtractedData, field, s.now(), forceRefresh) && blobKeyMatches(job.ExtractedData, field, key) {
		cached, _ := blobField(job.ExtractedData, field)
		log.Printf("📦 Serving cached %s for job %d", field, jobID)
		return cached, true, "", nil
	}

	taskID := tasks.NewTaskID()
	s.broker.Publish(taskID, tasks.StateRunning, "computing "+field)

	fail := func(err error) (json.RawMessage, bool, string, error) {
		s.broker.Publish(taskID, tasks.StateFailed, err.Error())
		return nil, false, taskID, err
	}

	ps, err := build(job)
	if err != nil {
		return fail(err)
	}

	raw, err := s.llm.Complete(ctx, ps.prompt)
	if err != nil {
		return fail(&apperr.UpstreamError{Provider: "llm", Err: err})
	}
	obj, err := aiutil.ExtractJSONObject(raw)
	if err != nil {
		return fail(&apperr.UpstreamError{Provider: "llm", Err: err})
	}
	if err := aiutil.RequireFields(obj, ps.required...); err != nil {
		return fail(&apperr.ValidationError{Message: err.Error()})
	}

	entries := map[string]any{
		field:          json.RawMessage(obj),
		field + "Date": s.now().UTC().Format(time.RFC3339),
	}
	if key != "" {
		entries[field+"Key"] = key
	}
	blob, err := setBlobFields(job.ExtractedData, entries)
	if err != nil {
		return fail(err)
	}
	job.ExtractedData = blob
	if err := s.jobs.SaveAnalysisBlob(job); err != nil {
		return fail(err)
	}
	s.jobs.RecordEvent(job.ID, "INTELLIGENCE", field+" refreshed")
	s.broker.Publish(taskID, tasks.StateCompleted, field+" stored")

	fresh, _ := blobField(job.ExtractedData, field)
	return fresh, false, taskID, nil
}

// resumeFingerprint keys a cached match score to the resume it was scored
// against, so a different resume within the TTL recomputes instead of
// returning the previous resume's score.
func resumeFingerprint(resumeText string) string {
	sum := sha256.Sum256([]byte(resumeText))
	return hex.EncodeToString(sum[:8])
}

// MatchScore scores the fit between the job's requirements and the supplied
// resume text.
func (s *IntelligenceService) MatchScore(ctx context.Context, userID, jobID uint, resumeText string, forceRefresh bool) (json.RawMessage, bool, string, error) {
	return s.run(ctx, userID, jobID, matchScoreField, resumeFingerprint(resumeText), forceRefresh, func(job *models.Job) (promptSpec, error) {
		if strings.TrimSpace(resumeText) == "" {
			return promptSpec{}, &apperr.ValidationError{Message: "resume text is required for match scoring"}
		}
		return promptSpec{
			prompt: fmt.Sprintf(`You are a technical recruiter. Score how well the candidate matches the job.

### JOB: %s at %s
%s

### CANDIDATE RESUME:
%s

Return ONLY the JSON object:
{
  "score": number 0-100,
  "strengths": ["array of matched qualifications"],
  "gaps": ["array of missing qualifications"],
  "summary": "two-sentence verdict"
}`, job.Title, job.Company.Name, truncate(job.Description, 8000), truncate(resumeText, 8000)),
			required: []string{"score", "strengths", "gaps", "summary"},
		}, nil
	})
}

// CompanyResearch assembles a research brief about the employer, grounding
// the prompt on fresh web-search snippets.
func (s *IntelligenceService) CompanyResearch(ctx context.Context, userID, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error) {
	return s.run(ctx, userID, jobID, companyResearchField, "", forceRefresh, func(job *models.Job) (promptSpec, error) {
		var sources strings.Builder
		hits, err := s.search.Search(ctx, job.Company.Name+" company culture funding news", 5)
		if err != nil {
			log.Printf("🔍 Research search failed for %s, prompting without sources: %v", job.Company.Name, err)
		}
		for _, h := range hits {
			fmt.Fprintf(&sources, "- %s: %s (%s)\n", h.Title, h.Snippet, h.Link)
		}

		return promptSpec{
			prompt: fmt.Sprintf(`You are a company research analyst. Build a brief on the company below.

### COMPANY: %s
### WEB SOURCES:
%s

Return ONLY the JSON object:
{
  "overview": "what the company does",
  "culture": "what is known about working there",
  "financials": "funding/revenue signals, or null",
  "recentNews": ["up to 3 notable recent items"],
  "risks": ["up to 3 candidate-relevant risks"]
}`, job.Company.Name, sources.String()),
			required: []string{"overview", "culture"},
		}, nil
	})
}

// CompetitiveAnalysis positions the offer against the market for the role.
func (s *IntelligenceService) CompetitiveAnalysis(ctx context.Context, userID, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error) {
	return s.run(ctx, userID, jobID, competitiveField, "", forceRefresh, func(job *models.Job) (promptSpec, error) {
		return promptSpec{
			prompt: fmt.Sprintf(`You are a compensation analyst. Position this role against the market.

### ROLE: %s at %s
### LOCATION: %s
### POSTED SALARY: %s

Return ONLY the JSON object:
{
  "marketPosition": "below | at | above market",
  "percentile": number 0-100,
  "comparableRoles": ["up to 3 comparable role descriptions"],
  "negotiationLeverage": "one-paragraph assessment"
}`, job.Title, job.Company.Name, job.Location, orNA(job.SalaryRange)),
			required: []string{"marketPosition", "percentile"},
		}, nil
	})
}

// CategorizeRequirements splits the posting's requirements into must-have /
// nice-to-have buckets.
func (s *IntelligenceService) CategorizeRequirements(ctx context.Context, userID, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error) {
	return s.run(ctx, userID, jobID, requirementsField, "", forceRefresh, func(job *models.Job) (promptSpec, error) {
		return promptSpec{
			prompt: fmt.Sprintf(`You are a job-requirements analyst. Categorize every requirement in the posting.

### POSTING:
%s

Return ONLY the JSON object:
{
  "mustHave": ["hard requirements"],
  "niceToHave": ["preferred qualifications"],
  "technical": ["technologies and tools"],
  "soft": ["soft skills"],
  "experienceYears": "stated experience requirement, or null"
}`, truncate(job.Description, 12000)),
			required: []string{"mustHave", "niceToHave"},
		}, nil
	})
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not stated"
	}
	return s
}
