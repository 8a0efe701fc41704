package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/salary"
	"github.com/jobdeck/jobdeck/internal/search"
	"github.com/jobdeck/jobdeck/internal/tasks"
	"golang.org/x/sync/errgroup"
)

const salaryAnalysisField = "enhancedSalaryAnalysis"

// JobStore is the persistence surface the analysis features need.
// *JobService satisfies it.
type JobStore interface {
	GetJob(userID, jobID uint) (*models.Job, error)
	SaveAnalysisBlob(job *models.Job) error
	RecordEvent(jobID uint, eventType, details string)
}

// EnhancedSalaryAnalysis is the per-job cached analysis blob content.
type EnhancedSalaryAnalysis struct {
	Available      bool                    `json:"available"`
	Screening      *salary.Analysis        `json:"screening,omitempty"`
	NetIncome      *salary.NetIncomeResult `json:"netIncome,omitempty"`
	SalarySources  []search.Result         `json:"salarySources,omitempty"`
	CompanySources []search.Result         `json:"companySources,omitempty"`
	AnalyzedAt     time.Time               `json:"analyzedAt"`
}

// AnalysisService owns the per-job salary analysis and its 24h cache.
type AnalysisService struct {
	jobs     JobStore
	analyzer *salary.Analyzer
	calc     *salary.Calculator
	search   *search.Client
	broker   *tasks.Broker

	now func() time.Time
}

func NewAnalysisService(jobs JobStore, analyzer *salary.Analyzer, calc *salary.Calculator, searchClient *search.Client, broker *tasks.Broker) *AnalysisService {
	return &AnalysisService{
		jobs:     jobs,
		analyzer: analyzer,
		calc:     calc,
		search:   searchClient,
		broker:   broker,
		now:      time.Now,
	}
}

// SalaryAnalysis returns the job's analysis, serving the cached blob when it
// is younger than 24 hours and forceRefresh is off. The bool reports whether
// the answer came from cache; a cached answer is byte-identical to the
// stored one. A recomputed answer also returns the task ID its progress was
// published under, so clients can follow it on the task-events stream; a
// cache hit starts no task and returns an empty ID.
func (s *AnalysisService) SalaryAnalysis(ctx context.Context, userID, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error) {
	job, err := s.jobs.GetJob(userID, jobID)
	if err != nil {
		return nil, false, "", err
	}

	if cacheValid(job.ExtractedData, salaryAnalysisField, s.now(), forceRefresh) {
		cached, _ := blobField(job.ExtractedData, salaryAnalysisField)
		log.Printf("📦 Serving cached salary analysis for job %d", jobID)
		return cached, true, "", nil
	}

	taskID := tasks.NewTaskID()
	s.broker.Publish(taskID, tasks.StateRunning, "analyzing salary")

	analysis, err := s.compute(ctx, job)
	if err != nil {
		s.broker.Publish(taskID, tasks.StateFailed, err.Error())
		return nil, false, taskID, err
	}

	blob, err := setBlobField(job.ExtractedData, salaryAnalysisField, analysis, s.now())
	if err != nil {
		s.broker.Publish(taskID, tasks.StateFailed, err.Error())
		return nil, false, taskID, err
	}
	job.ExtractedData = blob
	at := s.now()
	job.SalaryAnalysisDate = &at
	if err := s.jobs.SaveAnalysisBlob(job); err != nil {
		s.broker.Publish(taskID, tasks.StateFailed, err.Error())
		return nil, false, taskID, err
	}
	s.jobs.RecordEvent(job.ID, "SALARY_ANALYSIS", fmt.Sprintf("Analysis refreshed (forceRefresh=%v)", forceRefresh))
	s.broker.Publish(taskID, tasks.StateCompleted, "analysis stored")

	fresh, _ := blobField(job.ExtractedData, salaryAnalysisField)
	return fresh, false, taskID, nil
}

func (s *AnalysisService) compute(ctx context.Context, job *models.Job) (*EnhancedSalaryAnalysis, error) {
	result := &EnhancedSalaryAnalysis{AnalyzedAt: s.now().UTC()}

	// Salary-source and company-source searches are independent; run them
	// together and merge. A failed search degrades the analysis instead of
	// failing it.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := fmt.Sprintf("%s salary %s", job.Title, job.Location)
		hits, err := s.search.Search(gctx, query, 5)
		if err != nil {
			log.Printf("🔍 Salary-source search failed for job %d: %v", job.ID, err)
			return nil
		}
		result.SalarySources = hits
		return nil
	})
	g.Go(func() error {
		query := fmt.Sprintf("%s company reviews compensation", job.Company.Name)
		hits, err := s.search.Search(gctx, query, 5)
		if err != nil {
			log.Printf("🔍 Company-source search failed for job %d: %v", job.ID, err)
			return nil
		}
		result.CompanySources = hits
		return nil
	})
	_ = g.Wait()

	screening := s.analyzer.Analyze(ctx, job.SalaryRange, job.Location)
	if screening == nil {
		// No parseable salary on the job; record that, don't fail.
		result.Available = false
		return result, nil
	}
	result.Available = true
	result.Screening = screening

	netIncome, err := s.calc.Calculate(ctx, salary.CalcRequest{
		GrossSalary: screening.Figure.Annualized(),
		Location:    job.Location,
		Currency:    screening.Figure.Currency,
		UserID:      job.UserID,
	})
	if err != nil {
		// Validation and upstream failures are surfaced, never patched.
		return nil, err
	}
	result.NetIncome = netIncome
	return result, nil
}
