package services

import (
	"errors"
	"strconv"

	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

func (s *JobService) CreateJob(userID uint, req *dtos.JobCreationRequest) (*models.Job, error) {
	var company models.Company
	// Creates the company entry if it doesn't exist yet
	err := s.DB.Where(models.Company{Name: req.CompanyName}).
		FirstOrCreate(&company).Error
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		UserID:      userID,
		CompanyID:   company.ID,
		Title:       req.Title,
		Description: req.Description,
		JobLink:     req.JobLink,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
		ResumeLink:  req.ResumeLink,
	}
	if req.Status != "" {
		job.Status = req.Status
	}
	if err := s.DB.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) GetJob(userID, jobID uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.Preload("Company").
		Where("id = ? AND user_id = ?", jobID, userID).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Resource: "job", ID: strconv.Itoa(int(jobID))}
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) ListJobs(userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.Preload("Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// SaveAnalysisBlob overwrites the job's cached analysis. Last-writer-wins;
// there is no optimistic locking on the blob.
func (s *JobService) SaveAnalysisBlob(job *models.Job) error {
	return s.DB.Model(job).Updates(map[string]interface{}{
		"extracted_data":       job.ExtractedData,
		"salary_analysis_date": job.SalaryAnalysisDate,
	}).Error
}

func (s *JobService) RecordEvent(jobID uint, eventType, details string) {
	s.DB.Create(&models.JobEvent{JobID: jobID, EventType: eventType, Details: details})
}
