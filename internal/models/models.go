package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email string `gorm:"uniqueIndex;not null" json:"email"`
}

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"uniqueIndex;not null" json:"company_name"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID    uint `gorm:"index" json:"user_id"`
	CompanyID uint `json:"company_id"`
	// Association: GORM needs Preload() to fill this
	Company Company `json:"company"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	JobLink     string `json:"job_link"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
	Status      string `gorm:"default:'APPLIED'" json:"status"`
	ResumeLink  string `json:"resume_link"`

	// ExtractedData is a JSON blob owned by the job record. It carries the
	// cached intelligence results (enhancedSalaryAnalysis, matchScore,
	// companyResearch, ...) and their timestamps. Last-writer-wins.
	ExtractedData      string     `gorm:"type:text" json:"extracted_data,omitempty"`
	SalaryAnalysisDate *time.Time `json:"salary_analysis_date,omitempty"`
}

type JobEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	JobID     uint      `json:"job_id"`
	EventType string    `json:"event_type"`
	Details   string    `gorm:"type:text" json:"details"`
}
