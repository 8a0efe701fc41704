package dtos

// JobExtractionRequest carries raw posting HTML for AI extraction.
type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

// JobCreationRequest creates a tracked job. Every field past Description maps
// to an optional column on the job record.
type JobCreationRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Title       string `json:"role_title" binding:"required"`
	JobLink     string `json:"job_link" binding:"required"`
	Description string `json:"description" binding:"required"`

	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
	ResumeLink  string `json:"resume_link"`
	Status      string `json:"status"` // defaults to "APPLIED" when empty
}
