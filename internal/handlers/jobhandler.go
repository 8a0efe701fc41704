package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/services"
)

type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies. LLMService may be nil
// when no API key is configured; extraction then answers 503.
func NewJobHandler(llm *services.LLMService, j *services.JobService) *JobHandler {
	return &JobHandler{LLMService: llm, JobService: j}
}

// ParseJob is the POST /jobs/extract endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	if h.LLMService == nil {
		respondError(c, &apperr.ConfigurationError{
			Setting: "GEMINI_API_KEY",
			Hint:    "set GEMINI_API_KEY to enable AI extraction",
		})
		return
	}

	extractedJSON, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI Extraction failed: " + err.Error()})
		return
	}

	// json.RawMessage prevents Go from escaping the inner JSON string
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(extractedJSON),
	})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.CreateJob(currentUserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.JobService.GetJob(currentUserID(c), uint(jobID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
