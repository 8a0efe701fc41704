package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/services"
	"github.com/jobdeck/jobdeck/internal/tasks"
)

type IntelligenceHandler struct {
	Intelligence *services.IntelligenceService
	Broker       *tasks.Broker
}

func NewIntelligenceHandler(intel *services.IntelligenceService, broker *tasks.Broker) *IntelligenceHandler {
	return &IntelligenceHandler{Intelligence: intel, Broker: broker}
}

type intelligenceCall func(c *gin.Context, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error)

func (h *IntelligenceHandler) serve(c *gin.Context, call intelligenceCall) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	forceRefresh := c.Query("forceRefresh") == "true"

	blob, cached, taskID, err := call(c, uint(jobID), forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"cached": cached, "result": blob}
	if taskID != "" {
		// Clients follow recomputation progress on /tasks/:id/events.
		resp["task_id"] = taskID
	}
	c.JSON(http.StatusOK, resp)
}

// MatchScore is POST /jobs/:id/match-score
func (h *IntelligenceHandler) MatchScore(c *gin.Context) {
	var req struct {
		ResumeText string `json:"resume_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume_text required"})
		return
	}
	h.serve(c, func(c *gin.Context, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error) {
		return h.Intelligence.MatchScore(c.Request.Context(), currentUserID(c), jobID, req.ResumeText, forceRefresh)
	})
}

// CompanyResearch is GET /jobs/:id/company-research
func (h *IntelligenceHandler) CompanyResearch(c *gin.Context) {
	h.serve(c, func(c *gin.Context, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error) {
		return h.Intelligence.CompanyResearch(c.Request.Context(), currentUserID(c), jobID, forceRefresh)
	})
}

// CompetitiveAnalysis is GET /jobs/:id/competitive-analysis
func (h *IntelligenceHandler) CompetitiveAnalysis(c *gin.Context) {
	h.serve(c, func(c *gin.Context, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error) {
		return h.Intelligence.CompetitiveAnalysis(c.Request.Context(), currentUserID(c), jobID, forceRefresh)
	})
}

// CategorizeRequirements is GET /jobs/:id/requirements
func (h *IntelligenceHandler) CategorizeRequirements(c *gin.Context) {
	h.serve(c, func(c *gin.Context, jobID uint, forceRefresh bool) (json.RawMessage, bool, string, error) {
		return h.Intelligence.CategorizeRequirements(c.Request.Context(), currentUserID(c), jobID, forceRefresh)
	})
}

// TaskEvents is GET /tasks/:id/events: streams task-status updates as SSE
// until the task finishes or the client goes away.
func (h *IntelligenceHandler) TaskEvents(c *gin.Context) {
	taskID := c.Param("id")

	updates := h.Broker.Subscribe(c.Request.Context(), taskID)

	c.Stream(func(w io.Writer) bool {
		u, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("status", u)
		return u.State != tasks.StateCompleted && u.State != tasks.StateFailed
	})
}
