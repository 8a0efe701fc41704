package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/currency"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/salary"
	"github.com/jobdeck/jobdeck/internal/services"
)

type SalaryHandler struct {
	Converter  *currency.Converter
	Analyzer   *salary.Analyzer
	Calculator *salary.Calculator
	Analysis   *services.AnalysisService
}

func NewSalaryHandler(conv *currency.Converter, analyzer *salary.Analyzer, calc *salary.Calculator, analysis *services.AnalysisService) *SalaryHandler {
	return &SalaryHandler{
		Converter:  conv,
		Analyzer:   analyzer,
		Calculator: calc,
		Analysis:   analysis,
	}
}

// Convert is POST /salary/convert
func (h *SalaryHandler) Convert(c *gin.Context) {
	var req dtos.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	conv := h.Converter.Convert(c.Request.Context(), req.Amount, req.From, req.To)
	if conv == nil {
		// Conversion unavailable is an answer, not a failure.
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"available": true,
		"converted": conv.Converted,
		"rate":      conv.Rate,
		"display":   currency.Format(conv.Converted, req.To),
	})
}

// Analyze is POST /salary/analyze: the deterministic screening pipeline.
func (h *SalaryHandler) Analyze(c *gin.Context) {
	var req dtos.SalaryAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	analysis := h.Analyzer.Analyze(c.Request.Context(), req.Salary, req.Location)
	if analysis == nil {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "analysis": analysis})
}

// NetIncome is POST /salary/net-income: the AI-backed gross->net breakdown.
func (h *SalaryHandler) NetIncome(c *gin.Context) {
	var req dtos.NetIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Calculator.Calculate(c.Request.Context(), salary.CalcRequest{
		GrossSalary: req.GrossSalary,
		Location:    req.Location,
		WorkMode:    req.WorkMode,
		Currency:    req.Currency,
		UserID:      currentUserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// JobSalaryAnalysis is GET/POST /jobs/:id/salary-analysis with the 24h
// cache; ?forceRefresh=true bypasses it.
func (h *SalaryHandler) JobSalaryAnalysis(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	forceRefresh := c.Query("forceRefresh") == "true"

	blob, cached, taskID, err := h.Analysis.SalaryAnalysis(c.Request.Context(), currentUserID(c), uint(jobID), forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"cached": cached, "analysis": blob}
	if taskID != "" {
		// Clients follow recomputation progress on /tasks/:id/events.
		resp["task_id"] = taskID
	}
	c.JSON(http.StatusOK, resp)
}
