package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sambabib/version-autopsy/pkg/analyzer"
	"github.com/sambabib/version-autopsy/pkg/api"
	"github.com/sambabib/version-autopsy/pkg/logger"
	"github.com/sambabib/version-autopsy/pkg/validate"
)

// FeedbackThanks is returned when feedback is accepted.
const FeedbackThanks = "Thank you for your feedback! We'll get back to you soon."

var packageNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// PackageAnalyzer grades packages. *analyzer.Analyzer satisfies it.
type PackageAnalyzer interface {
	AnalyzePackage(ctx context.Context, name, version string) analyzer.AnalysisResult
	AnalyzeRequirements(ctx context.Context, content string) ([]analyzer.AnalysisResult, error)
}

// Handler serves the analysis API.
type Handler struct {
	analyzer PackageAnalyzer
	feedback FeedbackSink
}

func NewHandler(a PackageAnalyzer, sink FeedbackSink) *Handler {
	if sink == nil {
		sink = LogSink{}
	}
	return &Handler{analyzer: a, feedback: sink}
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}

func serverError(c *gin.Context, err error) {
	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Server error: %v", err))
}

func (h *Handler) Analyze(c *gin.Context) {
	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Requirements == nil {
		abortWithError(c, http.StatusBadRequest, "Missing requirements field")
		return
	}

	content := strings.TrimSpace(*req.Requirements)
	if content == "" {
		abortWithError(c, http.StatusBadRequest, "Requirements cannot be empty")
		return
	}

	results, err := h.analyzer.AnalyzeRequirements(c.Request.Context(), content)
	if errors.Is(err, analyzer.ErrNoPackages) {
		abortWithError(c, http.StatusBadRequest, "No valid packages found. Please check the format.")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.AnalyzeResponse{
		Success:       true,
		Results:       results,
		TotalPackages: len(results),
	})
}

func (h *Handler) CheckPackage(c *gin.Context) {
	var req api.CheckPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Package == nil || req.Version == nil {
		abortWithError(c, http.StatusBadRequest, "Missing package or version field")
		return
	}

	name := strings.ToLower(strings.TrimSpace(*req.Package))
	version := strings.TrimSpace(*req.Version)

	if !packageNamePattern.MatchString(name) {
		abortWithError(c, http.StatusBadRequest, "Invalid package name format")
		return
	}
	if err := validate.Version(version); err != nil {
		abortWithError(c, http.StatusBadRequest, validate.MsgVersionFormat)
		return
	}

	result := h.analyzer.AnalyzePackage(c.Request.Context(), name, version)
	c.JSON(http.StatusOK, api.CheckPackageResponse{Success: true, Result: result})
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req api.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid feedback payload")
		return
	}
	if err := validate.Feedback(req.Name, req.Email, req.Message); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	fb := Feedback{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if err := h.feedback.Submit(c.Request.Context(), fb); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FeedbackResponse{Message: FeedbackThanks})
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
