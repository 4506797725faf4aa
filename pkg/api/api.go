// Package api holds the request and response bodies of the analysis HTTP API.
package api

import "github.com/sambabib/version-autopsy/pkg/analyzer"

const (
	PathAnalyze        = "/api/analyze"
	PathCheckPackage   = "/api/check-package"
	PathSubmitFeedback = "/api/submit-feedback"
)

type AnalyzeRequest struct {
	Requirements *string `json:"requirements"`
}

type AnalyzeResponse struct {
	Success       bool                      `json:"success"`
	Results       []analyzer.AnalysisResult `json:"results"`
	TotalPackages int                       `json:"total_packages"`
}

type CheckPackageRequest struct {
	Package *string `json:"package"`
	Version *string `json:"version"`
}

type CheckPackageResponse struct {
	Success bool                    `json:"success"`
	Result  analyzer.AnalysisResult `json:"result"`
}

type FeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type FeedbackResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StringPtr is a convenience for building requests.
func StringPtr(s string) *string {
	return &s
}
