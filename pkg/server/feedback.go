package server

import (
	"context"

	"github.com/sambabib/version-autopsy/pkg/logger"
)

// Feedback is an accepted feedback form.
type Feedback struct {
	Name    string
	Email   string
	Message string
}

// FeedbackSink receives accepted feedback.
type FeedbackSink interface {
	Submit(ctx context.Context, fb Feedback) error
}

// LogSink writes feedback to the structured log.
type LogSink struct{}

func (LogSink) Submit(ctx context.Context, fb Feedback) error {
	logger.Logger().InfoContext(ctx, "feedback received",
		"name", fb.Name,
		"email", fb.Email,
		"message", fb.Message,
	)
	return nil
}
