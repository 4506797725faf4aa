package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sambabib/version-autopsy/pkg/api"
	"github.com/spf13/cobra"
)

var fb api.FeedbackRequest

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Send feedback to the maintainers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFeedback(cmd.Context(), newClient(), fb, cmd.OutOrStdout())
	},
}

func runFeedback(ctx context.Context, c apiClient, req api.FeedbackRequest, w io.Writer) error {
	msg, err := c.SubmitFeedback(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, msg)
	return err
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.Flags().StringVar(&fb.Name, "name", "", "Your name")
	feedbackCmd.Flags().StringVar(&fb.Email, "email", "", "Your email address")
	feedbackCmd.Flags().StringVarP(&fb.Message, "message", "m", "", "Feedback message")
}
