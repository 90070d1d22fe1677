package noop

import (
	"context"
	"log"

	"leadgate/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs outcomes to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendSubmissionOutcome(_ context.Context, toEmail, toName string, outcome port.SubmissionOutcome) error {
	log.Printf("[NOOP EMAIL] Submission outcome for %s (%s): form=%s lead=%s uploaded=%d failed=%d success=%v",
		toName, toEmail, outcome.FormTitle, outcome.LeadID, outcome.Uploaded, outcome.Failed, outcome.Succeeded)
	return nil
}
