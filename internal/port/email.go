package port

import "context"

// SubmissionOutcome summarizes a finished submission for notification.
type SubmissionOutcome struct {
	FormTitle  string
	LeadID     string
	Uploaded   int
	Failed     int
	FailedDocs []string
	Succeeded  bool
}

// EmailSender delivers submission outcome notifications to partners.
type EmailSender interface {
	SendSubmissionOutcome(ctx context.Context, toEmail, toName string, outcome SubmissionOutcome) error
}
