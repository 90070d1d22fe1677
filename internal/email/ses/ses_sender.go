package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"leadgate/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendSubmissionOutcome(ctx context.Context, toEmail, toName string, outcome port.SubmissionOutcome) error {
	subject := fmt.Sprintf("Your %s submission was received", outcome.FormTitle)
	if !outcome.Succeeded {
		subject = fmt.Sprintf("Action needed on your %s submission", outcome.FormTitle)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", toName)
	if outcome.Succeeded {
		fmt.Fprintf(&b, "Your %s application was submitted successfully.\n", outcome.FormTitle)
		fmt.Fprintf(&b, "Lead reference: %s\n", outcome.LeadID)
		fmt.Fprintf(&b, "Documents uploaded: %d\n", outcome.Uploaded)
	} else {
		fmt.Fprintf(&b, "Your %s application could not be completed.\n", outcome.FormTitle)
		if outcome.LeadID != "" {
			fmt.Fprintf(&b, "Lead reference: %s\n", outcome.LeadID)
		}
		fmt.Fprintf(&b, "Documents uploaded: %d, failed: %d\n", outcome.Uploaded, outcome.Failed)
		for _, doc := range outcome.FailedDocs {
			fmt.Fprintf(&b, "  - failed: %s\n", doc)
		}
		b.WriteString("\nPlease open the submission and try again.\n")
	}
	body := b.String()

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &body},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending outcome email: %w", err)
	}
	return nil
}
