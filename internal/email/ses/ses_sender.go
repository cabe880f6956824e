package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"backoffice/internal/config"
	"backoffice/internal/port"
)

// sendEmailAPI is the part of the SES client used here.
type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesMailer struct {
	client sendEmailAPI
	from   string
}

// NewSESMailer creates an SES-backed PurchaseMailer.
func NewSESMailer(ctx context.Context, cfg *config.EmailConfig) (port.PurchaseMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newMailer(sesv2.NewFromConfig(awsCfg), cfg.FromName, cfg.FromAddress), nil
}

func newMailer(client sendEmailAPI, fromName, fromAddress string) *sesMailer {
	return &sesMailer{
		client: client,
		from:   fmt.Sprintf("%s <%s>", fromName, fromAddress),
	}
}

func (m *sesMailer) SendPurchaseOrder(ctx context.Context, mail port.PurchaseOrderMail) error {
	to := mail.ToEmail
	if mail.ToName != "" {
		to = fmt.Sprintf("%s <%s>", mail.ToName, mail.ToEmail)
	}

	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &m.from,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &mail.Subject},
				Body: &types.Body{
					Html: &types.Content{Data: &mail.HTMLBody},
					Text: &types.Content{Data: &mail.TextBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
