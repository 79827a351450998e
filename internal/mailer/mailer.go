// Package mailer sends transactional email through AWS SES v2.
// The only message this site sends itself is the newsletter confirmation;
// campaign mail is handled by external tooling fed by the CSV export.
package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	appconfig "github.com/forgepoint/site-server/internal/config"
	"github.com/forgepoint/site-server/internal/pkg/logger"
)

// sesAPI is the slice of the SES v2 client this package uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer sends site transactional email via SES.
type Mailer struct {
	client      sesAPI
	fromAddress string
	fromName    string
	siteName    string
}

// New creates an SES-backed mailer. Static credentials from config are
// used when present; otherwise the default chain (IAM role) applies.
func New(ctx context.Context, cfg appconfig.SESConfig, siteName string) (*Mailer, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Mailer{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		siteName:    siteName,
	}, nil
}

// SetClient swaps the SES client (tests only).
func (m *Mailer) SetClient(client sesAPI) {
	m.client = client
}

// SendConfirmation sends the double-opt-in confirmation email.
func (m *Mailer) SendConfirmation(ctx context.Context, toEmail, confirmURL string) error {
	subject := fmt.Sprintf("Confirm your %s newsletter subscription", m.siteName)
	htmlBody := fmt.Sprintf(confirmHTML, m.siteName, confirmURL, confirmURL)
	textBody := fmt.Sprintf(confirmText, m.siteName, confirmURL)

	from := m.fromAddress
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("sending confirmation email: %w", err)
	}

	msgID := ""
	if out.MessageId != nil {
		msgID = *out.MessageId
	}
	logger.Info("confirmation email sent", "email", toEmail, "ses_message_id", msgID)
	return nil
}

const confirmHTML = `<html>
<body style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>Almost there</h2>
  <p>Thanks for subscribing to the %s newsletter. Click the button below to
  confirm your address. If you didn't request this, just ignore this email.</p>
  <p><a href="%s" style="display:inline-block;padding:12px 24px;background:#1a56db;color:#fff;border-radius:6px;text-decoration:none;">Confirm subscription</a></p>
  <p>Or paste this link into your browser:<br>%s</p>
</body>
</html>`

const confirmText = `Thanks for subscribing to the %s newsletter.

Confirm your address by opening this link:

%s

If you didn't request this, just ignore this email.
`
