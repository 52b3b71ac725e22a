package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"devevent/internal/domain"
)

const charsetUTF8 = "UTF-8"

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects and configures the outgoing mail provider.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// sendEmailAPI is the subset of the SES client used by sesMailer.
type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewMailer returns the mailer for cfg.Provider: "ses" sends through AWS SES and
// requires a sender address and region; "noop", empty or unknown providers only log.
func NewMailer(cfg MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch cfg.Provider {
	case "ses":
		source, err := sourceAddress(cfg.FromName, cfg.FromAddress)
		if err != nil {
			return nil, err
		}
		if cfg.SES.Region == "" {
			return nil, errors.New("ses mailer: AWS_REGION is required")
		}
		return &sesMailer{
			client: ses.NewFromConfig(awsConfig(cfg.SES, logger)),
			logger: logger,
			source: source,
		}, nil
	case "noop", "":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", cfg.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

func awsConfig(c SESConfig, logger *slog.Logger) aws.Config {
	if c.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for SES. Use only in development.")
	}
	cfg := aws.Config{
		Region: c.Region,
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: c.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		},
	}
	if c.AccessKeyID != "" {
		cfg.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		)
	}
	return cfg
}

// sourceAddress formats the From header, quoting the display name when needed.
func sourceAddress(name, address string) (string, error) {
	if address == "" {
		return "", errors.New("ses mailer: EMAIL_FROM_ADDRESS is required")
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return "", fmt.Errorf("ses mailer: invalid sender address: %w", err)
	}
	return (&mail.Address{Name: name, Address: address}).String(), nil
}

type sesMailer struct {
	client sendEmailAPI
	logger *slog.Logger
	source string
}

func (s *sesMailer) Send(ctx context.Context, to, subject, html, text string) error {
	result, err := s.client.SendEmail(ctx, buildSendEmailInput(s.source, to, subject, html, text))
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	s.logger.InfoContext(ctx, "email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

// buildSendEmailInput leaves out an empty html or text part.
func buildSendEmailInput(source, to, subject, html, text string) *ses.SendEmailInput {
	body := &types.Body{}
	if html != "" {
		body.Html = utf8Content(html)
	}
	if text != "" {
		body.Text = utf8Content(text)
	}
	return &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message:     &types.Message{Subject: utf8Content(subject), Body: body},
	}
}

func utf8Content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String(charsetUTF8)}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, to, subject, _, _ string) error {
	n.logger.InfoContext(ctx, "email would be sent (noop)", "to", to, "subject", subject)
	return nil
}
