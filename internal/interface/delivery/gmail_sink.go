package delivery

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSink delivers the rendered report as an HTML e-mail through the
// Gmail API.
type GmailSink struct {
	service *gmail.Service
	from    string
	to      string
	logger  logger.Logger
}

// NewGmailSink creates a sink sending from the authenticated account.
func NewGmailSink(ctx context.Context, tokenSource oauth2.TokenSource, from, to string, logger logger.Logger) (*GmailSink, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailSink{
		service: service,
		from:    from,
		to:      to,
		logger:  logger,
	}, nil
}

var _ repository.ReportSink = (*GmailSink)(nil)

// Name identifies the sink in logs.
func (s *GmailSink) Name() string {
	return "gmail"
}

// Deliver sends the report e-mail.
func (s *GmailSink) Deliver(ctx context.Context, report *entity.RunReport, html string) error {
	subject := fmt.Sprintf("Farewatch deals: %s trips for %s",
		report.Mode, report.GeneratedAt.Format("2006-01-02"))

	var raw strings.Builder
	raw.WriteString(fmt.Sprintf("From: %s\r\n", s.from))
	raw.WriteString(fmt.Sprintf("To: %s\r\n", s.to))
	raw.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	raw.WriteString("MIME-Version: 1.0\r\n")
	raw.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	raw.WriteString("\r\n")
	raw.WriteString(html)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw.String())),
	}

	if _, err := s.service.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	s.logger.Info("Report mailed", "to", s.to, "trips", len(report.Trips))
	return nil
}
