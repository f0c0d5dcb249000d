package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/config"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

const inquiryNotificationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: monospace; line-height: 1.5;">
  <h2>New get-in-touch request</h2>
  <ul style="list-style: none; padding: 0;">
    <li><strong>Name:</strong> %s</li>
    <li><strong>Email:</strong> %s</li>
    <li><strong>Phone:</strong> %s</li>
    <li><strong>Received (UTC):</strong> %s</li>
  </ul>
  <p>%s</p>
</body>
</html>`

type InquiryService struct {
	cfg         *config.Config
	inquiryRepo repositories.InquiryRepository
	mailer      Mailer
}

func NewInquiryService(cfg *config.Config, inquiryRepo repositories.InquiryRepository, mailer Mailer) *InquiryService {
	return &InquiryService{cfg: cfg, inquiryRepo: inquiryRepo, mailer: mailer}
}

// Submit stores the inquiry and notifies the team. Notification failures are
// logged; the inquiry is already saved.
func (s *InquiryService) Submit(ctx context.Context, req dtos.CreateInquiryRequest) (*models.Inquiry, error) {
	inq := &models.Inquiry{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Message:     strings.TrimSpace(req.Message),
	}
	if err := s.inquiryRepo.Create(ctx, inq); err != nil {
		return nil, err
	}

	if err := s.mailer.Send(ctx, s.notification(inq)); err != nil {
		utils.Logger.WithError(err).WithField("inquiryId", inq.ID).Error("Failed to send inquiry notification")
	}
	return inq, nil
}

func (s *InquiryService) List(ctx context.Context) ([]*models.Inquiry, error) {
	out, err := s.inquiryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.Inquiry{}
	}
	return out, nil
}

func (s *InquiryService) notification(inq *models.Inquiry) *mail.SGMailV3 {
	from := mail.NewEmail(s.cfg.OrganizationName+" Website", s.cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail(s.cfg.OrganizationName+" Team", s.cfg.InquiryNotifyEmail)

	subject := fmt.Sprintf("[Get in touch] %s", inq.Name)
	plain := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s",
		inq.Name, inq.Email, inq.PhoneNumber, inq.Message)
	htmlBody := fmt.Sprintf(inquiryNotificationHTML,
		html.EscapeString(inq.Name),
		html.EscapeString(inq.Email),
		html.EscapeString(inq.PhoneNumber),
		time.Now().UTC().Format(time.RFC1123Z),
		html.EscapeString(inq.Message),
	)

	msg := mail.NewSingleEmail(from, subject, to, plain, htmlBody)
	msg.SetReplyTo(mail.NewEmail(inq.Name, inq.Email))
	return msg
}
