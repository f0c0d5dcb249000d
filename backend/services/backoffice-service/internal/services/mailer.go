package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// Mailer delivers one prepared message.
type Mailer interface {
	Send(ctx context.Context, msg *mail.SGMailV3) error
}

// sendGridMailer creates its SendGrid client on first use and reuses it for
// the life of the process.
type sendGridMailer struct {
	apiKey  string
	sandbox bool

	once   sync.Once
	client *sendgrid.Client
}

func NewSendGridMailer(apiKey string, sandbox bool) Mailer {
	return &sendGridMailer{apiKey: apiKey, sandbox: sandbox}
}

func (m *sendGridMailer) getClient() *sendgrid.Client {
	m.once.Do(func() {
		utils.Logger.Info("[SendGrid] Initializing mail client")
		m.client = sendgrid.NewSendClient(m.apiKey)
	})
	return m.client
}

func (m *sendGridMailer) Send(ctx context.Context, msg *mail.SGMailV3) error {
	if m.sandbox {
		msg.SetMailSettings(mail.NewMailSettings().SetSandboxMode(mail.NewSetting(true)))
	}
	resp, err := m.getClient().SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid status %d: %s", utils.ErrExternalServiceFailure, resp.StatusCode, resp.Body)
	}
	return nil
}
