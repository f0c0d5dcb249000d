package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/config"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
)

func testInquiryConfig() *config.Config {
	return &config.Config{
		OrganizationName:         "Insight Ventures",
		InquiryNotifyEmail:       "team@insightventures.com",
		LDFlag_SendgridFromEmail: "no-reply@insightventures.com",
	}
}

func TestInquiryService_SubmitStoresAndNotifies(t *testing.T) {
	repo := &fakeInquiryRepo{}
	mailer := &fakeMailer{}
	svc := NewInquiryService(testInquiryConfig(), repo, mailer)

	inq, err := svc.Submit(context.Background(), dtos.CreateInquiryRequest{
		Name:        " Jane Roe ",
		Email:       "jane@example.com",
		PhoneNumber: "555-0100",
		Message:     "<b>Is unit 2 available?</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", inq.Name)
	require.Len(t, repo.items, 1)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "[Get in touch] Jane Roe", msg.Subject)
	assert.Equal(t, "no-reply@insightventures.com", msg.From.Address)
	require.NotNil(t, msg.ReplyTo)
	assert.Equal(t, "jane@example.com", msg.ReplyTo.Address)
	require.Len(t, msg.Personalizations, 1)
	assert.Equal(t, "team@insightventures.com", msg.Personalizations[0].To[0].Address)

	var htmlBody string
	for _, c := range msg.Content {
		if c.Type == "text/html" {
			htmlBody = c.Value
		}
	}
	assert.True(t, strings.Contains(htmlBody, "&lt;b&gt;Is unit 2 available?&lt;/b&gt;"))
}

func TestInquiryService_MailFailureIsNotReturned(t *testing.T) {
	repo := &fakeInquiryRepo{}
	svc := NewInquiryService(testInquiryConfig(), repo, &fakeMailer{sendErr: errBoom})

	inq, err := svc.Submit(context.Background(), dtos.CreateInquiryRequest{
		Name: "Jane", Email: "jane@example.com", PhoneNumber: "5550100", Message: "hi",
	})
	require.NoError(t, err)
	assert.NotNil(t, inq)
	assert.Len(t, repo.items, 1)
}

func TestInquiryService_StoreFailureSkipsMail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewInquiryService(testInquiryConfig(), &fakeInquiryRepo{createErr: errBoom}, mailer)

	_, err := svc.Submit(context.Background(), dtos.CreateInquiryRequest{
		Name: "Jane", Email: "jane@example.com", PhoneNumber: "5550100", Message: "hi",
	})
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, mailer.sent)
}

func TestInquiryService_ListEmpty(t *testing.T) {
	out, err := NewInquiryService(testInquiryConfig(), &fakeInquiryRepo{}, &fakeMailer{}).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
}
