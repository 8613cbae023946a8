// internal/otp/providers.go

package otp

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// EmailProvider delivers a verification code by email.
type EmailProvider interface {
	SendCode(ctx context.Context, to, code string, purpose Purpose) error
}

// SMSProvider delivers a verification code by SMS.
type SMSProvider interface {
	SendCode(ctx context.Context, phone, code string, purpose Purpose) error
}

// SendGridEmailProvider implements EmailProvider via SendGrid.
type SendGridEmailProvider struct {
	apiKey string
	from   string
}

func NewSendGridEmailProvider(apiKey, from string) EmailProvider {
	return &SendGridEmailProvider{apiKey: apiKey, from: from}
}

func (p *SendGridEmailProvider) SendCode(ctx context.Context, to, code string, purpose Purpose) error {
	from := mail.NewEmail("LinkMe", p.from)
	recipient := mail.NewEmail("", to)

	subject := "Your LinkMe verification code"
	if purpose == PurposeResetPassword {
		subject = "Reset your LinkMe password"
	}
	body := fmt.Sprintf("Your verification code is: %s\n\nThis code will expire in 10 minutes.", code)

	message := mail.NewSingleEmail(from, subject, recipient, body, "")
	client := sendgrid.NewSendClient(p.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid rejected email: status %d", response.StatusCode)
	}
	return nil
}

// TwilioSMSProvider implements SMSProvider via Twilio.
type TwilioSMSProvider struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMSProvider(accountSID, authToken, from string) SMSProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSProvider{client: client, from: from}
}

func (p *TwilioSMSProvider) SendCode(ctx context.Context, phone, code string, purpose Purpose) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(p.from)
	params.SetBody(fmt.Sprintf("LinkMe verification code: %s. Expires in 10 minutes.", code))

	if _, err := p.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send SMS via Twilio: %w", err)
	}
	return nil
}

// MockProvider logs the code instead of delivering it. Used in dev and
// tests.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) SendCode(ctx context.Context, recipient, code string, purpose Purpose) error {
	log.Printf("otp: mock delivery to %s: code=%s purpose=%s", recipient, code, purpose)
	return nil
}
