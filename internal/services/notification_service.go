package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/vistaimoveis/brokerage-service/internal/config"
	"github.com/vistaimoveis/brokerage-service/internal/utils"
)

// HTML template for emails carrying a provisioning password.
const provisioningEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #1d4e89; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px; text-align: left; }
  .code { font-family: monospace; font-size: 18px; background: #f1f3f5; padding: 10px 16px; border-radius: 4px; display: inline-block; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
  p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      <p>Hello %s,</p>
      <p>%s</p>
      <p class="code">%s</p>
      <p>You will be asked to choose a new password on your first login.</p>
    </div>
    <div class="footer">
      © %d Vista Imóveis. All rights reserved.
    </div>
  </div>
</body>
</html>`

// HTML template for the visit confirmation sent to the visitor.
const visitConfirmationEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Your visit is confirmed</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 500px; margin: auto; border: 1px solid #e9ecef; border-radius: 8px; padding: 30px; }
</style>
</head>
<body>
  <div class="container">
    <p>Hello %s,</p>
    <p>Your visit to <strong>%s</strong> is confirmed for <strong>%s (%s)</strong>.</p>
    <p>See you there!</p>
  </div>
</body>
</html>`

// ------------------------------------------------------------------
// Service
// ------------------------------------------------------------------

// NotificationService sends transactional email/SMS. Every method is
// best-effort: it reports whether the message went out and never fails
// the calling operation.
type NotificationService interface {
	SendProvisioningEmail(toName, toEmail, password string, reset bool) bool
	SendVisitConfirmationEmail(visitorName, visitorEmail, propertyTitle, date, slot string) bool
	SendVisitConfirmationSMS(visitorPhone, propertyTitle, date, slot string) bool
}

type notificationService struct {
	cfg            *config.Config
	sendgridClient *sendgrid.Client
	twilioClient   *twilio.RestClient
}

func NewNotificationService(cfg *config.Config) NotificationService {
	s := &notificationService{cfg: cfg}
	if cfg.SendGridAPIKey != "" {
		s.sendgridClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	} else {
		utils.Logger.Warn("SENDGRID_API_KEY not set; outbound email disabled")
	}
	if cfg.TwilioAccountSID != "" {
		s.twilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	} else {
		utils.Logger.Warn("TWILIO_ACCOUNT_SID not set; outbound SMS disabled")
	}
	return s
}

// ------------------------------------------------------------------
// Email
// ------------------------------------------------------------------

func (s *notificationService) SendProvisioningEmail(toName, toEmail, password string, reset bool) bool {
	subject := "Welcome to the Vista Imóveis dashboard"
	intro := "An account was created for you. Sign in with this temporary password:"
	if reset {
		subject = "Your dashboard password was reset"
		intro = "An administrator reset your password. Sign in with this temporary password:"
	}

	htmlContent := fmt.Sprintf(
		provisioningEmailHTML,
		subject, subject, toName, intro, password, time.Now().Year(),
	)
	plainTextContent := fmt.Sprintf("%s\n\n%s\n%s", toName, intro, password)

	return s.sendEmail(toName, toEmail, subject, plainTextContent, htmlContent)
}

func (s *notificationService) SendVisitConfirmationEmail(visitorName, visitorEmail, propertyTitle, date, slot string) bool {
	subject := "Your visit is confirmed"
	htmlContent := fmt.Sprintf(visitConfirmationEmailHTML, visitorName, propertyTitle, date, slot)
	plainTextContent := fmt.Sprintf(
		"Hello %s,\n\nYour visit to %s is confirmed for %s (%s).\n\nSee you there!",
		visitorName, propertyTitle, date, slot,
	)
	return s.sendEmail(visitorName, visitorEmail, subject, plainTextContent, htmlContent)
}

func (s *notificationService) sendEmail(toName, toEmail, subject, plainText, html string) bool {
	if s.sendgridClient == nil {
		return false
	}

	from := mail.NewEmail("Vista Imóveis", s.cfg.SendGridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plainText, html)

	if s.cfg.SendGridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	if _, err := s.sendgridClient.Send(msg); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send %q email to %s", subject, toEmail)
		return false
	}
	return true
}

// ------------------------------------------------------------------
// SMS
// ------------------------------------------------------------------

func (s *notificationService) SendVisitConfirmationSMS(visitorPhone, propertyTitle, date, slot string) bool {
	if s.twilioClient == nil || visitorPhone == "" {
		return false
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(visitorPhone)
	params.SetFrom(s.cfg.TwilioFromPhone)
	params.SetBody(fmt.Sprintf(
		"Vista Imóveis: your visit to %s is confirmed for %s (%s).",
		propertyTitle, date, slot,
	))

	if _, err := s.twilioClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send visit confirmation SMS to %s", visitorPhone)
		return false
	}
	return true
}
