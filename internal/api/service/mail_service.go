package service

import (
	"careers"
	"context"
	"fmt"

	brevo "github.com/getbrevo/brevo-go/lib"
	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

// MailService sends transactional mail through Brevo with an app-level SMTP
// fallback. Every caller treats send failures as non-fatal: they are logged
// and swallowed so a broken mail provider never blocks an application.
type MailService struct {
	logger zerolog.Logger
	brevo  *brevo.APIClient
}

func NewMailService() *MailService {
	cfg := careers.GetConfig().BrevoConfig

	var client *brevo.APIClient
	if cfg.APIKey != "" {
		apiCfg := brevo.NewConfiguration()
		apiCfg.AddDefaultHeader("api-key", cfg.APIKey)
		client = brevo.NewAPIClient(apiCfg)
	}

	return &MailService{
		logger: careers.Logger,
		brevo:  client,
	}
}

// SendTemplatedMail delivers an HTML mail, trying Brevo first and SMTP next.
func (slf *MailService) SendTemplatedMail(to string, toName string, subject string, html string) error {
	if slf.brevo != nil {
		if err := slf.sendViaBrevo(to, toName, subject, html); err == nil {
			slf.logger.Info().Str("to", to).Str("subject", subject).Msg("Email sent via Brevo")
			return nil
		} else {
			slf.logger.Warn().Err(err).Str("to", to).Msg("Brevo send failed, falling back to SMTP")
		}
	}
	if err := slf.sendViaSMTP(to, subject, html); err != nil {
		return fmt.Errorf("all email providers failed: %w", err)
	}
	slf.logger.Info().Str("to", to).Str("subject", subject).Msg("Email sent via SMTP")
	return nil
}

func (slf *MailService) sendViaBrevo(to string, toName string, subject string, html string) error {
	cfg := careers.GetConfig()

	_, resp, err := slf.brevo.TransactionalEmailsApi.SendTransacEmail(context.Background(), brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Name:  cfg.CompanyName,
			Email: cfg.BrevoConfig.SenderEmail,
		},
		To: []brevo.SendSmtpEmailTo{
			{Email: to, Name: toName},
		},
		Subject:     subject,
		HtmlContent: html,
	})
	if err != nil {
		return err
	}
	if resp != nil && resp.StatusCode >= 400 {
		return fmt.Errorf("brevo returned status %d", resp.StatusCode)
	}
	return nil
}

func (slf *MailService) sendViaSMTP(to string, subject string, html string) error {
	cfg := careers.GetConfig().SmtpConfig
	if cfg.Host == "" || cfg.Username == "" {
		return fmt.Errorf("internal SMTP not configured (SMTP_HOST / SMTP_USERNAME missing)")
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return fmt.Errorf("failed to set from: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("failed to set to: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(gomail.TypeTextHTML, html)

	tlsPolicy := gomail.TLSOpportunistic
	if cfg.UseTLS {
		tlsPolicy = gomail.TLSMandatory
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(tlsPolicy),
	}
	if cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// ApplicationConfirmationHTML renders the mail sent right after a candidate
// applies. Plain string building, no template engine needed for one mail.
func ApplicationConfirmationHTML(candidateName string, jobTitle string, companyName string) (subject string, html string) {
	subject = fmt.Sprintf("Application Received - %s", jobTitle)
	html = fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #f8f9fa; padding: 30px; border-radius: 10px;">
      <h1 style="color: #000; margin-bottom: 20px;">Application Received!</h1>
      <p>Hi %s,</p>
      <p>Thank you for applying for the <strong>%s</strong> position at %s.</p>
      <p>We've successfully received your application and our team will review it carefully. We'll get back to you soon with the next steps.</p>
      <div style="background-color: #fff; padding: 20px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #000;">
        <p style="margin: 0;"><strong>What happens next?</strong></p>
        <ul style="margin: 10px 0; padding-left: 20px;">
          <li>Our team will review your application</li>
          <li>We'll reach out if your profile matches our requirements</li>
          <li>You can expect to hear from us within 1-2 weeks</li>
        </ul>
      </div>
      <p style="margin-top: 30px;">Best regards,<br><strong>%s Team</strong></p>
    </div>
    <p style="font-size: 12px; color: #666; text-align: center; margin-top: 20px;">
      This is an automated confirmation email. Please do not reply to this message.
    </p>
  </body>
</html>`, candidateName, jobTitle, companyName, companyName)
	return subject, html
}
