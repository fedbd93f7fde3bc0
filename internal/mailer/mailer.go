package mailer

import (
	"fmt"

	"PassVault/internal/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer отправляет письма восстановления пароля по SMTP.
// Nil-Mailer допустим: отправка тогда только логируется (SMTP не настроен).
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.SugaredLogger
}

// NewMailer собирает Mailer из конфигурации. Возвращает nil, если SMTP_HOST пуст.
func NewMailer(cfg *config.Config, logger *zap.SugaredLogger) *Mailer {
	if cfg.SMTPHost == "" {
		logger.Infow("SMTP not configured, reset emails disabled")
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		logger: logger,
	}
}

// SendResetToken отправляет письмо с токеном восстановления.
func (m *Mailer) SendResetToken(to, token string) error {
	if m == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "PassVault: password reset")
	msg.SetBody("text/plain", fmt.Sprintf(
		"A password reset was requested for this address.\n\n"+
			"Reset token: %s\n\n"+
			"The token is valid for 30 minutes and can be used once.\n"+
			"If you did not request a reset, ignore this email.\n", token))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}
	m.logger.Infow("reset email sent", "to", to)
	return nil
}
