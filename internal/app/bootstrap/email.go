package bootstrap

import (
	"fmt"
	"strings"

	appconfig "github.com/wolfman30/practice-booking/internal/config"
	"github.com/wolfman30/practice-booking/internal/notify"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

// Email providers accepted in EMAIL_PROVIDER.
const (
	EmailProviderStub     = "stub"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSES      = "ses"
)

// BuildEmailSender picks the confirmation email transport. ses is only
// consulted for the SES provider and must be non-nil then.
func BuildEmailSender(cfg *appconfig.Config, ses notify.SESAPI, logger *logging.Logger) (notify.EmailSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.EmailProvider))
	switch provider {
	case "", EmailProviderStub:
		logger.Info("confirmation email: stub sender")
		return notify.NewStubEmailSender(logger), nil
	case EmailProviderSendGrid:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: SENDGRID_API_KEY is required for the sendgrid provider")
		}
		logger.Info("confirmation email: sendgrid", "from", cfg.EmailFromAddress)
		return sender, nil
	case EmailProviderSES:
		sender := notify.NewSESSender(ses, notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: SES client is required for the ses provider")
		}
		logger.Info("confirmation email: ses", "region", cfg.AWSRegion, "from", cfg.EmailFromAddress)
		return sender, nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
}
