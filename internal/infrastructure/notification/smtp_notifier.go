package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	"github.com/openmarket/marketplace-service/internal/config"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

// SMTPNotifier delivers mail over plain SMTP. The domain treats delivery as
// best effort, so errors are returned but never retried here.
type SMTPNotifier struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

var _ ports.Notifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(cfg config.SMTPConfig, log *logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, log: log}
}

func (n *SMTPNotifier) SendPurchaseNotification(ctx context.Context, p ports.PurchaseNotification) error {
	subject := fmt.Sprintf("Your item %q has been sold", p.ItemTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\n%s (%s) has bought %q for %s.\nPayment will arrive at your PayPal address %s.\n",
		p.SellerUsername, p.BuyerUsername, p.BuyerEmail, p.ItemTitle, formatPrice(p.PriceCents), p.SellerPayPal,
	)
	if err := n.send(p.SellerEmail, subject, body); err != nil {
		return err
	}

	buyerBody := fmt.Sprintf(
		"Hi %s,\n\nThank you for your purchase of %q (%s).\nThe seller, %s, has been notified.\n",
		p.BuyerUsername, p.ItemTitle, formatPrice(p.PriceCents), p.SellerUsername,
	)
	return n.send(p.BuyerEmail, fmt.Sprintf("Purchase confirmation: %s", p.ItemTitle), buyerBody)
}

func (n *SMTPNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	return n.send(to, subject, body)
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + n.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, n.cfg.From, []string{to}, []byte(msg))
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
