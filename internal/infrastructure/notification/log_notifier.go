package notification

import (
	"context"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

// LogNotifier writes notifications to the log instead of delivering them.
// Used when no SMTP host is configured.
type LogNotifier struct {
	log *logger.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendPurchaseNotification(ctx context.Context, p ports.PurchaseNotification) error {
	n.log.Info("purchase notification",
		"item_id", p.ItemID,
		"item_title", p.ItemTitle,
		"price_cents", p.PriceCents,
		"seller", p.SellerUsername,
		"buyer", p.BuyerUsername,
		"paypal", p.SellerPayPal,
	)
	return nil
}

func (n *LogNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	n.log.Info("email", "to", to, "subject", subject)
	return nil
}
