package ports

import (
	"context"
)

type PurchaseNotification struct {
	ItemID         string
	ItemTitle      string
	PriceCents     int64
	SellerUsername string
	SellerEmail    string
	SellerPayPal   string
	BuyerUsername  string
	BuyerEmail     string
}

// Notifier delivers outbound mail. Calls are fire-and-forget from the
// domain's point of view: a delivery failure never rolls back the state
// change that triggered it.
type Notifier interface {
	SendPurchaseNotification(ctx context.Context, n PurchaseNotification) error
	SendEmail(ctx context.Context, to, subject, body string) error
}
