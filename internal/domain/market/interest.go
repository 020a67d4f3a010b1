package market

import (
	"time"
)

// Interest is the (user, item) relation behind the gallery counters. It is
// unique per pair and carries no ownership semantics.
type Interest struct {
	UserID    string
	ItemID    string
	CreatedAt time.Time
}
