package generator

import (
	"crypto/rand"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

// IDGenerator issues prefixed ULIDs. ULIDs sort by creation time, which keeps
// the catalog's insertion order readable straight off the primary key.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (g *IDGenerator) UserID() string {
	return "usr_" + g.next()
}

func (g *IDGenerator) ItemID() string {
	return "itm_" + g.next()
}

func (g *IDGenerator) TransactionID() string {
	return "txn_" + g.next()
}

func (g *IDGenerator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Now(), g.entropy).String())
}
