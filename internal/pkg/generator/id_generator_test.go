package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDPrefixes(t *testing.T) {
	g := NewIDGenerator()

	assert.True(t, strings.HasPrefix(g.UserID(), "usr_"))
	assert.True(t, strings.HasPrefix(g.ItemID(), "itm_"))
	assert.True(t, strings.HasPrefix(g.TransactionID(), "txn_"))
}

func TestIDsAreUniqueAndOrdered(t *testing.T) {
	g := NewIDGenerator()

	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 1000; i++ {
		id := g.ItemID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		if prev != "" {
			assert.Less(t, prev, id)
		}
		prev = id
	}
}

func TestIDsAreLowercase(t *testing.T) {
	g := NewIDGenerator()

	id := g.UserID()
	assert.Equal(t, strings.ToLower(id), id)
}
