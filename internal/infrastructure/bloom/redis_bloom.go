package bloom

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/redis/go-redis/v9"
)

// RedisBloomFilter keeps its bit array in a single Redis string so every
// process instance shares one filter. False positives are possible, false
// negatives are not (for elements that were added).
type RedisBloomFilter struct {
	client *redis.Client
	key    string
	m      uint64 // size in bits
	k      uint64 // number of hash functions
}

func NewRedisBloomFilter(client *redis.Client, key string, m, k uint64) *RedisBloomFilter {
	return &RedisBloomFilter{
		client: client,
		key:    key,
		m:      m,
		k:      k,
	}
}

// GetOptimalParameters sizes the filter for an expected element count and
// target false-positive rate.
func GetOptimalParameters(expectedElements uint64, falsePositiveRate float64) (uint64, uint64) {
	m := uint64(math.Ceil(-float64(expectedElements) * math.Log(falsePositiveRate) / (math.Ln2 * math.Ln2)))
	k := uint64(math.Round(float64(m) / float64(expectedElements) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return m, k
}

func (bf *RedisBloomFilter) Add(ctx context.Context, element string) error {
	pipe := bf.client.Pipeline()
	for _, pos := range bf.bitPositions(element) {
		pipe.SetBit(ctx, bf.key, int64(pos), 1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (bf *RedisBloomFilter) Contains(ctx context.Context, element string) (bool, error) {
	pipe := bf.client.Pipeline()
	cmds := make([]*redis.IntCmd, 0, bf.k)
	for _, pos := range bf.bitPositions(element) {
		cmds = append(cmds, pipe.GetBit(ctx, bf.key, int64(pos)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	for _, cmd := range cmds {
		if cmd.Val() == 0 {
			return false, nil
		}
	}
	return true, nil
}

// bitPositions derives k positions via double hashing over an FNV and a
// SHA-256 based hash.
func (bf *RedisBloomFilter) bitPositions(element string) []uint64 {
	h1 := fnv.New64a()
	h1.Write([]byte(element))
	a := h1.Sum64()

	sum := sha256.Sum256([]byte(element))
	b := binary.BigEndian.Uint64(sum[:8])

	positions := make([]uint64, bf.k)
	for i := uint64(0); i < bf.k; i++ {
		positions[i] = (a + i*b) % bf.m
	}
	return positions
}
