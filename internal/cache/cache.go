// Package cache memoizes calculator results. Calculators are pure, so a result
// can be reused for any request with the same calculator and parsed input.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Cache stores serialized results by key
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Key derives a cache key from a calculator name and its parsed input
func Key(calculator string, input any) (string, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	return fmt.Sprintf("calc:%s:%016x", calculator, xxhash.Sum64(raw)), nil
}
