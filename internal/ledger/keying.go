// Package ledger implements the expense domain logic: collision-safe item
// keying, day-bucket editing, aggregation and savings over a daily ledger.
package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"kharcha/internal/core"
)

// ResolveKey returns the bucket key an entry named baseName with the given
// price should live under.
//
// An unused name is returned as is. A name already present with the same
// price is returned as is too, signalling the caller to merge quantities.
// A name present with a different price probes baseName_1, baseName_2 and
// so on until an unused key or a key with matching price is found. The
// counter is strictly increasing so the probe always terminates.
func ResolveKey(baseName string, price float64, bucket core.DayBucket) string {
	existing, ok := bucket[baseName]
	if !ok || existing.Price == price {
		return baseName
	}
	for n := 1; ; n++ {
		key := fmt.Sprintf("%s_%d", baseName, n)
		existing, ok := bucket[key]
		if !ok || existing.Price == price {
			return key
		}
	}
}

// BaseName strips the _N disambiguation suffix produced by ResolveKey,
// returning the display name shared by all price variants of an item.
func BaseName(key string) string {
	idx := strings.LastIndex(key, "_")
	if idx <= 0 {
		return key
	}
	if _, err := strconv.Atoi(key[idx+1:]); err != nil {
		return key
	}
	return key[:idx]
}
