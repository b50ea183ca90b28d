// Package hash computes the 64-bit name IDs used to index container entries.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
