package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// BoxKey generates the cache key for a bounding-box query result.
// The key depends on the exact document bytes and the ordered set of
// queried element IDs, so any edit to the document invalidates it.
func BoxKey(doc []byte, ids []string) string {
	sum := sha256.New()
	sum.Write(doc)
	sum.Write([]byte{0})
	sum.Write([]byte(strings.Join(ids, ",")))
	return fmt.Sprintf("bbox:%s", hex.EncodeToString(sum.Sum(nil)))
}
