package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. Scene, script and snapshot
// bytes are identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "keyType:digest" where digest covers every part in order.
// Parts are JSON encoded, so option structs hash by field value.
func hashKey(keyType string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return keyType + ":" + hex.EncodeToString(h.Sum(nil))
}
