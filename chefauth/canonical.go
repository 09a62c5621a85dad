package chefauth

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"
)

// TimestampLayout is the timestamp format used in X-Ops-Timestamp and the
// canonical request: ISO-8601 with second precision and a literal Z.
const TimestampLayout = "2006-01-02T15:04:05Z"

// ContentHash returns the base64 encoding of the raw SHA-1 digest of data.
// It is used for both the body hash (X-Ops-Content-Hash) and the hashed
// request path.
func ContentHash(data []byte) string {
	sum := sha1.Sum(data)

	return base64.StdEncoding.EncodeToString(sum[:])
}

// Canonicalize builds the canonical request string that gets signed: five
// fields, one per line, joined with \n and no trailing newline. The method
// is normalized to upper case; hashedPath and contentHash are the
// ContentHash of the request path and body respectively.
func Canonicalize(method, hashedPath, contentHash, userID, timestamp string) string {
	lines := []string{
		"Method:" + strings.ToUpper(method),
		"Hashed Path:" + hashedPath,
		"X-Ops-Content-Hash:" + contentHash,
		"X-Ops-Timestamp:" + timestamp,
		"X-Ops-UserId:" + userID,
	}

	return strings.Join(lines, "\n")
}
