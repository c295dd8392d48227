package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// JobKey returns the content-addressed identifier for a posting: sha256 of
// the lower-cased "url:title:company" concatenation, truncated to 16 hex
// characters. The URL must already be canonical (NormalizeURL) or two
// sightings of the same posting will land in different identity classes.
func JobKey(canonicalURL, title, company string) string {
	content := strings.ToLower(canonicalURL + ":" + title + ":" + company)
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])[:16]
}
