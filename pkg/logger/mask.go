package logger

import (
	"crypto/sha256"
	"fmt"
	"net/url"
)

// MaskEndpoint keeps the host of an endpoint and replaces the rest with a
// short hash, so logs identify which gateway was used without leaking paths
// or query tokens.
func MaskEndpoint(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "url#" + shortHash(rawURL)
	}
	return fmt.Sprintf("%s#%s", parsed.Host, shortHash(rawURL))
}

// MaskSecret renders a secret as a stable fingerprint.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return "key#" + shortHash(secret)
}

func shortHash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)[:8]
}
