// Package linesig signs and verifies LINE webhook payloads.
//
// The platform sends base64(HMAC-SHA256(channelSecret, body)) in the
// X-Line-Signature header of every callback.
package linesig

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// HeaderName is the request header carrying the signature
const HeaderName = "X-Line-Signature"

// Sign returns the base64 encoded HMAC-SHA256 of body keyed by channelSecret.
func Sign(channelSecret string, body []byte) string {
	return base64.StdEncoding.EncodeToString(mac(channelSecret, body))
}

// Verify reports whether signature matches body under channelSecret.
func Verify(channelSecret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(decoded, mac(channelSecret, body))
}

func mac(channelSecret string, body []byte) []byte {
	h := hmac.New(sha256.New, []byte(channelSecret))
	h.Write(body)
	return h.Sum(nil)
}
