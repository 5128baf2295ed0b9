package linesig

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/stretchr/testify/assert"
)

func TestSign_MatchesHMACSHA256(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"destination":"U123","events":[]}`)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))

	assert.Equal(t, want, Sign(secret, body))
}

func TestVerify(t *testing.T) {
	t.Parallel()

	secret := "channel-secret"
	body := []byte(`{"destination":"U123","events":[{"type":"message"}]}`)
	signature := Sign(secret, body)

	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature string
		want      bool
	}{
		{name: "valid signature", secret: secret, body: body, signature: signature, want: true},
		{name: "empty body signed", secret: secret, body: []byte{}, signature: Sign(secret, []byte{}), want: true},
		{name: "mutated body", secret: secret, body: append(append([]byte{}, body...), ' '), signature: signature, want: false},
		{name: "single byte flipped", secret: secret, body: flipFirstByte(body), signature: signature, want: false},
		{name: "wrong secret", secret: "other-secret", body: body, signature: signature, want: false},
		{name: "empty signature", secret: secret, body: body, signature: "", want: false},
		{name: "not base64", secret: secret, body: body, signature: "%%%not-base64%%%", want: false},
		{name: "truncated signature", secret: secret, body: body, signature: signature[:len(signature)-4], want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Verify(tt.secret, tt.body, tt.signature))
		})
	}
}

func TestVerify_RoundTripForManyBodies(t *testing.T) {
	bodies := [][]byte{
		nil,
		[]byte("a"),
		[]byte("こんにちは"),
		[]byte(`{"events":[{"type":"message","message":{"type":"text","text":"hello"}}]}`),
		make([]byte, 4096),
	}
	for _, secret := range []string{"", "s", "a-much-longer-channel-secret-value"} {
		for _, b := range bodies {
			sig := Sign(secret, b)
			assert.True(t, Verify(secret, b, sig))
			assert.False(t, Verify(secret, append(append([]byte{}, b...), 'x'), sig))
		}
	}
}

func TestVerify_AgreesWithSDK(t *testing.T) {
	secret := "channel-secret"
	body := []byte(`{"destination":"U123","events":[{"type":"message","message":{"type":"text","text":"hello"}}]}`)
	valid := Sign(secret, body)

	signatures := map[string]string{
		"valid":        valid,
		"other secret": Sign("other-secret", body),
		"other body":   Sign(secret, []byte("{}")),
		"truncated":    valid[:len(valid)-4],
		"not base64":   "%%%",
		"empty":        "",
	}
	for name, sig := range signatures {
		assert.Equal(t, webhook.ValidateSignature(secret, sig, body), Verify(secret, body, sig), name)
	}
	assert.True(t, webhook.ValidateSignature(secret, valid, body))
}

func flipFirstByte(b []byte) []byte {
	out := append([]byte{}, b...)
	out[0] ^= 0x01
	return out
}
