package intentid

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	sender := common.HexToAddress("0x1111111111111111111111111111111111111111")
	now := time.Unix(1700000000, 12345)

	// Same inputs derive the same identifier
	id := New(sender, now)
	assert.Equal(t, id, New(sender, now))
	assert.Len(t, id.Hex(), 66, "identifier should be a 32-byte hex hash")

	// A different sender or a different instant derives a different identifier
	other := common.HexToAddress("0x2222222222222222222222222222222222222222")
	assert.NotEqual(t, id, New(other, now))
	assert.NotEqual(t, id, New(sender, now.Add(time.Nanosecond)))
}

func TestDescriptionRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "Plain ASCII",
			text: "Lunch money",
		},
		{
			name: "Whitespace and punctuation",
			text: "thanks for the ride! (again)",
		},
		{
			name: "Unicode",
			text: "café ☕ naïve 日本語",
		},
		{
			name: "URL-hostile characters",
			text: "a+b/c=d&e?f#g",
		},
		{
			name: "Single character",
			text: "x",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token := EncodeDescription(tc.text)
			assert.NotContains(t, token, "=", "token should be unpadded")
			assert.Equal(t, tc.text, DecodeDescription(token))
		})
	}
}

func TestEncodeDescriptionEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeDescription(""))
	assert.Equal(t, "", DecodeDescription(""))
}

func TestDecodeDescriptionMalformed(t *testing.T) {
	// Tokens arrive from public URLs; anything undecodable degrades to empty
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "Invalid base64 characters",
			token: "!!not-base64!!",
		},
		{
			name:  "Standard base64 with plus and slash",
			token: "a+b/c",
		},
		{
			name:  "Interior padding",
			token: "ab=cd",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, "", DecodeDescription(tc.token))
		})
	}
}

func TestDecodeDescriptionTrailingPadding(t *testing.T) {
	// A forwarded link sometimes picks up padding; trailing = is tolerated
	token := EncodeDescription("hello")
	assert.Equal(t, "hello", DecodeDescription(token+"="))
	assert.Equal(t, "hello", DecodeDescription(token+"=="))
}

func TestBuildClaimURL(t *testing.T) {
	id := common.HexToHash("0xabcdef0000000000000000000000000000000000000000000000000000000001")

	tests := []struct {
		name        string
		origin      string
		description string
		expected    string
	}{
		{
			name:        "No description",
			origin:      "https://cashlink.example",
			description: "",
			expected:    "https://cashlink.example/claim/" + id.Hex(),
		},
		{
			name:        "With description token",
			origin:      "https://cashlink.example",
			description: "hi",
			expected:    "https://cashlink.example/claim/" + id.Hex() + "?m=aGk",
		},
		{
			name:        "Origin with trailing slash",
			origin:      "https://cashlink.example/",
			description: "",
			expected:    "https://cashlink.example/claim/" + id.Hex(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BuildClaimURL(tc.origin, id, tc.description))
		})
	}
}
