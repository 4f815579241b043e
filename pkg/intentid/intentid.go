// Package intentid derives intent identifiers and encodes claim-link metadata.
package intentid

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// New derives a collision-resistant 32-byte intent identifier from the creation
// time and the sender address. Nanosecond resolution keeps concurrent creations
// by the same sender from colliding; the keccak hash keeps identifiers
// unguessable ahead of creation.
func New(sender common.Address, now time.Time) common.Hash {
	seed := fmt.Sprintf("%d-%s", now.UnixNano(), sender.Hex())
	return crypto.Keccak256Hash([]byte(seed))
}

// EncodeDescription encodes arbitrary UTF-8 text into a URL-safe token using
// unpadded base64url. Empty input encodes to an empty token.
func EncodeDescription(text string) string {
	if text == "" {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(text))
}

// DecodeDescription is the inverse of EncodeDescription. The token arrives from
// a public URL and is attacker-controllable, so any decoding failure degrades
// to an empty string rather than an error.
func DecodeDescription(token string) string {
	if token == "" {
		return ""
	}
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return ""
	}
	return string(decoded)
}

// BuildClaimURL composes the shareable link for an intent. The description, if
// any, rides along as the m query parameter.
func BuildClaimURL(origin string, id common.Hash, description string) string {
	base := fmt.Sprintf("%s/claim/%s", strings.TrimRight(origin, "/"), id.Hex())
	if description == "" {
		return base
	}
	return base + "?m=" + EncodeDescription(description)
}
