package models

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
)

// Status represents the lifecycle state of an intent.
// The only legal transition is pending -> claimed.
type Status string

const (
	StatusPending Status = "pending"
	StatusClaimed Status = "claimed"
)

const (
	// MaxDescriptionLength is the maximum number of characters allowed in an intent description
	MaxDescriptionLength = 100

	// AmountDecimals is the number of decimal places of the settlement token (minor units)
	AmountDecimals = 6
)

// ErrMalformed indicates that client-supplied intent data failed boundary validation
var ErrMalformed = errors.New("malformed intent")

// Intent represents a single promise of funds from a sender to whoever claims it first
type Intent struct {
	ID          string    `json:"id"`
	Sender      string    `json:"sender"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ParseIntent validates untrusted client-supplied fields and returns a well-formed
// pending intent. All input arrives from public HTTP callers, so nothing here is
// assumed to be sane: the id must be a 32-byte hex hash, the sender a non-zero
// address, and the amount a positive base-10 integer in minor units.
func ParseIntent(id, sender, amount, description string) (Intent, error) {
	if !ValidIntentID(id) {
		return Intent{}, fmt.Errorf("%w: invalid id %q", ErrMalformed, id)
	}
	if !common.IsHexAddress(sender) {
		return Intent{}, fmt.Errorf("%w: invalid sender address %q", ErrMalformed, sender)
	}
	if common.HexToAddress(sender) == (common.Address{}) {
		return Intent{}, fmt.Errorf("%w: zero sender address", ErrMalformed)
	}

	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return Intent{}, fmt.Errorf("%w: invalid amount %q", ErrMalformed, amount)
	}
	if value.Sign() <= 0 {
		return Intent{}, fmt.Errorf("%w: amount must be greater than 0", ErrMalformed)
	}

	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return Intent{}, fmt.Errorf("%w: description exceeds %d characters", ErrMalformed, MaxDescriptionLength)
	}

	now := time.Now().UTC()
	return Intent{
		ID:          common.HexToHash(id).Hex(),
		Sender:      common.HexToAddress(sender).Hex(),
		Amount:      value.String(),
		Description: description,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ValidIntentID reports whether s is a 0x-prefixed 32-byte hex string
func ValidIntentID(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, c := range s[2:] {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// FormatAmount renders minor units as a decimal string, e.g. "5000000" -> "5.00".
// Formatting is integer-only: the value is split with DivMod rather than divided
// as a float, since the same representation feeds balance comparisons elsewhere.
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(AmountDecimals), nil)
	whole, frac := new(big.Int).DivMod(new(big.Int).Abs(amount), unit, new(big.Int))

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}

	fracStr := fmt.Sprintf("%0*s", AmountDecimals, frac.String())
	fracStr = strings.TrimRight(fracStr, "0")
	if len(fracStr) < 2 {
		fracStr = fracStr + strings.Repeat("0", 2-len(fracStr))
	}

	return fmt.Sprintf("%s%s.%s", sign, whole.String(), fracStr)
}

// FormatAddress shortens an address for display, e.g. "0x1234...abcd"
func FormatAddress(address string) string {
	if address == "" {
		return ""
	}
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
