package models

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testID     = "0x59b72e28ef4d1569f7a7a4cd4b0e0b9d0b9b13e98a2c0b7ef50dd5e9d1d1c001"
	testSender = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		sender      string
		amount      string
		description string
		wantErr     bool
	}{
		{
			name:   "Valid intent",
			id:     testID,
			sender: testSender,
			amount: "5000000",
		},
		{
			name:        "Valid with description",
			id:          testID,
			sender:      testSender,
			amount:      "5000000",
			description: "lunch",
		},
		{
			name:        "Description at the limit",
			id:          testID,
			sender:      testSender,
			amount:      "1",
			description: strings.Repeat("a", MaxDescriptionLength),
		},
		{
			name:    "Missing id",
			id:      "",
			sender:  testSender,
			amount:  "5000000",
			wantErr: true,
		},
		{
			name:    "Short id",
			id:      "0xabc",
			sender:  testSender,
			amount:  "5000000",
			wantErr: true,
		},
		{
			name:    "Non-hex id",
			id:      "0x" + strings.Repeat("zz", 32),
			sender:  testSender,
			amount:  "5000000",
			wantErr: true,
		},
		{
			name:    "Invalid sender",
			id:      testID,
			sender:  "not-an-address",
			amount:  "5000000",
			wantErr: true,
		},
		{
			name:    "Zero sender",
			id:      testID,
			sender:  "0x0000000000000000000000000000000000000000",
			amount:  "5000000",
			wantErr: true,
		},
		{
			name:    "Non-numeric amount",
			id:      testID,
			sender:  testSender,
			amount:  "five",
			wantErr: true,
		},
		{
			name:    "Zero amount",
			id:      testID,
			sender:  testSender,
			amount:  "0",
			wantErr: true,
		},
		{
			name:    "Negative amount",
			id:      testID,
			sender:  testSender,
			amount:  "-1",
			wantErr: true,
		},
		{
			name:        "Description over the limit",
			id:          testID,
			sender:      testSender,
			amount:      "1",
			description: strings.Repeat("a", MaxDescriptionLength+1),
			wantErr:     true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			intent, err := ParseIntent(tc.id, tc.sender, tc.amount, tc.description)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, StatusPending, intent.Status, "new intents start pending")
			assert.Equal(t, tc.description, intent.Description)
			assert.False(t, intent.CreatedAt.IsZero())
			assert.Equal(t, intent.CreatedAt, intent.UpdatedAt)
		})
	}
}

func TestParseIntentNormalizesCase(t *testing.T) {
	intent, err := ParseIntent(strings.ToUpper(testID[2:]), testSender, "100", "")
	// An uppercase id without the 0x prefix is rejected outright
	require.Error(t, err)

	intent, err = ParseIntent(testID, strings.ToLower(testSender), "100", "")
	require.NoError(t, err)
	assert.Equal(t, testSender, intent.Sender, "sender should be checksummed")
}

func TestValidIntentID(t *testing.T) {
	assert.True(t, ValidIntentID(testID))
	assert.True(t, ValidIntentID("0x"+strings.Repeat("A", 64)))
	assert.False(t, ValidIntentID(""))
	assert.False(t, ValidIntentID(testID[2:]), "prefix is required")
	assert.False(t, ValidIntentID(testID+"00"), "length must be exact")
	assert.False(t, ValidIntentID("0x"+strings.Repeat("g", 64)))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{
			name:     "Whole tokens",
			amount:   "5000000",
			expected: "5.00",
		},
		{
			name:     "Tokens and cents",
			amount:   "5500000",
			expected: "5.50",
		},
		{
			name:     "Full precision fraction",
			amount:   "123456",
			expected: "0.123456",
		},
		{
			name:     "Smallest unit",
			amount:   "1",
			expected: "0.000001",
		},
		{
			name:     "Zero",
			amount:   "0",
			expected: "0.00",
		},
		{
			name:     "Negative",
			amount:   "-5250000",
			expected: "-5.25",
		},
		{
			name:     "Large value",
			amount:   "1000000000000",
			expected: "1000000.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, ok := new(big.Int).SetString(tc.amount, 10)
			require.True(t, ok)
			assert.Equal(t, tc.expected, FormatAmount(amount))
		})
	}
}

func TestFormatAmountNil(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(nil))
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "0x742d...f44e", FormatAddress(testSender))
	assert.Equal(t, "", FormatAddress(""))
	assert.Equal(t, "0xabc", FormatAddress("0xabc"), "short strings pass through")
}
