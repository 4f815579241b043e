package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashlink-hq/cashlinkd/pkg/models"
)

const testIntentID = "0x59b72e28ef4d1569f7a7a4cd4b0e0b9d0b9b13e98a2c0b7ef50dd5e9d1d1c001"

func testIntent() models.Intent {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Intent{
		ID:          testIntentID,
		Sender:      "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		Amount:      "5000000",
		Description: "lunch",
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// storeUnderTest runs the same behavioral checks against every backend
type storeUnderTest struct {
	name string
	open func(t *testing.T) Store
}

func backends() []storeUnderTest {
	return []storeUnderTest{
		{
			name: "memory",
			open: func(t *testing.T) Store {
				return NewMemoryStore()
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) Store {
				s, err := NewSqliteStore(filepath.Join(t.TempDir(), "intents.db"))
				require.NoError(t, err)
				t.Cleanup(func() { _ = s.Close() })
				return s
			},
		},
	}
}

func TestSaveAndGetIntent(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.name, func(t *testing.T) {
			s := backend.open(t)
			ctx := context.Background()

			intent := testIntent()
			require.NoError(t, s.SaveIntent(ctx, intent))

			got, err := s.GetIntent(ctx, intent.ID)
			require.NoError(t, err)
			assert.Equal(t, intent.ID, got.ID)
			assert.Equal(t, intent.Sender, got.Sender)
			assert.Equal(t, intent.Amount, got.Amount)
			assert.Equal(t, intent.Description, got.Description)
			assert.Equal(t, models.StatusPending, got.Status)
		})
	}
}

func TestSaveIntentDuplicate(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.name, func(t *testing.T) {
			s := backend.open(t)
			ctx := context.Background()

			intent := testIntent()
			require.NoError(t, s.SaveIntent(ctx, intent))

			// A second create with the same id must not overwrite the original
			dup := intent
			dup.Amount = "999"
			err := s.SaveIntent(ctx, dup)
			assert.ErrorIs(t, err, ErrAlreadyExists)

			got, err := s.GetIntent(ctx, intent.ID)
			require.NoError(t, err)
			assert.Equal(t, "5000000", got.Amount, "original record should be untouched")
		})
	}
}

func TestGetIntentNotFound(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.name, func(t *testing.T) {
			s := backend.open(t)

			_, err := s.GetIntent(context.Background(), testIntentID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMarkClaimed(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.name, func(t *testing.T) {
			s := backend.open(t)
			ctx := context.Background()

			intent := testIntent()
			require.NoError(t, s.SaveIntent(ctx, intent))
			require.NoError(t, s.MarkClaimed(ctx, intent.ID))

			got, err := s.GetIntent(ctx, intent.ID)
			require.NoError(t, err)
			assert.Equal(t, models.StatusClaimed, got.Status)
			assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
		})
	}
}

func TestMarkClaimedIdempotent(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.name, func(t *testing.T) {
			s := backend.open(t)
			ctx := context.Background()

			intent := testIntent()
			require.NoError(t, s.SaveIntent(ctx, intent))

			// Marking twice leaves a single terminal state
			require.NoError(t, s.MarkClaimed(ctx, intent.ID))
			require.NoError(t, s.MarkClaimed(ctx, intent.ID))

			got, err := s.GetIntent(ctx, intent.ID)
			require.NoError(t, err)
			assert.Equal(t, models.StatusClaimed, got.Status)
		})
	}
}

func TestMarkClaimedUnknownID(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.name, func(t *testing.T) {
			s := backend.open(t)

			// Marking an id the store never saw is a quiet no-op
			assert.NoError(t, s.MarkClaimed(context.Background(), testIntentID))
		})
	}
}

func TestSqliteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intents.db")
	ctx := context.Background()

	s, err := NewSqliteStore(path)
	require.NoError(t, err)

	intent := testIntent()
	require.NoError(t, s.SaveIntent(ctx, intent))
	require.NoError(t, s.MarkClaimed(ctx, intent.ID))
	require.NoError(t, s.Close())

	reopened, err := NewSqliteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetIntent(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, got.Status)
}
