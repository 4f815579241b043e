package reconciler

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashlink-hq/cashlinkd/pkg/escrow"
	"github.com/cashlink-hq/cashlinkd/pkg/logger"
	"github.com/cashlink-hq/cashlinkd/pkg/models"
	"github.com/cashlink-hq/cashlinkd/pkg/store"
)

const (
	testID     = "0x59b72e28ef4d1569f7a7a4cd4b0e0b9d0b9b13e98a2c0b7ef50dd5e9d1d1c001"
	testSender = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
)

// mockChain is a scripted ChainReader
type mockChain struct {
	lookup func(ctx context.Context, id common.Hash) (escrow.Intent, error)
	calls  int
}

func (m *mockChain) Lookup(ctx context.Context, id common.Hash) (escrow.Intent, error) {
	m.calls++
	return m.lookup(ctx, id)
}

func chainWith(intent escrow.Intent, err error) *mockChain {
	return &mockChain{
		lookup: func(context.Context, common.Hash) (escrow.Intent, error) {
			return intent, err
		},
	}
}

func fundedIntent(claimed bool) escrow.Intent {
	return escrow.Intent{
		Sender:  common.HexToAddress(testSender),
		Amount:  big.NewInt(5000000),
		Claimed: claimed,
	}
}

func newTestService(chain ChainReader) (*Service, store.Store) {
	st := store.NewMemoryStore()
	return NewService(st, chain, &logger.EmptyLogger{}), st
}

func TestCreateIntent(t *testing.T) {
	svc, st := newTestService(chainWith(escrow.Intent{}, escrow.ErrNotFound))
	ctx := context.Background()

	intent, err := svc.CreateIntent(ctx, testID, testSender, "5000000", "lunch")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, intent.Status)

	stored, err := st.GetIntent(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, intent.ID, stored.ID)
}

func TestCreateIntentMalformed(t *testing.T) {
	svc, _ := newTestService(chainWith(escrow.Intent{}, escrow.ErrNotFound))

	_, err := svc.CreateIntent(context.Background(), "bogus", testSender, "5000000", "")
	assert.ErrorIs(t, err, models.ErrMalformed)
}

func TestCreateIntentDuplicate(t *testing.T) {
	svc, _ := newTestService(chainWith(escrow.Intent{}, escrow.ErrNotFound))
	ctx := context.Background()

	_, err := svc.CreateIntent(ctx, testID, testSender, "5000000", "")
	require.NoError(t, err)

	_, err = svc.CreateIntent(ctx, testID, testSender, "5000000", "")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestResolveStoredPending(t *testing.T) {
	svc, _ := newTestService(chainWith(fundedIntent(false), nil))
	ctx := context.Background()

	_, err := svc.CreateIntent(ctx, testID, testSender, "5000000", "lunch")
	require.NoError(t, err)

	res, err := svc.Resolve(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, SourceStore, res.Source)
	assert.Equal(t, models.StatusPending, res.Intent.Status)
	assert.True(t, res.Claimable)
}

func TestResolveHealsClaimedRecord(t *testing.T) {
	// The chain says claimed while the store still says pending. The chain
	// wins and the record is updated to match.
	chain := chainWith(fundedIntent(true), nil)
	svc, st := newTestService(chain)
	ctx := context.Background()

	_, err := svc.CreateIntent(ctx, testID, testSender, "5000000", "")
	require.NoError(t, err)

	res, err := svc.Resolve(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, res.Intent.Status)
	assert.False(t, res.Claimable)

	stored, err := st.GetIntent(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, stored.Status, "record should be healed in place")
}

func TestResolveClaimedRecordWithLaggingChain(t *testing.T) {
	// The record is already claimed but the chain read has not caught up and
	// still reports the intent unclaimed. The terminal status wins: the
	// resolution must not offer a claim action.
	svc, st := newTestService(chainWith(fundedIntent(false), nil))
	ctx := context.Background()

	_, err := svc.CreateIntent(ctx, testID, testSender, "5000000", "")
	require.NoError(t, err)
	require.NoError(t, st.MarkClaimed(ctx, testID))

	res, err := svc.Resolve(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, res.Intent.Status)
	assert.False(t, res.Claimable, "a claimed record must never resolve as claimable")
}

func TestResolveStoredButUnfunded(t *testing.T) {
	// The record exists but the chain has no intent under that id. The link
	// resolves, just not as claimable.
	svc, _ := newTestService(chainWith(escrow.Intent{}, escrow.ErrNotFound))
	ctx := context.Background()

	_, err := svc.CreateIntent(ctx, testID, testSender, "5000000", "")
	require.NoError(t, err)

	res, err := svc.Resolve(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, SourceStore, res.Source)
	assert.False(t, res.Claimable)
}

func TestResolveDegradedOnChainError(t *testing.T) {
	// A transient RPC failure must not 500 a claim page that has a stored
	// record, but stale data is never presented as claimable
	svc, _ := newTestService(chainWith(escrow.Intent{}, errors.New("connection refused")))
	ctx := context.Background()

	_, err := svc.CreateIntent(ctx, testID, testSender, "5000000", "")
	require.NoError(t, err)

	res, err := svc.Resolve(ctx, testID)
	require.NoError(t, err)
	assert.False(t, res.Claimable)
	assert.Equal(t, models.StatusPending, res.Intent.Status)
}

func TestResolveChainNative(t *testing.T) {
	// An intent locked by another frontend never hit this store; the chain
	// state alone backs the resolution
	svc, _ := newTestService(chainWith(fundedIntent(false), nil))

	res, err := svc.Resolve(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, SourceChain, res.Source)
	assert.Equal(t, common.HexToAddress(testSender).Hex(), res.Intent.Sender)
	assert.Equal(t, "5000000", res.Intent.Amount)
	assert.Equal(t, models.StatusPending, res.Intent.Status)
	assert.True(t, res.Claimable)
}

func TestResolveChainNativeClaimed(t *testing.T) {
	svc, _ := newTestService(chainWith(fundedIntent(true), nil))

	res, err := svc.Resolve(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, res.Intent.Status)
	assert.False(t, res.Claimable)
}

func TestResolveNotFoundAnywhere(t *testing.T) {
	svc, _ := newTestService(chainWith(escrow.Intent{}, escrow.ErrNotFound))

	_, err := svc.Resolve(context.Background(), testID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveChainReadError(t *testing.T) {
	// Without a stored record a failing chain read is an error, not a 404:
	// the link may well be valid
	svc, _ := newTestService(chainWith(escrow.Intent{}, errors.New("connection refused")))

	_, err := svc.Resolve(context.Background(), testID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestResolveInvalidID(t *testing.T) {
	svc, _ := newTestService(chainWith(fundedIntent(false), nil))

	_, err := svc.Resolve(context.Background(), "0x123")
	assert.ErrorIs(t, err, models.ErrMalformed)
}

func TestResolveWithoutStore(t *testing.T) {
	// A chain-native deployment runs with no store at all
	svc := NewService(nil, chainWith(fundedIntent(false), nil), &logger.EmptyLogger{})

	res, err := svc.Resolve(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, SourceChain, res.Source)
	assert.True(t, res.Claimable)
}

func TestMarkClaimed(t *testing.T) {
	svc, st := newTestService(chainWith(fundedIntent(false), nil))
	ctx := context.Background()

	_, err := svc.CreateIntent(ctx, testID, testSender, "5000000", "")
	require.NoError(t, err)

	require.NoError(t, svc.MarkClaimed(ctx, testID))
	require.NoError(t, svc.MarkClaimed(ctx, testID), "repeat marks are accepted")

	stored, err := st.GetIntent(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, stored.Status)
}

func TestMarkClaimedInvalidID(t *testing.T) {
	svc, _ := newTestService(chainWith(fundedIntent(false), nil))
	assert.ErrorIs(t, svc.MarkClaimed(context.Background(), "nope"), models.ErrMalformed)
}

func TestMarkClaimedWithoutStore(t *testing.T) {
	svc := NewService(nil, chainWith(fundedIntent(false), nil), &logger.EmptyLogger{})
	assert.NoError(t, svc.MarkClaimed(context.Background(), testID))
}
