package orchestrator

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashlink-hq/cashlinkd/pkg/escrow"
	"github.com/cashlink-hq/cashlinkd/pkg/logger"
)

var (
	testChainID = big.NewInt(84532)
	testIntent  = common.HexToHash("0x59b72e28ef4d1569f7a7a4cd4b0e0b9d0b9b13e98a2c0b7ef50dd5e9d1d1c001")
	testSigner  = common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e")
)

// mockBackend is a scripted Backend that counts the operations a flow performs
type mockBackend struct {
	chainID   *big.Int
	switchErr error
	signer    common.Address

	allowance    *big.Int
	allowanceErr error

	approveErr error
	lockErr    error
	claimErr   error
	refundErr  error

	waitErr       error
	receiptStatus uint64

	approveCalls []*big.Int
	lockCalls    int
	claimCalls   int
	refundCalls  int

	nonce uint64
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		chainID:       new(big.Int).Set(testChainID),
		signer:        testSigner,
		allowance:     big.NewInt(0),
		receiptStatus: types.ReceiptStatusSuccessful,
	}
}

func (m *mockBackend) tx() *types.Transaction {
	m.nonce++
	return types.NewTx(&types.LegacyTx{Nonce: m.nonce})
}

func (m *mockBackend) ConnectedChainID(context.Context) (*big.Int, error) {
	return m.chainID, nil
}

func (m *mockBackend) SwitchChain(_ context.Context, want *big.Int) error {
	if m.switchErr != nil {
		return m.switchErr
	}
	m.chainID = new(big.Int).Set(want)
	return nil
}

func (m *mockBackend) Allowance(context.Context, common.Address) (*big.Int, error) {
	if m.allowanceErr != nil {
		return nil, m.allowanceErr
	}
	return new(big.Int).Set(m.allowance), nil
}

func (m *mockBackend) Approve(_ context.Context, amount *big.Int) (*types.Transaction, error) {
	if m.approveErr != nil {
		return nil, m.approveErr
	}
	m.approveCalls = append(m.approveCalls, new(big.Int).Set(amount))
	m.allowance = new(big.Int).Set(amount)
	return m.tx(), nil
}

func (m *mockBackend) Lock(context.Context, common.Hash, *big.Int) (*types.Transaction, error) {
	if m.lockErr != nil {
		return nil, m.lockErr
	}
	m.lockCalls++
	return m.tx(), nil
}

func (m *mockBackend) Claim(context.Context, common.Hash, common.Address) (*types.Transaction, error) {
	if m.claimErr != nil {
		return nil, m.claimErr
	}
	m.claimCalls++
	return m.tx(), nil
}

func (m *mockBackend) Refund(context.Context, common.Hash) (*types.Transaction, error) {
	if m.refundErr != nil {
		return nil, m.refundErr
	}
	m.refundCalls++
	return m.tx(), nil
}

func (m *mockBackend) WaitMined(context.Context, *types.Transaction) (*types.Receipt, error) {
	if m.waitErr != nil {
		return nil, m.waitErr
	}
	return &types.Receipt{Status: m.receiptStatus}, nil
}

func (m *mockBackend) Signer() common.Address {
	return m.signer
}

func newTestOrchestrator(backend Backend) *Orchestrator {
	return New(backend, testChainID, 5*time.Second, &logger.EmptyLogger{})
}

func TestSendApprovesWhenAllowanceShort(t *testing.T) {
	backend := newMockBackend()
	backend.allowance = big.NewInt(0)
	o := newTestOrchestrator(backend)

	amount := big.NewInt(10000000)
	require.NoError(t, o.Send(context.Background(), testIntent, amount))

	// The approval covers exactly the requested amount, nothing more
	require.Len(t, backend.approveCalls, 1)
	assert.Equal(t, 0, backend.approveCalls[0].Cmp(amount))
	assert.Equal(t, 1, backend.lockCalls)
	assert.Equal(t, StateDone, o.State())
}

func TestSendSkipsApprovalWhenCovered(t *testing.T) {
	backend := newMockBackend()
	backend.allowance = big.NewInt(20000000)
	o := newTestOrchestrator(backend)

	require.NoError(t, o.Send(context.Background(), testIntent, big.NewInt(10000000)))

	assert.Empty(t, backend.approveCalls, "sufficient allowance should not be re-approved")
	assert.Equal(t, 1, backend.lockCalls)
}

func TestSendFailsWhenApprovalDidNotTake(t *testing.T) {
	// The approval transaction confirms but the allowance read still comes
	// back short; the lock must not be attempted
	backend := newMockBackend()
	o := newTestOrchestrator(&shortApprovalBackend{mockBackend: backend})

	err := o.Send(context.Background(), testIntent, big.NewInt(10000000))
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepApprove, stepErr.Step)
	assert.Equal(t, 0, backend.lockCalls)
	assert.Equal(t, StateFailed, o.State())
}

// shortApprovalBackend confirms approvals without ever raising the allowance
type shortApprovalBackend struct {
	*mockBackend
}

func (b *shortApprovalBackend) Approve(_ context.Context, _ *big.Int) (*types.Transaction, error) {
	return b.tx(), nil
}

func TestSendChainMismatch(t *testing.T) {
	backend := newMockBackend()
	backend.chainID = big.NewInt(1)
	backend.switchErr = errors.New("network switch not supported")
	o := newTestOrchestrator(backend)

	err := o.Send(context.Background(), testIntent, big.NewInt(1))
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepSwitchNetwork, stepErr.Step)
	assert.Equal(t, KindChainMismatch, Classify(err))
	assert.Empty(t, backend.approveCalls)
	assert.Equal(t, 0, backend.lockCalls)
}

func TestSendSwitchesChain(t *testing.T) {
	backend := newMockBackend()
	backend.chainID = big.NewInt(1)
	backend.allowance = big.NewInt(10)
	o := newTestOrchestrator(backend)

	require.NoError(t, o.Send(context.Background(), testIntent, big.NewInt(1)))
	assert.Equal(t, 0, backend.chainID.Cmp(testChainID))
}

func TestSendLockReverted(t *testing.T) {
	backend := newMockBackend()
	backend.allowance = big.NewInt(10000000)
	backend.receiptStatus = types.ReceiptStatusFailed
	o := newTestOrchestrator(backend)

	err := o.Send(context.Background(), testIntent, big.NewInt(10000000))
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepLock, stepErr.Step)
	assert.Equal(t, KindReverted, Classify(err))
	assert.Equal(t, StateFailed, o.State())
}

func TestSendSubmitError(t *testing.T) {
	backend := newMockBackend()
	backend.allowance = big.NewInt(10)
	backend.lockErr = escrow.ErrNoSigner
	o := newTestOrchestrator(backend)

	err := o.Send(context.Background(), testIntent, big.NewInt(1))
	require.Error(t, err)
	assert.Equal(t, KindNoSigner, Classify(err))
}

func TestClaim(t *testing.T) {
	backend := newMockBackend()
	o := newTestOrchestrator(backend)

	recipient := common.HexToAddress("0x1111111111111111111111111111111111111111")
	require.NoError(t, o.Claim(context.Background(), testIntent, recipient))
	assert.Equal(t, 1, backend.claimCalls)
	assert.Equal(t, StateDone, o.State())
}

func TestClaimAlreadyClaimed(t *testing.T) {
	backend := newMockBackend()
	backend.claimErr = errors.New("execution reverted: intent already claimed")
	o := newTestOrchestrator(backend)

	err := o.Claim(context.Background(), testIntent, testSigner)
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepClaim, stepErr.Step)
	assert.Equal(t, KindAlreadyClaimed, Classify(err))
}

func TestRefund(t *testing.T) {
	backend := newMockBackend()
	o := newTestOrchestrator(backend)

	require.NoError(t, o.Refund(context.Background(), testIntent))
	assert.Equal(t, 1, backend.refundCalls)
}

func TestStateTransitions(t *testing.T) {
	backend := newMockBackend()
	backend.allowance = big.NewInt(0)
	o := newTestOrchestrator(backend)

	var seen []State
	o.OnStateChange(func(s State) {
		seen = append(seen, s)
	})

	require.NoError(t, o.Send(context.Background(), testIntent, big.NewInt(100)))

	// An approval flow walks through network check, approval, confirmation,
	// submission and a second confirmation before finishing
	assert.Equal(t, []State{
		StateSwitchingNetwork,
		StateApproving,
		StateConfirming,
		StateSubmitting,
		StateConfirming,
		StateDone,
	}, seen)
}

// overlapBackend reports whether two lock submissions ever ran concurrently
type overlapBackend struct {
	*mockBackend
	mu       sync.Mutex
	inFlight bool
	overlap  bool
}

func (b *overlapBackend) Lock(ctx context.Context, id common.Hash, amount *big.Int) (*types.Transaction, error) {
	b.mu.Lock()
	if b.inFlight {
		b.overlap = true
	}
	b.inFlight = true
	b.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	b.mu.Lock()
	b.inFlight = false
	b.mu.Unlock()
	return b.mockBackend.Lock(ctx, id, amount)
}

func TestFlowsRunOneAtATime(t *testing.T) {
	backend := newMockBackend()
	backend.allowance = big.NewInt(100)
	guarded := &overlapBackend{mockBackend: backend}
	o := newTestOrchestrator(guarded)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, o.Send(context.Background(), testIntent, big.NewInt(1)))
		}()
	}
	wg.Wait()

	assert.False(t, guarded.overlap, "concurrent callers must queue, not interleave")
	assert.Equal(t, 4, backend.lockCalls)
	assert.Equal(t, StateDone, o.State())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{
			name:     "Nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "Escrow not found sentinel",
			err:      escrow.ErrNotFound,
			expected: KindNotFound,
		},
		{
			name:     "Wrapped sentinel",
			err:      &StepError{Step: StepClaim, Err: escrow.ErrNotFound},
			expected: KindNotFound,
		},
		{
			name:     "No signer",
			err:      escrow.ErrNoSigner,
			expected: KindNoSigner,
		},
		{
			name:     "Circuit open",
			err:      escrow.ErrUnavailable,
			expected: KindUnavailable,
		},
		{
			name:     "Already claimed revert reason",
			err:      errors.New("execution reverted: intent already claimed"),
			expected: KindAlreadyClaimed,
		},
		{
			name:     "Insufficient funds",
			err:      errors.New("insufficient funds for gas * price + value"),
			expected: KindInsufficientFunds,
		},
		{
			name:     "Insufficient allowance",
			err:      errors.New("execution reverted: ERC20: insufficient allowance"),
			expected: KindInsufficientFunds,
		},
		{
			name:     "Chain mismatch",
			err:      errors.New("connected to chain 1, need chain 84532: network switch not supported"),
			expected: KindChainMismatch,
		},
		{
			name:     "Reverted",
			err:      errReverted(testIntent),
			expected: KindReverted,
		},
		{
			name:     "Unknown error",
			err:      errors.New("connection refused"),
			expected: KindTransient,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.err))
		})
	}
}
