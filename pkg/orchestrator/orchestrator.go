// Package orchestrator sequences multi-step escrow transactions. Each flow is
// single-attempt and fail-fast: any step failure aborts the whole sequence,
// tagged with the step that failed so the caller knows what to re-invoke.
// Re-invoking is safe because lock and claim are one-shot at the contract
// layer; a repeat is rejected there instead of double-paying.
package orchestrator

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/cashlink-hq/cashlinkd/pkg/logger"
	"github.com/cashlink-hq/cashlinkd/pkg/metrics"
)

// State represents the progress of an orchestrated flow
type State int

const (
	StateIdle State = iota
	StateSwitchingNetwork
	StateApproving
	StateSubmitting
	StateConfirming
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwitchingNetwork:
		return "switching-network"
	case StateApproving:
		return "approving"
	case StateSubmitting:
		return "submitting"
	case StateConfirming:
		return "confirming"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Backend abstracts the chain operations a flow needs. The escrow adapter is
// the production implementation.
type Backend interface {
	ConnectedChainID(ctx context.Context) (*big.Int, error)
	SwitchChain(ctx context.Context, chainID *big.Int) error
	Allowance(ctx context.Context, owner common.Address) (*big.Int, error)
	Approve(ctx context.Context, amount *big.Int) (*types.Transaction, error)
	Lock(ctx context.Context, id common.Hash, amount *big.Int) (*types.Transaction, error)
	Claim(ctx context.Context, id common.Hash, recipient common.Address) (*types.Transaction, error)
	Refund(ctx context.Context, id common.Hash) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	Signer() common.Address
}

// Orchestrator drives one flow at a time against a backend. Concurrent
// callers queue on flowMu so state transitions never interleave.
type Orchestrator struct {
	backend        Backend
	requiredChain  *big.Int
	confirmTimeout time.Duration
	logger         logger.Logger

	flowMu sync.Mutex

	mu      sync.Mutex
	state   State
	onState func(State)
}

// New creates a new orchestrator
func New(backend Backend, requiredChain *big.Int, confirmTimeout time.Duration, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		backend:        backend,
		requiredChain:  requiredChain,
		confirmTimeout: confirmTimeout,
		logger:         log,
		state:          StateIdle,
	}
}

// OnStateChange registers a callback invoked on every state transition,
// used to surface progress to the caller
func (o *Orchestrator) OnStateChange(fn func(State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onState = fn
}

// State returns the current flow state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Signer returns the address the backend signs with
func (o *Orchestrator) Signer() common.Address {
	return o.backend.Signer()
}

// Send locks funds for a new intent. Before locking it compares the current
// allowance against the requested amount and only submits an approval when
// the allowance is insufficient, re-checking after the approval confirms.
func (o *Orchestrator) Send(ctx context.Context, id common.Hash, amount *big.Int) error {
	o.flowMu.Lock()
	defer o.flowMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.TransactionDuration.WithLabelValues("send").Observe(time.Since(start).Seconds())
	}()

	if err := o.ensureChain(ctx); err != nil {
		return o.fail(StepSwitchNetwork, err)
	}

	allowance, err := o.backend.Allowance(ctx, o.backend.Signer())
	if err != nil {
		return o.fail(StepApprove, err)
	}

	if allowance.Cmp(amount) < 0 {
		o.setState(StateApproving)
		o.logger.InfoWith(logger.Orch, "Allowance %s below amount %s, approving", allowance.String(), amount.String())

		if _, err := o.executeAndWait(ctx, StepApprove, func() (*types.Transaction, error) {
			return o.backend.Approve(ctx, amount)
		}); err != nil {
			return err
		}

		// The approval confirmed; verify the allowance actually covers the
		// amount before committing funds to the lock
		allowance, err = o.backend.Allowance(ctx, o.backend.Signer())
		if err != nil {
			return o.fail(StepApprove, err)
		}
		if allowance.Cmp(amount) < 0 {
			return o.fail(StepApprove, errAllowanceShort(allowance, amount))
		}
	} else {
		o.logger.DebugWith(logger.Orch, "Existing allowance %s covers amount %s, skipping approval", allowance.String(), amount.String())
		metrics.TransactionSteps.WithLabelValues(string(StepApprove), "skipped").Inc()
	}

	o.setState(StateSubmitting)
	if _, err := o.executeAndWait(ctx, StepLock, func() (*types.Transaction, error) {
		return o.backend.Lock(ctx, id, amount)
	}); err != nil {
		return err
	}

	o.setState(StateDone)
	o.logger.NoticeWith(logger.Orch, "Locked %s for intent %s", amount.String(), id.Hex())
	return nil
}

// Claim transfers the locked funds for id to recipient
func (o *Orchestrator) Claim(ctx context.Context, id common.Hash, recipient common.Address) error {
	o.flowMu.Lock()
	defer o.flowMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.TransactionDuration.WithLabelValues("claim").Observe(time.Since(start).Seconds())
	}()

	if err := o.ensureChain(ctx); err != nil {
		return o.fail(StepSwitchNetwork, err)
	}

	o.setState(StateSubmitting)
	if _, err := o.executeAndWait(ctx, StepClaim, func() (*types.Transaction, error) {
		return o.backend.Claim(ctx, id, recipient)
	}); err != nil {
		return err
	}

	o.setState(StateDone)
	o.logger.NoticeWith(logger.Orch, "Claimed intent %s for %s", id.Hex(), recipient.Hex())
	return nil
}

// Refund returns unclaimed funds for id to the sender
func (o *Orchestrator) Refund(ctx context.Context, id common.Hash) error {
	o.flowMu.Lock()
	defer o.flowMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.TransactionDuration.WithLabelValues("refund").Observe(time.Since(start).Seconds())
	}()

	if err := o.ensureChain(ctx); err != nil {
		return o.fail(StepSwitchNetwork, err)
	}

	o.setState(StateSubmitting)
	if _, err := o.executeAndWait(ctx, StepRefund, func() (*types.Transaction, error) {
		return o.backend.Refund(ctx, id)
	}); err != nil {
		return err
	}

	o.setState(StateDone)
	o.logger.NoticeWith(logger.Orch, "Refunded intent %s", id.Hex())
	return nil
}

// ensureChain asserts the backend is connected to the required network,
// asking it to switch when it is not. A rejected switch is terminal.
func (o *Orchestrator) ensureChain(ctx context.Context) error {
	o.setState(StateSwitchingNetwork)

	connected, err := o.backend.ConnectedChainID(ctx)
	if err != nil {
		return err
	}
	if connected.Cmp(o.requiredChain) == 0 {
		return nil
	}

	o.logger.InfoWith(logger.Orch, "Connected to chain %s, switching to %s", connected.String(), o.requiredChain.String())
	if err := o.backend.SwitchChain(ctx, o.requiredChain); err != nil {
		return err
	}

	connected, err = o.backend.ConnectedChainID(ctx)
	if err != nil {
		return err
	}
	if connected.Cmp(o.requiredChain) != 0 {
		return errChainMismatch(connected, o.requiredChain)
	}
	return nil
}

// executeAndWait submits a single write operation and blocks until that
// transaction is confirmed. One submission, one receipt; there is no
// resubmission on failure.
func (o *Orchestrator) executeAndWait(ctx context.Context, step Step, submit func() (*types.Transaction, error)) (*types.Receipt, error) {
	tx, err := submit()
	if err != nil {
		return nil, o.fail(step, err)
	}

	o.setState(StateConfirming)

	waitCtx, cancel := context.WithTimeout(ctx, o.confirmTimeout)
	defer cancel()

	receipt, err := o.backend.WaitMined(waitCtx, tx)
	if err != nil {
		return nil, o.fail(step, err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, o.fail(step, errReverted(tx.Hash()))
	}

	metrics.TransactionSteps.WithLabelValues(string(step), "success").Inc()
	return receipt, nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	fn := o.onState
	o.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}

func (o *Orchestrator) fail(step Step, err error) error {
	o.setState(StateFailed)
	metrics.TransactionSteps.WithLabelValues(string(step), "failed").Inc()
	o.logger.ErrorWith(logger.Orch, "Step %s failed: %v", step, err)
	return &StepError{Step: step, Err: err}
}
