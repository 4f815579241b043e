package orchestrator

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cashlink-hq/cashlinkd/pkg/escrow"
)

// Step names the unit of work inside a flow that failed
type Step string

const (
	StepSwitchNetwork Step = "switch-network"
	StepApprove       Step = "approve"
	StepLock          Step = "lock"
	StepClaim         Step = "claim"
	StepRefund        Step = "refund"
)

// StepError wraps a failure with the step it happened in. The flow stops at
// the first failed step; nothing after it was attempted.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ErrorKind is a coarse classification of a flow failure for API mapping
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindNoSigner          ErrorKind = "no_signer"
	KindUnavailable       ErrorKind = "unavailable"
	KindChainMismatch     ErrorKind = "chain_mismatch"
	KindInsufficientFunds ErrorKind = "insufficient_funds"
	KindAlreadyClaimed    ErrorKind = "already_claimed"
	KindReverted          ErrorKind = "reverted"
	KindTransient         ErrorKind = "transient"
)

func errAllowanceShort(have, want *big.Int) error {
	return fmt.Errorf("allowance %s still below amount %s after approval", have.String(), want.String())
}

func errChainMismatch(connected, want *big.Int) error {
	return fmt.Errorf("still on chain %s after switching, need chain %s", connected.String(), want.String())
}

func errReverted(hash common.Hash) error {
	return fmt.Errorf("transaction %s reverted", hash.Hex())
}

// Classify maps a flow error onto an ErrorKind. Sentinels are matched first;
// everything else falls back to message inspection because go-ethereum
// surfaces node-side rejections as opaque strings.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, escrow.ErrNotFound):
		return KindNotFound
	case errors.Is(err, escrow.ErrNoSigner):
		return KindNoSigner
	case errors.Is(err, escrow.ErrUnavailable):
		return KindUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already claimed"):
		return KindAlreadyClaimed
	case strings.Contains(msg, "insufficient funds") ||
		strings.Contains(msg, "insufficient balance") ||
		strings.Contains(msg, "insufficient allowance") ||
		strings.Contains(msg, "transfer amount exceeds"):
		return KindInsufficientFunds
	case strings.Contains(msg, "need chain") ||
		strings.Contains(msg, "network switch not supported"):
		return KindChainMismatch
	case strings.Contains(msg, "reverted") ||
		strings.Contains(msg, "execution failed"):
		return KindReverted
	}

	return KindTransient
}
