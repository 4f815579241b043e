// Package escrow provides a typed adapter over the on-chain escrow contract.
// The contract is the sole authority on locked funds: the adapter translates
// its view into domain values and keeps "the chain does not know this intent"
// distinct from "the read failed".
package escrow

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/cashlink-hq/cashlinkd/pkg/blockchain"
	"github.com/cashlink-hq/cashlinkd/pkg/circuitbreaker"
	"github.com/cashlink-hq/cashlinkd/pkg/logger"
	"github.com/cashlink-hq/cashlinkd/pkg/metrics"
)

var (
	// ErrNotFound indicates the chain has no record of the intent. The contract
	// signals this with a zero sender address, not with a call error.
	ErrNotFound = errors.New("intent not found on chain")

	// ErrNoSigner indicates a write operation was attempted without a configured key
	ErrNoSigner = errors.New("no signer configured")

	// ErrUnavailable indicates the RPC endpoint is failing and the circuit is open
	ErrUnavailable = errors.New("chain endpoint unavailable")
)

// Intent is the point-in-time escrow state for an identifier
type Intent struct {
	Sender  common.Address
	Amount  *big.Int
	Claimed bool
}

// Adapter wraps the escrow and token contracts with domain-level operations
type Adapter struct {
	chain   *blockchain.ChainConfig
	breaker *circuitbreaker.CircuitBreaker
	nonces  *blockchain.NonceManager
	logger  logger.Logger
}

// NewAdapter creates a new escrow adapter
func NewAdapter(chain *blockchain.ChainConfig, breaker *circuitbreaker.CircuitBreaker, log logger.Logger) *Adapter {
	return &Adapter{
		chain:   chain,
		breaker: breaker,
		nonces:  blockchain.NewNonceManager(),
		logger:  log,
	}
}

// Lookup reads the escrow state for an intent. The result is eventually
// consistent with writes this process just submitted; callers must not assume
// immediate visibility.
func (a *Adapter) Lookup(ctx context.Context, id common.Hash) (Intent, error) {
	if a.breaker != nil && a.breaker.IsOpen() {
		return Intent{}, fmt.Errorf("%w: circuit open", ErrUnavailable)
	}

	out, err := a.chain.Escrow.Intents(&bind.CallOpts{Context: ctx}, id)
	if err != nil {
		a.recordFailure("intents")
		return Intent{}, fmt.Errorf("failed to look up intent %s: %w", id.Hex(), err)
	}
	a.recordSuccess()

	if out.Sender == (common.Address{}) {
		return Intent{}, ErrNotFound
	}

	return Intent{
		Sender:  out.Sender,
		Amount:  out.Amount,
		Claimed: out.Claimed,
	}, nil
}

// Allowance returns the owner's current spending allowance for the escrow contract
func (a *Adapter) Allowance(ctx context.Context, owner common.Address) (*big.Int, error) {
	allowance, err := a.chain.Token.Allowance(&bind.CallOpts{Context: ctx}, owner, common.HexToAddress(a.chain.EscrowAddress))
	if err != nil {
		a.recordFailure("allowance")
		return nil, fmt.Errorf("failed to check allowance: %w", err)
	}
	a.recordSuccess()
	return allowance, nil
}

// BalanceOf returns the owner's token balance in minor units
func (a *Adapter) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	balance, err := a.chain.Token.BalanceOf(&bind.CallOpts{Context: ctx}, owner)
	if err != nil {
		a.recordFailure("balanceOf")
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}
	a.recordSuccess()
	return balance, nil
}

// Approve submits an approval granting the escrow contract spending rights for amount
func (a *Adapter) Approve(ctx context.Context, amount *big.Int) (*types.Transaction, error) {
	return a.submit(ctx, "approve", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return a.chain.Token.Approve(opts, common.HexToAddress(a.chain.EscrowAddress), amount)
	})
}

// Lock submits a lock transaction funding the intent. The contract rejects a
// duplicate identifier and an insufficient allowance or balance.
func (a *Adapter) Lock(ctx context.Context, id common.Hash, amount *big.Int) (*types.Transaction, error) {
	return a.submit(ctx, "lock", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return a.chain.Escrow.Lock(opts, id, amount)
	})
}

// Claim submits a claim transferring the locked funds to recipient. The
// contract is the single arbiter of eligibility; a second claim on an already
// claimed intent fails there rather than double-paying.
func (a *Adapter) Claim(ctx context.Context, id common.Hash, recipient common.Address) (*types.Transaction, error) {
	return a.submit(ctx, "claim", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return a.chain.Escrow.Claim(opts, id, recipient)
	})
}

// Refund submits a refund returning unclaimed funds to the sender
func (a *Adapter) Refund(ctx context.Context, id common.Hash) (*types.Transaction, error) {
	return a.submit(ctx, "refund", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return a.chain.Escrow.Refund(opts, id)
	})
}

// WaitMined blocks until the given transaction is included in a block
func (a *Adapter) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, a.chain.Client, tx)
	if err != nil {
		a.nonces.MarkTransactionFailed(tx.Nonce())
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	a.nonces.MarkTransactionConfirmed(tx.Nonce())
	return receipt, nil
}

// ConnectedChainID returns the chain id of the connected RPC endpoint
func (a *Adapter) ConnectedChainID(ctx context.Context) (*big.Int, error) {
	return a.chain.ConnectedChainID(ctx)
}

// SwitchChain verifies the endpoint is on the wanted network. A daemon pinned
// to one RPC endpoint cannot hop networks the way a wallet can, so a mismatch
// is reported back for operator remediation instead of being retried.
func (a *Adapter) SwitchChain(ctx context.Context, want *big.Int) error {
	connected, err := a.chain.ConnectedChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if connected.Cmp(want) != 0 {
		return fmt.Errorf("connected to chain %s, need chain %s: network switch not supported", connected.String(), want.String())
	}
	return nil
}

// Signer returns the address submitting write operations
func (a *Adapter) Signer() common.Address {
	if a.chain.Auth == nil {
		return common.Address{}
	}
	return a.chain.Auth.From
}

// submit allocates a nonce, refreshes the gas price and sends one transaction
func (a *Adapter) submit(ctx context.Context, operation string, send func(*bind.TransactOpts) (*types.Transaction, error)) (*types.Transaction, error) {
	if a.chain.Auth == nil {
		return nil, ErrNoSigner
	}

	gasPrice, err := a.chain.UpdateGasPrice(ctx)
	if err != nil {
		a.logger.ErrorWith(logger.Chain, "Failed to update gas price, continuing with previous: %v", err)
	} else {
		gwei, _ := new(big.Float).Quo(new(big.Float).SetInt(gasPrice), big.NewFloat(1e9)).Float64()
		metrics.GasPrice.Set(gwei)
	}

	nonce, err := a.nonces.GetNonce(ctx, a.chain.Client, a.chain.Auth.From)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce for %s: %w", operation, err)
	}

	txOpts := *a.chain.Auth
	txOpts.Context = ctx
	txOpts.Nonce = new(big.Int).SetUint64(nonce)

	tx, err := send(&txOpts)
	if err != nil {
		a.nonces.MarkTransactionFailed(nonce)
		a.recordFailure(operation)
		return nil, fmt.Errorf("failed to submit %s transaction: %w", operation, err)
	}

	a.nonces.TrackTransaction(tx.Hash(), nonce)
	a.logger.InfoWith(logger.Chain, "Submitted %s transaction %s (nonce: %d)", operation, tx.Hash().Hex(), nonce)
	return tx, nil
}

func (a *Adapter) recordFailure(operation string) {
	metrics.RPCErrors.WithLabelValues(operation).Inc()
	if a.breaker != nil {
		a.breaker.RecordFailure()
	}
}

func (a *Adapter) recordSuccess() {
	if a.breaker != nil {
		a.breaker.RecordSuccess()
	}
}
