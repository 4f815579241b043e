package blockchain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// TransactionStatus represents the status of a tracked transaction
type TransactionStatus int

const (
	// TxPending indicates transaction is pending
	TxPending TransactionStatus = iota
	// TxConfirmed indicates transaction is confirmed
	TxConfirmed
	// TxFailed indicates transaction has failed
	TxFailed
)

// TransactionRecord tracks details about a submitted transaction
type TransactionRecord struct {
	Hash      common.Hash
	Nonce     uint64
	CreatedAt time.Time
	UpdatedAt time.Time
	Status    TransactionStatus
}

// NonceManager handles nonce allocation and tracking for the signer account.
// Sequences like approve-then-lock submit two transactions back to back, so
// nonces are reserved locally instead of re-querying the node between them.
type NonceManager struct {
	currentNonce uint64
	pendingTxs   map[uint64]*TransactionRecord
	lastSync     time.Time
	mu           sync.Mutex
}

// NewNonceManager creates a new nonce manager
func NewNonceManager() *NonceManager {
	return &NonceManager{
		pendingTxs: make(map[uint64]*TransactionRecord),
	}
}

// GetNonce reserves and returns the next available nonce
func (nm *NonceManager) GetNonce(ctx context.Context, client *ethclient.Client, address common.Address) (uint64, error) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	// Resync with the node if we never synced or the last sync is stale
	if nm.lastSync.IsZero() || time.Since(nm.lastSync) > 5*time.Minute {
		nonce, err := client.PendingNonceAt(ctx, address)
		if err != nil {
			return 0, fmt.Errorf("failed to get pending nonce: %v", err)
		}

		if nonce > nm.currentNonce {
			nm.currentNonce = nonce
		}
		nm.lastSync = time.Now()
	}

	nonce := nm.currentNonce
	nm.currentNonce++
	return nonce, nil
}

// TrackTransaction records a submitted transaction under its nonce
func (nm *NonceManager) TrackTransaction(hash common.Hash, nonce uint64) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	now := time.Now()
	nm.pendingTxs[nonce] = &TransactionRecord{
		Hash:      hash,
		Nonce:     nonce,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    TxPending,
	}
}

// MarkTransactionConfirmed marks a tracked transaction as confirmed
func (nm *NonceManager) MarkTransactionConfirmed(nonce uint64) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	if record, ok := nm.pendingTxs[nonce]; ok {
		record.Status = TxConfirmed
		record.UpdatedAt = time.Now()
		delete(nm.pendingTxs, nonce)
	}
}

// MarkTransactionFailed marks a tracked transaction as failed and releases the
// nonce so the next sync re-fetches from the node
func (nm *NonceManager) MarkTransactionFailed(nonce uint64) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	if record, ok := nm.pendingTxs[nonce]; ok {
		record.Status = TxFailed
		record.UpdatedAt = time.Now()
		delete(nm.pendingTxs, nonce)
	}

	// Force a resync on the next allocation since the failed transaction may
	// or may not have consumed its nonce on-chain
	nm.lastSync = time.Time{}
}

// PendingCount returns the number of transactions still awaiting confirmation
func (nm *NonceManager) PendingCount() int {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	return len(nm.pendingTxs)
}
