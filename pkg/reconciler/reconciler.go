// Package reconciler resolves claim links by merging the off-chain intent
// store with the authoritative on-chain escrow state. Where the two disagree
// the chain wins and the store is healed to match; the store never overrides
// the contract.
package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cashlink-hq/cashlinkd/pkg/escrow"
	"github.com/cashlink-hq/cashlinkd/pkg/logger"
	"github.com/cashlink-hq/cashlinkd/pkg/metrics"
	"github.com/cashlink-hq/cashlinkd/pkg/models"
	"github.com/cashlink-hq/cashlinkd/pkg/store"
)

// ErrNotFound indicates neither the store nor the chain knows the intent
var ErrNotFound = errors.New("payment link not found")

// Source names where the resolved intent data came from
type Source string

const (
	SourceStore Source = "store"
	SourceChain Source = "chain"
)

// Resolution is the merged view of an intent served to claim pages
type Resolution struct {
	Intent    models.Intent
	Source    Source
	Claimable bool
}

// ChainReader is the subset of the escrow adapter the reconciler needs
type ChainReader interface {
	Lookup(ctx context.Context, id common.Hash) (escrow.Intent, error)
}

// Service reconciles intent records against the escrow contract. The store is
// optional: without one, every resolution is chain-native.
type Service struct {
	store  store.Store
	chain  ChainReader
	logger logger.Logger
}

// NewService creates a reconciliation service. store may be nil.
func NewService(st store.Store, chain ChainReader, log logger.Logger) *Service {
	return &Service{
		store:  st,
		chain:  chain,
		logger: log,
	}
}

// CreateIntent validates the supplied fields and persists a new pending
// record. The record is advisory; locking the funds is the orchestrator's job.
func (s *Service) CreateIntent(ctx context.Context, id, sender, amount, description string) (models.Intent, error) {
	intent, err := models.ParseIntent(id, sender, amount, description)
	if err != nil {
		return models.Intent{}, err
	}

	if s.store != nil {
		if err := s.store.SaveIntent(ctx, intent); err != nil {
			return models.Intent{}, err
		}
	}

	metrics.IntentsCreated.Inc()
	s.logger.InfoWith(logger.Recon, "Created intent %s from %s for %s", intent.ID, models.FormatAddress(intent.Sender), intent.Amount)
	return intent, nil
}

// Resolve produces the current view of an intent. A stored record is checked
// against the chain and self-healed when the chain already reports the claim;
// an unknown id falls through to a chain-native lookup before being declared
// not found.
func (s *Service) Resolve(ctx context.Context, id string) (Resolution, error) {
	if !models.ValidIntentID(id) {
		return Resolution{}, fmt.Errorf("%w: invalid id %q", models.ErrMalformed, id)
	}
	canonical := common.HexToHash(id)

	if s.store != nil {
		intent, err := s.store.GetIntent(ctx, canonical.Hex())
		if err == nil {
			return s.resolveStored(ctx, intent, canonical)
		}
		if !errors.Is(err, store.ErrNotFound) {
			metrics.IntentResolutions.WithLabelValues(string(SourceStore), "error").Inc()
			return Resolution{}, err
		}
	}

	return s.resolveFromChain(ctx, canonical)
}

// resolveStored reconciles a stored record against the escrow contract
func (s *Service) resolveStored(ctx context.Context, intent models.Intent, id common.Hash) (Resolution, error) {
	res := Resolution{Intent: intent, Source: SourceStore}

	onChain, err := s.chain.Lookup(ctx, id)
	if errors.Is(err, escrow.ErrNotFound) {
		// The record exists but the lock has not landed on chain yet, or the
		// funds were already refunded. Either way there is nothing to claim.
		metrics.IntentResolutions.WithLabelValues(string(SourceStore), "unfunded").Inc()
		res.Claimable = false
		return res, nil
	}
	if err != nil {
		// Transient chain failure. Serve the stored view but never call the
		// link claimable on stale data.
		s.logger.ErrorWith(logger.Recon, "Chain lookup failed for %s, serving stored record: %v", id.Hex(), err)
		metrics.IntentResolutions.WithLabelValues(string(SourceStore), "degraded").Inc()
		res.Claimable = false
		return res, nil
	}

	if onChain.Claimed && intent.Status != models.StatusClaimed {
		// The contract already paid out. Heal the record so the link stops
		// presenting as claimable.
		if err := s.store.MarkClaimed(ctx, intent.ID); err != nil {
			s.logger.ErrorWith(logger.Recon, "Failed to heal record %s: %v", intent.ID, err)
		} else {
			metrics.ReconciliationHeals.Inc()
			s.logger.NoticeWith(logger.Recon, "Healed record %s: chain reports claimed", intent.ID)
		}
		res.Intent.Status = models.StatusClaimed
	}

	// A record already marked claimed stays terminal even while the chain
	// read lags behind the payout; a terminal resolution never offers a claim.
	res.Claimable = !onChain.Claimed && res.Intent.Status != models.StatusClaimed
	metrics.IntentResolutions.WithLabelValues(string(SourceStore), "ok").Inc()
	return res, nil
}

// resolveFromChain synthesizes a view purely from escrow state, covering
// intents locked by other frontends that never touched this store
func (s *Service) resolveFromChain(ctx context.Context, id common.Hash) (Resolution, error) {
	onChain, err := s.chain.Lookup(ctx, id)
	if errors.Is(err, escrow.ErrNotFound) {
		metrics.IntentResolutions.WithLabelValues(string(SourceChain), "not_found").Inc()
		return Resolution{}, ErrNotFound
	}
	if err != nil {
		metrics.IntentResolutions.WithLabelValues(string(SourceChain), "error").Inc()
		return Resolution{}, err
	}

	status := models.StatusPending
	if onChain.Claimed {
		status = models.StatusClaimed
	}

	metrics.IntentResolutions.WithLabelValues(string(SourceChain), "ok").Inc()
	return Resolution{
		Intent: models.Intent{
			ID:     id.Hex(),
			Sender: onChain.Sender.Hex(),
			Amount: onChain.Amount.String(),
			Status: status,
		},
		Source:    SourceChain,
		Claimable: !onChain.Claimed,
	}, nil
}

// MarkClaimed records a completed claim in the store. Safe to repeat and safe
// to call for ids the store never saw.
func (s *Service) MarkClaimed(ctx context.Context, id string) error {
	if !models.ValidIntentID(id) {
		return fmt.Errorf("%w: invalid id %q", models.ErrMalformed, id)
	}

	if s.store == nil {
		return nil
	}

	if err := s.store.MarkClaimed(ctx, common.HexToHash(id).Hex()); err != nil {
		return err
	}
	metrics.IntentsClaimed.Inc()
	return nil
}
