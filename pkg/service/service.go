// Package service wires the cashlink components together and runs them.
package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/cashlink-hq/cashlinkd/pkg/api"
	"github.com/cashlink-hq/cashlinkd/pkg/blockchain"
	"github.com/cashlink-hq/cashlinkd/pkg/circuitbreaker"
	"github.com/cashlink-hq/cashlinkd/pkg/config"
	"github.com/cashlink-hq/cashlinkd/pkg/escrow"
	"github.com/cashlink-hq/cashlinkd/pkg/health"
	"github.com/cashlink-hq/cashlinkd/pkg/logger"
	"github.com/cashlink-hq/cashlinkd/pkg/orchestrator"
	"github.com/cashlink-hq/cashlinkd/pkg/reconciler"
	"github.com/cashlink-hq/cashlinkd/pkg/store"
)

// shutdownGrace bounds how long in-flight requests get during shutdown
const shutdownGrace = 10 * time.Second

// Service owns the component lifecycle
type Service struct {
	config    *config.Config
	logger    logger.Logger
	chain     *blockchain.ChainConfig
	breaker   *circuitbreaker.CircuitBreaker
	intents   store.Store
	apiServer *api.Server
	health    *health.Server
}

// NewService connects to the chain, opens the intent store and assembles the
// API and health servers
func NewService(cfg *config.Config) (*Service, error) {
	log := logger.NewStdLogger(cfg.LoggerConfig.Coloring, cfg.LoggerConfig.Level)

	chain := blockchain.NewChainConfig(cfg.Chain.ChainID, cfg.Chain.RPCURL, cfg.Chain.EscrowAddress, cfg.Chain.TokenAddress)
	if err := chain.Connect(cfg.PrivateKey); err != nil {
		return nil, fmt.Errorf("failed to connect to chain %d: %w", cfg.Chain.ChainID, err)
	}
	if cfg.PrivateKey == "" {
		log.Notice("No signer configured, running in read-only mode")
	}

	breaker := circuitbreaker.NewCircuitBreaker(
		cfg.CircuitBreaker.Enabled,
		cfg.CircuitBreaker.Threshold,
		cfg.CircuitBreaker.WindowDuration,
		cfg.CircuitBreaker.ResetTimeout,
	)

	intents, storePing, err := openStore(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	adapter := escrow.NewAdapter(chain, breaker, log)
	recon := reconciler.NewService(intents, adapter, log)
	orch := orchestrator.New(adapter, big.NewInt(cfg.Chain.ChainID), cfg.ConfirmTimeout, log)

	return &Service{
		config:    cfg,
		logger:    log,
		chain:     chain,
		breaker:   breaker,
		intents:   intents,
		apiServer: api.NewServer(recon, orch, cfg.PublicOrigin, cfg.HTTPPort, log),
		health:    health.NewServer(cfg.MetricsPort, chain, breaker, storePing, log),
	}, nil
}

// openStore builds the configured intent store backend
func openStore(cfg config.StoreConfig, log logger.Logger) (store.Store, health.Pinger, error) {
	switch cfg.Driver {
	case config.StoreDriverSqlite:
		s, err := store.NewSqliteStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		log.InfoWith(logger.Store, "Using sqlite intent store at %s", cfg.Path)
		return s, s, nil
	case config.StoreDriverMemory:
		log.InfoWith(logger.Store, "Using in-memory intent store")
		return store.NewMemoryStore(), nil, nil
	case config.StoreDriverNone:
		log.NoticeWith(logger.Store, "Intent store disabled, resolving from chain only")
		return nil, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// Start runs the servers until ctx is cancelled, then shuts them down
func (s *Service) Start(ctx context.Context) {
	go func() {
		if err := s.health.Start(); err != nil {
			s.logger.Error("Health server error: %v", err)
		}
	}()

	go func() {
		if err := s.apiServer.Start(); err != nil {
			s.logger.Error("API server error: %v", err)
		}
	}()

	<-ctx.Done()
	s.shutdown()
}

func (s *Service) shutdown() {
	s.logger.Notice("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := s.apiServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("API server shutdown error: %v", err)
	}
	if err := s.health.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Health server shutdown error: %v", err)
	}
	if s.intents != nil {
		if err := s.intents.Close(); err != nil {
			s.logger.Error("Intent store close error: %v", err)
		}
	}
	if s.chain.Client != nil {
		s.chain.Client.Close()
	}
}
