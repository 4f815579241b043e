// Package health serves the operational endpoints: liveness, readiness, chain
// status and Prometheus metrics.
package health

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cashlink-hq/cashlinkd/pkg/blockchain"
	"github.com/cashlink-hq/cashlinkd/pkg/circuitbreaker"
	"github.com/cashlink-hq/cashlinkd/pkg/logger"
	"github.com/cashlink-hq/cashlinkd/pkg/metrics"
)

// Pinger is anything whose backing resource can be checked for liveness.
// The intent store implements it through its database handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the health and metrics HTTP server
type Server struct {
	port          string
	chain         *blockchain.ChainConfig
	breaker       *circuitbreaker.CircuitBreaker
	storePing     Pinger
	metricsAPIKey string
	logger        logger.Logger

	httpServer *http.Server
}

// NewServer creates a new health server. storePing may be nil for chain-native
// deployments without a record store.
func NewServer(port string, chain *blockchain.ChainConfig, breaker *circuitbreaker.CircuitBreaker, storePing Pinger, log logger.Logger) *Server {
	return &Server{
		port:          port,
		chain:         chain,
		breaker:       breaker,
		storePing:     storePing,
		metricsAPIKey: os.Getenv("METRICS_API_KEY"),
		logger:        log,
	}
}

// metricsAuthMiddleware is a middleware that checks for a valid API key
func (s *Server) metricsAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth if no API key is configured
		if s.metricsAPIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		if parts[1] != s.metricsAPIKey {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start starts the health server. It blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if s.chain.Client == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Chain client not connected"))
			return
		}
		if s.storePing != nil {
			if err := s.storePing.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("Intent store not reachable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Ready"))
	})

	mux.HandleFunc("/status", s.handleStatus)

	mux.HandleFunc("/circuit/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.breaker.Reset()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Circuit breaker reset"))
	})

	// Expose Prometheus metrics with API key authentication
	mux.Handle("/metrics", s.metricsAuthMiddleware(promhttp.Handler()))

	s.httpServer = &http.Server{
		Addr:    ":" + s.port,
		Handler: mux,
	}

	s.logger.InfoWith(logger.HTTP, "Health and metrics server listening on :%s", s.port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the health server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// handleStatus reports the chain connection, circuit state and signer balance
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	circuitStatus := "closed"
	if s.breaker.IsOpen() {
		circuitStatus = "open"
	}

	status := map[string]interface{}{
		"chain_id":       s.chain.ChainID,
		"rpc_url":        s.chain.RPCURL,
		"escrow_address": s.chain.EscrowAddress,
		"token_address":  s.chain.TokenAddress,
		"connected":      s.chain.Client != nil,
		"circuit":        circuitStatus,
		"signer":         s.chain.Auth != nil,
	}

	if s.chain.Client != nil {
		if blockNumber, err := s.chain.GetLatestBlockNumber(r.Context()); err == nil {
			status["latest_block"] = blockNumber
		}
		if s.chain.Auth != nil {
			if balance, symbol, err := s.signerBalance(r.Context()); err == nil {
				status["signer_balance"] = balance.String()
				status["token_symbol"] = symbol
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.ErrorWith(logger.HTTP, "Error encoding status JSON: %v", err)
	}
}

// signerBalance reads the signer's settlement token balance and feeds the
// balance gauge
func (s *Server) signerBalance(ctx context.Context) (*big.Int, string, error) {
	opts := &bind.CallOpts{Context: ctx}

	balance, err := s.chain.Token.BalanceOf(opts, s.chain.Auth.From)
	if err != nil {
		return nil, "", err
	}

	symbol, err := s.chain.Token.Symbol(opts)
	if err != nil {
		return balance, "", nil
	}

	decimals, err := s.chain.Token.Decimals(opts)
	if err != nil {
		return balance, symbol, nil
	}

	unit := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	whole, _ := new(big.Float).Quo(new(big.Float).SetInt(balance), unit).Float64()
	metrics.TokenBalance.WithLabelValues(symbol).Set(whole)

	return balance, symbol, nil
}
