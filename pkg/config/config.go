package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/cashlink-hq/cashlinkd/pkg/logger"
)

// Config holds the configuration for the cashlink service
type Config struct {
	Chain          ChainSettings
	PrivateKey     string
	HTTPPort       string
	MetricsPort    string
	PublicOrigin   string
	Store          StoreConfig
	ConfirmTimeout time.Duration
	CircuitBreaker CircuitBreakerConfig
	LoggerConfig   LoggerConfig
}

// ChainSettings holds the configuration for the escrow chain
type ChainSettings struct {
	ChainID       int64
	RPCURL        string
	EscrowAddress string
	TokenAddress  string
}

// StoreConfig holds the configuration for the off-chain intent record store
type StoreConfig struct {
	Driver string // sqlite, memory or none (chain-native deployment)
	Path   string
}

// CircuitBreakerConfig holds circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled        bool
	Threshold      int
	WindowDuration time.Duration
	ResetTimeout   time.Duration
}

// LoggerConfig holds the configuration for logging
type LoggerConfig struct {
	Level    logger.Level
	Coloring bool
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	chainID, err := GetEnvChainID()
	if err != nil {
		return nil, err
	}

	escrowAddress, err := GetEnvEscrowAddress()
	if err != nil {
		return nil, err
	}

	tokenAddress, err := GetEnvTokenAddress()
	if err != nil {
		return nil, err
	}

	httpPort, err := GetEnvHTTPPort()
	if err != nil {
		return nil, err
	}

	metricsPort, err := GetEnvMetricsPort()
	if err != nil {
		return nil, err
	}

	publicOrigin, err := GetEnvPublicOrigin()
	if err != nil {
		return nil, err
	}

	storeDriver, err := GetEnvStoreDriver()
	if err != nil {
		return nil, err
	}

	confirmTimeout, err := GetEnvConfirmTimeout()
	if err != nil {
		return nil, err
	}

	cbEnabled, err := GetEnvCircuitBreakerEnabled()
	if err != nil {
		return nil, err
	}

	cbThreshold, err := GetEnvCircuitBreakerThreshold()
	if err != nil {
		return nil, err
	}

	cbWindow, err := GetEnvCircuitBreakerWindow()
	if err != nil {
		return nil, err
	}

	cbReset, err := GetEnvCircuitBreakerReset()
	if err != nil {
		return nil, err
	}

	logLevel, err := GetEnvLogLevel()
	if err != nil {
		return nil, err
	}

	logColoring, err := GetEnvLogColoring()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Chain: ChainSettings{
			ChainID:       chainID,
			RPCURL:        GetEnvRPCURL(),
			EscrowAddress: escrowAddress,
			TokenAddress:  tokenAddress,
		},
		PrivateKey:   GetEnvPrivateKey(),
		HTTPPort:     httpPort,
		MetricsPort:  metricsPort,
		PublicOrigin: publicOrigin,
		Store: StoreConfig{
			Driver: storeDriver,
			Path:   GetEnvStorePath(),
		},
		ConfirmTimeout: confirmTimeout,
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:        cbEnabled,
			Threshold:      cbThreshold,
			WindowDuration: cbWindow,
			ResetTimeout:   cbReset,
		},
		LoggerConfig: LoggerConfig{
			Level:    logLevel,
			Coloring: logColoring,
		},
	}

	// Validate required environment variables
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Chain.RPCURL == "" {
		return fmt.Errorf("RPC_URL environment variable is required")
	}
	if cfg.Chain.EscrowAddress == "" {
		return fmt.Errorf("ESCROW_ADDRESS environment variable is required")
	}
	if cfg.Chain.TokenAddress == "" {
		return fmt.Errorf("TOKEN_ADDRESS environment variable is required")
	}
	if cfg.Store.Driver == StoreDriverSqlite && cfg.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required when STORE_DRIVER is sqlite")
	}
	return nil
}
