package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cashlink-hq/cashlinkd/pkg/logger"
)

const (
	// DefaultChainID defines the chain the escrow contract is deployed on (Base Sepolia)
	DefaultChainID = 84532

	// DefaultRPCURL defines the default RPC endpoint for the escrow chain
	DefaultRPCURL = "https://sepolia.base.org"

	// EscrowAddress is the deployed escrow contract
	EscrowAddress = "0x7f66b65b54267f837cf139054552e0ab3ce23e33"

	// TokenAddress is the settlement token pulled into escrow (6 decimals)
	TokenAddress = "0xa2ad4ca7752f93d823c6397f6e0a15ac51a63deb"

	// DefaultHTTPPort defines the default port for the intent API server
	DefaultHTTPPort = "8080"

	// DefaultMetricsPort defines the default port for the health and metrics server
	DefaultMetricsPort = "9090"

	// DefaultPublicOrigin is the origin used when composing shareable claim links
	DefaultPublicOrigin = "http://localhost:8080"

	// DefaultStoreDriver selects the off-chain intent record store backend
	DefaultStoreDriver = StoreDriverSqlite

	// DefaultStorePath is where the sqlite store keeps intent records
	DefaultStorePath = "data/intents.db"

	// DefaultConfirmTimeout bounds how long a single receipt wait may block
	DefaultConfirmTimeout = 120 * time.Second

	// DefaultCircuitBreakerEnabled defines whether the circuit breaker is enabled
	DefaultCircuitBreakerEnabled = true

	// DefaultCircuitBreakerThreshold defines the number of failures before the circuit breaker trips
	DefaultCircuitBreakerThreshold = 5

	// DefaultCircuitBreakerWindow defines the time window for the circuit breaker in seconds
	DefaultCircuitBreakerWindow = 30

	// DefaultCircuitBreakerReset defines the reset timeout for the circuit breaker in seconds
	DefaultCircuitBreakerReset = 60
)

// Store driver names
const (
	StoreDriverSqlite = "sqlite"
	StoreDriverMemory = "memory"
	StoreDriverNone   = "none"
)

// GetEnvChainID returns the escrow chain id from environment variables
func GetEnvChainID() (int64, error) {
	chainID := os.Getenv("CHAIN_ID")
	if chainID == "" {
		return DefaultChainID, nil
	}

	id, err := strconv.ParseInt(chainID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid CHAIN_ID value: %s, must be an integer", chainID)
	}
	if id <= 0 {
		return 0, fmt.Errorf("CHAIN_ID must be greater than 0")
	}
	return id, nil
}

// GetEnvRPCURL returns the RPC endpoint from environment variables
func GetEnvRPCURL() string {
	rpc := os.Getenv("RPC_URL")
	if rpc == "" {
		return DefaultRPCURL
	}
	return rpc
}

// GetEnvEscrowAddress returns the escrow contract address from environment variables
func GetEnvEscrowAddress() (string, error) {
	address := os.Getenv("ESCROW_ADDRESS")
	if address == "" {
		return EscrowAddress, nil
	}

	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid ESCROW_ADDRESS value: %s, must be a valid Ethereum address", address)
	}
	return address, nil
}

// GetEnvTokenAddress returns the settlement token address from environment variables
func GetEnvTokenAddress() (string, error) {
	address := os.Getenv("TOKEN_ADDRESS")
	if address == "" {
		return TokenAddress, nil
	}

	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid TOKEN_ADDRESS value: %s, must be a valid Ethereum address", address)
	}
	return address, nil
}

// GetEnvPrivateKey returns the signer private key from environment variables.
// The key is optional: a deployment without it serves reads and reconciliation
// but cannot orchestrate lock/claim/refund transactions.
func GetEnvPrivateKey() string {
	return os.Getenv("PRIVATE_KEY")
}

// GetEnvHTTPPort returns the intent API server port from environment variables
func GetEnvHTTPPort() (string, error) {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		return DefaultHTTPPort, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid HTTP_PORT value: %s, must be a valid integer", port)
	}
	return port, nil
}

// GetEnvMetricsPort returns the health and metrics server port from environment variables
func GetEnvMetricsPort() (string, error) {
	port := os.Getenv("METRICS_PORT")
	if port == "" {
		return DefaultMetricsPort, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid METRICS_PORT value: %s, must be a valid integer", port)
	}
	return port, nil
}

// GetEnvPublicOrigin returns the origin used for claim links from environment variables
func GetEnvPublicOrigin() (string, error) {
	origin := os.Getenv("PUBLIC_ORIGIN")
	if origin == "" {
		return DefaultPublicOrigin, nil
	}

	if _, err := url.ParseRequestURI(origin); err != nil {
		return "", fmt.Errorf("invalid PUBLIC_ORIGIN value: %s, must be a valid URL", origin)
	}
	return origin, nil
}

// GetEnvStoreDriver returns the intent record store driver from environment variables
func GetEnvStoreDriver() (string, error) {
	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		return DefaultStoreDriver, nil
	}

	switch driver {
	case StoreDriverSqlite, StoreDriverMemory, StoreDriverNone:
		return driver, nil
	}
	return "", fmt.Errorf("invalid STORE_DRIVER value: %s, must be 'sqlite', 'memory' or 'none'", driver)
}

// GetEnvStorePath returns the sqlite store path from environment variables
func GetEnvStorePath() string {
	path := os.Getenv("STORE_PATH")
	if path == "" {
		return DefaultStorePath
	}
	return path
}

// GetEnvConfirmTimeout returns the receipt confirmation timeout from environment variables
func GetEnvConfirmTimeout() (time.Duration, error) {
	timeout := os.Getenv("CONFIRM_TIMEOUT")
	if timeout == "" {
		return DefaultConfirmTimeout, nil
	}

	parsed, err := time.ParseDuration(timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid CONFIRM_TIMEOUT value: %s, must be a valid duration string", timeout)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("CONFIRM_TIMEOUT must be greater than 0")
	}
	return parsed, nil
}

// GetEnvCircuitBreakerEnabled returns whether the circuit breaker is enabled from environment variables
func GetEnvCircuitBreakerEnabled() (bool, error) {
	enabled := os.Getenv("CIRCUIT_BREAKER_ENABLED")
	if enabled == "" {
		return DefaultCircuitBreakerEnabled, nil
	}

	if enabled == "true" {
		return true, nil
	} else if enabled == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid CIRCUIT_BREAKER_ENABLED value: %s, must be 'true' or 'false'", enabled)
}

// GetEnvCircuitBreakerThreshold returns the circuit breaker threshold from environment variables
func GetEnvCircuitBreakerThreshold() (int, error) {
	threshold := os.Getenv("CIRCUIT_BREAKER_THRESHOLD")
	if threshold == "" {
		return DefaultCircuitBreakerThreshold, nil
	}

	thresholdInt, err := strconv.Atoi(threshold)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_THRESHOLD value: %s, must be an integer", threshold)
	}
	if thresholdInt <= 0 {
		return 0, fmt.Errorf("CIRCUIT_BREAKER_THRESHOLD must be greater than 0")
	}
	return thresholdInt, nil
}

// GetEnvCircuitBreakerWindow returns the circuit breaker window duration from environment variables
func GetEnvCircuitBreakerWindow() (time.Duration, error) {
	window := os.Getenv("CIRCUIT_BREAKER_WINDOW")
	if window == "" {
		return DefaultCircuitBreakerWindow * time.Second, nil
	}

	parsed, err := time.ParseDuration(window)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_WINDOW value: %s, must be a valid duration string", window)
	}
	return parsed, nil
}

// GetEnvCircuitBreakerReset returns the circuit breaker reset timeout from environment variables
func GetEnvCircuitBreakerReset() (time.Duration, error) {
	reset := os.Getenv("CIRCUIT_BREAKER_RESET")
	if reset == "" {
		return DefaultCircuitBreakerReset * time.Second, nil
	}

	parsed, err := time.ParseDuration(reset)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_RESET value: %s, must be a valid duration string", reset)
	}
	return parsed, nil
}

// GetEnvLogLevel returns the log level from environment variables
func GetEnvLogLevel() (logger.Level, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return logger.InfoLevel, nil
	}

	switch level {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "notice":
		return logger.NoticeLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL value: %s, must be 'debug', 'info', 'notice' or 'error'", level)
}

// GetEnvLogColoring returns whether log coloring is enabled from environment variables
func GetEnvLogColoring() (bool, error) {
	coloring := os.Getenv("LOG_COLORING")
	if coloring == "" {
		return true, nil
	}

	if coloring == "true" {
		return true, nil
	} else if coloring == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid LOG_COLORING value: %s, must be 'true' or 'false'", coloring)
}
