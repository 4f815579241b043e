package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/cashlink-hq/cashlinkd/pkg/contracts"
)

// ChainConfig holds the connection state for the escrow chain
type ChainConfig struct {
	ChainID       int64
	RPCURL        string
	EscrowAddress string
	TokenAddress  string
	Client        *ethclient.Client
	Escrow        *contracts.Escrow
	Token         *contracts.ERC20
	Auth          *bind.TransactOpts
	GasMultiplier float64
}

// NewChainConfig creates a chain configuration
func NewChainConfig(chainID int64, rpcURL, escrowAddress, tokenAddress string) *ChainConfig {
	// Gas multiplier can be tuned from the environment, default 10% buffer
	gasMultiplier := 1.1
	if s := os.Getenv("GAS_MULTIPLIER"); s != "" {
		parsed, err := strconv.ParseFloat(s, 64)
		if err == nil && parsed > 0 {
			gasMultiplier = parsed
		}
	}

	return &ChainConfig{
		ChainID:       chainID,
		RPCURL:        rpcURL,
		EscrowAddress: escrowAddress,
		TokenAddress:  tokenAddress,
		GasMultiplier: gasMultiplier,
	}
}

// Connect establishes the RPC connection and initializes the contract bindings
func (c *ChainConfig) Connect(privateKey string) error {
	client, err := ethclient.Dial(c.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to client: %v", err)
	}
	c.Client = client

	// Set up authenticator for signed operations (lock/claim/refund).
	// A read-only deployment may run without a key.
	if privateKey != "" {
		auth, err := createAuthenticator(client, privateKey)
		if err != nil {
			return fmt.Errorf("failed to create authenticator: %v", err)
		}
		c.Auth = auth
	}

	escrow, err := contracts.NewEscrow(common.HexToAddress(c.EscrowAddress), client)
	if err != nil {
		return fmt.Errorf("failed to initialize escrow contract: %v", err)
	}
	c.Escrow = escrow

	token, err := contracts.NewERC20(common.HexToAddress(c.TokenAddress), client)
	if err != nil {
		return fmt.Errorf("failed to initialize token contract: %v", err)
	}
	c.Token = token

	return nil
}

// ConnectedChainID returns the chain id reported by the connected RPC endpoint
func (c *ChainConfig) ConnectedChainID(ctx context.Context) (*big.Int, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return c.Client.ChainID(timeoutCtx)
}

// UpdateGasPrice updates the gas price based on current network conditions
func (c *ChainConfig) UpdateGasPrice(ctx context.Context) (*big.Int, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	gasPrice, err := c.Client.SuggestGasPrice(timeoutCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %v", err)
	}

	// Apply gas multiplier (e.g. 1.1 = 10% buffer)
	multipliedGasPrice := new(big.Float).Mul(
		new(big.Float).SetInt(gasPrice),
		big.NewFloat(c.GasMultiplier),
	)

	finalGasPrice := new(big.Int)
	multipliedGasPrice.Int(finalGasPrice)

	if c.Auth != nil {
		c.Auth.GasPrice = finalGasPrice
	}

	return finalGasPrice, nil
}

// GetLatestBlockNumber gets the latest block number from the chain
func (c *ChainConfig) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	if c.Client == nil {
		return 0, fmt.Errorf("client not connected")
	}

	return c.Client.BlockNumber(ctx)
}

// Helper function to create authenticator
func createAuthenticator(client *ethclient.Client, privateKeyHex string) (*bind.TransactOpts, error) {
	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %v", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %v", err)
	}

	return auth, nil
}
