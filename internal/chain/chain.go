// Package chain is the read-only JSON-RPC client used for balance display.
// The backend never signs or submits transactions; transfers happen in the
// embedded wallet and only their results are recorded.
package chain

import (
	"context" // Context for RPC calls
	"errors"  // Input errors

	"github.com/ethereum/go-ethereum/common"    // Address parsing
	"github.com/ethereum/go-ethereum/ethclient" // JSON-RPC client
)

// ErrInvalidAddress reports a wallet address that is not valid hex
var ErrInvalidAddress = errors.New("chain: invalid wallet address")

// Client answers balance queries for the UI
type Client interface {
	NativeBalance(ctx context.Context, address string) (string, error)
}

// RPCClient implements Client over an Ethereum JSON-RPC endpoint
type RPCClient struct {
	ec *ethclient.Client // Underlying JSON-RPC client
}

// Dial connects to the JSON-RPC endpoint
func Dial(url string) (*RPCClient, error) {
	ec, err := ethclient.Dial(url)
	if err != nil {
		return nil, err
	}
	return &RPCClient{ec: ec}, nil
}

// NativeBalance returns the latest native-coin balance in wei, as a decimal
// string so no precision is lost on the way to the client
func (c *RPCClient) NativeBalance(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}
	bal, err := c.ec.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return "", err
	}
	return bal.String(), nil
}
