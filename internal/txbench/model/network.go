// Package model holds the shared value types of the signing benchmark.
package model

import "fmt"

type Network string

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

// ParseNetwork resolves a network tag. Only exact matches are accepted.
func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case Mainnet, Testnet:
		return Network(s), nil
	default:
		return "", fmt.Errorf("%w: network %q is not one of %q or %q", ErrConfig, s, Mainnet, Testnet)
	}
}
