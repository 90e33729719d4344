// Package key derives signing key material from a configured secret.
package key

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/txbench/internal/txbench/config"
	"github.com/goodnatureofminers/txbench/internal/txbench/model"
)

const secretSize = 32

// Info owns the raw secret and network. It is immutable and safe to share
// between goroutines; every accessor derives its result from scratch.
type Info struct {
	secret  [secretSize]byte
	network model.Network
	params  *chaincfg.Params
}

// FromConfig derives key material from the wallet and service sections.
func FromConfig(cfg *config.Config) (*Info, error) {
	return Derive(cfg.Wallet.PrivateKeyForInstance, cfg.Service.Network)
}

// Derive decodes a hex-encoded 32 byte secret for the given network tag.
func Derive(secretHex, network string) (*Info, error) {
	net, err := model.ParseNetwork(network)
	if err != nil {
		return nil, err
	}
	params, err := ParamsForNetwork(net)
	if err != nil {
		return nil, err
	}

	raw, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, fmt.Errorf("%w: secret is not valid hex: %w", model.ErrKey, err)
	}
	if len(raw) != secretSize {
		return nil, fmt.Errorf("%w: secret is %d bytes, want %d", model.ErrKey, len(raw), secretSize)
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(raw); overflow || scalar.IsZero() {
		return nil, fmt.Errorf("%w: secret is not a valid secp256k1 scalar", model.ErrKey)
	}

	info := &Info{network: net, params: params}
	copy(info.secret[:], raw)
	return info, nil
}

// ParamsForNetwork maps a network tag to its address parameters.
func ParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch network {
	case model.Mainnet:
		return &chaincfg.MainNetParams, nil
	case model.Testnet:
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, fmt.Errorf("%w: unsupported network %q", model.ErrConfig, network)
	}
}

func (k *Info) Network() model.Network {
	return k.network
}

func (k *Info) Params() *chaincfg.Params {
	return k.params
}

func (k *Info) PrivateKey() *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(k.secret[:])
	return priv
}

func (k *Info) PublicKey() *btcec.PublicKey {
	return k.PrivateKey().PubKey()
}

// Address returns the pay-to-pubkey-hash address of the compressed public key.
func (k *Info) Address() (*btcutil.AddressPubKeyHash, error) {
	pkh := btcutil.Hash160(k.PublicKey().SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pkh, k.params)
	if err != nil {
		return nil, fmt.Errorf("%w: derive address: %w", model.ErrKey, err)
	}
	return addr, nil
}

// WIF returns the wallet import format encoding of the compressed key.
func (k *Info) WIF() (*btcutil.WIF, error) {
	wif, err := btcutil.NewWIF(k.PrivateKey(), k.params, true)
	if err != nil {
		return nil, fmt.Errorf("%w: encode wif: %w", model.ErrKey, err)
	}
	return wif, nil
}
