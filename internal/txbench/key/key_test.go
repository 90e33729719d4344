package key

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretOne = "0000000000000000000000000000000000000000000000000000000000000001"

func TestDerive(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		network string
		wantErr error
	}{
		{name: "valid mainnet", secret: secretOne, network: "mainnet"},
		{name: "valid testnet", secret: secretOne, network: "testnet"},
		{name: "non hex", secret: strings.Repeat("zz", 32), network: "testnet", wantErr: model.ErrKey},
		{name: "odd length", secret: secretOne[:63], network: "testnet", wantErr: model.ErrKey},
		{name: "too short", secret: secretOne[:62], network: "testnet", wantErr: model.ErrKey},
		{name: "too long", secret: secretOne + "00", network: "testnet", wantErr: model.ErrKey},
		{name: "zero scalar", secret: strings.Repeat("00", 32), network: "testnet", wantErr: model.ErrKey},
		{name: "above curve order", secret: strings.Repeat("ff", 32), network: "testnet", wantErr: model.ErrKey},
		{name: "unknown network", secret: secretOne, network: "regtest", wantErr: model.ErrConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Derive(tt.secret, tt.network)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Derive() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Derive() unexpected error: %v", err)
			}
			if string(got.Network()) != tt.network {
				t.Fatalf("Derive() network = %q, want %q", got.Network(), tt.network)
			}
		})
	}
}

func TestInfo_Mainnet(t *testing.T) {
	k, err := Derive(secretOne, "mainnet")
	require.NoError(t, err)

	assert.Equal(t,
		"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		hex.EncodeToString(k.PublicKey().SerializeCompressed()),
	)

	addr, err := k.Address()
	require.NoError(t, err)
	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", addr.EncodeAddress())
	assert.True(t, addr.IsForNet(&chaincfg.MainNetParams))

	wif, err := k.WIF()
	require.NoError(t, err)
	assert.Equal(t, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn", wif.String())
}

func TestInfo_Testnet(t *testing.T) {
	k, err := Derive(secretOne, "testnet")
	require.NoError(t, err)
	assert.Same(t, &chaincfg.TestNet3Params, k.Params())

	addr, err := k.Address()
	require.NoError(t, err)
	assert.True(t, addr.IsForNet(&chaincfg.TestNet3Params))

	want, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(k.PublicKey().SerializeCompressed()), &chaincfg.TestNet3Params)
	require.NoError(t, err)
	assert.Equal(t, want.EncodeAddress(), addr.EncodeAddress())
}

func TestInfo_RecomputesKeys(t *testing.T) {
	k, err := Derive(secretOne, "testnet")
	require.NoError(t, err)

	first, second := k.PrivateKey(), k.PrivateKey()
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Serialize(), second.Serialize())
	assert.True(t, k.PublicKey().IsEqual(k.PublicKey()))
}
