// Package signing computes transaction digests, signs them and finalizes
// pay-to-pubkey-hash unlocking scripts.
package signing

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/txbench/internal/txbench/model"
)

// SigHashForkID selects the replay-protected digest, which commits to the
// spent amount and uses the BIP143 preimage layout.
const SigHashForkID txscript.SigHashType = 0x40

// DefaultFlags signs all inputs and outputs with replay protection.
const DefaultFlags = txscript.SigHashAll | SigHashForkID

// Flags returns the signing flags for the configured digest mode.
func Flags(disableForkID bool) txscript.SigHashType {
	if disableForkID {
		return txscript.SigHashAll
	}
	return DefaultFlags
}

// HasForkID reports whether flags select the replay-protected digest.
func HasForkID(flags txscript.SigHashType) bool {
	return flags&SigHashForkID == SigHashForkID
}

// Digest computes the signature hash for input idx spending an output locked
// by subscript and holding amount.
func Digest(tx *wire.MsgTx, idx int, subscript []byte, amount int64, flags txscript.SigHashType) ([]byte, error) {
	if err := checkInputIndex(tx, idx); err != nil {
		return nil, err
	}

	var (
		digest []byte
		err    error
	)
	if HasForkID(flags) {
		fetcher := txscript.NewCannedPrevOutputFetcher(subscript, amount)
		sigHashes := txscript.NewTxSigHashes(tx, fetcher)
		digest, err = txscript.CalcWitnessSigHash(subscript, sigHashes, flags, tx, idx, amount)
	} else {
		digest, err = txscript.CalcSignatureHash(subscript, flags, tx, idx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: digest input %d: %w", model.ErrSigning, idx, err)
	}
	if len(digest) != chainhash.HashSize {
		return nil, fmt.Errorf("%w: digest input %d is %d bytes", model.ErrSigning, idx, len(digest))
	}
	return digest, nil
}

// Sign returns the DER encoded signature of digest followed by the flag byte.
func Sign(priv *btcec.PrivateKey, digest []byte, flags txscript.SigHashType) ([]byte, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: missing private key", model.ErrSigning)
	}
	if len(digest) != chainhash.HashSize {
		return nil, fmt.Errorf("%w: digest is %d bytes, want %d", model.ErrSigning, len(digest), chainhash.HashSize)
	}
	sig := ecdsa.Sign(priv, digest).Serialize()
	return append(sig, byte(flags)), nil
}

// Finalize sets the unlocking script of input idx to <sig> <pubkey>. An input
// may be finalized only once.
func Finalize(tx *wire.MsgTx, idx int, sig []byte, pub *btcec.PublicKey) error {
	if err := checkInputIndex(tx, idx); err != nil {
		return err
	}
	if pub == nil {
		return fmt.Errorf("%w: missing public key", model.ErrSigning)
	}
	if len(tx.TxIn[idx].SignatureScript) != 0 {
		return fmt.Errorf("%w: input %d is already finalized", model.ErrSigning, idx)
	}

	script, err := txscript.NewScriptBuilder().
		AddData(sig).
		AddData(pub.SerializeCompressed()).
		Script()
	if err != nil {
		return fmt.Errorf("%w: build unlocking script for input %d: %w", model.ErrSigning, idx, err)
	}
	tx.TxIn[idx].SignatureScript = script
	return nil
}

func checkInputIndex(tx *wire.MsgTx, idx int) error {
	if tx == nil {
		return fmt.Errorf("%w: missing transaction", model.ErrSigning)
	}
	if idx < 0 || idx >= len(tx.TxIn) {
		return fmt.Errorf("%w: input index %d out of range [0,%d)", model.ErrSigning, idx, len(tx.TxIn))
	}
	return nil
}
