package signing

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/txbench/internal/txbench/model"
)

// Verify checks that the unlocking script of input idx satisfies lockScript.
//
// Legacy digests are checked by running the script engine. Replay-protected
// digests are not understood by the engine, so for those the unlocking script
// is checked against a pay-to-pubkey-hash lockScript directly: the key must
// hash to the locked hash and the signature must be valid for the recomputed
// digest under the same flags.
func Verify(tx *wire.MsgTx, idx int, lockScript []byte, amount int64, flags txscript.SigHashType) error {
	if err := checkInputIndex(tx, idx); err != nil {
		return err
	}
	if !HasForkID(flags) {
		return verifyWithEngine(tx, idx, lockScript, amount)
	}

	pushes, err := txscript.PushedData(tx.TxIn[idx].SignatureScript)
	if err != nil {
		return fmt.Errorf("%w: parse unlocking script of input %d: %w", model.ErrSigning, idx, err)
	}
	if len(pushes) != 2 {
		return fmt.Errorf("%w: unlocking script of input %d has %d pushes, want 2", model.ErrSigning, idx, len(pushes))
	}
	sigWithFlag, pubBytes := pushes[0], pushes[1]
	if len(sigWithFlag) == 0 {
		return fmt.Errorf("%w: empty signature in input %d", model.ErrSigning, idx)
	}
	if got := txscript.SigHashType(sigWithFlag[len(sigWithFlag)-1]); got != flags {
		return fmt.Errorf("%w: input %d signed with flags %#x, want %#x", model.ErrSigning, idx, got, flags)
	}

	if txscript.GetScriptClass(lockScript) != txscript.PubKeyHashTy {
		return fmt.Errorf("%w: locking script %x is not pay-to-pubkey-hash", model.ErrSigning, lockScript)
	}
	// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
	lockedHash := lockScript[3:23]
	if !bytes.Equal(btcutil.Hash160(pubBytes), lockedHash) {
		return fmt.Errorf("%w: public key %x does not match locked hash %x", model.ErrSigning, pubBytes, lockedHash)
	}

	pub, err := btcec.ParsePubKey(pubBytes)
	if err != nil {
		return fmt.Errorf("%w: parse public key: %w", model.ErrSigning, err)
	}
	sig, err := ecdsa.ParseDERSignature(sigWithFlag[:len(sigWithFlag)-1])
	if err != nil {
		return fmt.Errorf("%w: parse signature: %w", model.ErrSigning, err)
	}
	digest, err := Digest(tx, idx, lockScript, amount, flags)
	if err != nil {
		return err
	}
	if !sig.Verify(digest, pub) {
		return fmt.Errorf("%w: signature of input %d does not verify", model.ErrSigning, idx)
	}
	return nil
}

func verifyWithEngine(tx *wire.MsgTx, idx int, lockScript []byte, amount int64) error {
	fetcher := txscript.NewCannedPrevOutputFetcher(lockScript, amount)
	vm, err := txscript.NewEngine(
		lockScript, tx, idx, txscript.StandardVerifyFlags, nil,
		txscript.NewTxSigHashes(tx, fetcher), amount, fetcher,
	)
	if err != nil {
		return fmt.Errorf("%w: create script engine for input %d: %w", model.ErrSigning, idx, err)
	}
	if err := vm.Execute(); err != nil {
		return fmt.Errorf("%w: execute scripts of input %d: %w", model.ErrSigning, idx, err)
	}
	return nil
}
