// Package template builds the unsigned benchmark transaction.
package template

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/txbench/internal/txbench/config"
	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"github.com/goodnatureofminers/txbench/pkg/safe"
)

const (
	TxVersion  int32  = 1
	TxLockTime uint32 = 0
)

// Template holds the decoded transaction shape. Build hands out independent
// copies, so a Template can be shared between goroutines.
type Template struct {
	prevOut      wire.OutPoint
	inputAmount  int64
	outputScript []byte
	outputAmount int64
}

// New decodes the input reference and output script from configuration.
func New(cfg *config.Config) (*Template, error) {
	hash, err := chainhash.NewHashFromStr(cfg.TransactionInputs.TxHash)
	if err != nil {
		return nil, fmt.Errorf("%w: transactioninputs.tx_hash %q: %w", model.ErrTransactionBuild, cfg.TransactionInputs.TxHash, err)
	}
	if len(cfg.TransactionInputs.TxHash) != 2*chainhash.HashSize {
		return nil, fmt.Errorf("%w: transactioninputs.tx_hash %q is not %d bytes", model.ErrTransactionBuild, cfg.TransactionInputs.TxHash, chainhash.HashSize)
	}
	script, err := hex.DecodeString(cfg.TransactionOutputs.ScriptPubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: transactionoutputs.scriptpubkey %q: %w", model.ErrTransactionBuild, cfg.TransactionOutputs.ScriptPubKey, err)
	}

	return &Template{
		prevOut:      *wire.NewOutPoint(hash, cfg.TransactionInputs.TxPos),
		inputAmount:  cfg.TransactionInputs.Amount,
		outputScript: script,
		outputAmount: cfg.TransactionOutputs.Amount,
	}, nil
}

// Build decodes the configuration and returns one unsigned transaction.
func Build(cfg *config.Config) (*wire.MsgTx, error) {
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return t.Build(), nil
}

// Build returns a fresh unsigned transaction owned by the caller.
func (t *Template) Build() *wire.MsgTx {
	tx := wire.NewMsgTx(TxVersion)
	prevOut := t.prevOut
	tx.AddTxIn(wire.NewTxIn(&prevOut, nil, nil))
	tx.AddTxOut(wire.NewTxOut(t.outputAmount, append([]byte(nil), t.outputScript...)))
	tx.LockTime = TxLockTime
	return tx
}

// PrevOut returns the outpoint spent by the transaction input.
func (t *Template) PrevOut() wire.OutPoint {
	return t.prevOut
}

// InputAmount is the value of the spent output.
func (t *Template) InputAmount() int64 {
	return t.inputAmount
}

// LockingScript returns a copy of the output locking script.
func (t *Template) LockingScript() []byte {
	return append([]byte(nil), t.outputScript...)
}

// Fee is the difference between the spent and the created amount. A spend
// that creates more than it consumes has no fee and yields an error.
func (t *Template) Fee() (uint64, error) {
	fee, err := safe.Uint64(t.inputAmount - t.outputAmount)
	if err != nil {
		return 0, fmt.Errorf("%w: output amount %d exceeds input amount %d", model.ErrTransactionBuild, t.outputAmount, t.inputAmount)
	}
	return fee, nil
}
