package signing

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/txbench/internal/txbench/key"
)

// Pipeline signs inputs that spend an output locked by subscript. It holds
// no mutable state and may be used by many goroutines at once.
type Pipeline struct {
	key       *key.Info
	subscript []byte
	amount    int64
	flags     txscript.SigHashType
}

func NewPipeline(k *key.Info, subscript []byte, amount int64, flags txscript.SigHashType) *Pipeline {
	return &Pipeline{
		key:       k,
		subscript: append([]byte(nil), subscript...),
		amount:    amount,
		flags:     flags,
	}
}

// SignInput runs digest, sign and finalize for input idx of tx.
func (p *Pipeline) SignInput(tx *wire.MsgTx, idx int) error {
	digest, err := Digest(tx, idx, p.subscript, p.amount, p.flags)
	if err != nil {
		return err
	}
	sig, err := Sign(p.key.PrivateKey(), digest, p.flags)
	if err != nil {
		return err
	}
	return Finalize(tx, idx, sig, p.key.PublicKey())
}

func (p *Pipeline) Flags() txscript.SigHashType {
	return p.flags
}

// Verify checks a transaction signed by this pipeline.
func (p *Pipeline) Verify(tx *wire.MsgTx, idx int) error {
	return Verify(tx, idx, p.subscript, p.amount, p.flags)
}
