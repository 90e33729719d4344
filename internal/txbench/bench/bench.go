// Package bench wires configuration into the components of a benchmark run.
package bench

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/txbench/internal/txbench/config"
	"github.com/goodnatureofminers/txbench/internal/txbench/key"
	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"github.com/goodnatureofminers/txbench/internal/txbench/signing"
	"github.com/goodnatureofminers/txbench/internal/txbench/template"
)

// Bench is the shared, read-only state every worker of a run uses.
type Bench struct {
	Config   *config.Config
	Key      *key.Info
	Template *template.Template
	Pipeline *signing.Pipeline
}

// Prepare derives the key and decodes the transaction template. It fails
// before any worker exists when either is malformed.
func Prepare(cfg *config.Config) (*Bench, error) {
	k, err := key.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(cfg)
	if err != nil {
		return nil, err
	}
	pipeline := signing.NewPipeline(
		k,
		tmpl.LockingScript(),
		tmpl.InputAmount(),
		signing.Flags(cfg.Signing.DisableForkID),
	)
	return &Bench{Config: cfg, Key: k, Template: tmpl, Pipeline: pipeline}, nil
}

// SignOne builds, signs and verifies a single transaction outside of any
// measurement.
func (b *Bench) SignOne() (*wire.MsgTx, error) {
	tx := b.Template.Build()
	if err := b.Pipeline.SignInput(tx, 0); err != nil {
		return nil, err
	}
	if err := b.Pipeline.Verify(tx, 0); err != nil {
		return nil, err
	}
	return tx, nil
}

// EncodeHex serializes tx in wire format as lowercase hex.
func EncodeHex(tx *wire.MsgTx) (string, error) {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return "", fmt.Errorf("%w: serialize transaction: %w", model.ErrTransactionBuild, err)
	}
	return hex.EncodeToString(buf.Bytes()), nil
}
