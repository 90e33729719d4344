// Package main is a command line client for the WhatsOnChain explorer API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/txbench/internal/metrics"
	"github.com/goodnatureofminers/txbench/internal/txbench/bench"
	"github.com/goodnatureofminers/txbench/internal/txbench/config"
	"github.com/goodnatureofminers/txbench/internal/txbench/explorer"
	"github.com/goodnatureofminers/txbench/internal/txbench/key"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

const (
	retries      = 2
	retryBackoff = time.Second
)

type options struct {
	Config string `long:"config" env:"WOC_CONFIG" description:"path to the benchmark config file" default:"data/config.yaml"`
}

// env is shared by all commands. Global options are filled in by the parser
// before a command's Execute runs.
type env struct {
	ctx    context.Context
	logger *zap.Logger
	out    io.Writer
	opts   options
}

type (
	healthCommand struct {
		env *env
	}
	chainInfoCommand struct {
		env *env
	}
	addressArgs struct {
		Address string `positional-arg-name:"address" description:"defaults to the address of the configured key"`
	}
	addressCommand struct {
		env  *env
		Args addressArgs `positional-args:"yes"`
	}
	balanceCommand struct {
		env  *env
		Args addressArgs `positional-args:"yes"`
	}
	utxosCommand struct {
		env  *env
		Args addressArgs `positional-args:"yes"`
	}
	rawTxCommand struct {
		env  *env
		Args struct {
			TxID string `positional-arg-name:"txid" description:"defaults to the configured input transaction"`
		} `positional-args:"yes"`
	}
	broadcastCommand struct {
		env    *env
		DryRun bool `long:"dry-run" description:"sign and print the transaction without sending it"`
	}
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}

func execute(args []string, out io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	e := &env{ctx: ctx, logger: logger, out: out}
	parser, err := newParser(e)
	if err != nil {
		logger.Error("Failed to register commands", zap.Error(err))
		return 2
	}
	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		logger.Error("Command failed", zap.Error(err))
		return 1
	}
	return 0
}

func newParser(e *env) (*flags.Parser, error) {
	parser := flags.NewParser(&e.opts, flags.Default)
	commands := []struct {
		name, short string
		data        flags.Commander
	}{
		{"health", "Check that the API is reachable", &healthCommand{env: e}},
		{"chain-info", "Show the state of the chain", &chainInfoCommand{env: e}},
		{"address", "Show address information", &addressCommand{env: e}},
		{"balance", "Show the balance of an address", &balanceCommand{env: e}},
		{"utxos", "List unspent outputs of an address", &utxosCommand{env: e}},
		{"raw-tx", "Fetch and decode a transaction", &rawTxCommand{env: e}},
		{"broadcast", "Sign the configured transaction once and broadcast it", &broadcastCommand{env: e}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.short+".", c.data); err != nil {
			return nil, fmt.Errorf("register command %s: %w", c.name, err)
		}
	}
	return parser, nil
}

func (e *env) client() (*config.Config, *explorer.Client, error) {
	cfg, err := config.Load(e.opts.Config)
	if err != nil {
		return nil, nil, err
	}
	client, err := explorer.NewClient(
		cfg.Explorer.BaseURL,
		cfg.Network(),
		metrics.NewExplorerClient(cfg.Network()),
		explorer.WithRateLimit(cfg.Explorer.RPS),
		explorer.WithRetries(retries, retryBackoff),
		explorer.WithLogger(e.logger),
		explorer.WithHTTPClient(&http.Client{Timeout: cfg.Explorer.Timeout}),
	)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveAddress falls back to the address of the configured key.
func resolveAddress(cfg *config.Config, address string) (string, error) {
	if address != "" {
		return address, nil
	}
	k, err := key.FromConfig(cfg)
	if err != nil {
		return "", err
	}
	addr, err := k.Address()
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

func (c *healthCommand) Execute([]string) error {
	_, client, err := c.env.client()
	if err != nil {
		return err
	}
	msg, err := client.Health(c.env.ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.env.out, msg)
	return err
}

func (c *chainInfoCommand) Execute([]string) error {
	_, client, err := c.env.client()
	if err != nil {
		return err
	}
	info, err := client.ChainInfo(c.env.ctx)
	if err != nil {
		return err
	}
	return c.env.printJSON(info)
}

func (c *addressCommand) Execute([]string) error {
	cfg, client, err := c.env.client()
	if err != nil {
		return err
	}
	address, err := resolveAddress(cfg, c.Args.Address)
	if err != nil {
		return err
	}
	info, err := client.AddressInfo(c.env.ctx, address)
	if err != nil {
		return err
	}
	return c.env.printJSON(info)
}

func (c *balanceCommand) Execute([]string) error {
	cfg, client, err := c.env.client()
	if err != nil {
		return err
	}
	address, err := resolveAddress(cfg, c.Args.Address)
	if err != nil {
		return err
	}
	balance, err := client.Balance(c.env.ctx, address)
	if err != nil {
		return err
	}
	return c.env.printJSON(balance)
}

func (c *utxosCommand) Execute([]string) error {
	cfg, client, err := c.env.client()
	if err != nil {
		return err
	}
	address, err := resolveAddress(cfg, c.Args.Address)
	if err != nil {
		return err
	}
	utxos, err := client.UTXOs(c.env.ctx, address)
	if err != nil {
		return err
	}
	return c.env.printJSON(utxos)
}

func (c *rawTxCommand) Execute([]string) error {
	cfg, client, err := c.env.client()
	if err != nil {
		return err
	}
	txid := c.Args.TxID
	if txid == "" {
		txid = cfg.TransactionInputs.TxHash
	}
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return fmt.Errorf("parse txid %q: %w", txid, err)
	}
	tx, err := client.RawTransaction(c.env.ctx, hash)
	if err != nil {
		return err
	}

	type output struct {
		Index        int    `json:"index"`
		Value        int64  `json:"value"`
		ScriptPubKey string `json:"script_pub_key"`
	}
	outputs := make([]output, 0, len(tx.TxOut))
	for i, out := range tx.TxOut {
		outputs = append(outputs, output{Index: i, Value: out.Value, ScriptPubKey: fmt.Sprintf("%x", out.PkScript)})
	}
	return c.env.printJSON(struct {
		TxID     string   `json:"txid"`
		Version  int32    `json:"version"`
		Inputs   int      `json:"inputs"`
		Outputs  []output `json:"outputs"`
		LockTime uint32   `json:"lock_time"`
	}{
		TxID:     tx.TxHash().String(),
		Version:  tx.Version,
		Inputs:   len(tx.TxIn),
		Outputs:  outputs,
		LockTime: tx.LockTime,
	})
}

func (c *broadcastCommand) Execute([]string) error {
	cfg, client, err := c.env.client()
	if err != nil {
		return err
	}
	b, err := bench.Prepare(cfg)
	if err != nil {
		return err
	}
	if _, err := b.Template.Fee(); err != nil {
		return err
	}
	tx, err := b.SignOne()
	if err != nil {
		return err
	}
	raw, err := bench.EncodeHex(tx)
	if err != nil {
		return err
	}
	c.env.logger.Info("Signed transaction", zap.Stringer("txid", tx.TxHash()), zap.String("hex", raw))
	if c.DryRun {
		_, err = fmt.Fprintln(c.env.out, raw)
		return err
	}

	txid, err := client.Broadcast(c.env.ctx, raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.env.out, txid)
	return err
}
