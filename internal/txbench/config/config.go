// Package config loads the benchmark configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"gopkg.in/yaml.v3"
)

const (
	DefaultExplorerBaseURL = "https://api.whatsonchain.com/v1/bsv"
	DefaultExplorerRPS     = 3
	DefaultExplorerTimeout = 30 * time.Second
)

type (
	Wallet struct {
		PrivateKeyForInstance string `yaml:"private_key_for_instance"`
	}
	TestParams struct {
		ThreadCount    int `yaml:"thread_count"`
		IterationCount int `yaml:"iteration_count"`
	}
	Service struct {
		Network string `yaml:"network"`
	}
	TransactionInputs struct {
		TxHash string `yaml:"tx_hash"`
		TxPos  uint32 `yaml:"tx_pos"`
		Amount int64  `yaml:"amount"`
	}
	TransactionOutputs struct {
		ScriptPubKey string `yaml:"scriptpubkey"`
		Amount       int64  `yaml:"amount"`
	}
	Signing struct {
		DisableForkID bool `yaml:"disable_forkid"`
	}
	Explorer struct {
		BaseURL string        `yaml:"base_url"`
		RPS     int           `yaml:"rps"`
		Timeout time.Duration `yaml:"timeout"`
	}
)

// Config is loaded once per run and treated as read-only afterwards.
type Config struct {
	Wallet             Wallet             `yaml:"wallet"`
	TestParams         TestParams         `yaml:"testparams"`
	Service            Service            `yaml:"service"`
	TransactionInputs  TransactionInputs  `yaml:"transactioninputs"`
	TransactionOutputs TransactionOutputs `yaml:"transactionoutputs"`
	Signing            Signing            `yaml:"signing"`
	Explorer           Explorer           `yaml:"explorer"`
}

// Load reads, decodes, defaults and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read config file %s: %w", model.ErrConfig, path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML content. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty config", model.ErrConfig)
		}
		return nil, fmt.Errorf("%w: parse: %w", model.ErrConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Explorer.BaseURL == "" {
		c.Explorer.BaseURL = DefaultExplorerBaseURL
	}
	if c.Explorer.RPS == 0 {
		c.Explorer.RPS = DefaultExplorerRPS
	}
	if c.Explorer.Timeout == 0 {
		c.Explorer.Timeout = DefaultExplorerTimeout
	}
}

// Validate checks the fields that are not owned by a more specific component.
// The secret is validated by key derivation, the tx id and locking script by
// the transaction template.
func (c *Config) Validate() error {
	if _, err := model.ParseNetwork(c.Service.Network); err != nil {
		return fmt.Errorf("service.network: %w", err)
	}
	if c.TestParams.ThreadCount < 0 {
		return fmt.Errorf("%w: testparams.thread_count %d is negative", model.ErrConfig, c.TestParams.ThreadCount)
	}
	if c.TestParams.IterationCount < 0 {
		return fmt.Errorf("%w: testparams.iteration_count %d is negative", model.ErrConfig, c.TestParams.IterationCount)
	}
	if c.TransactionInputs.Amount < 0 {
		return fmt.Errorf("%w: transactioninputs.amount %d is negative", model.ErrConfig, c.TransactionInputs.Amount)
	}
	if c.TransactionOutputs.Amount < 0 {
		return fmt.Errorf("%w: transactionoutputs.amount %d is negative", model.ErrConfig, c.TransactionOutputs.Amount)
	}
	if c.Explorer.RPS < 1 {
		return fmt.Errorf("%w: explorer.rps %d must be at least 1", model.ErrConfig, c.Explorer.RPS)
	}
	return nil
}

// Network returns the validated network tag.
func (c *Config) Network() model.Network {
	return model.Network(c.Service.Network)
}

// Override replaces thread and iteration counts with non-negative values.
func (c *Config) Override(threads, iterations int) {
	if threads >= 0 {
		c.TestParams.ThreadCount = threads
	}
	if iterations >= 0 {
		c.TestParams.IterationCount = iterations
	}
}
