package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
wallet:
  private_key_for_instance: "0000000000000000000000000000000000000000000000000000000000000001"
testparams:
  thread_count: 2
  iteration_count: 5
service:
  network: testnet
transactioninputs:
  tx_hash: "d1c789a9c60383bf715f3f6ad9d14b91fe55f3deb369fe5d9280cb1a01793f81"
  tx_pos: 0
  amount: 1000000
transactionoutputs:
  scriptpubkey: "76a914751e76e8199196d454941c45d1b3a323f1433bd688ac"
  amount: 999000
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.TestParams.ThreadCount)
	assert.Equal(t, 5, cfg.TestParams.IterationCount)
	assert.Equal(t, model.Testnet, cfg.Network())
	assert.Equal(t, uint32(0), cfg.TransactionInputs.TxPos)
	assert.Equal(t, int64(1_000_000), cfg.TransactionInputs.Amount)
	assert.Equal(t, int64(999_000), cfg.TransactionOutputs.Amount)
	assert.False(t, cfg.Signing.DisableForkID)
	assert.Equal(t, DefaultExplorerBaseURL, cfg.Explorer.BaseURL)
	assert.Equal(t, DefaultExplorerRPS, cfg.Explorer.RPS)
	assert.Equal(t, DefaultExplorerTimeout, cfg.Explorer.Timeout)
}

func TestParse_Explorer(t *testing.T) {
	cfg, err := Parse([]byte(validConfig + `
explorer:
  base_url: http://localhost:9999
  rps: 10
  timeout: 5s
`))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Explorer.BaseURL)
	assert.Equal(t, 10, cfg.Explorer.RPS)
	assert.Equal(t, 5*time.Second, cfg.Explorer.Timeout)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "malformed yaml", content: "wallet: [unterminated"},
		{name: "unknown field", content: validConfig + "bogus: 1\n"},
		{name: "unknown network", content: replace(validConfig, "network: testnet", "network: regtest")},
		{name: "negative threads", content: replace(validConfig, "thread_count: 2", "thread_count: -1")},
		{name: "negative iterations", content: replace(validConfig, "iteration_count: 5", "iteration_count: -3")},
		{name: "negative input amount", content: replace(validConfig, "amount: 1000000", "amount: -1")},
		{name: "negative output amount", content: replace(validConfig, "amount: 999000", "amount: -1")},
		{name: "tx_pos overflow", content: replace(validConfig, "tx_pos: 0", "tx_pos: 4294967296")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatalf("Parse() expected error")
			}
			if !errors.Is(err, model.ErrConfig) {
				t.Fatalf("Parse() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.Testnet, cfg.Network())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfig)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestConfig_Override(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	cfg.Override(-1, -1)
	assert.Equal(t, 2, cfg.TestParams.ThreadCount)
	assert.Equal(t, 5, cfg.TestParams.IterationCount)

	cfg.Override(0, 1)
	assert.Equal(t, 0, cfg.TestParams.ThreadCount)
	assert.Equal(t, 1, cfg.TestParams.IterationCount)
}

func replace(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}
