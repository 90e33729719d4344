// Package explorer is a client for the WhatsOnChain block explorer REST API.
// It is used for setup and inspection only and never on the timed path.
package explorer

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/txbench/internal/clock"
	"github.com/goodnatureofminers/txbench/internal/txbench/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	// maxBodySize bounds how much of a response is read.
	maxBodySize = 32 << 20
	maxBackoff  = 30 * time.Second
)

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithRateLimit paces requests to rps per second. Zero or less disables pacing.
func WithRateLimit(rps int) Option {
	return func(cl *Client) {
		if rps <= 0 {
			cl.limiter = ratelimit.NewUnlimited()
			return
		}
		cl.limiter = ratelimit.New(rps)
	}
}

// WithRetries repeats requests rejected for throttling or a temporary
// upstream failure up to n more times, waiting backoff, 2*backoff and so on.
func WithRetries(n int, backoff time.Duration) Option {
	return func(cl *Client) {
		cl.retries = max(n, 0)
		cl.backoff = backoff
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(cl *Client) { cl.logger = logger.Named("explorer") }
}

// Client talks to one network of the explorer API.
type Client struct {
	http    *http.Client
	baseURL string
	network model.Network
	limiter ratelimit.Limiter
	metrics Metrics
	logger  *zap.Logger
	retries int
	backoff time.Duration
	sleep   clock.SleepFunc
}

func NewClient(baseURL string, network model.Network, metrics Metrics, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil || baseURL == "" {
		return nil, fmt.Errorf("%w: explorer base url %q is invalid", model.ErrConfig, baseURL)
	}
	if metrics == nil {
		return nil, errors.New("explorer metrics is required")
	}
	if _, err := networkPath(network); err != nil {
		return nil, err
	}

	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		network: network,
		limiter: ratelimit.NewUnlimited(),
		metrics: metrics,
		logger:  zap.NewNop(),
		sleep:   clock.SleepWithContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// networkPath maps a network onto the path segment the API expects.
func networkPath(n model.Network) (string, error) {
	switch n {
	case model.Mainnet:
		return "main", nil
	case model.Testnet:
		return "test", nil
	default:
		return "", fmt.Errorf("%w: explorer does not serve network %q", model.ErrConfig, n)
	}
}

// Health returns the plain text liveness message of the API.
func (c *Client) Health(ctx context.Context) (msg string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("health", err, started)
	}()

	body, err := c.do(ctx, "health", http.MethodGet, "/woc", nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) ChainInfo(ctx context.Context) (info ChainInfo, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("chain_info", err, started)
	}()

	err = c.getJSON(ctx, "chain_info", "/chain/info", &info)
	return info, err
}

func (c *Client) AddressInfo(ctx context.Context, address string) (info AddressInfo, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("address_info", err, started)
	}()

	err = c.getJSON(ctx, "address_info", "/address/"+url.PathEscape(address)+"/info", &info)
	return info, err
}

func (c *Client) Balance(ctx context.Context, address string) (balance Balance, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("balance", err, started)
	}()

	err = c.getJSON(ctx, "balance", "/address/"+url.PathEscape(address)+"/balance", &balance)
	return balance, err
}

// UTXOs lists the unspent outputs of address.
func (c *Client) UTXOs(ctx context.Context, address string) (utxos []UTXO, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("utxos", err, started)
	}()

	if err = c.getJSON(ctx, "utxos", "/address/"+url.PathEscape(address)+"/unspent", &utxos); err != nil {
		return nil, err
	}
	return utxos, nil
}

// RawTransaction fetches and decodes the transaction with id txid.
func (c *Client) RawTransaction(ctx context.Context, txid *chainhash.Hash) (tx *wire.MsgTx, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("raw_transaction", err, started)
	}()

	body, err := c.do(ctx, "raw_transaction", http.MethodGet, "/tx/"+txid.String()+"/hex", nil)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("decode transaction %s hex: %w", txid, err)
	}
	tx = wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("deserialize transaction %s: %w", txid, err)
	}
	return tx, nil
}

// Broadcast submits a serialized transaction and returns the id the API
// reports for it.
func (c *Client) Broadcast(ctx context.Context, txHex string) (txid string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("broadcast", err, started)
	}()

	payload, err := json.Marshal(broadcastRequest{TxHex: txHex})
	if err != nil {
		return "", fmt.Errorf("encode broadcast request: %w", err)
	}
	body, err := c.do(ctx, "broadcast", http.MethodPost, "/tx/raw", payload)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(body)), `"`), nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, out any) error {
	body, err := c.do(ctx, operation, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("explorer %s: decode response: %w", operation, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, payload []byte) ([]byte, error) {
	for attempt := 1; ; attempt++ {
		body, err := c.doOnce(ctx, operation, method, path, payload)
		if err == nil || attempt > c.retries || !retryable(err) {
			return body, err
		}
		wait := clock.Backoff(attempt, c.backoff, maxBackoff)
		c.logger.Warn("retrying request",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("explorer %s: %w", operation, err)
		}
	}
}

func retryable(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	switch statusErr.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func (c *Client) doOnce(ctx context.Context, operation, method, path string, payload []byte) ([]byte, error) {
	segment, err := networkPath(c.network)
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/" + segment + path

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("explorer %s: build request: %w", operation, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.limiter.Take()
	c.logger.Debug("request", zap.String("operation", operation), zap.String("method", method), zap.String("url", endpoint))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer %s: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("explorer %s: read response: %w", operation, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}
