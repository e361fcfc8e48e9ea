// Package esplora reads blocks and coinbase transactions from an Esplora-compatible explorer API
// such as mempool.space or blockstream.info.
package esplora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const maxBodySize = 16 << 20

// ErrUnexpectedStatus is returned for non-2xx explorer responses.
var ErrUnexpectedStatus = errors.New("unexpected explorer status")

// Options configures a Client.
type Options struct {
	Timeout    time.Duration
	RPS        int
	HTTPClient *http.Client
}

// Client is a read-only explorer API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	rl         ratelimit.Limiter
	metrics    Metrics
	logger     *zap.Logger
}

// NewClient constructs a Client for baseURL, e.g. https://mempool.space/api/.
func NewClient(baseURL string, opts Options, metrics Metrics, logger *zap.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse explorer url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("explorer url %q: unsupported scheme", baseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	rl := ratelimit.NewUnlimited()
	if opts.RPS > 0 {
		rl = ratelimit.New(opts.RPS)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		httpClient: httpClient,
		rl:         rl,
		metrics:    metrics,
		logger:     logger.Named("esplora"),
	}, nil
}

// LatestBlocks returns the most recent blocks, newest first. A non-2xx status or a body that is
// not a block list yields an empty result; only transport failures are errors.
func (c *Client) LatestBlocks(ctx context.Context) (blocks []model.Block, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("latest_blocks", err, started)
	}()

	body, err := c.get(ctx, "blocks/")
	if errors.Is(err, ErrUnexpectedStatus) {
		c.logger.Warn("blocks request rejected", zap.Error(err))
		return []model.Block{}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &blocks); err != nil {
		c.logger.Warn("unexpected blocks payload", zap.Int("bytes", len(body)), zap.Error(err))
		return []model.Block{}, nil
	}
	return blocks, nil
}

// CoinbaseTxID returns the id of the first transaction of the block.
func (c *Client) CoinbaseTxID(ctx context.Context, blockHash string) (txid string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("coinbase_txid", err, started)
	}()

	if _, err := chainhash.NewHashFromStr(blockHash); err != nil {
		return "", fmt.Errorf("block hash %q: %w", blockHash, err)
	}
	body, err := c.get(ctx, "block/"+blockHash+"/txids")
	if err != nil {
		return "", err
	}
	var txids []string
	if err := json.Unmarshal(body, &txids); err != nil {
		return "", fmt.Errorf("decode txids of block %s: %w", blockHash, err)
	}
	if len(txids) == 0 {
		return "", fmt.Errorf("block %s: %w", blockHash, model.ErrEmptyBlock)
	}
	return txids[0], nil
}

// CoinbaseTx fetches a transaction and checks that it is a coinbase.
func (c *Client) CoinbaseTx(ctx context.Context, txid string) (tx model.Transaction, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("coinbase_tx", err, started)
	}()

	if _, err := chainhash.NewHashFromStr(txid); err != nil {
		return model.Transaction{}, fmt.Errorf("txid %q: %w", txid, err)
	}
	body, err := c.get(ctx, "tx/"+txid)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := json.Unmarshal(body, &tx); err != nil {
		return model.Transaction{}, fmt.Errorf("decode tx %s: %w", txid, err)
	}
	if !tx.IsCoinbase() {
		return model.Transaction{}, fmt.Errorf("tx %s: %w", txid, model.ErrNotCoinbase)
	}
	return tx, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	c.rl.Take()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: %w %d: %s", path, ErrUnexpectedStatus, resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
