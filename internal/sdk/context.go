package sdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/namada-mobile/namada-bridge/internal/masp"
	"github.com/namada-mobile/namada-bridge/internal/rpcclient"
	"github.com/namada-mobile/namada-bridge/internal/wallet"
	"github.com/namada-mobile/namada-bridge/pkg/crypto"

	klog "github.com/namada-mobile/namada-bridge/internal/log"
)

// Context initialization errors.
var (
	// ErrNetwork means the node could not be reached or did not answer
	// with a well-formed response.
	ErrNetwork = errors.New("node unreachable")
	// ErrChainMismatch means the node serves a different chain.
	ErrChainMismatch = errors.New("chain id mismatch")
	// ErrWalletOpen means the wallet store could not be opened.
	ErrWalletOpen = errors.New("open wallet")
)

// Options configures a Context.
type Options struct {
	// ChainID must equal the node's network name.
	ChainID string
	// MaspParamsDir locates the shielded proving parameters.
	MaspParamsDir string
	// Scheme is the transparent key scheme.
	Scheme crypto.Scheme
	// Timeout bounds the whole request.
	Timeout time.Duration
	// Password encrypts wallet secrets at rest when non-empty.
	Password []byte
	// OverwritePayment replaces an existing payment address alias.
	OverwritePayment bool
}

// Context is the per-request handle over the node, the wallet store and
// the shielded context.
type Context struct {
	client   *rpcclient.Client
	shielded *masp.ShieldedContext
	opts     Options
	status   *rpcclient.Status

	mu     sync.Mutex
	wallet *wallet.Store
}

// New checks the node's chain id and opens the wallet store at walletDir.
// The store is only opened once the node has been verified.
func New(ctx context.Context, client *rpcclient.Client, walletDir string, shielded *masp.ShieldedContext, opts Options) (*Context, error) {
	if opts.ChainID == "" {
		return nil, fmt.Errorf("%w: empty chain id", ErrChainMismatch)
	}
	st, err := client.Status(ctx)
	if err != nil {
		var rpcErr *rpcclient.RPCError
		if errors.As(err, &rpcErr) {
			return nil, fmt.Errorf("node rejected status query: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrNetwork, client.Endpoint(), err)
	}
	if st.NodeInfo.Network != opts.ChainID {
		return nil, fmt.Errorf("%w: node serves %q, want %q", ErrChainMismatch, st.NodeInfo.Network, opts.ChainID)
	}

	store, err := wallet.OpenStore(walletDir, wallet.StoreOptions{Password: opts.Password})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWalletOpen, err)
	}

	height, _ := st.Height()
	klog.SDK.Info().
		Str("chain_id", opts.ChainID).
		Str("node_version", st.NodeInfo.Version).
		Uint64("height", height).
		Str("masp_params", opts.MaspParamsDir).
		Msg("SDK context ready")

	return &Context{
		client:   client,
		shielded: shielded,
		opts:     opts,
		status:   st,
		wallet:   store,
	}, nil
}

// WalletMut locks the wallet for exclusive use. The returned release
// function must be called exactly once.
func (c *Context) WalletMut() (*wallet.Store, func()) {
	c.mu.Lock()
	var once sync.Once
	return c.wallet, func() { once.Do(c.mu.Unlock) }
}

// Shielded returns the shielded context.
func (c *Context) Shielded() *masp.ShieldedContext {
	return c.shielded
}

// Options returns the options the context was built with.
func (c *Context) Options() Options {
	return c.opts
}

// NodeStatus returns the status reported by the node at initialization.
func (c *Context) NodeStatus() *rpcclient.Status {
	return c.status
}

// Close releases the wallet store.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wallet == nil {
		return nil
	}
	err := c.wallet.Close()
	c.wallet = nil
	return err
}
