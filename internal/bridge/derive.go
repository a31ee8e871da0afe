package bridge

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/namada-mobile/namada-bridge/config"
	"github.com/namada-mobile/namada-bridge/internal/masp"
	"github.com/namada-mobile/namada-bridge/internal/rpcclient"
	"github.com/namada-mobile/namada-bridge/internal/sdk"
	"github.com/namada-mobile/namada-bridge/internal/wallet"
	"github.com/namada-mobile/namada-bridge/pkg/crypto"

	klog "github.com/namada-mobile/namada-bridge/internal/log"
)

// RequestSeparator splits storage_path::alias::mnemonic_phrase.
const RequestSeparator = "::"

// Alias suffixes for the shielded entries derived next to a transparent alias.
const (
	ShieldedSuffix = "_shielded"
	PaymentSuffix  = "_payment"
)

// derivationBudget is added to the RPC timeout to bound a whole request.
const derivationBudget = 30 * time.Second

// diversifierSource feeds the diversifier search.
var diversifierSource io.Reader = rand.Reader

// Request is a parsed derive_and_save_wallet request.
type Request struct {
	StoragePath string
	Alias       string
	Phrase      string
}

// ParseRequest splits raw into its three fields. Aliases are
// case-insensitive and come back trimmed and lowercased, the form in
// which they are stored.
func ParseRequest(raw string) (Request, error) {
	parts := strings.Split(raw, RequestSeparator)
	if len(parts) != 3 {
		return Request{}, newError(MalformedRequest, nil, "Expected format wallet_path::alias::seed_phrase")
	}
	req := Request{
		StoragePath: parts[0],
		Alias:       strings.ToLower(strings.TrimSpace(parts[1])),
		Phrase:      parts[2],
	}
	if req.StoragePath == "" {
		return Request{}, newError(MalformedRequest, nil, "Expected format wallet_path::alias::seed_phrase (empty wallet_path)")
	}
	if req.Alias == "" {
		return Request{}, newError(MalformedRequest, nil, "Expected format wallet_path::alias::seed_phrase (empty alias)")
	}
	return req, nil
}

// ShieldedAlias returns the spending/viewing key alias for alias.
func ShieldedAlias(alias string) string {
	return alias + ShieldedSuffix
}

// PaymentAlias returns the payment address alias for alias.
func PaymentAlias(alias string) string {
	return ShieldedAlias(alias) + PaymentSuffix
}

// HandleRequest decodes host input and runs DeriveAndSaveWallet.
func (b *Bridge) HandleRequest(input *string) Outcome {
	return contain("derive_and_save_wallet", func() Outcome {
		raw, err := DecodeInput(input)
		if err != nil {
			return Failure(err)
		}
		return b.deriveAndSave(raw)
	})
}

// DeriveAndSaveWallet derives the transparent key, shielded spending and
// viewing keys and a payment address for the request's alias, then saves
// them to the wallet store under storage_path/sdk-wallet.
//
// Steps run strictly in order and the first failure ends the request.
// Nothing is written to the store unless every derivation succeeds.
func (b *Bridge) DeriveAndSaveWallet(request string) Outcome {
	return contain("derive_and_save_wallet", func() Outcome {
		return b.deriveAndSave(request)
	})
}

func (b *Bridge) deriveAndSave(request string) Outcome {
	cfg := b.Config()
	log := klog.Bridge.With().Str("request_id", uuid.NewString()).Logger()
	defer klog.Benchmark(log, "derive_and_save_wallet")()

	msg, err := b.run(cfg, log, request)
	if err != nil {
		log.Warn().Str("kind", KindOf(err).String()).Err(err).Msg("Wallet derivation failed")
		return Failure(err)
	}
	return Success(msg)
}

func (b *Bridge) run(cfg *config.Config, log zerolog.Logger, request string) (string, error) {
	req, err := ParseRequest(request)
	if err != nil {
		return "", err
	}
	log = log.With().Str("alias", req.Alias).Logger()

	if err := os.MkdirAll(req.StoragePath, 0700); err != nil {
		return "", newError(StorageError, err, "Could not create wallet dir '%s'", req.StoragePath)
	}
	maspDir := filepath.Join(req.StoragePath, config.MaspDirName)
	if err := os.MkdirAll(maspDir, 0700); err != nil {
		return "", newError(StorageError, err, "Could not create masp dir '%s'", maspDir)
	}
	shielded, err := masp.NewShieldedContext(maspDir, cfg.Masp.ParamsDir)
	if err != nil {
		return "", newError(StorageError, err, "Could not prepare masp dir '%s'", maspDir)
	}
	log.Debug().Str("masp_dir", shielded.Dir()).Msg("Directories ready")

	mnemonic, err := wallet.ParseMnemonic(req.Phrase)
	if err != nil {
		return "", newError(MnemonicError, err, "Bad mnemonic")
	}

	scheme, tpath, err := cfg.TransparentPath()
	if err != nil {
		return "", newError(DerivationError, err, "Bad derivation path")
	}
	spath, err := cfg.ShieldedPath()
	if err != nil {
		return "", newError(DerivationError, err, "Bad derivation path")
	}
	rt, err := sdk.NewRuntime("derive_and_save_wallet", cfg.RPC.Timeout+derivationBudget)
	if err != nil {
		return "", newError(RuntimeInitError, err, "Failed to create runtime")
	}
	opts := sdk.Options{
		ChainID:          cfg.Chain.ID,
		MaspParamsDir:    shielded.ParamsDir(),
		Scheme:           scheme,
		Timeout:          cfg.RPC.Timeout,
		Password:         []byte(cfg.Wallet.Password),
		OverwritePayment: cfg.Wallet.OverwritePayment,
	}

	err = rt.BlockOn(context.Background(), func(ctx context.Context) error {
		client, err := rpcclient.NewWithTimeout(cfg.RPC.Endpoint, opts.Timeout)
		if err != nil {
			return newError(NetworkError, err, "Bad RPC URL")
		}
		walletDir := filepath.Join(req.StoragePath, config.WalletDirName)
		sdkCtx, err := sdk.New(ctx, client, walletDir, shielded, opts)
		if err != nil {
			if errors.Is(err, sdk.ErrNetwork) {
				return newError(NetworkError, err, "HTTP client error")
			}
			return newError(SdkInitError, err, "Failed to init SDK")
		}
		defer sdkCtx.Close()

		store, release := sdkCtx.WalletMut()
		defer release()
		return deriveInto(store, req.Alias, mnemonic, scheme, tpath, spath, opts.OverwritePayment)
	})
	if err != nil {
		return "", err
	}

	log.Info().Msg("Wallet derived and saved")
	return fmt.Sprintf("Derived & saved wallet '%s'", req.Alias), nil
}

// deriveInto runs the derivation steps against an open store and saves it.
func deriveInto(store *wallet.Store, alias string, m *wallet.Mnemonic, scheme crypto.Scheme, tpath, spath wallet.DerivationPath, overwritePayment bool) error {
	key, err := store.DeriveStoreKeyFromMnemonic(scheme, alias, true, tpath, m, "")
	if err != nil {
		return newError(DerivationError, err, "Transparent key derivation failed for alias '%s'", alias)
	}
	if key == nil {
		return newError(DerivationError, nil, "Transparent key derivation returned nothing for alias '%s'", alias)
	}

	shieldedAlias := ShieldedAlias(alias)
	storedAlias, _, err := store.DeriveStoreSpendingKeyFromMnemonic(shieldedAlias, true, spath, m, "")
	if err != nil {
		return newError(DerivationError, err, "Shielded key derivation failed for alias '%s'", shieldedAlias)
	}

	vk, err := store.FindViewingKey(storedAlias)
	if err != nil {
		return newError(DerivationError, err, "Internal invariant violated: no viewing key for '%s' after derivation", storedAlias)
	}

	d, _, err := masp.FindValidDiversifier(diversifierSource)
	if err != nil {
		return newError(DerivationError, err, "Diversifier search failed for alias '%s'", storedAlias)
	}
	addr := mustPaymentAddress(vk, d)
	paymentAlias := PaymentAlias(alias)
	inserted, err := store.InsertPaymentAddr(paymentAlias, addr, overwritePayment)
	if err != nil {
		return newError(DerivationError, err, "Payment address could not be inserted for alias '%s'", paymentAlias)
	}
	if !inserted {
		return newError(DerivationError, nil, "Payment address alias '%s' already exists", paymentAlias)
	}

	if err := store.Save(); err != nil {
		return newError(PersistenceError, err, "Save error")
	}
	return nil
}

// mustPaymentAddress panics if a diversifier accepted by the search is
// rejected by the viewing key.
func mustPaymentAddress(vk masp.ViewingKey, d masp.Diversifier) masp.PaymentAddress {
	addr, err := vk.PaymentAddress(d)
	if err != nil {
		panic(fmt.Sprintf("Unable to generate a PaymentAddress: %v", err))
	}
	return addr
}
