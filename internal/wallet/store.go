package wallet

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/namada-mobile/namada-bridge/internal/masp"
	"github.com/namada-mobile/namada-bridge/internal/storage"
	"github.com/namada-mobile/namada-bridge/pkg/crypto"
	"github.com/namada-mobile/namada-bridge/pkg/types"

	klog "github.com/namada-mobile/namada-bridge/internal/log"
)

// StoreVersion is the on-disk layout version written by Save.
const StoreVersion = 1

// Key namespaces inside the wallet database.
var (
	prefixKeys     = []byte("k/")
	prefixSpending = []byte("s/")
	prefixViewing  = []byte("v/")
	prefixPayment  = []byte("p/")
	keyVersion     = []byte("meta/version")
)

// Store errors.
var (
	ErrAliasNotFound = errors.New("alias not found")
	ErrAliasExists   = errors.New("alias already exists")
	ErrEmptyAlias    = errors.New("empty alias")
)

// keyRecord is the stored form of a transparent key.
type keyRecord struct {
	Scheme    string    `json:"scheme"`
	Path      string    `json:"path"`
	Address   string    `json:"address"`
	PublicKey string    `json:"public_key"` // hex-encoded
	Encrypted bool      `json:"encrypted"`
	Secret    []byte    `json:"secret"`
	CreatedAt time.Time `json:"created_at"`
}

// spendingRecord is the stored form of a shielded spending key.
type spendingRecord struct {
	Path      string    `json:"path"`
	Encrypted bool      `json:"encrypted"`
	Secret    []byte    `json:"secret"`
	CreatedAt time.Time `json:"created_at"`
}

// viewingRecord is the stored form of a shielded viewing key.
type viewingRecord struct {
	ViewingKey string    `json:"viewing_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// paymentRecord is the stored form of a shielded payment address.
type paymentRecord struct {
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// TransparentKey is a derived transparent key as returned to callers.
type TransparentKey struct {
	Alias   string
	Path    DerivationPath
	Secret  *crypto.SecretKey
	Address types.Address
}

// StoreOptions configures secret handling for a Store.
type StoreOptions struct {
	// Password encrypts secrets at rest when non-empty.
	Password []byte
	// Params are the Argon2id parameters used when Password is set.
	Params EncryptionParams
}

// Store is an alias-keyed wallet. Derivations and insertions change
// memory only; Save writes the whole wallet in one atomic batch.
// A Store is not safe for concurrent use.
type Store struct {
	db   storage.DB
	opts StoreOptions

	keys     *storage.Namespace
	spending *storage.Namespace
	viewing  *storage.Namespace
	payment  *storage.Namespace

	keyRecs      map[string]keyRecord
	spendingRecs map[string]spendingRecord
	viewingRecs  map[string]viewingRecord
	paymentRecs  map[string]paymentRecord
}

// OpenStore opens (or creates) the badger-backed wallet at dir.
func OpenStore(dir string, opts StoreOptions) (*Store, error) {
	db, err := storage.NewBadger(dir)
	if err != nil {
		return nil, fmt.Errorf("open wallet db: %w", err)
	}
	s, err := NewStore(db, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore loads a wallet from db. The Store takes ownership of db.
func NewStore(db storage.DB, opts StoreOptions) (*Store, error) {
	if len(opts.Password) > 0 && opts.Params.Iterations == 0 {
		opts.Params = DefaultParams()
	}
	s := &Store{
		db:           db,
		opts:         opts,
		keys:         storage.NewNamespace(db, prefixKeys),
		spending:     storage.NewNamespace(db, prefixSpending),
		viewing:      storage.NewNamespace(db, prefixViewing),
		payment:      storage.NewNamespace(db, prefixPayment),
		keyRecs:      make(map[string]keyRecord),
		spendingRecs: make(map[string]spendingRecord),
		viewingRecs:  make(map[string]viewingRecord),
		paymentRecs:  make(map[string]paymentRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := s.db.Get(keyVersion)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil // fresh wallet
	case err != nil:
		return fmt.Errorf("read wallet version: %w", err)
	}
	v, err := strconv.Atoi(string(raw))
	if err != nil || v != StoreVersion {
		return fmt.Errorf("unsupported wallet version: %q", raw)
	}

	if err := loadRecords(s.keys, s.keyRecs); err != nil {
		return fmt.Errorf("load keys: %w", err)
	}
	if err := loadRecords(s.spending, s.spendingRecs); err != nil {
		return fmt.Errorf("load spending keys: %w", err)
	}
	if err := loadRecords(s.viewing, s.viewingRecs); err != nil {
		return fmt.Errorf("load viewing keys: %w", err)
	}
	if err := loadRecords(s.payment, s.paymentRecs); err != nil {
		return fmt.Errorf("load payment addresses: %w", err)
	}
	klog.Wallet.Debug().
		Int("keys", len(s.keyRecs)).
		Int("spending_keys", len(s.spendingRecs)).
		Int("payment_addrs", len(s.paymentRecs)).
		Msg("Wallet loaded")
	return nil
}

func loadRecords[T any](db *storage.Namespace, into map[string]T) error {
	return db.ForEach(func(key, value []byte) error {
		var rec T
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("parse %q: %w", key, err)
		}
		into[string(key)] = rec
		return nil
	})
}

// normalizeAlias makes aliases case-insensitive.
func normalizeAlias(alias string) (string, error) {
	a := strings.ToLower(strings.TrimSpace(alias))
	if a == "" {
		return "", ErrEmptyAlias
	}
	return a, nil
}

func (s *Store) seal(secret []byte) ([]byte, bool, error) {
	if len(s.opts.Password) == 0 {
		return secret, false, nil
	}
	sealed, err := Encrypt(secret, s.opts.Password, s.opts.Params)
	if err != nil {
		return nil, false, err
	}
	return sealed, true, nil
}

func (s *Store) open(secret []byte, encrypted bool) ([]byte, error) {
	if !encrypted {
		return secret, nil
	}
	if len(s.opts.Password) == 0 {
		return nil, fmt.Errorf("secret is encrypted and no password is set")
	}
	return Decrypt(secret, s.opts.Password)
}

// DeriveStoreKeyFromMnemonic derives the transparent key at path and
// stores it under alias. It returns (nil, nil) when alias is taken and
// force is false.
func (s *Store) DeriveStoreKeyFromMnemonic(scheme crypto.Scheme, alias string, force bool, path DerivationPath, m *Mnemonic, passphrase string) (*TransparentKey, error) {
	name, err := normalizeAlias(alias)
	if err != nil {
		return nil, err
	}
	if _, exists := s.keyRecs[name]; exists && !force {
		klog.Wallet.Info().Str("alias", name).Msg("Transparent alias exists, not overwriting")
		return nil, nil
	}

	seed := m.Seed(passphrase)
	defer zeroBytes(seed)
	sk, err := DeriveTransparentKey(scheme, seed, path)
	if err != nil {
		return nil, fmt.Errorf("derive %s key at %s: %w", scheme, path, err)
	}

	secret, encrypted, err := s.seal(sk.Bytes())
	if err != nil {
		return nil, fmt.Errorf("seal key: %w", err)
	}
	addr := sk.Address()
	s.keyRecs[name] = keyRecord{
		Scheme:    scheme.String(),
		Path:      path.String(),
		Address:   addr.String(),
		PublicKey: hex.EncodeToString(sk.PublicKey()),
		Encrypted: encrypted,
		Secret:    secret,
		CreatedAt: time.Now().UTC(),
	}
	klog.Wallet.Debug().Str("alias", name).Str("address", addr.String()).Msg("Derived transparent key")
	return &TransparentKey{Alias: name, Path: path, Secret: sk, Address: addr}, nil
}

// DeriveStoreSpendingKeyFromMnemonic derives the shielded spending key at
// path and stores it, together with its viewing key, under alias.
func (s *Store) DeriveStoreSpendingKeyFromMnemonic(alias string, force bool, path DerivationPath, m *Mnemonic, passphrase string) (string, masp.SpendingKey, error) {
	name, err := normalizeAlias(alias)
	if err != nil {
		return "", masp.SpendingKey{}, err
	}
	if _, exists := s.spendingRecs[name]; exists && !force {
		return "", masp.SpendingKey{}, fmt.Errorf("%w: %s", ErrAliasExists, name)
	}

	seed := m.Seed(passphrase)
	defer zeroBytes(seed)
	master, err := masp.MasterSpendingKey(seed)
	if err != nil {
		return "", masp.SpendingKey{}, fmt.Errorf("master spending key: %w", err)
	}
	sk, err := master.DerivePath(path...)
	master.Zero()
	if err != nil {
		return "", masp.SpendingKey{}, fmt.Errorf("derive spending key at %s: %w", path, err)
	}

	secret, encrypted, err := s.seal(sk.Bytes())
	if err != nil {
		return "", masp.SpendingKey{}, fmt.Errorf("seal spending key: %w", err)
	}
	now := time.Now().UTC()
	s.spendingRecs[name] = spendingRecord{
		Path:      path.String(),
		Encrypted: encrypted,
		Secret:    secret,
		CreatedAt: now,
	}
	s.viewingRecs[name] = viewingRecord{
		ViewingKey: sk.ViewingKey().String(),
		CreatedAt:  now,
	}
	klog.Wallet.Debug().Str("alias", name).Msg("Derived shielded spending key")
	return name, sk, nil
}

// InsertPaymentAddr stores addr under alias. It reports false when alias
// is taken and force is false.
func (s *Store) InsertPaymentAddr(alias string, addr masp.PaymentAddress, force bool) (bool, error) {
	name, err := normalizeAlias(alias)
	if err != nil {
		return false, err
	}
	if _, exists := s.paymentRecs[name]; exists && !force {
		return false, nil
	}
	s.paymentRecs[name] = paymentRecord{
		Address:   addr.String(),
		CreatedAt: time.Now().UTC(),
	}
	return true, nil
}

// FindKey returns the transparent secret stored under alias.
func (s *Store) FindKey(alias string) (*crypto.SecretKey, error) {
	name, err := normalizeAlias(alias)
	if err != nil {
		return nil, err
	}
	rec, ok := s.keyRecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAliasNotFound, name)
	}
	scheme, err := crypto.ParseScheme(rec.Scheme)
	if err != nil {
		return nil, err
	}
	raw, err := s.open(rec.Secret, rec.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("open key %s: %w", name, err)
	}
	return crypto.SecretKeyFromBytes(scheme, raw)
}

// FindAddress returns the transparent address stored under alias.
func (s *Store) FindAddress(alias string) (types.Address, error) {
	name, err := normalizeAlias(alias)
	if err != nil {
		return types.Address{}, err
	}
	rec, ok := s.keyRecs[name]
	if !ok {
		return types.Address{}, fmt.Errorf("%w: %s", ErrAliasNotFound, name)
	}
	return types.ParseAddress(rec.Address)
}

// FindSpendingKey returns the spending key stored under alias.
func (s *Store) FindSpendingKey(alias string) (masp.SpendingKey, error) {
	name, err := normalizeAlias(alias)
	if err != nil {
		return masp.SpendingKey{}, err
	}
	rec, ok := s.spendingRecs[name]
	if !ok {
		return masp.SpendingKey{}, fmt.Errorf("%w: %s", ErrAliasNotFound, name)
	}
	raw, err := s.open(rec.Secret, rec.Encrypted)
	if err != nil {
		return masp.SpendingKey{}, fmt.Errorf("open spending key %s: %w", name, err)
	}
	return masp.SpendingKeyFromBytes(raw)
}

// FindViewingKey returns the viewing key stored under alias.
func (s *Store) FindViewingKey(alias string) (masp.ViewingKey, error) {
	name, err := normalizeAlias(alias)
	if err != nil {
		return masp.ViewingKey{}, err
	}
	rec, ok := s.viewingRecs[name]
	if !ok {
		return masp.ViewingKey{}, fmt.Errorf("%w: %s", ErrAliasNotFound, name)
	}
	return masp.ParseViewingKey(rec.ViewingKey)
}

// FindPaymentAddr returns the payment address stored under alias.
func (s *Store) FindPaymentAddr(alias string) (masp.PaymentAddress, error) {
	name, err := normalizeAlias(alias)
	if err != nil {
		return masp.PaymentAddress{}, err
	}
	rec, ok := s.paymentRecs[name]
	if !ok {
		return masp.PaymentAddress{}, fmt.Errorf("%w: %s", ErrAliasNotFound, name)
	}
	return masp.ParsePaymentAddress(rec.Address)
}

// Aliases returns every alias in the wallet, sorted and deduplicated.
func (s *Store) Aliases() []string {
	seen := make(map[string]struct{})
	for a := range s.keyRecs {
		seen[a] = struct{}{}
	}
	for a := range s.spendingRecs {
		seen[a] = struct{}{}
	}
	for a := range s.viewingRecs {
		seen[a] = struct{}{}
	}
	for a := range s.paymentRecs {
		seen[a] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Save writes the whole wallet in a single atomic batch.
func (s *Store) Save() error {
	ops := make([]storage.Op, 0, 1+len(s.keyRecs)+len(s.spendingRecs)+len(s.viewingRecs)+len(s.paymentRecs))
	ops = append(ops, storage.Op{Key: keyVersion, Value: []byte(strconv.Itoa(StoreVersion))})

	var err error
	if ops, err = appendRecords(ops, s.keys, s.keyRecs); err != nil {
		return err
	}
	if ops, err = appendRecords(ops, s.spending, s.spendingRecs); err != nil {
		return err
	}
	if ops, err = appendRecords(ops, s.viewing, s.viewingRecs); err != nil {
		return err
	}
	if ops, err = appendRecords(ops, s.payment, s.paymentRecs); err != nil {
		return err
	}

	if err := s.db.Write(ops); err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	klog.Wallet.Debug().Int("entries", len(ops)-1).Msg("Wallet saved")
	return nil
}

func appendRecords[T any](ops []storage.Op, db *storage.Namespace, recs map[string]T) ([]storage.Op, error) {
	for alias, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", alias, err)
		}
		ops = append(ops, db.Put([]byte(alias), data))
	}
	return ops, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
