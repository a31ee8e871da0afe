package storage

// Namespace is a read view over the keys of a DB that share a prefix,
// plus the key builder used to write into it. The wallet store keeps one
// Namespace per entry kind and commits all of them in a single Write on
// the underlying DB.
type Namespace struct {
	db     DB
	prefix []byte
}

// NewNamespace returns the namespace of db under prefix.
func NewNamespace(db DB, prefix []byte) *Namespace {
	return &Namespace{db: db, prefix: append([]byte(nil), prefix...)}
}

// Prefix returns the namespace prefix.
func (n *Namespace) Prefix() []byte {
	return n.prefix
}

// Key returns the full DB key for key inside the namespace.
func (n *Namespace) Key(key []byte) []byte {
	out := make([]byte, 0, len(n.prefix)+len(key))
	out = append(out, n.prefix...)
	return append(out, key...)
}

// Get reads key from the namespace.
func (n *Namespace) Get(key []byte) ([]byte, error) {
	return n.db.Get(n.Key(key))
}

// Put returns the op that stores value under key in the namespace.
func (n *Namespace) Put(key, value []byte) Op {
	return Op{Key: n.Key(key), Value: value}
}

// Delete returns the op that removes key from the namespace.
func (n *Namespace) Delete(key []byte) Op {
	return Op{Key: n.Key(key)}
}

// ForEach visits every entry of the namespace. Keys are passed without
// the namespace prefix.
func (n *Namespace) ForEach(fn func(key, value []byte) error) error {
	return n.db.ForEach(n.prefix, func(key, value []byte) error {
		return fn(key[len(n.prefix):], value)
	})
}
