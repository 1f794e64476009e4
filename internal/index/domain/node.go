// Package domain defines the plaintext and encrypted forms of a chained
// index node — the unit of storage for the forward-private inverted index.
package domain

import "time"

// PlaintextNode is the per-keyword chain element before encryption.
// Field order matches the wire format: file_id, original_name, file_key,
// old_key, old_address. OldKey and OldAddress are both nil on a chain tail
// and both set otherwise — they are never set independently.
type PlaintextNode struct {
	FileID       string  `json:"file_id"`
	OriginalName string  `json:"original_name"`
	FileKey      string  `json:"file_key"`
	OldKey       *string `json:"old_key"`
	OldAddress   *string `json:"old_address"`
}

// IsTail reports whether this node has no predecessor in its chain.
func (n *PlaintextNode) IsTail() bool {
	return n.OldKey == nil && n.OldAddress == nil
}

// Entry is the encrypted form of a node as stored by the index store:
// address -> (nonce, ciphertext). Address, nonce and ciphertext are all
// opaque byte strings; address is additionally unique (primary key).
type Entry struct {
	Address    []byte
	Nonce      []byte
	Ciphertext []byte
	CreatedAt  time.Time
}

// Descriptor is the file metadata recovered from a single decrypted node,
// as returned by a search: enough for the client to locate and decrypt the
// underlying blob.
type Descriptor struct {
	FileID       string
	OriginalName string
	FileKey      string
}
