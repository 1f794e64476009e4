package search

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
	cryptoService "github.com/dsse/forwardpriv/internal/crypto/service"
	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
)

// fakeIndexUseCase is an in-memory stand-in for indexUseCase.IndexUseCase
// used to drive the chain-walk without a database.
type fakeIndexUseCase struct {
	nodes map[string]*indexDomain.Entry
}

func newFakeIndexUseCase() *fakeIndexUseCase {
	return &fakeIndexUseCase{nodes: make(map[string]*indexDomain.Entry)}
}

func (f *fakeIndexUseCase) PutNode(_ context.Context, address, nonce, ciphertext []byte) error {
	f.nodes[string(address)] = &indexDomain.Entry{Address: address, Nonce: nonce, Ciphertext: ciphertext}
	return nil
}

func (f *fakeIndexUseCase) GetNode(_ context.Context, address []byte) (*indexDomain.Entry, error) {
	entry, ok := f.nodes[string(address)]
	if !ok {
		return nil, indexDomain.ErrNodeNotFound
	}
	return entry, nil
}

func (f *fakeIndexUseCase) Stats(_ context.Context) (int64, int64, error) {
	return int64(len(f.nodes)), 0, nil
}

func (f *fakeIndexUseCase) Clear(_ context.Context) error {
	f.nodes = make(map[string]*indexDomain.Entry)
	return nil
}

// chainFixture builds a two-node chain (newest first) the way upload would:
// node2 (tail=false, points at node1), node1 (tail=true).
func chainFixture(t *testing.T) (idx *fakeIndexUseCase, aeadManager cryptoService.AEADManager, headKey, headAddress []byte) {
	t.Helper()

	aeadManager = cryptoService.NewAEADManager()
	keyDeriver := cryptoService.NewKeyDeriver()
	idx = newFakeIndexUseCase()

	key1, err := keyDeriver.GenerateKey()
	require.NoError(t, err)
	address1, err := keyDeriver.DeriveAddress(key1)
	require.NoError(t, err)

	node1 := indexDomain.PlaintextNode{FileID: "file1", OriginalName: "plans.txt", FileKey: "ff"}
	plain1, err := json.Marshal(node1)
	require.NoError(t, err)

	cipher1, err := aeadManager.CreateCipher(key1, cryptoDomain.AESGCM)
	require.NoError(t, err)
	ct1, nonce1, err := cipher1.Encrypt(plain1, nil)
	require.NoError(t, err)
	require.NoError(t, idx.PutNode(context.Background(), address1, nonce1, ct1))

	key2, err := keyDeriver.GenerateKey()
	require.NoError(t, err)
	address2, err := keyDeriver.DeriveAddress(key2)
	require.NoError(t, err)

	oldKeyHex := hex.EncodeToString(key1)
	oldAddressHex := hex.EncodeToString(address1)
	node2 := indexDomain.PlaintextNode{
		FileID: "file2", OriginalName: "report.txt", FileKey: "ee",
		OldKey: &oldKeyHex, OldAddress: &oldAddressHex,
	}
	plain2, err := json.Marshal(node2)
	require.NoError(t, err)

	cipher2, err := aeadManager.CreateCipher(key2, cryptoDomain.AESGCM)
	require.NoError(t, err)
	ct2, nonce2, err := cipher2.Encrypt(plain2, nil)
	require.NoError(t, err)
	require.NoError(t, idx.PutNode(context.Background(), address2, nonce2, ct2))

	return idx, aeadManager, key2, address2
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_Walk_TwoNodeChain(t *testing.T) {
	idx, aeadManager, headKey, headAddress := chainFixture(t)

	engine := NewEngine(idx, aeadManager, cryptoDomain.AESGCM, 100, discardLogger())
	results := engine.Walk(context.Background(), Token{StartKey: headKey, StartAddress: headAddress})

	require.Len(t, results, 2)
	assert.Equal(t, "file2", results[0].FileID)
	assert.Equal(t, "file1", results[1].FileID)
}

func TestEngine_Walk_UnknownAddress(t *testing.T) {
	idx := newFakeIndexUseCase()
	aeadManager := cryptoService.NewAEADManager()

	engine := NewEngine(idx, aeadManager, cryptoDomain.AESGCM, 100, discardLogger())
	results := engine.Walk(context.Background(), Token{StartKey: []byte("nope"), StartAddress: []byte("missing")})

	assert.Empty(t, results)
}

func TestEngine_Walk_TamperedHeadTruncates(t *testing.T) {
	idx, aeadManager, headKey, headAddress := chainFixture(t)

	entry, err := idx.GetNode(context.Background(), headAddress)
	require.NoError(t, err)
	entry.Ciphertext[0] ^= 0xFF // flip a bit in the head ciphertext

	engine := NewEngine(idx, aeadManager, cryptoDomain.AESGCM, 100, discardLogger())
	results := engine.Walk(context.Background(), Token{StartKey: headKey, StartAddress: headAddress})

	assert.Empty(t, results, "tampering with the head must truncate the whole result, never expose it")
}

func TestEngine_Walk_WrongKeyTruncatesImmediately(t *testing.T) {
	idx, aeadManager, _, headAddress := chainFixture(t)

	wrongKey := make([]byte, 32)
	engine := NewEngine(idx, aeadManager, cryptoDomain.AESGCM, 100, discardLogger())
	results := engine.Walk(context.Background(), Token{StartKey: wrongKey, StartAddress: headAddress})

	assert.Empty(t, results)
}

func TestEngine_Walk_RespectsMaxChainBound(t *testing.T) {
	idx, aeadManager, headKey, headAddress := chainFixture(t)

	engine := NewEngine(idx, aeadManager, cryptoDomain.AESGCM, 1, discardLogger())
	results := engine.Walk(context.Background(), Token{StartKey: headKey, StartAddress: headAddress})

	require.Len(t, results, 1, "bound of 1 must stop after the head node")
	assert.Equal(t, "file2", results[0].FileID)
}
