package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blobDomain "github.com/dsse/forwardpriv/internal/blob/domain"
	clientDomain "github.com/dsse/forwardpriv/internal/client/domain"
	"github.com/dsse/forwardpriv/internal/client/state"
	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
	cryptoService "github.com/dsse/forwardpriv/internal/crypto/service"
	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
	"github.com/dsse/forwardpriv/internal/search"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeIndexUseCase struct {
	entries map[string]*indexDomain.Entry
}

func newFakeIndexUseCase() *fakeIndexUseCase {
	return &fakeIndexUseCase{entries: make(map[string]*indexDomain.Entry)}
}

func (f *fakeIndexUseCase) PutNode(_ context.Context, address, nonce, ciphertext []byte) error {
	f.entries[string(address)] = &indexDomain.Entry{Address: address, Nonce: nonce, Ciphertext: ciphertext}
	return nil
}

func (f *fakeIndexUseCase) GetNode(_ context.Context, address []byte) (*indexDomain.Entry, error) {
	entry, ok := f.entries[string(address)]
	if !ok {
		return nil, indexDomain.ErrNodeNotFound
	}
	return entry, nil
}

func (f *fakeIndexUseCase) Stats(_ context.Context) (int64, int64, error) {
	return int64(len(f.entries)), 0, nil
}

func (f *fakeIndexUseCase) Clear(_ context.Context) error {
	f.entries = make(map[string]*indexDomain.Entry)
	return nil
}

type fakeBlobUseCase struct {
	entries map[string]*blobDomain.BlobEntry
	bytes   map[string][]byte
}

func newFakeBlobUseCase() *fakeBlobUseCase {
	return &fakeBlobUseCase{entries: make(map[string]*blobDomain.BlobEntry), bytes: make(map[string][]byte)}
}

func (f *fakeBlobUseCase) PutBlob(_ context.Context, fileID string, nonce, storedFileKey, encryptedBytes []byte) error {
	f.entries[fileID] = &blobDomain.BlobEntry{FileID: fileID, Nonce: nonce, FileKey: storedFileKey}
	f.bytes[fileID] = encryptedBytes
	return nil
}

func (f *fakeBlobUseCase) GetBlob(_ context.Context, fileID string) (*blobDomain.BlobEntry, []byte, error) {
	entry, ok := f.entries[fileID]
	if !ok {
		return nil, nil, blobDomain.ErrBlobNotFound
	}
	return entry, f.bytes[fileID], nil
}

func (f *fakeBlobUseCase) ClearAll(_ context.Context) error {
	f.entries = make(map[string]*blobDomain.BlobEntry)
	f.bytes = make(map[string][]byte)
	return nil
}

func (f *fakeBlobUseCase) Stats(_ context.Context) (int64, int64, error) {
	var size int64
	for _, data := range f.bytes {
		size += int64(len(data))
	}
	return int64(len(f.entries)), size, nil
}

func newTestClientUseCase(t *testing.T) ClientUseCase {
	t.Helper()

	idx := newFakeIndexUseCase()
	blob := newFakeBlobUseCase()
	aead := cryptoService.NewAEADManager()
	keys := cryptoService.NewKeyDeriver()
	engine := search.NewEngine(idx, aead, cryptoDomain.AESGCM, 100, discardLogger())

	statePath := filepath.Join(t.TempDir(), "client_state.json")
	store, err := state.NewStore(statePath)
	require.NoError(t, err)

	return NewClientUseCase(idx, blob, engine, aead, keys, cryptoDomain.AESGCM, store)
}

func TestClientUseCase_UploadSearchDownload(t *testing.T) {
	useCase := newTestClientUseCase(t)
	ctx := context.Background()

	fileID, err := useCase.Upload(ctx, "invoice", "q1.pdf", []byte("quarter one numbers"))
	require.NoError(t, err)
	assert.NotEmpty(t, fileID)

	results, err := useCase.Search(ctx, "invoice")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, fileID, results[0].FileID)
	assert.Equal(t, "q1.pdf", results[0].OriginalName)
	assert.NotEmpty(t, results[0].FileKey)

	plaintext, err := useCase.Download(ctx, fileID, results[0].FileKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("quarter one numbers"), plaintext)
}

func TestClientUseCase_Download_WrongKeyFails(t *testing.T) {
	useCase := newTestClientUseCase(t)
	ctx := context.Background()

	fileID, err := useCase.Upload(ctx, "invoice", "q1.pdf", []byte("quarter one numbers"))
	require.NoError(t, err)

	results, err := useCase.Search(ctx, "invoice")
	require.NoError(t, err)
	require.Len(t, results, 1)

	wrongKey := strings.Repeat("0", len(results[0].FileKey))
	require.NotEqual(t, results[0].FileKey, wrongKey)

	_, err = useCase.Download(ctx, fileID, wrongKey)
	require.Error(t, err)
}

func TestClientUseCase_MultipleUploadsSameKeyword_SearchReturnsAllNewestFirst(t *testing.T) {
	useCase := newTestClientUseCase(t)
	ctx := context.Background()

	first, err := useCase.Upload(ctx, "invoice", "jan.pdf", []byte("january"))
	require.NoError(t, err)
	second, err := useCase.Upload(ctx, "invoice", "feb.pdf", []byte("february"))
	require.NoError(t, err)

	results, err := useCase.Search(ctx, "invoice")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, second, results[0].FileID)
	assert.Equal(t, first, results[1].FileID)
}

func TestClientUseCase_Search_UnknownKeyword(t *testing.T) {
	useCase := newTestClientUseCase(t)

	_, err := useCase.Search(context.Background(), "never-uploaded")
	assert.ErrorIs(t, err, clientDomain.ErrKeywordNotFound)
}

func TestClientUseCase_ClearClient(t *testing.T) {
	useCase := newTestClientUseCase(t)
	ctx := context.Background()

	_, err := useCase.Upload(ctx, "invoice", "q1.pdf", []byte("data"))
	require.NoError(t, err)

	require.NoError(t, useCase.ClearClient())
	assert.Empty(t, useCase.ListKeywords())

	_, err = useCase.Search(ctx, "invoice")
	assert.ErrorIs(t, err, clientDomain.ErrKeywordNotFound)
}

func TestClientUseCase_ListKeywords(t *testing.T) {
	useCase := newTestClientUseCase(t)
	ctx := context.Background()

	_, err := useCase.Upload(ctx, "invoice", "a.pdf", []byte("a"))
	require.NoError(t, err)
	_, err = useCase.Upload(ctx, "receipt", "b.pdf", []byte("b"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"invoice", "receipt"}, useCase.ListKeywords())
}

func TestClientUseCase_StatePersistsAcrossStoreReload(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "client_state.json")
	store, err := state.NewStore(statePath)
	require.NoError(t, err)

	idx := newFakeIndexUseCase()
	blob := newFakeBlobUseCase()
	aead := cryptoService.NewAEADManager()
	keys := cryptoService.NewKeyDeriver()
	engine := search.NewEngine(idx, aead, cryptoDomain.AESGCM, 100, discardLogger())
	useCase := NewClientUseCase(idx, blob, engine, aead, keys, cryptoDomain.AESGCM, store)

	ctx := context.Background()
	fileID, err := useCase.Upload(ctx, "invoice", "q1.pdf", []byte("data"))
	require.NoError(t, err)

	reloaded, err := state.NewStore(statePath)
	require.NoError(t, err)
	reloadedUseCase := NewClientUseCase(idx, blob, engine, aead, keys, cryptoDomain.AESGCM, reloaded)

	results, err := reloadedUseCase.Search(ctx, "invoice")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, fileID, results[0].FileID)
}

func TestClientUseCase_Stats(t *testing.T) {
	useCase := newTestClientUseCase(t)
	ctx := context.Background()

	_, err := useCase.Upload(ctx, "invoice", "a.pdf", []byte("a"))
	require.NoError(t, err)
	_, err = useCase.Upload(ctx, "invoice", "b.pdf", []byte("b"))
	require.NoError(t, err)

	stats, err := useCase.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.IndexEntries)
	assert.Equal(t, int64(2), stats.EncryptedFiles)
	assert.Equal(t, stats.DBSizeBytes+stats.StorageSizeBytes, stats.TotalSizeBytes)
}

