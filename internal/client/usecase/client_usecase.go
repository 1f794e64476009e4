package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	blobUsecase "github.com/dsse/forwardpriv/internal/blob/usecase"
	clientDomain "github.com/dsse/forwardpriv/internal/client/domain"
	"github.com/dsse/forwardpriv/internal/client/state"
	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
	cryptoService "github.com/dsse/forwardpriv/internal/crypto/service"
	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
	indexUsecase "github.com/dsse/forwardpriv/internal/index/usecase"
	"github.com/dsse/forwardpriv/internal/search"
)

// clientUseCase drives the upload/search/download/clear protocol a DSSE
// client runs against the index and blob stores. Every step that touches
// durable state follows a strict crash-safety ordering: blob bytes are
// written before the new index node, and the new index node is written
// before the client's local head is advanced — so a crash at any point
// leaves the server and local state consistent with "the upload never
// happened", never with a dangling head pointing at a missing node.
type clientUseCase struct {
	index  indexUsecase.IndexUseCase
	blob   blobUsecase.BlobUseCase
	engine *search.Engine
	aead   cryptoService.AEADManager
	keys   cryptoService.KeyDeriver
	algo   cryptoDomain.Algorithm
	state  *state.Store
}

// NewClientUseCase wires the client protocol from its collaborators: the
// index and blob use cases and search engine it drives, the crypto
// services it encrypts with, and the local state store it persists chain
// heads to.
func NewClientUseCase(
	index indexUsecase.IndexUseCase,
	blob blobUsecase.BlobUseCase,
	engine *search.Engine,
	aead cryptoService.AEADManager,
	keys cryptoService.KeyDeriver,
	algo cryptoDomain.Algorithm,
	stateStore *state.Store,
) ClientUseCase {
	return &clientUseCase{
		index:  index,
		blob:   blob,
		engine: engine,
		aead:   aead,
		keys:   keys,
		algo:   algo,
		state:  stateStore,
	}
}

func (c *clientUseCase) Upload(ctx context.Context, keyword, originalName string, plaintext []byte) (string, error) {
	lock := c.state.Lock(keyword)
	lock.Lock()
	defer lock.Unlock()

	fileIDBytes := make([]byte, 16)
	if _, err := rand.Read(fileIDBytes); err != nil {
		return "", fmt.Errorf("failed to generate file id: %w", err)
	}
	fileID := hex.EncodeToString(fileIDBytes)

	fileKey, err := c.keys.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate file key: %w", err)
	}

	fileCipher, err := c.aead.CreateCipher(fileKey, c.algo)
	if err != nil {
		return "", fmt.Errorf("failed to create file cipher: %w", err)
	}
	fileCiphertext, fileNonce, err := fileCipher.Encrypt(plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt file: %w", err)
	}

	// Step 1: write the blob before anything references it. If this fails,
	// nothing on the server or in local state has changed.
	if err := c.blob.PutBlob(ctx, fileID, fileNonce, fileKey, fileCiphertext); err != nil {
		return "", fmt.Errorf("failed to store blob: %w", err)
	}

	head, hadHead := c.state.Get(keyword)

	node := indexDomain.PlaintextNode{
		FileID:       fileID,
		OriginalName: originalName,
		FileKey:      hex.EncodeToString(fileKey),
	}
	if hadHead {
		oldKey := head.KeyHex
		oldAddress := head.AddressHex
		node.OldKey = &oldKey
		node.OldAddress = &oldAddress
	}

	nodePlaintext, err := json.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("failed to serialize index node: %w", err)
	}

	newKey, err := c.keys.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate chain key: %w", err)
	}
	newAddress, err := c.keys.DeriveAddress(newKey)
	if err != nil {
		return "", fmt.Errorf("failed to derive chain address: %w", err)
	}

	nodeCipher, err := c.aead.CreateCipher(newKey, c.algo)
	if err != nil {
		return "", fmt.Errorf("failed to create node cipher: %w", err)
	}
	nodeCiphertext, nodeNonce, err := nodeCipher.Encrypt(nodePlaintext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt index node: %w", err)
	}

	// Step 2: publish the new head node. Only after this succeeds does the
	// new key/address pair actually point at durable server state.
	if err := c.index.PutNode(ctx, newAddress, nodeNonce, nodeCiphertext); err != nil {
		return "", fmt.Errorf("failed to store index node: %w", err)
	}

	// Step 3: advance local state last, so a crash between steps 2 and 3
	// only leaves an orphaned node on the server that no head references,
	// rather than a head pointing at a node that does not exist.
	newHead := clientDomain.Head{
		KeyHex:     hex.EncodeToString(newKey),
		AddressHex: hex.EncodeToString(newAddress),
	}
	if err := c.state.Set(keyword, newHead); err != nil {
		return "", fmt.Errorf("failed to persist client state: %w", err)
	}

	return fileID, nil
}

func (c *clientUseCase) Search(ctx context.Context, keyword string) ([]clientDomain.Descriptor, error) {
	head, ok := c.state.Get(keyword)
	if !ok {
		return nil, clientDomain.ErrKeywordNotFound
	}

	startKey, err := hex.DecodeString(head.KeyHex)
	if err != nil {
		return nil, fmt.Errorf("corrupted client state for keyword %q: %w", keyword, err)
	}
	startAddress, err := hex.DecodeString(head.AddressHex)
	if err != nil {
		return nil, fmt.Errorf("corrupted client state for keyword %q: %w", keyword, err)
	}

	found := c.engine.Walk(ctx, search.Token{StartKey: startKey, StartAddress: startAddress})

	descriptors := make([]clientDomain.Descriptor, 0, len(found))
	for _, d := range found {
		descriptors = append(descriptors, clientDomain.Descriptor{
			FileID:       d.FileID,
			OriginalName: d.OriginalName,
			FileKey:      d.FileKey,
		})
	}
	return descriptors, nil
}

func (c *clientUseCase) Download(ctx context.Context, fileID, fileKeyHex string) ([]byte, error) {
	entry, ciphertext, err := c.blob.GetBlob(ctx, fileID)
	if err != nil {
		return nil, err
	}

	fileKey, err := hex.DecodeString(fileKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid file key: %w", err)
	}

	cipher, err := c.aead.CreateCipher(fileKey, c.algo)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cipher: %w", err)
	}

	plaintext, err := cipher.Decrypt(ciphertext, entry.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

func (c *clientUseCase) ClearClient() error {
	return c.state.Clear()
}

func (c *clientUseCase) ListKeywords() []string {
	return c.state.Keywords()
}

func (c *clientUseCase) Stats(ctx context.Context) (*clientDomain.Stats, error) {
	nodeCount, indexSizeBytes, err := c.index.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get index stats: %w", err)
	}

	fileCount, storageSizeBytes, err := c.blob.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob stats: %w", err)
	}

	return &clientDomain.Stats{
		IndexEntries:     nodeCount,
		EncryptedFiles:   fileCount,
		DBSizeBytes:      indexSizeBytes,
		StorageSizeBytes: storageSizeBytes,
		TotalSizeBytes:   indexSizeBytes + storageSizeBytes,
	}, nil
}
