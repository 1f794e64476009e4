package http

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blobDomain "github.com/dsse/forwardpriv/internal/blob/domain"
	"github.com/dsse/forwardpriv/internal/blob/http/dto"
)

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

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBlobHandler_PutAndGetBlob(t *testing.T) {
	useCase := newFakeBlobUseCase()
	handler := NewBlobHandler(useCase, discardLogger())

	req := dto.PutBlobRequest{
		Nonce:         hex.EncodeToString([]byte("nonce")),
		StoredFileKey: hex.EncodeToString([]byte("key")),
		Ciphertext:    hex.EncodeToString([]byte("ciphertext")),
	}

	c, w := newTestContext(http.MethodPut, "/v1/blobs/file1", req)
	c.Params = gin.Params{{Key: "file_id", Value: "file1"}}
	handler.PutBlobHandler(c)
	assert.Equal(t, http.StatusNoContent, w.Code)

	c, w = newTestContext(http.MethodGet, "/v1/blobs/file1", nil)
	c.Params = gin.Params{{Key: "file_id", Value: "file1"}}
	handler.GetBlobHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.GetBlobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, req.Ciphertext, resp.Ciphertext)
	assert.Equal(t, req.StoredFileKey, resp.StoredFileKey)
}

func TestBlobHandler_GetBlob_NotFound(t *testing.T) {
	useCase := newFakeBlobUseCase()
	handler := NewBlobHandler(useCase, discardLogger())

	c, w := newTestContext(http.MethodGet, "/v1/blobs/missing", nil)
	c.Params = gin.Params{{Key: "file_id", Value: "missing"}}
	handler.GetBlobHandler(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlobHandler_PutBlob_MissingFileID(t *testing.T) {
	useCase := newFakeBlobUseCase()
	handler := NewBlobHandler(useCase, discardLogger())

	c, w := newTestContext(http.MethodPut, "/v1/blobs/", dto.PutBlobRequest{
		Nonce:         hex.EncodeToString([]byte("n")),
		StoredFileKey: hex.EncodeToString([]byte("k")),
		Ciphertext:    hex.EncodeToString([]byte("c")),
	})
	c.Params = gin.Params{{Key: "file_id", Value: ""}}
	handler.PutBlobHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
