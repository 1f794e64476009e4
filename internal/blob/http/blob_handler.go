// Package http provides HTTP handlers for the server's encrypted blob store.
package http

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsse/forwardpriv/internal/blob/http/dto"
	"github.com/dsse/forwardpriv/internal/blob/usecase"
	"github.com/dsse/forwardpriv/internal/httputil"
	customValidation "github.com/dsse/forwardpriv/internal/validation"
)

// BlobHandler handles HTTP requests for the server's encrypted blob store.
type BlobHandler struct {
	blobUseCase usecase.BlobUseCase
	logger      *slog.Logger
}

// NewBlobHandler creates a new blob handler.
func NewBlobHandler(blobUseCase usecase.BlobUseCase, logger *slog.Logger) *BlobHandler {
	return &BlobHandler{blobUseCase: blobUseCase, logger: logger}
}

// PutBlobHandler stores an encrypted file under the file id in the URL.
// PUT /v1/blobs/:file_id
func (h *BlobHandler) PutBlobHandler(c *gin.Context) {
	fileID := c.Param("file_id")
	if fileID == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("file_id cannot be empty"), h.logger)
		return
	}

	var req dto.PutBlobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	nonce, _ := hex.DecodeString(req.Nonce)
	storedFileKey, _ := hex.DecodeString(req.StoredFileKey)
	ciphertext, _ := hex.DecodeString(req.Ciphertext)

	if err := h.blobUseCase.PutBlob(c.Request.Context(), fileID, nonce, storedFileKey, ciphertext); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBlobHandler retrieves the encrypted file stored under the file id in
// the URL. GET /v1/blobs/:file_id
func (h *BlobHandler) GetBlobHandler(c *gin.Context) {
	fileID := c.Param("file_id")
	if fileID == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("file_id cannot be empty"), h.logger)
		return
	}

	entry, ciphertext, err := h.blobUseCase.GetBlob(c.Request.Context(), fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GetBlobResponse{
		Nonce:         hex.EncodeToString(entry.Nonce),
		StoredFileKey: hex.EncodeToString(entry.FileKey),
		Ciphertext:    hex.EncodeToString(ciphertext),
	})
}
