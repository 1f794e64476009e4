// Package http provides HTTP handlers for the encrypted index store.
package http

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsse/forwardpriv/internal/httputil"
	"github.com/dsse/forwardpriv/internal/index/http/dto"
	"github.com/dsse/forwardpriv/internal/index/usecase"
	customValidation "github.com/dsse/forwardpriv/internal/validation"
)

// IndexHandler handles HTTP requests for the server's encrypted index
// store: opaque put/get by address, and aggregate stats.
type IndexHandler struct {
	indexUseCase usecase.IndexUseCase
	logger       *slog.Logger
}

// NewIndexHandler creates a new index handler.
func NewIndexHandler(indexUseCase usecase.IndexUseCase, logger *slog.Logger) *IndexHandler {
	return &IndexHandler{indexUseCase: indexUseCase, logger: logger}
}

// PutNodeHandler stores an encrypted chain node at the address in the URL.
// PUT /v1/index/:address
func (h *IndexHandler) PutNodeHandler(c *gin.Context) {
	address := c.Param("address")
	addressBytes, err := hex.DecodeString(address)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid address: %w", err), h.logger)
		return
	}

	var req dto.PutNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	nonce, _ := hex.DecodeString(req.Nonce)
	ciphertext, _ := hex.DecodeString(req.Ciphertext)

	if err := h.indexUseCase.PutNode(c.Request.Context(), addressBytes, nonce, ciphertext); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetNodeHandler retrieves the encrypted chain node at the address in the
// URL. GET /v1/index/:address
func (h *IndexHandler) GetNodeHandler(c *gin.Context) {
	address := c.Param("address")
	addressBytes, err := hex.DecodeString(address)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid address: %w", err), h.logger)
		return
	}

	entry, err := h.indexUseCase.GetNode(c.Request.Context(), addressBytes)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GetNodeResponse{
		Nonce:      hex.EncodeToString(entry.Nonce),
		Ciphertext: hex.EncodeToString(entry.Ciphertext),
	})
}

// StatsHandler reports the node count and total size of the index store.
// GET /v1/index/stats
func (h *IndexHandler) StatsHandler(c *gin.Context) {
	count, size, err := h.indexUseCase.Stats(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{NodeCount: count, SizeBytes: size})
}
