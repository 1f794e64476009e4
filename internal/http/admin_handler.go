package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	blobUsecase "github.com/dsse/forwardpriv/internal/blob/usecase"
	"github.com/dsse/forwardpriv/internal/httputil"
	indexUsecase "github.com/dsse/forwardpriv/internal/index/usecase"
)

// AdminHandler handles server-wide administrative operations that span
// both the index and blob stores.
type AdminHandler struct {
	indexUseCase indexUsecase.IndexUseCase
	blobUseCase  blobUsecase.BlobUseCase
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(indexUseCase indexUsecase.IndexUseCase, blobUseCase blobUsecase.BlobUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{indexUseCase: indexUseCase, blobUseCase: blobUseCase, logger: logger}
}

// ClearHandler drops every index node and every blob, returning the server
// to its initial empty state. DELETE /v1/admin/clear
func (h *AdminHandler) ClearHandler(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.indexUseCase.Clear(ctx); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if err := h.blobUseCase.ClearAll(ctx); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
