package http

import (
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsse/forwardpriv/internal/httputil"
	"github.com/dsse/forwardpriv/internal/index/http/dto"
	"github.com/dsse/forwardpriv/internal/search"
	customValidation "github.com/dsse/forwardpriv/internal/validation"
)

// SearchHandler runs the server-side chain walk for a client-supplied head
// token, returning every file descriptor recovered.
type SearchHandler struct {
	engine *search.Engine
	logger *slog.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(engine *search.Engine, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{engine: engine, logger: logger}
}

// SearchHandlerFunc runs a chain walk starting from the head token in the
// request body. POST /v1/search
func (h *SearchHandler) SearchHandlerFunc(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	startKey, _ := hex.DecodeString(req.StartKey)
	startAddress, _ := hex.DecodeString(req.StartAddress)

	found := h.engine.Walk(c.Request.Context(), search.Token{StartKey: startKey, StartAddress: startAddress})

	results := make([]dto.SearchResultItem, 0, len(found))
	for _, d := range found {
		results = append(results, dto.SearchResultItem{
			FileID:       d.FileID,
			OriginalName: d.OriginalName,
			FileKey:      d.FileKey,
		})
	}

	c.JSON(http.StatusOK, dto.SearchResponse{Results: results})
}
