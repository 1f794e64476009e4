package commands

import (
	"context"
	"fmt"
	"log/slog"

	blobUsecase "github.com/dsse/forwardpriv/internal/blob/usecase"
	clientUsecase "github.com/dsse/forwardpriv/internal/client/usecase"
	indexUsecase "github.com/dsse/forwardpriv/internal/index/usecase"
)

// RunClearClient discards all local chain-head state without touching the
// server. It does not delete any uploaded data.
func RunClearClient(useCase clientUsecase.ClientUseCase, logger *slog.Logger) error {
	if err := useCase.ClearClient(); err != nil {
		return fmt.Errorf("failed to clear client state: %w", err)
	}
	logger.Info("client state cleared")
	return nil
}

// RunClearServer drops every index node and blob on the server. Index
// entries are cleared before blobs, mirroring the server's own admin clear
// handler, so a failure partway through never leaves a chain node
// referencing a blob that no longer exists.
func RunClearServer(ctx context.Context, index indexUsecase.IndexUseCase, blob blobUsecase.BlobUseCase, logger *slog.Logger) error {
	if err := index.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	if err := blob.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear blobs: %w", err)
	}
	logger.Info("server state cleared")
	return nil
}
