package commands

import (
	"context"
	"fmt"
	"io"

	clientUsecase "github.com/dsse/forwardpriv/internal/client/usecase"
)

// RunStats prints server-side index and blob storage usage to out.
func RunStats(ctx context.Context, useCase clientUsecase.ClientUseCase, out io.Writer) error {
	stats, err := useCase.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	_, _ = fmt.Fprintf(out, "index entries:      %d\n", stats.IndexEntries)
	_, _ = fmt.Fprintf(out, "encrypted files:     %d\n", stats.EncryptedFiles)
	_, _ = fmt.Fprintf(out, "index size (bytes):  %d\n", stats.DBSizeBytes)
	_, _ = fmt.Fprintf(out, "storage size (bytes):%d\n", stats.StorageSizeBytes)
	_, _ = fmt.Fprintf(out, "total size (bytes):  %d\n", stats.TotalSizeBytes)
	return nil
}
