package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	clientDomain "github.com/dsse/forwardpriv/internal/client/domain"
	clientUsecase "github.com/dsse/forwardpriv/internal/client/usecase"
)

// RunSearch walks the chain for keyword and prints every recovered
// descriptor, newest upload first, to out.
func RunSearch(ctx context.Context, useCase clientUsecase.ClientUseCase, logger *slog.Logger, out io.Writer, keyword string) error {
	results, err := useCase.Search(ctx, keyword)
	if err != nil {
		if errors.Is(err, clientDomain.ErrKeywordNotFound) {
			_, _ = fmt.Fprintf(out, "no local state for keyword %q\n", keyword)
			return nil
		}
		return fmt.Errorf("failed to search: %w", err)
	}

	logger.Info("search completed", slog.String("keyword", keyword), slog.Int("results", len(results)))

	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, "no files found")
		return nil
	}

	for _, descriptor := range results {
		_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", descriptor.FileID, descriptor.OriginalName, descriptor.FileKey)
	}
	return nil
}
