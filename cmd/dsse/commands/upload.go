package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	clientUsecase "github.com/dsse/forwardpriv/internal/client/usecase"
)

// RunUpload encrypts and uploads the file at path under keyword, printing
// the generated file id to out.
func RunUpload(ctx context.Context, useCase clientUsecase.ClientUseCase, logger *slog.Logger, out io.Writer, keyword, path string) error {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	originalName := filepath.Base(path)

	fileID, err := useCase.Upload(ctx, keyword, originalName, plaintext)
	if err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}

	logger.Info("file uploaded",
		slog.String("keyword", keyword),
		slog.String("file_id", fileID),
		slog.Int("bytes", len(plaintext)),
	)
	_, _ = fmt.Fprintf(out, "%s\n", fileID)
	return nil
}
