package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	clientUsecase "github.com/dsse/forwardpriv/internal/client/usecase"
)

// RunDownload fetches fileID's ciphertext, decrypts it with the
// caller-supplied fileKeyHex, and writes the plaintext to outputPath.
func RunDownload(ctx context.Context, useCase clientUsecase.ClientUseCase, logger *slog.Logger, fileID, fileKeyHex, outputPath string) error {
	plaintext, err := useCase.Download(ctx, fileID, fileKeyHex)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}

	if err := os.WriteFile(outputPath, plaintext, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Info("file downloaded",
		slog.String("file_id", fileID),
		slog.String("output_path", outputPath),
		slog.Int("bytes", len(plaintext)),
	)
	return nil
}
