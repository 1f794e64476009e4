package commands

import (
	"context"

	clientDomain "github.com/dsse/forwardpriv/internal/client/domain"
)

// fakeClientUseCase is a hand-rolled double for clientUsecase.ClientUseCase,
// mirroring the fakes used throughout the use case test suites rather than
// a generated mock.
type fakeClientUseCase struct {
	uploadFileID string
	uploadErr    error

	searchResults []clientDomain.Descriptor
	searchErr     error

	downloadBytes []byte
	downloadErr   error

	clearClientErr error

	keywords []string

	stats    *clientDomain.Stats
	statsErr error

	lastUploadKeyword, lastUploadName string
	lastUploadPlaintext               []byte
	lastSearchKeyword                 string
	lastDownloadFileID                string
	lastDownloadFileKeyHex            string
}

func (f *fakeClientUseCase) Upload(_ context.Context, keyword, originalName string, plaintext []byte) (string, error) {
	f.lastUploadKeyword = keyword
	f.lastUploadName = originalName
	f.lastUploadPlaintext = plaintext
	return f.uploadFileID, f.uploadErr
}

func (f *fakeClientUseCase) Search(_ context.Context, keyword string) ([]clientDomain.Descriptor, error) {
	f.lastSearchKeyword = keyword
	return f.searchResults, f.searchErr
}

func (f *fakeClientUseCase) Download(_ context.Context, fileID, fileKeyHex string) ([]byte, error) {
	f.lastDownloadFileID = fileID
	f.lastDownloadFileKeyHex = fileKeyHex
	return f.downloadBytes, f.downloadErr
}

func (f *fakeClientUseCase) ClearClient() error {
	return f.clearClientErr
}

func (f *fakeClientUseCase) ListKeywords() []string {
	return f.keywords
}

func (f *fakeClientUseCase) Stats(context.Context) (*clientDomain.Stats, error) {
	return f.stats, f.statsErr
}
