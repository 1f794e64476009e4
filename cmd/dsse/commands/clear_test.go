package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blobDomain "github.com/dsse/forwardpriv/internal/blob/domain"
	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
)

func TestRunClearClient(t *testing.T) {
	useCase := &fakeClientUseCase{}
	require.NoError(t, RunClearClient(useCase, discardLogger()))
}

func TestRunClearClient_Error(t *testing.T) {
	useCase := &fakeClientUseCase{clearClientErr: errors.New("disk full")}
	require.Error(t, RunClearClient(useCase, discardLogger()))
}

type fakeClearIndexUseCase struct {
	cleared  bool
	clearErr error
}

func (f *fakeClearIndexUseCase) PutNode(context.Context, []byte, []byte, []byte) error {
	return nil
}
func (f *fakeClearIndexUseCase) GetNode(context.Context, []byte) (*indexDomain.Entry, error) {
	return nil, indexDomain.ErrNodeNotFound
}
func (f *fakeClearIndexUseCase) Stats(context.Context) (int64, int64, error) { return 0, 0, nil }
func (f *fakeClearIndexUseCase) Clear(context.Context) error {
	f.cleared = true
	return f.clearErr
}

type fakeClearBlobUseCase struct {
	cleared  bool
	clearErr error
}

func (f *fakeClearBlobUseCase) PutBlob(context.Context, string, []byte, []byte, []byte) error {
	return nil
}
func (f *fakeClearBlobUseCase) GetBlob(context.Context, string) (*blobDomain.BlobEntry, []byte, error) {
	return nil, nil, blobDomain.ErrBlobNotFound
}
func (f *fakeClearBlobUseCase) Stats(context.Context) (int64, int64, error) { return 0, 0, nil }
func (f *fakeClearBlobUseCase) ClearAll(context.Context) error {
	f.cleared = true
	return f.clearErr
}

func TestRunClearServer_ClearsBoth(t *testing.T) {
	index := &fakeClearIndexUseCase{}
	blob := &fakeClearBlobUseCase{}

	require.NoError(t, RunClearServer(context.Background(), index, blob, discardLogger()))
	assert.True(t, index.cleared)
	assert.True(t, blob.cleared)
}

func TestRunClearServer_IndexErrorStopsBeforeBlobClear(t *testing.T) {
	index := &fakeClearIndexUseCase{clearErr: errors.New("index store unavailable")}
	blob := &fakeClearBlobUseCase{}

	err := RunClearServer(context.Background(), index, blob, discardLogger())
	require.Error(t, err)
	assert.False(t, blob.cleared)
}
